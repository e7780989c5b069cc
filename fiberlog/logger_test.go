package fiberlog

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newTestApp(tags []string) (*fiber.App, *logrustest.Hook) {
	logger, hook := logrustest.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: tags}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		time.Sleep(5 * time.Millisecond)
		return c.SendString("pong")
	})
	return app, hook
}

func TestLogger(t *testing.T) {
	t.Run(`поля запроса попадают в лог`, func(t *testing.T) {
		app, hook := newTestApp([]string{TagStatus, TagLatency, TagMethod, TagPath})
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		entries := hook.AllEntries()
		require.Len(t, entries, 1)
		require.Equal(t, fiber.StatusOK, entries[0].Data[TagStatus])
		require.Equal(t, "GET", entries[0].Data[TagMethod])
		require.Equal(t, "/ping", entries[0].Data[TagPath])
		_, parseErr := time.ParseDuration(entries[0].Data[TagLatency].(string))
		require.Nil(t, parseErr)
	})

	t.Run(`параллельные запросы не искажают замеры друг друга`, func(t *testing.T) {
		app, hook := newTestApp([]string{TagStatus, TagLatency})
		const parallel = 8
		wg := sync.WaitGroup{}
		for n := 0; n < parallel; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
				if err == nil {
					_ = resp.Body.Close()
				}
			}()
		}
		wg.Wait()

		entries := hook.AllEntries()
		require.Len(t, entries, parallel)
		for _, entry := range entries {
			latency, parseErr := time.ParseDuration(entry.Data[TagLatency].(string))
			require.Nil(t, parseErr)
			// обработчик спит 5мс, корректный замер не может быть меньше
			require.GreaterOrEqual(t, latency, 5*time.Millisecond)
		}
	})
}
