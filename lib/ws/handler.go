package ws

import (
	"col-dashboard-backend/lib/compare"
	wsmodels "col-dashboard-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

func InitWs(app *fiber.App) {
	app.Use("/dashboard", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("connID", uuid.New().String())
		return ctx.Next()
	})
	app.Get("/dashboard", websocket.New(dashboardHandler))
}

// @Summary Websocket реактивного пересчёта графика
// @Tags Websocket Дашборд
// @Description На каждое изменение выборки клиент шлёт selection, сервер отвечает пересчитанным графиком
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 500
// @router /ws/dashboard [get]
func dashboardHandler(c *websocket.Conn) {
	connID := c.Locals("connID").(string)
	logger := log.WithField("conn_id", connID)
	logger.Debug("открыто ws-соединение дашборда")
	// выборка живёт только внутри соединения, между клиентами общего состояния нет
	for {
		var msg wsmodels.ClientMessage
		if err := c.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			break
		}
		if err := c.WriteJSON(recalc(msg)); err != nil {
			logger.WithError(err).Error("ошибка отправки сообщения")
			break
		}
	}
	logger.Debug("ws-соединение дашборда закрыто")
}

func recalc(msg wsmodels.ClientMessage) wsmodels.ServerMessage {
	plot, err := compare.Instance.Plot(msg.Selection)
	if err != nil {
		return wsmodels.ServerMessage{Status: "fail", Message: err.Error()}
	}
	return wsmodels.ServerMessage{Status: "success", Plot: &plot}
}
