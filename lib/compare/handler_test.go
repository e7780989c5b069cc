package compare

import (
	"testing"

	"col-dashboard-backend/config"
	"col-dashboard-backend/models"
	dashboardapimodels "col-dashboard-backend/models/api/dashboard"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testRecords() []models.CityRecord {
	return []models.CityRecord{
		{City: "Paris, France", CityShort: "Paris", Country: "France", Salary: 3000, Col: 70},
		{City: "Berlin, Germany", CityShort: "Berlin", Country: "Germany", Salary: 3300, Col: 68.9},
		{City: "Lyon, France", CityShort: "Lyon", Country: "France", Salary: 2800, Col: 60},
		{City: "Oslo, Norway", CityShort: "Oslo", Country: "Norway", Salary: 4500, Col: 101},
	}
}

func TestFilterByCountries(t *testing.T) {
	t.Run(`пустой выбор стран — пустой результат`, func(t *testing.T) {
		require.Empty(t, FilterByCountries(testRecords(), nil))
		require.Empty(t, FilterByCountries(testRecords(), []string{}))
	})

	t.Run(`фильтр сохраняет исходный порядок`, func(t *testing.T) {
		list := FilterByCountries(testRecords(), []string{"France", "Germany"})
		require.Len(t, list, 3)
		require.Equal(t, "Paris, France", list[0].City)
		require.Equal(t, "Berlin, Germany", list[1].City)
		require.Equal(t, "Lyon, France", list[2].City)
	})

	t.Run(`дубли в выборе стран не влияют на результат`, func(t *testing.T) {
		list := FilterByCountries(testRecords(), []string{"Norway", "Norway"})
		require.Len(t, list, 1)
		require.Equal(t, "Oslo, Norway", list[0].City)
	})
}

func TestAvailableCities(t *testing.T) {
	t.Run(`список отсортирован и без дублей`, func(t *testing.T) {
		records := append(testRecords(), models.CityRecord{City: "Paris, France", Country: "France", Salary: 1, Col: 1})
		cities := AvailableCities(records)
		require.Equal(t, []string{"Berlin, Germany", "Lyon, France", "Oslo, Norway", "Paris, France"}, cities)
	})
}

func TestComputeDifferences(t *testing.T) {
	t.Run(`у референсного города нулевые отклонения`, func(t *testing.T) {
		list, err := ComputeDifferences(testRecords(), "Paris, France")
		require.Nil(t, err)
		require.Equal(t, float64(0), list[0].SalDiffPct)
		require.Equal(t, float64(0), list[0].ColDiffPct)
	})

	t.Run(`отклонения Берлина от Парижа`, func(t *testing.T) {
		filtered := FilterByCountries(testRecords(), []string{"France", "Germany"})
		list, err := ComputeDifferences(filtered, "Paris, France")
		require.Nil(t, err)
		require.Equal(t, "Berlin, Germany", list[1].City)
		require.InDelta(t, 10.0, list[1].SalDiffPct, 0.0001)
		require.InDelta(t, -1.571, list[1].ColDiffPct, 0.001)
	})

	t.Run(`страна с единственным городом`, func(t *testing.T) {
		filtered := FilterByCountries(testRecords(), []string{"Norway"})
		require.Len(t, filtered, 1)
		cities := AvailableCities(filtered)
		require.Equal(t, []string{"Oslo, Norway"}, cities)
		list, err := ComputeDifferences(filtered, cities[0])
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, float64(0), list[0].SalDiffPct)
		require.Equal(t, float64(0), list[0].ColDiffPct)
	})

	t.Run(`референсный город вне выборки`, func(t *testing.T) {
		filtered := FilterByCountries(testRecords(), []string{"Germany"})
		_, err := ComputeDifferences(filtered, "Paris, France")
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrReferenceNotFound))
	})

	t.Run(`при совпадающих подписях референсом берётся первая запись`, func(t *testing.T) {
		records := []models.CityRecord{
			{City: "Paris, France", Country: "France", Salary: 3000, Col: 70},
			{City: "Paris, France", Country: "France", Salary: 6000, Col: 140},
		}
		list, err := ComputeDifferences(records, "Paris, France")
		require.Nil(t, err)
		require.Equal(t, float64(0), list[0].SalDiffPct)
		require.InDelta(t, 100.0, list[1].SalDiffPct, 0.0001)
	})

	t.Run(`нулевая зарплата или индекс референса отклоняются`, func(t *testing.T) {
		records := []models.CityRecord{
			{City: "Nowhere, Utopia", Country: "Utopia", Salary: 0, Col: 50},
		}
		_, err := ComputeDifferences(records, "Nowhere, Utopia")
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrZeroReference))

		records[0].Salary = 100
		records[0].Col = 0
		_, err = ComputeDifferences(records, "Nowhere, Utopia")
		require.True(t, errors.Is(err, ErrZeroReference))
	})
}

type staticDataset struct {
	records []models.CityRecord
}

func (s staticDataset) Records() []models.CityRecord {
	return s.records
}

func newTestHandler(t *testing.T) impl {
	t.Helper()
	conf := new(config.Configuration)
	conf.Dashboard.Title = "Global Cost of Living vs Salary Analysis"
	conf.Dashboard.EmptyPrompt = "Please select at least one country to proceed."
	config.Conf = conf
	return impl{dataProvider: staticDataset{records: testRecords()}}
}

func TestPlot(t *testing.T) {
	handler := newTestHandler(t)

	t.Run(`страны не выбраны — подсказка вместо графика`, func(t *testing.T) {
		view, err := handler.Plot(dashboardapimodels.SelectionData{})
		require.Nil(t, err)
		require.True(t, view.NeedSelection)
		require.Equal(t, config.Conf.Dashboard.EmptyPrompt, view.Prompt)
		require.Empty(t, view.Points)
	})

	t.Run(`по выбранным странам нет городов — тоже подсказка, а не ошибка`, func(t *testing.T) {
		view, err := handler.Plot(dashboardapimodels.SelectionData{
			Countries:     []string{"Atlantis"},
			ReferenceCity: "Paris, France",
		})
		require.Nil(t, err)
		require.True(t, view.NeedSelection)
		require.Equal(t, config.Conf.Dashboard.EmptyPrompt, view.Prompt)
		require.Empty(t, view.Points)

		// и без референсного города результат тот же
		view, err = handler.Plot(dashboardapimodels.SelectionData{Countries: []string{"Atlantis"}})
		require.Nil(t, err)
		require.True(t, view.NeedSelection)
	})

	t.Run(`полная выборка — точки и границы осей`, func(t *testing.T) {
		view, err := handler.Plot(dashboardapimodels.SelectionData{
			Countries:     []string{"France", "Germany"},
			ReferenceCity: "Paris, France",
		})
		require.Nil(t, err)
		require.False(t, view.NeedSelection)
		require.Equal(t, "Paris, France", view.ReferenceCity)
		require.Equal(t, config.Conf.Dashboard.Title, view.Title)
		require.Len(t, view.Points, 3)
		require.NotNil(t, view.XRange)
		require.NotNil(t, view.YRange)
		require.True(t, view.BreakevenLine)
	})

	t.Run(`города есть, референс не выбран`, func(t *testing.T) {
		_, err := handler.Plot(dashboardapimodels.SelectionData{Countries: []string{"France"}})
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrNoReference))
	})

	t.Run(`референс вне выбранных стран`, func(t *testing.T) {
		_, err := handler.Plot(dashboardapimodels.SelectionData{
			Countries:     []string{"Germany"},
			ReferenceCity: "Paris, France",
		})
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrReferenceNotFound))
	})
}

func TestPlotRange(t *testing.T) {
	t.Run(`отступ 10% размаха с каждой стороны`, func(t *testing.T) {
		axisRange := PlotRange([]float64{-5, 0, 10})
		require.InDelta(t, -6.5, axisRange.Min, 0.0001)
		require.InDelta(t, 11.5, axisRange.Max, 0.0001)
	})

	t.Run(`одна точка — нулевой размах`, func(t *testing.T) {
		axisRange := PlotRange([]float64{3})
		require.Equal(t, float64(3), axisRange.Min)
		require.Equal(t, float64(3), axisRange.Max)
	})

	t.Run(`без значений`, func(t *testing.T) {
		axisRange := PlotRange(nil)
		require.Equal(t, float64(0), axisRange.Min)
		require.Equal(t, float64(0), axisRange.Max)
	})
}
