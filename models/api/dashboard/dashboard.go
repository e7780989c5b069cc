package dashboardapimodels

import (
	"col-dashboard-backend/models"

	"github.com/pkg/errors"
)

// SelectionData — состояние выборки пользователя: страны + референсный город.
type SelectionData struct {
	Countries     []string `json:"countries"`                // выбранные страны (мультиселект)
	ReferenceCity string   `json:"reference_city,omitempty"` // референсный город, точка 0%
}

func (s SelectionData) Validate() error {
	if len(s.Countries) != 0 && s.ReferenceCity == "" {
		return errors.New("не выбран референсный город")
	}
	return nil
}

func (s SelectionData) IsEmpty() bool {
	return len(s.Countries) == 0
}

type CountriesData struct {
	Countries []string `json:"countries"` // выбранные страны
}

type CityPointView struct {
	City       string  `json:"city"`
	CityShort  string  `json:"city_short"`
	Country    string  `json:"country"`
	SalDiffPct float64 `json:"sal_diff_pct"`
	ColDiffPct float64 `json:"col_diff_pct"`
}

func CityPointConvert(rec models.DerivedRecord) CityPointView {
	return CityPointView{
		City:       rec.City,
		CityShort:  rec.CityShort,
		Country:    rec.Country,
		SalDiffPct: rec.SalDiffPct,
		ColDiffPct: rec.ColDiffPct,
	}
}

// AxisRangeView — границы оси после добавления отступа 10% с каждой стороны.
type AxisRangeView struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PlotView — всё, что нужно фронту для отрисовки scatter-графика.
// При NeedSelection=true точек нет, показывается только Prompt.
type PlotView struct {
	Title         string          `json:"title"`
	ReferenceCity string          `json:"reference_city,omitempty"`
	NeedSelection bool            `json:"need_selection,omitempty"`
	Prompt        string          `json:"prompt,omitempty"`
	Points        []CityPointView `json:"points,omitempty"`
	XRange        *AxisRangeView  `json:"x_range,omitempty"`
	YRange        *AxisRangeView  `json:"y_range,omitempty"`
	BreakevenLine bool            `json:"breakeven_line,omitempty"` // диагональ y=x (равный рост зарплаты и стоимости жизни)
}

type DashboardConfigView struct {
	Title           string `json:"title"`
	CountriesPrompt string `json:"countries_prompt"`
	ReferencePrompt string `json:"reference_prompt"`
	EmptyPrompt     string `json:"empty_prompt"`
}

type SessionView struct {
	ID        string        `json:"id"`
	Selection SelectionData `json:"selection"`
}
