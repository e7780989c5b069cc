package compare

import (
	"sort"

	"col-dashboard-backend/config"
	"col-dashboard-backend/lib/dataset"
	initchecker "col-dashboard-backend/lib/utils/init-checker"
	"col-dashboard-backend/models"
	dashboardapimodels "col-dashboard-backend/models/api/dashboard"

	"github.com/pkg/errors"
)

var (
	// ErrReferenceNotFound — референсный город не входит в отфильтрованный набор.
	// Нормально не возникает (фронт выбирает город из выданного списка), но выборка
	// стран могла измениться после выбора города — тогда клиент обязан сбросить выбор.
	ErrReferenceNotFound = errors.New("референсный город не найден в выбранных странах")
	// ErrZeroReference — у референсного города нулевая зарплата или нулевой индекс,
	// процентные отклонения не определены. Проблема качества данных, а не запроса.
	ErrZeroReference = errors.New("у референсного города нулевая зарплата или индекс стоимости жизни")
	// ErrNoReference — страны выбраны, города в них есть, но референсный город не указан.
	ErrNoReference = errors.New("не выбран референсный город")
)

type Provider interface {
	Countries() []string
	Cities(request dashboardapimodels.CountriesData) []string
	Plot(selection dashboardapimodels.SelectionData) (dashboardapimodels.PlotView, error)
	ComparisonTable(selection dashboardapimodels.SelectionData) ([]models.DerivedRecord, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		dataProvider: dataset.Instance,
	}
	initchecker.CheckInit(
		"dataProvider", instance.dataProvider,
	)
	Instance = instance
}

type impl struct {
	dataProvider dataset.Provider
}

func (i impl) Countries() []string {
	return distinctSorted(i.dataProvider.Records(), func(rec models.CityRecord) string {
		return rec.Country
	})
}

func (i impl) Cities(request dashboardapimodels.CountriesData) []string {
	filtered := FilterByCountries(i.dataProvider.Records(), request.Countries)
	return AvailableCities(filtered)
}

func (i impl) ComparisonTable(selection dashboardapimodels.SelectionData) ([]models.DerivedRecord, error) {
	filtered := FilterByCountries(i.dataProvider.Records(), selection.Countries)
	return ComputeDifferences(filtered, selection.ReferenceCity)
}

func (i impl) Plot(selection dashboardapimodels.SelectionData) (dashboardapimodels.PlotView, error) {
	cfg := config.Conf.Dashboard
	filtered := FilterByCountries(i.dataProvider.Records(), selection.Countries)
	if len(filtered) == 0 {
		// не ошибка: страны не выбраны, либо по выбранным странам нет ни одного города —
		// в обоих случаях показываем подсказку вместо графика
		return dashboardapimodels.PlotView{
			Title:         cfg.Title,
			NeedSelection: true,
			Prompt:        cfg.EmptyPrompt,
		}, nil
	}
	if selection.ReferenceCity == "" {
		return dashboardapimodels.PlotView{}, errors.WithStack(ErrNoReference)
	}
	list, err := ComputeDifferences(filtered, selection.ReferenceCity)
	if err != nil {
		return dashboardapimodels.PlotView{}, err
	}
	points := make([]dashboardapimodels.CityPointView, 0, len(list))
	xValues := make([]float64, 0, len(list))
	yValues := make([]float64, 0, len(list))
	for _, rec := range list {
		points = append(points, dashboardapimodels.CityPointConvert(rec))
		xValues = append(xValues, rec.ColDiffPct)
		yValues = append(yValues, rec.SalDiffPct)
	}
	xRange := PlotRange(xValues)
	yRange := PlotRange(yValues)
	return dashboardapimodels.PlotView{
		Title:         cfg.Title,
		ReferenceCity: selection.ReferenceCity,
		Points:        points,
		XRange:        &xRange,
		YRange:        &yRange,
		BreakevenLine: true,
	}, nil
}

// FilterByCountries оставляет записи выбранных стран, сохраняя исходный порядок.
// Пустой выбор — пустой результат: режима "все страны" по умолчанию нет.
func FilterByCountries(records []models.CityRecord, countries []string) []models.CityRecord {
	if len(countries) == 0 {
		return nil
	}
	selected := make(map[string]struct{}, len(countries))
	for _, country := range countries {
		selected[country] = struct{}{}
	}
	result := make([]models.CityRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := selected[rec.Country]; ok {
			result = append(result, rec)
		}
	}
	return result
}

// AvailableCities — отсортированный список городов без дублей,
// из него пользователь выбирает референсный город.
func AvailableCities(records []models.CityRecord) []string {
	return distinctSorted(records, func(rec models.CityRecord) string {
		return rec.City
	})
}

// ComputeDifferences считает отклонения от референсного города в процентах.
// При совпадающих подписях городов референсом берётся первая запись по порядку
// исходного набора — осознанное правило, а не ошибка.
func ComputeDifferences(records []models.CityRecord, referenceCity string) ([]models.DerivedRecord, error) {
	var ref *models.CityRecord
	for idx := range records {
		if records[idx].City == referenceCity {
			ref = &records[idx]
			break
		}
	}
	if ref == nil {
		return nil, errors.Wrap(ErrReferenceNotFound, referenceCity)
	}
	if ref.Salary == 0 || ref.Col == 0 {
		// деление на ноль даёт NaN/Inf на графике, отклоняем сразу
		return nil, errors.Wrap(ErrZeroReference, referenceCity)
	}
	result := make([]models.DerivedRecord, 0, len(records))
	for _, rec := range records {
		result = append(result, models.DerivedRecord{
			CityRecord: rec,
			SalDiffPct: (rec.Salary - ref.Salary) / ref.Salary * 100,
			ColDiffPct: (rec.Col - ref.Col) / ref.Col * 100,
		})
	}
	return result, nil
}

// PlotRange — границы оси: минимум и максимум данных с отступом 10% размаха
// с каждой стороны, как в исходном графике.
func PlotRange(values []float64) dashboardapimodels.AxisRangeView {
	if len(values) == 0 {
		return dashboardapimodels.AxisRangeView{}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	margin := (max - min) * 0.1
	return dashboardapimodels.AxisRangeView{
		Min: min - margin,
		Max: max + margin,
	}
}

func distinctSorted(records []models.CityRecord, keyFn func(models.CityRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	result := make([]string, 0, len(records))
	for _, rec := range records {
		key := keyFn(rec)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
