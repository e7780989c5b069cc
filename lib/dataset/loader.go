package dataset

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"col-dashboard-backend/config"
	"col-dashboard-backend/models"
	s3client "col-dashboard-backend/s3"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrDataLoad — файл с данными отсутствует, не читается или не содержит нужных колонок.
// Для сервиса это фатальная ошибка: без набора данных дашборд не работает.
var ErrDataLoad = errors.New("не удалось загрузить набор данных")

type Provider interface {
	// Records возвращает закешированный набор. Набор неизменяемый,
	// вызывающие не должны модифицировать срез.
	Records() []models.CityRecord
}

var Instance Provider

// NewHandler читает источник один раз и кеширует результат на всё время работы процесса.
func NewHandler() error {
	recList, err := load()
	if err != nil {
		return err
	}
	log.WithField("rows", len(recList)).Info("набор данных по городам загружен")
	Instance = impl{records: recList}
	return nil
}

type impl struct {
	records []models.CityRecord
}

func (i impl) Records() []models.CityRecord {
	return i.records
}

func load() ([]models.CityRecord, error) {
	cfg := config.Conf.Dataset
	var (
		f   *excelize.File
		err error
	)
	if cfg.FromS3 != nil && *cfg.FromS3 {
		var raw []byte
		raw, err = s3client.FetchObject(config.Conf.S3.BucketName, config.Conf.S3.ObjectName)
		if err != nil {
			return nil, errors.Wrap(ErrDataLoad, err.Error())
		}
		f, err = excelize.OpenReader(bytes.NewReader(raw))
	} else {
		f, err = excelize.OpenFile(cfg.FilePath)
	}
	if err != nil {
		return nil, errors.Wrap(ErrDataLoad, err.Error())
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла с набором данных")
		}
	}()
	return ParseSheet(f, cfg.Sheet, cfg.ColYear)
}

// ParseSheet разбирает лист с колонками City/Salary/COL <year>.
// Строки без города, зарплаты или индекса отбрасываются, порядок остальных сохраняется.
func ParseSheet(f *excelize.File, sheet string, colYear int) ([]models.CityRecord, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(ErrDataLoad, "лист %q не прочитан: %v", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrDataLoad, "лист %q пуст", sheet)
	}
	cityIdx, salaryIdx, colIdx, err := findColumns(rows[0], colYear)
	if err != nil {
		return nil, err
	}

	result := make([]models.CityRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rawCity := cellAt(row, cityIdx)
		if strings.TrimSpace(rawCity) == "" {
			continue
		}
		salary, ok := parseNumber(cellAt(row, salaryIdx))
		if !ok {
			continue
		}
		col, ok := parseNumber(cellAt(row, colIdx))
		if !ok {
			continue
		}
		result = append(result, NewCityRecord(rawCity, salary, col))
	}
	return result, nil
}

var titleCaser = cases.Title(language.Und)

// NewCityRecord нормализует подпись "City, Country" и выделяет страну и короткое имя.
func NewCityRecord(rawCity string, salary, col float64) models.CityRecord {
	city := upperAfterMark(titleCaser.String(strings.TrimSpace(rawCity)))
	return models.CityRecord{
		City:      city,
		CityShort: strings.TrimSpace(city[:firstCommaIdx(city)]),
		Country:   CountryOf(city),
		Salary:    salary,
		Col:       col,
	}
}

// cases.Title не поднимает регистр после точки и апострофа внутри слова
// ("d.c." → "D.c.", "l'aquila" → "L'aquila"), а в наборе данных сокращения
// записаны как "D.C." и "L'Aquila" — добуквенно поднимаем регистр после знака.
func upperAfterMark(city string) string {
	runes := []rune(city)
	for idx := 1; idx < len(runes); idx++ {
		if runes[idx-1] == '.' || runes[idx-1] == '\'' {
			runes[idx] = unicode.ToUpper(runes[idx])
		}
	}
	return string(runes)
}

// CountryOf — текст после последней запятой. Повторный вызов на уже
// очищенном значении даёт тот же результат.
func CountryOf(city string) string {
	idx := strings.LastIndex(city, ",")
	return strings.TrimSpace(city[idx+1:])
}

func firstCommaIdx(city string) int {
	if idx := strings.Index(city, ","); idx >= 0 {
		return idx
	}
	return len(city)
}

func findColumns(header []string, colYear int) (cityIdx, salaryIdx, colIdx int, err error) {
	cityIdx, salaryIdx, colIdx = -1, -1, -1
	colName := fmt.Sprintf("COL %d", colYear)
	for idx, name := range header {
		switch strings.TrimSpace(name) {
		case "City":
			cityIdx = idx
		case "Salary":
			salaryIdx = idx
		case colName:
			colIdx = idx
		}
	}
	if cityIdx < 0 || salaryIdx < 0 || colIdx < 0 {
		return 0, 0, 0, errors.Wrapf(ErrDataLoad, "нет обязательных колонок City/Salary/%s", colName)
	}
	return cityIdx, salaryIdx, colIdx, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
