package xlsexport

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"col-dashboard-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportComparison(list []models.DerivedRecord, referenceCity string) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var comparisonHeaders = []string{"Город", "Страна", "Зарплата", "Индекс стоимости жизни", "Отклонение зарплаты, %", "Отклонение стоимости жизни, %"}

func (i impl) ExportComparison(list []models.DerivedRecord, referenceCity string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, comparisonHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeComparisonData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, fmt.Sprintf("Сравнение с %v", sheetSafe(referenceCity)))
	return f.WriteToBuffer()
}

func writeComparisonData(f *excelize.File, sheet string, list []models.DerivedRecord, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(comparisonHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Город"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.City); err != nil {
			return row, err
		}

		// "Страна"
		col++
		if err := writeColumn(f, sheet, col, row, item.Country); err != nil {
			return row, err
		}

		// "Зарплата"
		col++
		if err := writeColumn(f, sheet, col, row, item.Salary); err != nil {
			return row, err
		}

		// "Индекс стоимости жизни"
		col++
		if err := writeColumn(f, sheet, col, row, item.Col); err != nil {
			return row, err
		}

		// "Отклонение зарплаты, %"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.1f", item.SalDiffPct)); err != nil {
			return row, err
		}

		// "Отклонение стоимости жизни, %"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.1f", item.ColDiffPct)); err != nil {
			return row, err
		}
	}
	return row, nil
}

// имя листа в xlsx ограничено 31 символом
func sheetSafe(name string) string {
	maxLen := 31 - utf8.RuneCountInString("Сравнение с ")
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return name
}
