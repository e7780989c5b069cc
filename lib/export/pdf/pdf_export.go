package pdfexport

import (
	"bytes"
	"fmt"

	"col-dashboard-backend/models"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

var tableHeaders = []string{"Город", "Страна", "Зарплата", "Индекс", "Зарплата, %", "Стоимость жизни, %"}

// в сумме не шире рабочей области A4 при полях 10 мм
var colWidths = []float64{50, 35, 25, 25, 25, 28}

// GenerateComparison собирает PDF-отчёт с таблицей отклонений от референсного города.
func GenerateComparison(title, referenceCity string, list []models.DerivedRecord) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateComparison panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 14)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.MultiCell(0, 8, title, "", "C", false)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, fmt.Sprintf("Референсный город: %v", referenceCity), "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	for idx, header := range tableHeaders {
		pdf.CellFormat(colWidths[idx], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range list {
		cells := []string{
			item.CityShort,
			item.Country,
			fmt.Sprintf("%.0f", item.Salary),
			fmt.Sprintf("%.1f", item.Col),
			fmt.Sprintf("%.1f", item.SalDiffPct),
			fmt.Sprintf("%.1f", item.ColDiffPct),
		}
		for idx, cell := range cells {
			pdf.CellFormat(colWidths[idx], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return buf.Bytes(), nil
}
