package dataset

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testSheet = "City_global"

func buildWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	require.Nil(t, f.SetSheetName("Sheet1", testSheet))
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		require.Nil(t, err)
		require.Nil(t, f.SetSheetRow(testSheet, cell, &row))
	}
	return f
}

func TestParseSheet(t *testing.T) {
	header := []interface{}{"City", "Salary", "COL 2024"}

	t.Run(`очистка и нормализация строк`, func(t *testing.T) {
		f := buildWorkbook(t, [][]interface{}{
			header,
			{"  paris, france  ", 3000, 70},
			{"berlin, germany", 3300, 68.9},
			{"", 1000, 50},               // без города
			{"Oslo, Norway", nil, 90},    // без зарплаты
			{"Bergen, Norway", 4000, ""}, // без индекса
		})
		list, err := ParseSheet(f, testSheet, 2024)
		require.Nil(t, err)
		require.Len(t, list, 2)

		require.Equal(t, "Paris, France", list[0].City)
		require.Equal(t, "Paris", list[0].CityShort)
		require.Equal(t, "France", list[0].Country)
		require.Equal(t, float64(3000), list[0].Salary)
		require.Equal(t, float64(70), list[0].Col)

		// порядок исходного файла сохраняется
		require.Equal(t, "Berlin, Germany", list[1].City)
	})

	t.Run(`город без запятой — страна совпадает с городом`, func(t *testing.T) {
		f := buildWorkbook(t, [][]interface{}{
			header,
			{"Singapore", 5000, 95},
		})
		list, err := ParseSheet(f, testSheet, 2024)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Singapore", list[0].CityShort)
		require.Equal(t, "Singapore", list[0].Country)
	})

	t.Run(`сокращения с точками и апострофы сохраняют регистр источника`, func(t *testing.T) {
		f := buildWorkbook(t, [][]interface{}{
			header,
			{" washington, d.c., usa ", 5500, 100},
			{"l'aquila, italy", 2100, 55},
		})
		list, err := ParseSheet(f, testSheet, 2024)
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "Washington, D.C., Usa", list[0].City)
		require.Equal(t, "Washington", list[0].CityShort)
		require.Equal(t, "Usa", list[0].Country)
		require.Equal(t, "L'Aquila, Italy", list[1].City)
		require.Equal(t, "L'Aquila", list[1].CityShort)
	})

	t.Run(`нет обязательной колонки`, func(t *testing.T) {
		f := buildWorkbook(t, [][]interface{}{
			{"City", "Salary", "COL 2023"},
			{"Paris, France", 3000, 70},
		})
		_, err := ParseSheet(f, testSheet, 2024)
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrDataLoad))
	})

	t.Run(`нет листа`, func(t *testing.T) {
		f := excelize.NewFile()
		_, err := ParseSheet(f, testSheet, 2024)
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrDataLoad))
	})
}

func TestCountryOf(t *testing.T) {
	t.Run(`страна после последней запятой`, func(t *testing.T) {
		require.Equal(t, "Usa", CountryOf("Washington, D.C., Usa"))
	})

	t.Run(`повторное выделение страны не меняет результат`, func(t *testing.T) {
		country := CountryOf("Paris, France")
		require.Equal(t, country, CountryOf(country))
	})
}
