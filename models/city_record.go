package models

// CityRecord — очищенная строка набора данных "город + зарплата + индекс стоимости жизни".
type CityRecord struct {
	City      string  // нормализованное значение "City, Country"
	CityShort string  // часть до первой запятой, для подписи точки
	Country   string  // часть после последней запятой
	Salary    float64 // средняя зарплата
	Col       float64 // индекс стоимости жизни за отчётный год
}

// DerivedRecord — запись с процентными отклонениями относительно референсного города.
// Пересчитывается при каждом изменении выборки, нигде не сохраняется.
type DerivedRecord struct {
	CityRecord
	SalDiffPct float64
	ColDiffPct float64
}
