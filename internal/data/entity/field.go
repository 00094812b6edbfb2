package entity

type Field struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Location     string  `db:"location"`
	PricePerHour float64 `db:"price_per_hour"`
}
