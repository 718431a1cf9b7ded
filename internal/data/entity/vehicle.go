package entity

// Vehicle is a rentable asset. Price is the daily rate, Overtime the
// per-hour surcharge once a rental runs past its drop date. Amounts are
// whole rupiah.
type Vehicle struct {
	Base
	Name     string `db:"name"`
	Model    string `db:"model"`
	Capacity int    `db:"capacity"`
	Price    int64  `db:"price"`
	Overtime int64  `db:"overtime"`
	Include  string `db:"include"`
	Area     string `db:"area"`
	Parking  string `db:"parking"`
	Payment  string `db:"payment"`
}
