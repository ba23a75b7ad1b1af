package models

// WaterEntry is the number of cups a user drank on one UTC calendar day.
// Date uses the YYYY-MM-DD layout and is unique per user.
type WaterEntry struct {
	Date string
	Cups int64
}
