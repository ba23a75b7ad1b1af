// Package hydration aggregates water intake into one entry per UTC day.
package hydration

import (
	"math"
	"slices"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

const (
	// XPPerCup is the hydration bonus per logged cup.
	XPPerCup = 2

	// DailyGoal is the number of cups a user is nudged towards each day.
	DailyGoal = 8

	// MaxCupsPerLog caps a single log call. Daily totals stay unbounded.
	MaxCupsPerLog = 1000

	dayLayout = "2006-01-02"
)

// Day returns the UTC calendar day of t in YYYY-MM-DD form.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// Bonus is the XP earned for logging cups in one call.
func Bonus(cups int64) int64 {
	return int64(math.Round(float64(cups) * XPPerCup))
}

// Log adds cups to today's entry, creating it when missing, and returns the
// updated list with the XP bonus for this call. The bonus depends only on the
// cups passed in, not on the running total. entries is not modified.
func Log(entries []models.WaterEntry, today string, cups int64) ([]models.WaterEntry, int64) {
	updated := slices.Clone(entries)

	if i := indexOf(updated, today); i >= 0 {
		updated[i].Cups += cups
	} else {
		updated = append(updated, models.WaterEntry{Date: today, Cups: cups})
	}

	return updated, Bonus(cups)
}

// Find returns the entry for day, if any.
func Find(entries []models.WaterEntry, day string) (models.WaterEntry, bool) {
	if i := indexOf(entries, day); i >= 0 {
		return entries[i], true
	}
	return models.WaterEntry{}, false
}

// CupsOn returns the cups logged on day, or 0.
func CupsOn(entries []models.WaterEntry, day string) int64 {
	e, _ := Find(entries, day)
	return e.Cups
}

func indexOf(entries []models.WaterEntry, day string) int {
	return slices.IndexFunc(entries, func(e models.WaterEntry) bool { return e.Date == day })
}
