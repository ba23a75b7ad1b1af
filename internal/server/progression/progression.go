// Package progression turns XP gains into levels and stat growth.
//
// A level is worth XPPerLevel experience: level = floor(xp / XPPerLevel) + 1.
// Any update that raises the level grants exactly one point to each stat,
// no matter how many levels the update crossed.
package progression

import (
	"math"

	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

// XPPerLevel is the experience needed to advance one level.
const XPPerLevel = 1000

// MaxGain caps the XP a single workout may award.
const MaxGain = 1_000_000

// levelUpBonus is granted once per leveling update.
var levelUpBonus = models.Stats{Strength: 1, Stamina: 1, Agility: 1}

// State is the part of a user that progression reads and writes.
type State struct {
	XP    int64
	Level int64
	Stats models.Stats
}

// Outcome is the result of applying an XP gain.
type Outcome struct {
	Previous  State
	State     State
	Gained    int64
	LeveledUp bool
	StatDelta models.Stats
}

// LevelFor returns the level that corresponds to a non-negative XP total.
func LevelFor(xp int64) int64 {
	return xp/XPPerLevel + 1
}

// FromUser extracts the progression state of u.
func FromUser(u *models.User) State {
	return State{XP: u.XP, Level: u.Level, Stats: u.Stats}
}

// Overflows reports whether adding deltaXP to xp would not fit in an int64.
func Overflows(xp, deltaXP int64) bool {
	return deltaXP > math.MaxInt64-xp
}

// Apply adds deltaXP (expected to be non-negative) to cur and recomputes the
// level. It never fails; callers reject gains for which Overflows is true.
func Apply(cur State, deltaXP int64) Outcome {
	next := State{
		XP:    cur.XP + deltaXP,
		Stats: cur.Stats,
	}
	next.Level = LevelFor(next.XP)

	out := Outcome{Previous: cur, Gained: deltaXP}
	if next.Level > cur.Level {
		out.LeveledUp = true
		out.StatDelta = levelUpBonus
		next.Stats = cur.Stats.Add(levelUpBonus)
	}
	out.State = next

	return out
}

// ApplyTo copies the resulting state onto u.
func (o Outcome) ApplyTo(u *models.User) {
	u.XP = o.State.XP
	u.Level = o.State.Level
	u.Stats = o.State.Stats
}
