package models

import "time"

// Starting values for a freshly registered hero.
const (
	DefaultStatValue = 5
	DefaultLevel     = 1
)

// Stats are the three attributes that grow on level-up.
type Stats struct {
	Strength int64
	Stamina  int64
	Agility  int64
}

// DefaultStats returns the stats every new user starts with.
func DefaultStats() Stats {
	return Stats{Strength: DefaultStatValue, Stamina: DefaultStatValue, Agility: DefaultStatValue}
}

// Add returns the component-wise sum of s and d.
func (s Stats) Add(d Stats) Stats {
	return Stats{
		Strength: s.Strength + d.Strength,
		Stamina:  s.Stamina + d.Stamina,
		Agility:  s.Agility + d.Agility,
	}
}

// User is the persisted account plus its progression counters.
// Version is bumped on every successful write and guards concurrent updates.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	HeroName     string
	Stats        Stats
	Level        int64
	XP           int64
	Version      int64
	CreatedAt    time.Time
}

// NewUser builds a user with default stats, level and XP.
func NewUser(email, passwordHash, heroName string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		HeroName:     heroName,
		Stats:        DefaultStats(),
		Level:        DefaultLevel,
		XP:           0,
		Version:      1,
	}
}
