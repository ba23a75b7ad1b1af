package models

import "time"

// Workout is one logged exercise. Workouts are append-only.
type Workout struct {
	ID          string
	UserID      string
	Name        string
	Reps        int64
	Weight      float64
	XP          int64
	PerformedAt time.Time
}

// Profile is a user together with their logged history.
type Profile struct {
	User     *User
	Water    []WaterEntry
	Workouts []*Workout
}
