package api

import "time"

type Stats struct {
	Strength int64 `json:"strength"`
	Stamina  int64 `json:"stamina"`
	Agility  int64 `json:"agility"`
}

type LoginResult struct {
	Token    string `json:"token"`
	HeroName string `json:"heroName"`
	Stats    Stats  `json:"stats"`
	Level    int64  `json:"level"`
}

type WaterEntry struct {
	Date string `json:"date"`
	Cups int64  `json:"cups"`
}

type Workout struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Reps   int64     `json:"reps"`
	Weight float64   `json:"weight"`
	XP     int64     `json:"xp"`
	Date   time.Time `json:"date"`
}

type Profile struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	HeroName    string       `json:"heroName"`
	Stats       Stats        `json:"stats"`
	Level       int64        `json:"level"`
	XP          int64        `json:"xp"`
	WaterIntake []WaterEntry `json:"waterIntake"`
	Workouts    []Workout    `json:"workouts"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type TodayWater struct {
	Cups int64 `json:"cups"`
	Goal int64 `json:"goal"`
}

// WorkoutInput uses pointers for the numeric fields so an explicit zero is
// still sent.
type WorkoutInput struct {
	Name   string   `json:"name"`
	Reps   *int64   `json:"reps"`
	Weight *float64 `json:"weight"`
	XP     *int64   `json:"xp"`
}

type WorkoutResult struct {
	LeveledUp bool   `json:"leveledUp"`
	NewLevel  *int64 `json:"newLevel"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
