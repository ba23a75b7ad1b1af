package httpapi

import (
	"time"

	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

// Optional numeric fields are pointers so that a present zero passes
// "required" while a missing field does not.

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	HeroName string `json:"heroName" binding:"required,max=50"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type logWaterRequest struct {
	Cups *int64 `json:"cups" binding:"required,min=0,max=1000"`
}

type logWorkoutRequest struct {
	Name   string   `json:"name" binding:"required,max=100"`
	Reps   *int64   `json:"reps" binding:"required,min=0,max=100000"`
	Weight *float64 `json:"weight" binding:"required,min=0,max=10000"`
	XP     *int64   `json:"xp" binding:"required,min=0,max=1000000"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type statsResponse struct {
	Strength int64 `json:"strength"`
	Stamina  int64 `json:"stamina"`
	Agility  int64 `json:"agility"`
}

type loginResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Token    string        `json:"token"`
	HeroName string        `json:"heroName"`
	Stats    statsResponse `json:"stats"`
	Level    int64         `json:"level"`
}

type waterEntryResponse struct {
	Date string `json:"date"`
	Cups int64  `json:"cups"`
}

type workoutResponse struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Reps   int64     `json:"reps"`
	Weight float64   `json:"weight"`
	XP     int64     `json:"xp"`
	Date   time.Time `json:"date"`
}

type profileResponse struct {
	ID          string               `json:"id"`
	Email       string               `json:"email"`
	HeroName    string               `json:"heroName"`
	Stats       statsResponse        `json:"stats"`
	Level       int64                `json:"level"`
	XP          int64                `json:"xp"`
	WaterIntake []waterEntryResponse `json:"waterIntake"`
	Workouts    []workoutResponse    `json:"workouts"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type todayWaterResponse struct {
	Cups int64 `json:"cups"`
	Goal int64 `json:"goal"`
}

type logWorkoutResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	LeveledUp bool   `json:"leveledUp"`
	NewLevel  *int64 `json:"newLevel"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func toStats(s models.Stats) statsResponse {
	return statsResponse{Strength: s.Strength, Stamina: s.Stamina, Agility: s.Agility}
}

// toProfile never includes the password hash.
func toProfile(p *models.Profile) profileResponse {
	resp := profileResponse{
		ID:          p.User.ID,
		Email:       p.User.Email,
		HeroName:    p.User.HeroName,
		Stats:       toStats(p.User.Stats),
		Level:       p.User.Level,
		XP:          p.User.XP,
		WaterIntake: make([]waterEntryResponse, 0, len(p.Water)),
		Workouts:    make([]workoutResponse, 0, len(p.Workouts)),
		CreatedAt:   p.User.CreatedAt,
	}

	for _, e := range p.Water {
		resp.WaterIntake = append(resp.WaterIntake, waterEntryResponse{Date: e.Date, Cups: e.Cups})
	}
	for _, w := range p.Workouts {
		resp.Workouts = append(resp.Workouts, workoutResponse{
			ID:     w.ID,
			Name:   w.Name,
			Reps:   w.Reps,
			Weight: w.Weight,
			XP:     w.XP,
			Date:   w.PerformedAt,
		})
	}

	return resp
}
