package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/dmitrijs2005/fitquest/internal/server/metrics"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
	"github.com/dmitrijs2005/fitquest/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, email, password, heroName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
}

// ActivityService is the water and workout side of the API.
type ActivityService interface {
	LogWater(ctx context.Context, userID string, cups int64) (*services.WaterResult, error)
	TodayWater(ctx context.Context, userID string) (*services.TodayWater, error)
	LogWorkout(ctx context.Context, userID string, in services.WorkoutInput) (*services.WorkoutResult, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const healthPingTimeout = 2 * time.Second

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if !s.bindJSON(c, &req) {
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.Email, req.Password, req.HeroName)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "User registered", "user_id", u.ID)
	c.JSON(http.StatusOK, messageResponse{Success: true, Message: msgRegistered})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if !s.bindJSON(c, &req) {
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.metrics.ObserveLogin(loginResultLabel(err))
		s.writeError(c, err)
		return
	}
	s.metrics.ObserveLogin("ok")

	c.JSON(http.StatusOK, loginResponse{
		Success:  true,
		Message:  msgLoggedIn,
		Token:    res.Token,
		HeroName: res.User.HeroName,
		Stats:    toStats(res.User.Stats),
		Level:    res.User.Level,
	})
}

func (s *Server) profile(c *gin.Context) {
	p, err := s.users.Profile(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfile(p))
}

func (s *Server) logWater(c *gin.Context) {
	var req logWaterRequest
	if !s.bindJSON(c, &req) {
		return
	}

	res, err := s.activity.LogWater(c.Request.Context(), c.GetString(ctxUserID), *req.Cups)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.metrics.ObserveWater(*req.Cups)
	s.metrics.ObserveProgress(metrics.SourceWater, res.Outcome.Gained, res.Outcome.LeveledUp)

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: msgWaterLogged})
}

func (s *Server) todayWater(c *gin.Context) {
	res, err := s.activity.TodayWater(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, todayWaterResponse{Cups: res.Cups, Goal: res.Goal})
}

func (s *Server) logWorkout(c *gin.Context) {
	var req logWorkoutRequest
	if !s.bindJSON(c, &req) {
		return
	}

	res, err := s.activity.LogWorkout(c.Request.Context(), c.GetString(ctxUserID), services.WorkoutInput{
		Name:   req.Name,
		Reps:   *req.Reps,
		Weight: *req.Weight,
		XP:     *req.XP,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.metrics.ObserveWorkout()
	s.metrics.ObserveProgress(metrics.SourceWorkout, res.Outcome.Gained, res.Outcome.LeveledUp)

	resp := logWorkoutResponse{Success: true, Message: msgWorkoutLogged, LeveledUp: res.Outcome.LeveledUp}
	if res.Outcome.LeveledUp {
		lvl := res.Outcome.State.Level
		resp.NewLevel = &lvl
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := s.pinger.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func loginResultLabel(err error) string {
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, common.ErrIncorrectPassword):
		return "incorrect_password"
	default:
		return "error"
	}
}
