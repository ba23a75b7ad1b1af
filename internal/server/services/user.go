// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and profile reads.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/dmitrijs2005/fitquest/internal/server/auth"
	"github.com/dmitrijs2005/fitquest/internal/server/config"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// LoginResult is a freshly minted session token and the user it belongs to.
type LoginResult struct {
	Token string
	User  *models.User
}

// UserService provides account operations:
// - Register: create users with default progression
// - Login: verify credentials and mint a session token
// - Profile: load a user with their water and workout history
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	newID                       func() (string, error)
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
		newID:                       newUUID,
	}
}

// NormalizeEmail trims and lower-cases an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user. A taken email yields common.ErrEmailAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password, heroName string) (*models.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("error generating user id: %w", err)
	}

	user := models.NewUser(NormalizeEmail(email), hash, strings.TrimSpace(heroName))
	user.ID = id

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password for email and returns a session token.
// Unknown emails yield common.ErrUserNotFound, wrong passwords
// common.ErrIncorrectPassword.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrIncorrectPassword) {
			return nil, err
		}
		return nil, fmt.Errorf("error checking password: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Profile returns the user with their full water and workout history.
// A missing user yields common.ErrorNotFound.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	water, err := s.repomanager.Water(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading water history: %w", err)
	}

	workouts, err := s.repomanager.Workouts(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading workouts: %w", err)
	}

	return &models.Profile{User: user, Water: water, Workouts: workouts}, nil
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
