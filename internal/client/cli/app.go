// Package cli implements the interactive FitQuest terminal client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/client/api"
	"github.com/dmitrijs2005/fitquest/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Service is the part of api.Client the commands use.
type Service interface {
	Register(ctx context.Context, email, password, heroName string) error
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Logout()
	LoggedIn() bool
	Profile(ctx context.Context) (*api.Profile, error)
	LogWater(ctx context.Context, cups int64) error
	TodayWater(ctx context.Context) (*api.TodayWater, error)
	LogWorkout(ctx context.Context, in api.WorkoutInput) (*api.WorkoutResult, error)
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	service Service
	reader  *bufio.Reader
	out     io.Writer

	mu       sync.Mutex
	mode     Mode
	heroName string
}

func NewApp(c *config.Config) *App {
	return newApp(c, api.NewClient(c.ServerURL, c.RequestTimeout), os.Stdin, os.Stdout)
}

func newApp(c *config.Config, s Service, in io.Reader, out io.Writer) *App {
	return &App{config: c, service: s, reader: bufio.NewReader(in), out: out}
}

// Run starts the status watcher and the REPL. It returns when the user
// exits, input ends, or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to FitQuest (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.service.LoggedIn()
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Server is %s\n", mode)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setHeroName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.heroName = name
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	parts := make([]string, 0, 2)
	if a.heroName != "" {
		parts = append(parts, a.heroName)
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.service.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// report prints err in a form fit for the user and returns it.
func (a *App) report(err error) error {
	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Please log in first")
	case errors.Is(err, api.ErrUnauthorized):
		a.service.Logout()
		a.setHeroName("")
		fmt.Fprintln(a.out, "Session expired, please log in again")
	case errors.Is(err, api.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}
