package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fitquest/internal/client/api"
	"github.com/dmitrijs2005/fitquest/internal/client/config"
)

type fakeService struct {
	token string

	regEmail, regPassword, regHero string
	regErr                         error

	loginEmail, loginPassword string
	loginRes                  *api.LoginResult
	loginErr                  error

	profile    *api.Profile
	profileErr error

	waterCups []int64
	waterErr  error

	today    *api.TodayWater
	todayErr error

	workouts   []api.WorkoutInput
	workoutRes *api.WorkoutResult
	workoutErr error

	pingErr error
	pings   int
}

func (f *fakeService) Register(_ context.Context, email, password, heroName string) error {
	f.regEmail, f.regPassword, f.regHero = email, password, heroName
	return f.regErr
}

func (f *fakeService) Login(_ context.Context, email, password string) (*api.LoginResult, error) {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = f.loginRes.Token
	return f.loginRes, nil
}

func (f *fakeService) Logout()        { f.token = "" }
func (f *fakeService) LoggedIn() bool { return f.token != "" }

func (f *fakeService) Profile(context.Context) (*api.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeService) LogWater(_ context.Context, cups int64) error {
	f.waterCups = append(f.waterCups, cups)
	return f.waterErr
}

func (f *fakeService) TodayWater(context.Context) (*api.TodayWater, error) {
	return f.today, f.todayErr
}

func (f *fakeService) LogWorkout(_ context.Context, in api.WorkoutInput) (*api.WorkoutResult, error) {
	f.workouts = append(f.workouts, in)
	return f.workoutRes, f.workoutErr
}

func (f *fakeService) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

func newTestApp(t *testing.T, s Service, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	out := &bytes.Buffer{}
	return newApp(cfg, s, strings.NewReader(input), out), out
}

// stubPassword makes getPassword return pw without touching the terminal.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
