package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/logging"
	"github.com/dmitrijs2005/fitquest/internal/server/auth"
	"github.com/dmitrijs2005/fitquest/internal/server/config"
	"github.com/dmitrijs2005/fitquest/internal/server/metrics"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
	"github.com/dmitrijs2005/fitquest/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type registerCall struct {
	email, password, heroName string
}

type fakeUsers struct {
	calls int

	registerErr error
	registered  []registerCall

	loginRes *services.LoginResult
	loginErr error

	profile    *models.Profile
	profileErr error
	profileFor string
}

func (f *fakeUsers) Register(ctx context.Context, email, password, heroName string) (*models.User, error) {
	f.calls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, registerCall{email, password, heroName})
	return &models.User{ID: "u-1", Email: email, HeroName: heroName}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	f.calls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginRes, nil
}

func (f *fakeUsers) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	f.calls++
	f.profileFor = userID
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

type fakeActivity struct {
	calls    int
	lastUser string

	waterRes *services.WaterResult
	waterErr error
	lastCups int64

	today    *services.TodayWater
	todayErr error

	workoutRes  *services.WorkoutResult
	workoutErr  error
	lastWorkout services.WorkoutInput
}

func (f *fakeActivity) LogWater(ctx context.Context, userID string, cups int64) (*services.WaterResult, error) {
	f.calls++
	f.lastUser, f.lastCups = userID, cups
	if f.waterErr != nil {
		return nil, f.waterErr
	}
	return f.waterRes, nil
}

func (f *fakeActivity) TodayWater(ctx context.Context, userID string) (*services.TodayWater, error) {
	f.calls++
	f.lastUser = userID
	if f.todayErr != nil {
		return nil, f.todayErr
	}
	return f.today, nil
}

func (f *fakeActivity) LogWorkout(ctx context.Context, userID string, in services.WorkoutInput) (*services.WorkoutResult, error) {
	f.calls++
	f.lastUser, f.lastWorkout = userID, in
	if f.workoutErr != nil {
		return nil, f.workoutErr
	}
	return f.workoutRes, nil
}

type fakePinger struct{ err error }

func (p *fakePinger) PingContext(context.Context) error { return p.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.LoginRateLimit = 100
	cfg.LoginRateBurst = 100
	return cfg
}

type testEnv struct {
	users    *fakeUsers
	activity *fakeActivity
	pinger   *fakePinger
	metrics  *metrics.Metrics
	server   *Server
	handler  http.Handler
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	env := &testEnv{
		users:    &fakeUsers{},
		activity: &fakeActivity{},
		pinger:   &fakePinger{},
		metrics:  metrics.New(),
	}
	env.server = NewServer(cfg, logging.Discard(), env.users, env.activity, env.metrics, env.pinger)
	env.handler = env.server.Handler()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, userID string) []string {
	t.Helper()
	token, err := auth.GenerateToken(userID, userID+"@example.com", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + token}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var errBoom = errors.New("boom")
