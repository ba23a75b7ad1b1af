package cli

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fitquest/internal/client/api"
)

func TestRegister_Success(t *testing.T) {
	f := &fakeService{}
	a, out := newTestApp(t, f, "hero@example.com\nAria\n")
	stubPassword(t, "secret1")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, "hero@example.com", f.regEmail)
	assert.Equal(t, "Aria", f.regHero)
	assert.Equal(t, "secret1", f.regPassword)
	assert.Contains(t, out.String(), "User registered")
}

func TestRegister_ServerMessage(t *testing.T) {
	f := &fakeService{regErr: &api.Error{Status: http.StatusBadRequest, Message: "Email already exists"}}
	a, out := newTestApp(t, f, "hero@example.com\nAria\n")
	stubPassword(t, "secret1")

	require.Error(t, a.Register(context.Background()))
	assert.Contains(t, out.String(), "Error: Email already exists")
}

func TestLogin_Success(t *testing.T) {
	f := &fakeService{loginRes: &api.LoginResult{
		Token:    "tok",
		HeroName: "Aria",
		Level:    3,
		Stats:    api.Stats{Strength: 7, Stamina: 8, Agility: 9},
	}}
	a, out := newTestApp(t, f, "hero@example.com\n")
	stubPassword(t, "secret1")

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "hero@example.com", f.loginEmail)
	assert.Equal(t, "secret1", f.loginPassword)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome back, Aria! Level 3 (STR 7, STA 8, AGI 9)")
	assert.Equal(t, "(Aria)", a.getStatus())
}

func TestLogin_Failure(t *testing.T) {
	f := &fakeService{loginErr: &api.Error{Status: http.StatusBadRequest, Message: "Incorrect password"}}
	a, out := newTestApp(t, f, "hero@example.com\n")
	stubPassword(t, "wrong")

	require.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Error: Incorrect password")
}

func TestLogin_Unavailable(t *testing.T) {
	f := &fakeService{loginErr: fmt.Errorf("%w: dial tcp: refused", api.ErrUnavailable)}
	a, out := newTestApp(t, f, "hero@example.com\n")
	stubPassword(t, "secret1")

	require.ErrorIs(t, a.Login(context.Background()), api.ErrUnavailable)
	assert.Equal(t, ModeOffline, a.getMode())
	assert.Contains(t, out.String(), "Server unavailable")
}

func TestLogout(t *testing.T) {
	f := &fakeService{token: "tok"}
	a, out := newTestApp(t, f, "")
	a.setHeroName("Aria")

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())
	assert.Contains(t, out.String(), "Logged out")
}
