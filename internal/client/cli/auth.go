package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	heroName, err := getSimpleText(a.reader, "Enter hero name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.service.Register(ctx, email, string(password), heroName); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "User registered, you can log in now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.service.Login(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}

	a.setHeroName(res.HeroName)
	fmt.Fprintf(a.out, "Welcome back, %s! Level %d (STR %d, STA %d, AGI %d)\n",
		res.HeroName, res.Level, res.Stats.Strength, res.Stats.Stamina, res.Stats.Agility)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.service.Logout()
	a.setHeroName("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
