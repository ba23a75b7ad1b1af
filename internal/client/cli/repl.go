package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	LogWater(ctx context.Context) error
	TodayWater(ctx context.Context) error
	LogWorkout(ctx context.Context) error
}

// runREPL reads commands until EOF, "exit"/"quit", or ctx cancellation.
// Command errors are reported by the commands themselves.
//
//	Logged out: help, register, login, exit
//	Logged in:  help, profile, water, today, workout, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "fitquest %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := strings.ToLower(parts[0]); cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: profile, water, today, workout, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, exit")
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "p", "profile":
			_ = a.Profile(ctx)
		case "w", "water":
			_ = a.LogWater(ctx)
		case "t", "today":
			_ = a.TodayWater(ctx)
		case "workout":
			_ = a.LogWorkout(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
