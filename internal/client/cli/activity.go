package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fitquest/internal/client/api"
)

var getInt = GetInt
var getFloat = GetFloat

func (a *App) Profile(ctx context.Context) error {
	p, err := a.service.Profile(ctx)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "%s <%s>\n", p.HeroName, p.Email)
	fmt.Fprintf(a.out, "Level %d, %d XP\n", p.Level, p.XP)
	fmt.Fprintf(a.out, "STR %d  STA %d  AGI %d\n", p.Stats.Strength, p.Stats.Stamina, p.Stats.Agility)

	if len(p.WaterIntake) > 0 {
		fmt.Fprintln(a.out, "\nWater:")
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, e := range p.WaterIntake {
			fmt.Fprintf(tw, "  %s\t%d cups\n", e.Date, e.Cups)
		}
		_ = tw.Flush()
	}

	if len(p.Workouts) > 0 {
		fmt.Fprintln(a.out, "\nWorkouts:")
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, w := range p.Workouts {
			fmt.Fprintf(tw, "  %s\t%s\t%d reps\t%g kg\t+%d XP\n",
				w.Date.Local().Format("2006-01-02 15:04"), w.Name, w.Reps, w.Weight, w.XP)
		}
		_ = tw.Flush()
	}
	return nil
}

func (a *App) LogWater(ctx context.Context) error {
	cups, err := getInt(a.reader, "Cups of water", a.out)
	if err != nil {
		return a.report(err)
	}

	if err := a.service.LogWater(ctx, cups); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Water logged successfully")
	return a.TodayWater(ctx)
}

func (a *App) TodayWater(ctx context.Context) error {
	tw, err := a.service.TodayWater(ctx)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Today: %d/%d cups\n", tw.Cups, tw.Goal)
	if tw.Cups >= tw.Goal {
		fmt.Fprintln(a.out, "Daily goal reached!")
	}
	return nil
}

func (a *App) LogWorkout(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Workout name", a.out)
	if err != nil {
		return err
	}
	reps, err := getInt(a.reader, "Reps", a.out)
	if err != nil {
		return a.report(err)
	}
	weight, err := getFloat(a.reader, "Weight (empty for none)", a.out)
	if err != nil {
		return a.report(err)
	}
	xp, err := getInt(a.reader, "XP earned", a.out)
	if err != nil {
		return a.report(err)
	}

	res, err := a.service.LogWorkout(ctx, api.WorkoutInput{Name: name, Reps: &reps, Weight: &weight, XP: &xp})
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Workout logged successfully")
	if res.LeveledUp && res.NewLevel != nil {
		fmt.Fprintf(a.out, "Level up! You are now level %d\n", *res.NewLevel)
	}
	return nil
}
