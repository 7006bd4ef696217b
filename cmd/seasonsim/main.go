// Command seasonsim plays a demo season headlessly and prints the final
// table. Live matches are skipped to full time as soon as they kick off.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/playperu/matchday/internal/matchday"
	"github.com/playperu/matchday/internal/seed"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	seed    uint64
	days    int
	teams   int
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("seasonsim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (0 seeds from the clock)")
	fs.IntVar(&o.days, "days", 300, "days to simulate")
	fs.IntVar(&o.teams, "teams", 8, "clubs in the league")
	fs.BoolVar(&o.verbose, "v", false, "log data-integrity warnings")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.days < 0 {
		return o, errors.New("-days must not be negative")
	}
	if o.teams < 2 {
		return o, errors.New("-teams must be at least 2")
	}
	if o.seed == 0 {
		o.seed = uint64(time.Now().UnixNano())
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if o.verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rng := matchday.NewRand(o.seed)
	engine := matchday.NewEngine(rng, matchday.WithLogger(logger))
	state := seed.Demo(engine, rng, seed.Options{Teams: o.teams})

	state, err = simulate(engine, state, o.days)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "seed %d, %s\n\n", o.seed, state.CurrentDate.Format(time.DateOnly))
	return printTable(stdout, state)
}

// simulate advances day by day, playing out every live match immediately.
func simulate(e *matchday.Engine, s *matchday.GameState, days int) (*matchday.GameState, error) {
	var err error
	for range days {
		if s, err = e.Apply(s, matchday.AdvanceTime{Days: 1}); err != nil {
			return s, fmt.Errorf("advancing from %s: %w", s.CurrentDate.Format(time.DateOnly), err)
		}
		if s.LiveMatch != nil {
			if s, err = e.Apply(s, matchday.EndLiveMatch{}); err != nil {
				return s, fmt.Errorf("ending live match: %w", err)
			}
		}
	}
	return s, nil
}

func printTable(w io.Writer, s *matchday.GameState) error {
	ix := s.Index()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	for _, l := range s.Leagues {
		fmt.Fprintf(tw, "%s\t\t\t\t\t\t\t\t\t\n", l.Name)
		fmt.Fprintln(tw, "Pos\tTeam\tP\tW\tD\tL\tGF\tGA\tGD\tPts\t")
		for _, e := range matchday.Standings(l, ix) {
			name := e.TeamID
			if t, ok := ix.Team(e.TeamID); ok {
				name = t.Name
			}
			if e.TeamID == s.PlayerTeamID {
				name += " *"
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\t\n",
				e.Position, name, e.Played, e.Won, e.Drawn, e.Lost,
				e.GoalsFor, e.GoalsAgainst, e.GoalDifference, e.Points)
		}
		fmt.Fprintln(tw, "\t\t\t\t\t\t\t\t\t\t")
	}
	return tw.Flush()
}
