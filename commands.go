package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/Silmaen/EvenementLoto-sub001/internal/card"
	"github.com/Silmaen/EvenementLoto-sub001/internal/config"
	"github.com/Silmaen/EvenementLoto-sub001/internal/draw"
	"github.com/Silmaen/EvenementLoto-sub001/internal/game"
	"github.com/Silmaen/EvenementLoto-sub001/internal/outcome"
	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
	"github.com/Silmaen/EvenementLoto-sub001/internal/shell"
	"github.com/Silmaen/EvenementLoto-sub001/internal/stats"
	"github.com/Silmaen/EvenementLoto-sub001/internal/store"
)

// drawCommand prints a draw sequence without running a round.
func drawCommand(cfg config.Config) cli.Command {
	return cli.Command{
		Name:  "draw",
		Usage: "print a sequence of draws",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "count, n", Value: draw.Max, Usage: "number of balls to draw"},
			cli.BoolFlag{Name: "deterministic", Usage: "use the fixed rehearsal seed"},
			cli.Uint64Flag{Name: "seed", Usage: "explicit seed (overrides --deterministic)"},
			cli.BoolFlag{Name: "line", Usage: "print one card line instead"},
		},
		Action: func(c *cli.Context) error {
			var e *draw.Engine
			switch {
			case c.IsSet("seed"):
				e = draw.NewWithSeed(c.Uint64("seed"))
			default:
				e = draw.New(cfg.Deterministic || c.Bool("deterministic"))
			}
			if c.Bool("line") {
				printBalls(c.App.Writer, e.GenerateLine())
				return nil
			}
			return writeDraws(c.App.Writer, e, c.Int("count"))
		},
	}
}

func writeDraws(w io.Writer, e *draw.Engine, n int) error {
	if n < 0 || n > draw.Max {
		return cli.NewExitError(fmt.Sprintf("count must be between 0 and %d", draw.Max), 2)
	}
	for i := 0; i < n; i++ {
		e.Draw()
	}
	printBalls(w, e.Picked())
	return nil
}

func printBalls(w io.Writer, vs []uint8) {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

// playCommand runs an interactive round on stdin.
func playCommand(cfg config.Config) cli.Command {
	return cli.Command{
		Name:  "play",
		Usage: "play one round interactively",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "kind, k", Value: round.FullCard.String(), Usage: "kind of round"},
			cli.BoolFlag{Name: "deterministic", Usage: "use the fixed rehearsal seed"},
			cli.StringFlag{Name: "out, o", Usage: "also write the outcome record to this file (relative to LOTO_BASE_DIR)"},
			cli.BoolFlag{Name: "no-store", Usage: "do not save outcomes to the database"},
		},
		Action: func(c *cli.Context) error {
			kind, err := round.ParseKind(c.String("kind"))
			if err != nil {
				return cli.NewExitError(err.Error(), 2)
			}

			var st store.Store
			if !c.Bool("no-store") {
				sq, err := store.OpenSQLite(cfg.DBPath())
				if err != nil {
					return err
				}
				defer sq.Close()
				st = sq
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			g := game.New(kind, cfg.Deterministic || c.Bool("deterministic"))
			log.Info().Str("game", g.ID).Str("kind", kind.String()).Msg("session opened")
			err = shell.New(os.Stdin, c.App.Writer, g, st, cfg.Resolve(c.String("out"))).Run(ctx)
			if errors.Is(err, context.Canceled) {
				log.Info().Str("game", g.ID).Msg("session interrupted")
				return nil
			}
			return err
		},
	}
}

// showCommand decodes an outcome record file.
func showCommand(cfg config.Config) cli.Command {
	return cli.Command{
		Name:      "show",
		Usage:     "print the content of an outcome record file (relative to LOTO_BASE_DIR)",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.NewExitError("usage: show FILE", 2)
			}
			o, err := outcome.LoadFile(cfg.Resolve(c.Args().First()))
			if err != nil {
				return err
			}
			printOutcome(c.App.Writer, o)
			return nil
		},
	}
}

func printOutcome(w io.Writer, o outcome.Outcome) {
	fmt.Fprintf(w, "kind:   %s (%d)\n", o.Kind.Label(), uint8(o.Kind))
	fmt.Fprintf(w, "winner: %d\n", o.WinnerID)
	fmt.Fprintf(w, "prizes: %v\n", o.Prizes)
}

// historyCommand lists the latest saved outcomes.
func historyCommand(cfg config.Config) cli.Command {
	return cli.Command{
		Name:  "history",
		Usage: "list saved outcomes, newest first",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "n", Value: 20, Usage: "number of records"},
		},
		Action: func(c *cli.Context) error {
			st, err := store.OpenSQLite(cfg.DBPath())
			if err != nil {
				return err
			}
			defer st.Close()
			recs, err := st.List(context.Background(), c.Int("n"))
			if err != nil {
				return err
			}
			writeHistory(c.App.Writer, recs)
			return nil
		},
	}
}

func writeHistory(w io.Writer, recs []store.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "no outcome saved")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(w, "#%d  %s  %-14s winner %d %s  prizes %v  draws %d",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Outcome.Kind.Label(),
			r.Outcome.WinnerID, r.WinnerName, r.Outcome.Prizes, r.Draws)
		if !r.StartedAt.IsZero() && !r.FinishedAt.IsZero() {
			fmt.Fprintf(w, "  %s", r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
		}
		fmt.Fprintln(w)
	}
}

// cardsCommand prints freshly generated cards in their text form.
func cardsCommand(cfg config.Config) cli.Command {
	return cli.Command{
		Name:  "cards",
		Usage: "generate loto cards",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "count, n", Value: 1, Usage: "number of cards"},
			cli.UintFlag{Name: "first", Value: 1, Usage: "number of the first card"},
			cli.BoolFlag{Name: "deterministic", Usage: "use the fixed rehearsal seed"},
			cli.Uint64Flag{Name: "seed", Usage: "explicit seed (overrides --deterministic)"},
			cli.BoolFlag{Name: "grid", Usage: "print lines instead of the text form"},
		},
		Action: func(c *cli.Context) error {
			n := c.Int("count")
			if n < 0 {
				return cli.NewExitError("count must not be negative", 2)
			}
			seed, seeded := c.Uint64("seed"), c.IsSet("seed")
			if !seeded && (cfg.Deterministic || c.Bool("deterministic")) {
				seed, seeded = draw.DebugSeed, true
			}
			for i := 0; i < n; i++ {
				e := draw.New(false)
				if seeded {
					e = draw.NewWithSeed(seed + uint64(i))
				}
				cd, err := card.Generate(uint32(c.Uint("first"))+uint32(i), e)
				if err != nil {
					return err
				}
				writeCard(c.App.Writer, cd, c.Bool("grid"))
			}
			return nil
		},
	}
}

func writeCard(w io.Writer, c *card.Card, grid bool) {
	if !grid {
		fmt.Fprintln(w, c.String())
		return
	}
	fmt.Fprintf(w, "card %d\n", c.Number)
	for _, line := range c.Values() {
		printBalls(w, line)
	}
}

// statsCommand summarizes the saved rounds.
func statsCommand(cfg config.Config) cli.Command {
	return cli.Command{
		Name:  "stats",
		Usage: "statistics over saved outcomes",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "n", Value: 1000, Usage: "number of most recent rounds to include"},
		},
		Action: func(c *cli.Context) error {
			st, err := store.OpenSQLite(cfg.DBPath())
			if err != nil {
				return err
			}
			defer st.Close()
			recs, err := st.List(context.Background(), c.Int("n"))
			if err != nil {
				return err
			}
			writeStats(c.App.Writer, stats.Compute(recs))
			return nil
		},
	}
}

func writeStats(w io.Writer, s *stats.Summary) {
	if s.Rounds == 0 {
		fmt.Fprintln(w, "no outcome saved")
		return
	}
	fmt.Fprintf(w, "rounds:        %d\n", s.Rounds)
	fmt.Fprintf(w, "draws:         fewest %d, most %d, average %.1f\n", s.FewestDraws, s.MostDraws, s.AverageDraws)
	if s.Timed() > 0 {
		fmt.Fprintf(w, "duration:      shortest %s, longest %s, average %s\n",
			s.Shortest.Round(time.Second), s.Longest.Round(time.Second), s.Average.Round(time.Second))
	}
	fmt.Fprintf(w, "most picked:   %s (%d times)\n", stats.FormatPicks(s.MostPicks), s.MostPicked)
	fmt.Fprintf(w, "least picked:  %s (%d times)\n", stats.FormatPicks(s.LeastPicks), s.LeastPicked)
}
