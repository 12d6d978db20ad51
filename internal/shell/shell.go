// internal/shell/shell.go
//
// Line-driven front end for one loto session.
// Reads commands from an input stream, drives a game.Game and prints results.
// It stands in for the interactive screens: winner names and confirmations
// are read from the next input line.
//
// Commands:
//
//	start              start the round
//	draw               draw the next ball
//	add N              record a ball read off an external cage
//	undo               cancel the last ball
//	reset              clear the round (asks for confirmation)
//	kind K             change the kind of round (restarts it)
//	status             print kind, status and drawn balls
//	check CARD         check a card against the draws (text form, or 15 numbers)
//	finish ID [P...]   declare winner ID with prizes P, then read the winner name
//	save               retry saving the last outcome
//	help, quit
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Silmaen/EvenementLoto-sub001/internal/card"
	"github.com/Silmaen/EvenementLoto-sub001/internal/game"
	"github.com/Silmaen/EvenementLoto-sub001/internal/metrics"
	"github.com/Silmaen/EvenementLoto-sub001/internal/outcome"
	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
	"github.com/Silmaen/EvenementLoto-sub001/internal/store"
)

// Shell bundles the session and where its results go.
type Shell struct {
	in      *bufio.Scanner
	lines   chan string
	done    chan struct{}
	out     io.Writer
	game    *game.Game
	store   store.Store // may be nil
	outFile string      // optional record file written on finish

	pending *pending // last outcome not yet fully persisted
}

// pending is a finished round waiting to reach every configured sink.
type pending struct {
	rec     *store.Record
	stored  bool
	written bool
}

// New constructs a Shell reading commands from in.
func New(in io.Reader, out io.Writer, g *game.Game, st store.Store, outFile string) *Shell {
	return &Shell{in: bufio.NewScanner(in), out: out, game: g, store: st, outFile: outFile}
}

var (
	errQuit      = errors.New("quit")
	errNoPending = errors.New("no outcome waiting to be saved")
)

// Run processes commands until quit, end of input or ctx cancellation.
// Cancellation is honoured while waiting for input.
func (s *Shell) Run(ctx context.Context) error {
	s.startReader()
	defer close(s.done)

	s.printf("%s - %s\n", s.game.Round.KindLabel(), s.game.Round.StatusLabel())
	for {
		line, err := s.readLine(ctx)
		if errors.Is(err, io.EOF) {
			s.warnPending()
			return s.in.Err()
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		err = s.exec(ctx, strings.Fields(line))
		if errors.Is(err, errQuit) {
			s.warnPending()
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.printf("error: %v\n", err)
		}
	}
}

// startReader feeds input lines to s.lines until the input ends or Run
// returns.
func (s *Shell) startReader() {
	s.lines = make(chan string)
	s.done = make(chan struct{})
	go func() {
		defer close(s.lines)
		for s.in.Scan() {
			select {
			case s.lines <- s.in.Text():
			case <-s.done:
				return
			}
		}
	}()
}

// readLine waits for the next input line. It returns io.EOF at the end of
// the input and ctx.Err() on cancellation.
func (s *Shell) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) exec(ctx context.Context, args []string) error {
	g := s.game
	switch strings.ToLower(args[0]) {
	case "quit", "exit", "q":
		return errQuit

	case "help", "?":
		s.printf("commands: start, draw, add N, undo, reset, kind K, status, check CARD, finish ID [PRIZE...], save, quit\n")
		s.printf("kinds: %s\n", kindNames())

	case "start":
		if err := g.Start(); err != nil {
			return err
		}
		s.printf("%s\n", g.Round.StatusLabel())

	case "draw", "d":
		n, err := g.Draw()
		if err != nil {
			return err
		}
		s.printf("%d\n", n)

	case "add", "a":
		if len(args) != 2 {
			return errors.New("usage: add N")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("not a number: %q", args[1])
		}
		if err := g.AddManual(v); err != nil {
			return err
		}
		s.printf("%d\n", v)

	case "undo", "u":
		n, err := g.UndoLast()
		if err != nil {
			return err
		}
		s.printf("cancelled %d\n", n)

	case "reset":
		s.printf("reset the round and drop %d draws? [y/N]\n", g.Draws.Len())
		answer, err := s.readLine(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			s.printf("kept\n")
			return nil
		}
		g.Reset()
		s.printf("%s\n", g.Round.StatusLabel())

	case "kind", "k":
		if len(args) != 2 {
			return errors.New("usage: kind " + kindNames())
		}
		k, err := round.ParseKind(args[1])
		if err != nil {
			return err
		}
		g.SetKind(k)
		s.printf("%s - %s\n", g.Round.KindLabel(), g.Round.StatusLabel())

	case "status", "s":
		s.printf("%s - %s\n", g.Round.KindLabel(), g.Round.StatusLabel())
		s.printf("draws (%d): %s\n", g.Draws.Len(), joinBalls(g.Draws.Picked()))

	case "check", "c":
		return s.check(args[1:])

	case "finish", "f":
		return s.finish(ctx, args[1:])

	case "save":
		if s.pending == nil {
			return errNoPending
		}
		return s.persist(ctx)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func (s *Shell) check(args []string) error {
	var (
		c   *card.Card
		err error
	)
	switch len(args) {
	case 1:
		c, err = card.Parse(args[0])
	case card.Size:
		lines := make([][]uint8, card.Lines)
		perLine := card.Size / card.Lines
		for i, a := range args {
			v, perr := strconv.ParseUint(a, 10, 8)
			if perr != nil {
				return fmt.Errorf("not a number: %q", a)
			}
			lines[i/perLine] = append(lines[i/perLine], uint8(v))
		}
		c, err = card.New(0, lines)
	default:
		return fmt.Errorf("usage: check CARD or check with %d numbers", card.Size)
	}
	if err != nil {
		return err
	}

	win, err := s.game.CheckCard(c)
	if err != nil {
		return err
	}
	verdict := "not a winner"
	if win {
		verdict = "winner"
	}
	s.printf("card %d: %s - %s\n", c.Number, c.Result().Label(), verdict)
	return nil
}

func (s *Shell) finish(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: finish ID [PRIZE...]")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("winner id: %w", err)
	}
	prizes := make([]uint32, 0, len(args)-1)
	for _, a := range args[1:] {
		p, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			return fmt.Errorf("prize %q: %w", a, err)
		}
		prizes = append(prizes, uint32(p))
	}
	if s.game.Round.Status() != round.Started {
		return game.ErrWrongStatus
	}

	s.printf("winner name:\n")
	name, err := s.readLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	o, err := s.game.Finish(uint32(id), name, prizes)
	if err != nil {
		return err
	}
	s.printf("%s - %s - winner %d %s\n", s.game.Round.KindLabel(), s.game.Round.StatusLabel(), o.WinnerID, name)

	if s.pending != nil {
		log.Warn().Int("draws", s.pending.rec.Draws).Msg("previous outcome dropped before it was saved")
		s.printf("warning: previous outcome was never saved\n")
	}
	s.pending = &pending{rec: s.game.Record(o)}
	return s.persist(ctx)
}

// persist sends the pending outcome to the sinks it has not reached yet.
// A failing sink does not stop the others; the outcome stays pending until
// every sink succeeded.
func (s *Shell) persist(ctx context.Context) error {
	p := s.pending
	var errs []error

	if s.store != nil && !p.stored {
		if err := s.store.Save(ctx, p.rec); err != nil {
			errs = append(errs, fmt.Errorf("save outcome: %w", err))
		} else {
			p.stored = true
			metrics.RecordOutcomeSaved("db")
			s.printf("saved as #%d\n", p.rec.ID)
		}
	}
	if s.outFile != "" && !p.written {
		if err := outcome.SaveFile(s.outFile, p.rec.Outcome); err != nil {
			errs = append(errs, err)
		} else {
			p.written = true
			metrics.RecordOutcomeSaved("file")
			log.Info().Str("path", s.outFile).Msg("outcome written")
			s.printf("written to %s\n", s.outFile)
		}
	}

	if len(errs) > 0 {
		log.Error().Errs("errors", errs).Msg("outcome not fully saved")
		return fmt.Errorf("%w (use save to retry)", errors.Join(errs...))
	}
	s.pending = nil
	return nil
}

func (s *Shell) warnPending() {
	if s.pending != nil {
		s.printf("warning: last outcome was not saved\n")
	}
}

func kindNames() string {
	names := make([]string, 0, len(round.Kinds()))
	for _, k := range round.Kinds() {
		if k != round.Undefined {
			names = append(names, k.String())
		}
	}
	return strings.Join(names, "|")
}

func joinBalls(vs []uint8) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, " ")
}
