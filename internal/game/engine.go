// internal/game/engine.go
//
// Game session for a single loto round.
// Responsibilities:
//   - Keep the draw engine and the round state machine in lockstep:
//     balls are only accepted while the round is Started.
//   - Turn the silent no-ops of the core into errors a UI can show.
//   - Produce the outcome record when a winner is declared.
//
// Notes:
//   - A Game is single-owner; the CLI drives one at a time.
//   - The winner's name travels next to the outcome, never inside it.
package game

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Silmaen/EvenementLoto-sub001/internal/card"
	"github.com/Silmaen/EvenementLoto-sub001/internal/draw"
	"github.com/Silmaen/EvenementLoto-sub001/internal/metrics"
	"github.com/Silmaen/EvenementLoto-sub001/internal/outcome"
	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
	"github.com/Silmaen/EvenementLoto-sub001/internal/store"
)

// New constructs a game of the given kind. deterministic selects the fixed
// draw seed (rehearsals, tests) instead of an entropy-seeded one.
func New(kind round.Kind, deterministic bool) *Game {
	return NewWithEngine(kind, draw.New(deterministic))
}

// NewWithEngine constructs a game around an existing draw engine.
// The engine's history is cleared.
func NewWithEngine(kind round.Kind, e *draw.Engine) *Game {
	id := uuid.NewString()
	g := &Game{
		ID:    id,
		Round: round.New(),
		Draws: e,
		log:   log.With().Str("game", id).Logger(),
	}
	g.SetKind(kind)
	return g
}

// SetKind changes the kind of round and restarts it: draws are cleared and
// the status goes back to Ready (Invalid for round.Undefined).
func (g *Game) SetKind(k round.Kind) {
	g.Round.SetKind(k)
	g.Draws.Reset()
	g.WinnerName = ""
	g.log.Debug().Str("kind", k.String()).Msg("kind set")
}

// Start begins the round.
func (g *Game) Start() error {
	if !g.Round.Start() {
		return ErrWrongStatus
	}
	metrics.RecordRoundStarted(g.Round.Kind().String())
	g.log.Info().Str("kind", g.Round.Kind().String()).Msg("round started")
	return nil
}

// Draw picks the next ball.
func (g *Game) Draw() (uint8, error) {
	if g.Round.Status() != round.Started {
		return 0, ErrNotStarted
	}
	n := g.Draws.Draw()
	if n == draw.Exhausted {
		return n, ErrExhausted
	}
	metrics.RecordDraw(metrics.SourceRandom)
	g.log.Debug().Uint8("ball", n).Int("count", g.Draws.Len()).Msg("drawn")
	return n, nil
}

// AddManual records a ball read off an external cage.
func (g *Game) AddManual(v int) error {
	if g.Round.Status() != round.Started {
		return ErrNotStarted
	}
	if !g.Draws.AddManual(v) {
		metrics.RecordManualRejected()
		g.log.Warn().Int("ball", v).Msg("manual entry rejected")
		return ErrRejected
	}
	metrics.RecordDraw(metrics.SourceManual)
	g.log.Debug().Int("ball", v).Int("count", g.Draws.Len()).Msg("entered")
	return nil
}

// UndoLast cancels the most recent ball.
func (g *Game) UndoLast() (uint8, error) {
	if g.Round.Status() != round.Started {
		return 0, ErrNotStarted
	}
	n, ok := g.Draws.UndoLast()
	if !ok {
		return 0, ErrNothingToUndo
	}
	metrics.RecordUndo()
	g.log.Info().Uint8("ball", n).Msg("draw cancelled")
	return n, nil
}

// Reset clears the draws and puts the round back to Ready, keeping its kind.
// Asking for confirmation is the caller's job.
func (g *Game) Reset() {
	g.log.Info().Int("draws", g.Draws.Len()).Msg("round reset")
	g.SetKind(g.Round.Kind())
}

// Finish declares the winner and ends the round.
func (g *Game) Finish(winnerID uint32, winnerName string, prizes []uint32) (outcome.Outcome, error) {
	if !g.Round.Finish() {
		return outcome.Outcome{}, ErrWrongStatus
	}
	g.WinnerName = winnerName
	o := outcome.Outcome{
		Kind:     g.Round.Kind(),
		WinnerID: winnerID,
		Prizes:   append([]uint32(nil), prizes...),
	}
	metrics.RecordRoundFinished(o.Kind.String())
	g.log.Info().
		Str("kind", o.Kind.String()).
		Uint32("winner", winnerID).
		Int("draws", g.Draws.Len()).
		Dur("duration", g.Round.Duration()).
		Msg("round finished")
	return o, nil
}

// CheckCard marks c with the balls drawn so far and reports whether it
// satisfies the winning condition of the round. The round must be running or
// just finished.
func (g *Game) CheckCard(c *card.Card) (bool, error) {
	if st := g.Round.Status(); st != round.Started && st != round.Finished {
		return false, ErrNotStarted
	}
	c.Check(g.Draws.Picked())
	win := c.Wins(g.Round.Kind())
	metrics.RecordCardCheck(win)
	g.log.Info().
		Uint32("card", c.Number).
		Str("result", c.Result().Label()).
		Bool("win", win).
		Msg("card checked")
	return win, nil
}

// Record bundles o with what the session knows about the round, ready to
// be saved.
func (g *Game) Record(o outcome.Outcome) *store.Record {
	return &store.Record{
		Outcome:    o,
		WinnerName: g.WinnerName,
		Draws:      g.Draws.Len(),
		Sequence:   g.Draws.Picked(),
		StartedAt:  g.Round.StartedAt(),
		FinishedAt: g.Round.FinishedAt(),
	}
}
