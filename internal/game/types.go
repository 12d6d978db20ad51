// internal/game/types.go
//
// Core type definitions for a loto game session.
// Defines:
//   - Game: one round being played, with its draw history and lifecycle.
//   - the errors a session reports back to whoever drives it.

package game

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/Silmaen/EvenementLoto-sub001/internal/draw"
	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
)

var (
	ErrNotStarted    = errors.New("round not started")
	ErrWrongStatus   = errors.New("action not allowed in current round status")
	ErrRejected      = errors.New("number already drawn or out of range")
	ErrExhausted     = errors.New("every number has been drawn")
	ErrNothingToUndo = errors.New("no draw to cancel")
)

// Game holds the state of one loto round.
type Game struct {
	ID         string         // Unique session identifier (uuid).
	Round      *round.Machine // Kind and lifecycle of the round.
	Draws      *draw.Engine   // Balls drawn in this round.
	WinnerName string         // Set by Finish; not part of the binary outcome.

	log zerolog.Logger
}
