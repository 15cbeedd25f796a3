// Package multiplayer runs local head-to-head matches: two engines on one
// shared seed, each player's line clears feeding the other's garbage queue.
package multiplayer

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/denris/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// MatchID uniquely identifies one round of a match.
type MatchID string

// newMatchID returns a random ID. Rounds replaying the same seed still get
// distinct IDs.
func newMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a game is played.
type MatchMode int

const (
	// MatchModeSolo is a single-player marathon.
	MatchModeSolo MatchMode = iota

	// MatchModeVersus is two players on one keyboard.
	MatchModeVersus
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVersus:
		return "Versus"
	default:
		return "Unknown"
	}
}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonTopOut       MatchEndReason = iota // One player topped out
	MatchEndReasonDoubleTopOut                       // Both topped out in the same step
	MatchEndReasonCancelled                          // Match was abandoned
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonTopOut:
		return "top out"
	case MatchEndReasonDoubleTopOut:
		return "double top out"
	case MatchEndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MatchResult contains the outcome of a finished match.
type MatchResult struct {
	MatchID  MatchID
	Seed     int64
	Reason   MatchEndReason
	Winner   PlayerID // 0 on a draw or cancellation
	Score1   int
	Score2   int
	Lines1   int
	Lines2   int
	Sent1    int
	Sent2    int
	Duration time.Duration
	EndedAt  time.Time
}

// Draw reports whether the match ended without a winner.
func (r MatchResult) Draw() bool {
	return r.Winner == 0
}

// MatchResultSaver persists finished matches.
// This allows the match to record results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResult) error
}
