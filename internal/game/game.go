package game

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
)

// Game is the host engine around a draft: it owns the player list, the
// turn cursor and the phase.
type Game struct {
	players []*engine.Player
	current int
	phase   engine.GamePhase
	logger  *zap.Logger
}

// New starts in the spell draft phase with players[current] to act.
func New(players []*engine.Player, current int, logger *zap.Logger) (*Game, error) {
	if len(players) == 0 {
		return nil, engine.ErrNoPlayers
	}
	if current < 0 || current >= len(players) {
		return nil, fmt.Errorf("current player index %d out of range", current)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		players: players,
		current: current,
		phase:   engine.PhaseSpellDraft,
		logger:  logger,
	}, nil
}

func (g *Game) Players() []*engine.Player     { return g.players }
func (g *Game) CurrentPlayer() *engine.Player { return g.players[g.current] }
func (g *Game) CurrentIndex() int             { return g.current }
func (g *Game) Phase() engine.GamePhase       { return g.phase }

// SwitchToNextPlayer advances the cursor, wrapping to the first player.
func (g *Game) SwitchToNextPlayer() *engine.Player {
	g.current = (g.current + 1) % len(g.players)
	return g.players[g.current]
}

func (g *Game) ChangePhase(phase engine.GamePhase) {
	if phase == g.phase {
		return
	}
	g.logger.Info("phase changed", zap.String("from", string(g.phase)), zap.String("to", string(phase)))
	g.phase = phase
}

type NopAudio struct{}

func (NopAudio) PlaySelectionSound() error { return nil }

// LogAudio records the click sound in the log instead of playing it.
type LogAudio struct {
	Logger *zap.Logger
}

func (a LogAudio) PlaySelectionSound() error {
	if a.Logger != nil {
		a.Logger.Debug("selection sound")
	}
	return nil
}

// BellAudio rings the terminal bell.
type BellAudio struct {
	W io.Writer
}

func (a BellAudio) PlaySelectionSound() error {
	_, err := io.WriteString(a.W, "\a")
	return err
}
