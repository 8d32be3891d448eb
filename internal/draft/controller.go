// Package draft wires the pure draft session to a board, the host game and
// an audio collaborator.
package draft

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/board"
	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

//go:generate mockgen -destination=mock/mock.go -package=draftmock github.com/DoyleJ11/spell-draft-backend/internal/draft Host,Audio

// Host is the game engine that owns turn order and phases.
type Host interface {
	SwitchToNextPlayer() *engine.Player
	ChangePhase(phase engine.GamePhase)
	CurrentPlayer() *engine.Player
}

// Audio plays the pick acknowledgement. Errors are logged and dropped.
type Audio interface {
	PlaySelectionSound() error
}

type Config struct {
	Players           []*engine.Player
	SpellsAmount      int
	GenerateNewSpells bool
	Generator         spell.Generator
	Host              Host
	Board             *board.Board
	Audio             Audio
	Logger            *zap.Logger

	// Observer, when set, receives every event in order on the calling goroutine.
	Observer func(engine.Event)
}

func (c *Config) Validate() error {
	if c.Host == nil {
		return errors.New("host is required")
	}
	if c.Board == nil {
		return errors.New("board is required")
	}
	if c.GenerateNewSpells {
		if c.Generator == nil {
			return errors.New("generator is required to generate spells")
		}
		if !engine.ValidSpellsAmount(c.SpellsAmount) {
			return fmt.Errorf("%w: %d", engine.ErrInvalidSpellsAmount, c.SpellsAmount)
		}
	}
	return nil
}

type Controller struct {
	session      *engine.Session
	host         Host
	board        *board.Board
	audio        Audio
	logger       *zap.Logger
	observer     func(engine.Event)
	spellsAmount int
}

// Start opens a draft session. Pools are topped up when GenerateNewSpells is
// set and trusted as-is otherwise. Nothing is rendered until Refresh.
func Start(cfg *Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid draft config: %w", err)
	}

	session, err := engine.NewSession(cfg.Players, cfg.Host)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		session:      session,
		host:         cfg.Host,
		board:        cfg.Board,
		audio:        cfg.Audio,
		logger:       logger,
		observer:     cfg.Observer,
		spellsAmount: cfg.SpellsAmount,
	}

	if cfg.GenerateNewSpells {
		n := session.Populate(cfg.Generator, cfg.SpellsAmount)
		c.logger.Debug("pools populated",
			zap.Int("players", len(cfg.Players)),
			zap.Int("spells_amount", cfg.SpellsAmount),
			zap.Int("generated", n),
		)
	}
	return c, nil
}

func (c *Controller) Board() *board.Board           { return c.board }
func (c *Controller) Status() engine.Status         { return c.session.Status() }
func (c *Controller) CurrentPlayer() *engine.Player { return c.session.Current() }
func (c *Controller) Players() []*engine.Player     { return c.session.Players() }
func (c *Controller) SpellsAmount() int             { return c.spellsAmount }

// SetSpellsAmount changes the target pool size. Pools are never topped up
// again mid-session, so this only matters for what callers report and save.
func (c *Controller) SetSpellsAmount(n int) {
	c.spellsAmount = n
}

// Refresh rebuilds the board for current and makes it the active player.
func (c *Controller) Refresh(current *engine.Player) error {
	if err := c.session.SetCurrent(current); err != nil {
		return err
	}
	c.board.Build(current, c.onPick)
	return nil
}

func (c *Controller) onPick(tile *board.Tile) {
	if err := c.HandlePick(tile); err != nil {
		c.logger.Warn("pick ignored", zap.Int("slot", tile.Index), zap.Error(err))
	}
}

// HandlePick resolves a click on tile. Empty tiles do nothing. The casting
// phase is requested once, after the last player in list order picks.
func (c *Controller) HandlePick(tile *board.Tile) error {
	sp := tile.Occupant()
	if sp == nil {
		return nil
	}

	picker := c.session.Current()
	picked, err := c.session.Select(sp)
	if err != nil {
		return err
	}
	c.emit(picked)

	if c.audio != nil {
		if err := c.audio.PlaySelectionSound(); err != nil {
			c.logger.Debug("selection sound failed", zap.Error(err))
		}
	}

	advanced, err := c.session.Advance()
	if err != nil {
		return fmt.Errorf("advance turn: %w", err)
	}
	c.emit(advanced)

	next := c.session.Current()
	c.logger.Info("spell picked",
		zap.String("player", picker.ID),
		zap.String("spell", sp.Name),
		zap.Int("slot", tile.Index),
		zap.String("next", next.ID),
	)

	if err := c.Refresh(next); err != nil {
		return fmt.Errorf("refresh board: %w", err)
	}

	if engine.ContainsEvent(advanced, engine.EvtDraftCompleted) {
		c.logger.Info("draft complete", zap.Int("players", len(c.session.Players())))
		c.host.ChangePhase(engine.PhaseCasting)
	}
	return nil
}

func (c *Controller) emit(events []engine.Event) {
	if c.observer == nil {
		return
	}
	for _, e := range events {
		c.observer(e)
	}
}
