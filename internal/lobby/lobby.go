package lobby

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/board"
	"github.com/DoyleJ11/spell-draft-backend/internal/draft"
	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/game"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
	"github.com/DoyleJ11/spell-draft-backend/internal/store"
)

var (
	ErrUnknownSlot = errors.New("no tile at slot")
	ErrWrongTurn   = errors.New("not this player's turn")
	ErrClosed      = errors.New("lobby closed")
)

const (
	storeTimeout = 2 * time.Second

	// DefaultLinger is how long a finished table keeps answering before it shuts down.
	DefaultLinger = time.Minute
)

type Msg interface{ isLobbyMsg() }

// Click is a click on the shared display at a flat slot index, made for
// Player. It is dropped unless Player is the one to act. Reply, when set,
// receives the outcome and must be buffered.
type Click struct {
	Slot   int
	Player string
	Reply  chan error
}

func (Click) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type TileView struct {
	Slot  int    `json:"slot"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
	Label string `json:"label,omitempty"`
	Empty bool   `json:"empty"`
}

type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
	Selected  string `json:"selected,omitempty"`
}

// State is what the display draws. Only the active player's pool is on the board.
type State struct {
	Code    string           `json:"code"`
	Phase   engine.GamePhase `json:"phase"`
	Status  engine.Status    `json:"status"`
	Current string           `json:"current"`
	Visible bool             `json:"visible"`
	Tiles   []TileView       `json:"tiles"`
	Players []PlayerView     `json:"players"`
}

type Snapshot struct {
	Version int
	State   State
}

type View struct {
	Version    int
	NumClients int
	State      State
}

type Config struct {
	Code         string
	Players      []*engine.Player
	SpellsAmount int
	// Resume trusts the players' pools as saved instead of topping them up.
	Resume       bool
	CurrentIndex int
	Generator    spell.Generator
	Store        store.Repository
	Audio        draft.Audio
	Logger       *zap.Logger

	// Linger defaults to DefaultLinger.
	Linger time.Duration
	// OnClose runs on its own goroutine once the lobby has stopped.
	OnClose func(code string)
}

type Lobby struct {
	inbox   chan Msg
	code    string
	game    *game.Game
	ctrl    *draft.Controller
	panel   *board.Panel
	store   store.Repository
	logger  *zap.Logger
	pending []engine.Event
	version int
	linger  time.Duration
	onClose func(code string)
	closing *time.Timer
	clients map[string]chan Snapshot
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, cfg Config) (*Lobby, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("lobby", cfg.Code))

	g, err := game.New(cfg.Players, cfg.CurrentIndex, logger.Named("game"))
	if err != nil {
		return nil, err
	}

	audio := cfg.Audio
	if audio == nil {
		audio = game.LogAudio{Logger: logger}
	}

	linger := cfg.Linger
	if linger <= 0 {
		linger = DefaultLinger
	}

	ctx, cancel := context.WithCancel(parent)
	l := &Lobby{
		inbox:   make(chan Msg, 64), // Small buffer
		code:    cfg.Code,
		game:    g,
		panel:   board.NewPanel(),
		store:   cfg.Store,
		logger:  logger,
		clients: make(map[string]chan Snapshot),
		linger:  linger,
		onClose: cfg.OnClose,
		ctx:     ctx,
		cancel:  cancel,
	}

	ctrl, err := draft.Start(&draft.Config{
		Players:           cfg.Players,
		SpellsAmount:      cfg.SpellsAmount,
		GenerateNewSpells: !cfg.Resume,
		Generator:         cfg.Generator,
		Host:              g,
		Board:             board.New(l.panel),
		Audio:             audio,
		Logger:            logger.Named("draft"),
		Observer:          func(e engine.Event) { l.pending = append(l.pending, e) },
	})
	if err != nil {
		cancel()
		return nil, err
	}
	if err := ctrl.Refresh(g.CurrentPlayer()); err != nil {
		cancel()
		return nil, fmt.Errorf("initial board: %w", err)
	}
	l.ctrl = ctrl
	l.persist()

	go l.loop()
	return l, nil
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: l.version, State: l.state()}

			case Leave:
				delete(l.clients, msg.ClientID)

			case Click:
				changed, err := l.click(msg)
				if changed {
					l.version++
					l.broadcast(Snapshot{Version: l.version, State: l.state()})
				}
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.state(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// click runs one pick to completion. It reports whether anything changed.
// An empty slot changes nothing and is not an error.
func (l *Lobby) click(c Click) (bool, error) {
	if l.ctrl.Status() == engine.StatusComplete {
		return false, engine.ErrDraftCompleted
	}
	if cur := l.ctrl.CurrentPlayer(); cur == nil || cur.ID != c.Player {
		l.logger.Debug("click dropped", zap.Int("slot", c.Slot), zap.String("player", c.Player), zap.Error(ErrWrongTurn))
		return false, ErrWrongTurn
	}
	tile := l.tileAt(c.Slot)
	if tile == nil {
		l.logger.Debug("click ignored", zap.Int("slot", c.Slot), zap.Error(ErrUnknownSlot))
		return false, ErrUnknownSlot
	}

	l.pending = l.pending[:0]
	tile.Field.Click()
	if len(l.pending) == 0 {
		return false, nil
	}

	if engine.ContainsEvent(l.pending, engine.EvtDraftCompleted) {
		l.ctrl.Board().SetVisible(false)
		l.forget()
		l.closeAfterLinger()
	} else {
		l.persist()
	}
	return true, nil
}

// closeAfterLinger lets displays read the final board for a while, then stops the lobby.
func (l *Lobby) closeAfterLinger() {
	l.logger.Info("draft complete", zap.Duration("linger", l.linger))
	l.closing = time.AfterFunc(l.linger, func() {
		l.Send(context.Background(), Shutdown{})
	})
}

// tileAt finds a tile by its flat index among the tiles currently on the board.
func (l *Lobby) tileAt(slot int) *board.Tile {
	for _, tile := range l.ctrl.Board().Elements() {
		if tile.Index == slot {
			return tile
		}
	}
	return nil
}

func (l *Lobby) state() State {
	s := State{
		Code:    l.code,
		Phase:   l.game.Phase(),
		Status:  l.ctrl.Status(),
		Visible: l.panel.Visible(),
	}
	if cur := l.ctrl.CurrentPlayer(); cur != nil {
		s.Current = cur.ID
	}
	for _, f := range l.panel.Fields() {
		s.Tiles = append(s.Tiles, TileView{
			Slot:  f.Index,
			Col:   f.Coord.Col,
			Row:   f.Coord.Row,
			Label: f.Label,
			Empty: f.Empty,
		})
	}
	for _, p := range l.game.Players() {
		pv := PlayerView{ID: p.ID, Name: p.Name, Remaining: len(p.AvailableSpells)}
		if p.SelectedSpell != nil {
			pv.Selected = p.SelectedSpell.Name
		}
		s.Players = append(s.Players, pv)
	}
	return s
}

func (l *Lobby) persist() {
	if l.store == nil {
		return
	}
	rec := store.FromPlayers(l.code, l.ctrl.SpellsAmount(), l.game.CurrentIndex(), l.game.Phase(), l.game.Players())
	ctx, cancel := context.WithTimeout(l.ctx, storeTimeout)
	defer cancel()
	if err := l.store.Save(ctx, rec); err != nil {
		l.logger.Error("save session failed", zap.Error(err))
	}
}

// forget drops a finished session from the store; it can no longer be resumed.
func (l *Lobby) forget() {
	if l.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(l.ctx, storeTimeout)
	defer cancel()
	if err := l.store.Delete(ctx, l.code); err != nil {
		l.logger.Error("delete session failed", zap.Error(err))
	}
}

func (l *Lobby) shutdown() {
	if l.closing != nil {
		l.closing.Stop()
	}
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
	if l.onClose != nil {
		go l.onClose(l.code)
	}
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			l.logger.Debug("dropping slow client", zap.String("client", id))
			close(ch)
			delete(l.clients, id)
		}
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Done is closed once the lobby has shut down.
func (l *Lobby) Done() <-chan struct{} { return l.ctx.Done() }

// Send delivers m unless the lobby or ctx finishes first.
func (l *Lobby) Send(ctx context.Context, m Msg) bool {
	select {
	case l.inbox <- m:
		return true
	case <-l.ctx.Done():
		return false
	case <-ctx.Done():
		return false
	}
}

// View asks the loop for its current view.
func (l *Lobby) View(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if !l.Send(ctx, GetState{Reply: reply}) {
		return View{}, ErrClosed
	}
	select {
	case v := <-reply:
		return v, nil
	case <-l.ctx.Done():
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Pick clicks slot for player and waits until the loop has applied it.
func (l *Lobby) Pick(ctx context.Context, slot int, player string) error {
	reply := make(chan error, 1)
	if !l.Send(ctx, Click{Slot: slot, Player: player, Reply: reply}) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrClosed
	}
	select {
	case err := <-reply:
		return err
	case <-l.ctx.Done():
		// The reply may have raced the shutdown.
		select {
		case err := <-reply:
			return err
		default:
			return ErrClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
