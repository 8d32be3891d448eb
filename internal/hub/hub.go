package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/lobby"
)

type HubMsg interface{ isHubMsg() }

type Created struct {
	Lobby *lobby.Lobby
	Err   error
}

// CreateLobby returns the existing lobby when the code is taken.
type CreateLobby struct {
	Code   string
	Config lobby.Config
	Reply  chan Created
}

type GetLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

// RemoveLobby shuts a lobby down and forgets it.
type RemoveLobby struct {
	Code string
}

// lobbyClosed is sent by a lobby that stopped on its own.
type lobbyClosed struct {
	Code string
}

type ListLobbies struct {
	Reply chan []string
}

type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

type ShutdownHub struct{}

func (CreateLobby) isHubMsg() {}
func (GetLobby) isHubMsg()    {}
func (RemoveLobby) isHubMsg() {}
func (ListLobbies) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}
func (lobbyClosed) isHubMsg() {}

func NewHub(parent context.Context, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				if lb := h.lobbies[msg.Code]; lb != nil && !stopped(lb) {
					msg.Reply <- Created{Lobby: lb}
					break
				}
				cfg := msg.Config
				cfg.Code = msg.Code
				if cfg.Logger == nil {
					cfg.Logger = h.logger.Named("lobby")
				}
				cfg.OnClose = h.notifyClosed(cfg.OnClose)
				lb, err := lobby.NewLobby(h.ctx, cfg)
				if err != nil {
					msg.Reply <- Created{Err: err}
					break
				}
				h.lobbies[msg.Code] = lb
				h.logger.Info("lobby created", zap.String("code", msg.Code), zap.Int("players", len(cfg.Players)))
				msg.Reply <- Created{Lobby: lb}

			case GetLobby:
				msg.Reply <- h.lobbies[msg.Code] // May be nil

			case ListLobbies:
				codes := make([]string, 0, len(h.lobbies))
				for code := range h.lobbies {
					codes = append(codes, code)
				}
				msg.Reply <- codes

			case lobbyClosed:
				// A newer lobby may already hold the code.
				if lb := h.lobbies[msg.Code]; lb != nil && stopped(lb) {
					delete(h.lobbies, msg.Code)
					h.logger.Info("lobby disposed", zap.String("code", msg.Code))
				}

			case RemoveLobby:
				if lb := h.lobbies[msg.Code]; lb != nil {
					lb.Send(h.ctx, lobby.Shutdown{})
					delete(h.lobbies, msg.Code)
				}

			case ShutdownHub:
				for _, lb := range h.lobbies {
					lb.Send(h.ctx, lobby.Shutdown{})
				}
				clear(h.lobbies)
				h.cancel()
			}
		}
	}
}

// notifyClosed chains next with a lobbyClosed message back to the hub.
func (h *Hub) notifyClosed(next func(code string)) func(code string) {
	return func(code string) {
		if next != nil {
			next(code)
		}
		select {
		case h.inbox <- lobbyClosed{Code: code}:
		case <-h.ctx.Done():
		}
	}
}

func stopped(lb *lobby.Lobby) bool {
	select {
	case <-lb.Done():
		return true
	default:
		return false
	}
}

// Get looks up a lobby by code; nil when there is none.
func (h *Hub) Get(ctx context.Context, code string) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	select {
	case h.inbox <- GetLobby{Code: code, Reply: reply}:
	case <-ctx.Done():
		return nil
	case <-h.ctx.Done():
		return nil
	}
	select {
	case lb := <-reply:
		return lb
	case <-ctx.Done():
		return nil
	case <-h.ctx.Done():
		return nil
	}
}

// Create registers a new lobby under code.
func (h *Hub) Create(ctx context.Context, code string, cfg lobby.Config) (*lobby.Lobby, error) {
	reply := make(chan Created, 1)
	select {
	case h.inbox <- CreateLobby{Code: code, Config: cfg, Reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case c := <-reply:
		return c.Lobby, c.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// List returns the codes of every registered lobby.
func (h *Hub) List(ctx context.Context) []string {
	reply := make(chan []string, 1)
	select {
	case h.inbox <- ListLobbies{Reply: reply}:
	case <-ctx.Done():
		return nil
	case <-h.ctx.Done():
		return nil
	}
	select {
	case codes := <-reply:
		return codes
	case <-ctx.Done():
		return nil
	case <-h.ctx.Done():
		return nil
	}
}

// Remove shuts the lobby under code down. It reports whether there was one.
func (h *Hub) Remove(ctx context.Context, code string) bool {
	if h.Get(ctx, code) == nil {
		return false
	}
	select {
	case h.inbox <- RemoveLobby{Code: code}:
		return true
	case <-ctx.Done():
		return false
	case <-h.ctx.Done():
		return false
	}
}
