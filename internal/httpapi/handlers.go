package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/hub"
	"github.com/DoyleJ11/spell-draft-backend/internal/lobby"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
	"github.com/DoyleJ11/spell-draft-backend/internal/store"
	"github.com/DoyleJ11/spell-draft-backend/internal/types"
)

const maxPlayers = 8

// Deps are what the handlers need besides the hub.
type Deps struct {
	Store        store.Repository
	SpellsAmount int
	NewGenerator func() spell.Generator
	Logger       *zap.Logger

	// Linger is how long a finished table stays readable.
	Linger time.Duration
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateLobby(h *hub.Hub, d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateLobbyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		var (
			code string
			cfg  lobby.Config
			err  error
		)
		if req.ResumeCode != "" {
			code = req.ResumeCode
			cfg, err = resumeConfig(r, d, code)
		} else {
			code, err = freshCode(r, h)
			if err == nil {
				cfg, err = newConfig(d, req)
			}
		}
		if err != nil {
			writeErr(w, err)
			return
		}
		cfg.Store = d.Store
		cfg.Linger = d.Linger

		if _, err := h.Create(r.Context(), code, cfg); err != nil {
			d.Logger.Warn("create lobby failed", zap.String("code", code), zap.Error(err))
			writeErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, types.CreateLobbyResponse{Code: code})
	}
}

type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func newConfig(d Deps, req types.CreateLobbyRequest) (lobby.Config, error) {
	if len(req.Players) == 0 || len(req.Players) > maxPlayers {
		return lobby.Config{}, badRequest("need between 1 and %d players", maxPlayers)
	}
	amount := req.SpellsAmount
	if amount == 0 {
		amount = d.SpellsAmount
	}
	if !engine.ValidSpellsAmount(amount) {
		return lobby.Config{}, badRequest("spells_amount must be between 1 and %d", engine.GridSlots)
	}

	players := make([]*engine.Player, 0, len(req.Players))
	for i, name := range req.Players {
		name = strings.TrimSpace(name)
		if name == "" {
			return lobby.Config{}, badRequest("player %d has no name", i+1)
		}
		players = append(players, engine.NewPlayer(fmt.Sprintf("p%d", i+1), name))
	}

	return lobby.Config{
		Players:      players,
		SpellsAmount: amount,
		Generator:    d.NewGenerator(),
	}, nil
}

func resumeConfig(r *http.Request, d Deps, code string) (lobby.Config, error) {
	if d.Store == nil {
		return lobby.Config{}, badRequest("resuming is not available")
	}
	rec, err := d.Store.Load(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		return lobby.Config{}, &httpError{status: http.StatusNotFound, msg: "no saved session " + code}
	}
	if err != nil {
		return lobby.Config{}, err
	}
	if len(rec.Players) == 0 || rec.CurrentIndex < 0 || rec.CurrentIndex >= len(rec.Players) {
		return lobby.Config{}, badRequest("saved session %s is unusable: current index %d with %d players",
			code, rec.CurrentIndex, len(rec.Players))
	}
	return lobby.Config{
		Players:      store.Restore(rec),
		SpellsAmount: rec.SpellsAmount,
		Resume:       true,
		CurrentIndex: rec.CurrentIndex,
	}, nil
}

func freshCode(r *http.Request, h *hub.Hub) (string, error) {
	for {
		c, err := GenerateCode()
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		if h.Get(r.Context(), c) == nil {
			return c, nil
		}
		if err := r.Context().Err(); err != nil {
			return "", err
		}
	}
}

func GetLobby(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb := h.Get(r.Context(), chi.URLParam(r, "code"))
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}
		view, err := lb.View(r.Context())
		if err != nil {
			http.Error(w, "lobby closed", http.StatusGone)
			return
		}
		writeJSON(w, http.StatusOK, types.ServerMessage{Type: "StateSnapshot", Version: view.Version, State: &view.State})
	}
}

// PostClick applies a click from the shared display for the named player and
// answers with the resulting state.
func PostClick(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ClickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slot == nil || req.Player == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if *req.Slot < 0 || *req.Slot >= engine.GridSlots {
			http.Error(w, "slot out of range", http.StatusBadRequest)
			return
		}

		lb := h.Get(r.Context(), chi.URLParam(r, "code"))
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}
		if err := lb.Pick(r.Context(), *req.Slot, req.Player); err != nil {
			writeClickErr(w, err)
			return
		}
		view, err := lb.View(r.Context())
		if err != nil {
			writeClickErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.ServerMessage{Type: "StateSnapshot", Version: view.Version, State: &view.State})
	}
}

func writeClickErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrDraftCompleted):
		http.Error(w, "draft already completed", http.StatusGone)
	case errors.Is(err, lobby.ErrClosed):
		http.Error(w, "lobby closed", http.StatusGone)
	case errors.Is(err, lobby.ErrWrongTurn):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, lobby.ErrUnknownSlot):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "click not applied", http.StatusServiceUnavailable)
	}
}

func ListLobbies(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ListLobbiesResponse{Codes: h.List(r.Context())})
	}
}

// DeleteLobby closes a table. Its saved session, if any, stays resumable.
func DeleteLobby(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Remove(r.Context(), chi.URLParam(r, "code")) {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	var he *httpError
	if errors.As(err, &he) {
		http.Error(w, he.msg, he.status)
		return
	}
	if errors.Is(err, engine.ErrInvalidSpellsAmount) || errors.Is(err, engine.ErrNoPlayers) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "failed to create lobby", http.StatusInternalServerError)
}
