package ws

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/hub"
	"github.com/DoyleJ11/spell-draft-backend/internal/lobby"
	"github.com/DoyleJ11/spell-draft-backend/internal/types"
)

// Handler streams a lobby's board to the shared display and forwards its clicks.
func Handler(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		lb := h.Get(r.Context(), code)
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			logger.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Snapshot, 8)
		clientID := randID(6)

		if !lb.Send(r.Context(), lobby.Join{ClientID: clientID, Outbox: out}) {
			return
		}
		defer lb.Send(context.Background(), lobby.Leave{ClientID: clientID})

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case snap, ok := <-out:
					if !ok {
						// Lobby dropped us or shut down.
						conn.Close(websocket.StatusGoingAway, "lobby closed")
						return
					}
					msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &snap.State}
					payload, _ := json.Marshal(msg)
					ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
					_ = conn.Write(ctx, websocket.MessageText, payload)
					cancel()
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					logger.Debug("websocket read ended", zap.String("client", clientID), zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			click, ok := toClick(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			err = lb.Pick(r.Context(), click.Slot, click.Player)
			switch {
			case err == nil:
			case errors.Is(err, lobby.ErrClosed), r.Context().Err() != nil:
				return
			default:
				writeError(r.Context(), conn, err.Error())
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, reason string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: reason})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toClick(m types.ClientMessage) (lobby.Click, bool) {
	switch m.Type {
	case "Click":
		if m.Slot == nil || *m.Slot < 0 || *m.Slot >= engine.GridSlots || m.Player == "" {
			return lobby.Click{}, false
		}
		return lobby.Click{Slot: *m.Slot, Player: m.Player}, true
	default:
		return lobby.Click{}, false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
