package engine

import (
	"testing"

	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

// listRotation walks players in order and wraps, like the host game does.
type listRotation struct {
	Players []*Player
	Cursor  int
}

func (r *listRotation) Current() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.Cursor]
}

func (r *listRotation) SwitchToNextPlayer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	r.Cursor = (r.Cursor + 1) % len(r.Players)
	return r.Players[r.Cursor]
}

// pick runs one full turn the way the draft controller does: Select, then Advance.
func pick(s *Session, sp *spell.Spell) ([]Event, error) {
	picked, err := s.Select(sp)
	if err != nil || len(picked) == 0 {
		return picked, err
	}
	advanced, err := s.Advance()
	if err != nil {
		return picked, err
	}
	return append(picked, advanced...), nil
}

func TestListRotationHelper_Wraps(t *testing.T) {
	players := newPlayers(3)
	rot := &listRotation{Players: players}

	order := []*Player{rot.SwitchToNextPlayer(), rot.SwitchToNextPlayer(), rot.SwitchToNextPlayer()}
	want := []*Player{players[1], players[2], players[0]}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("step %d: got %s, want %s", i, order[i].ID, want[i].ID)
		}
	}
}
