// Package store saves draft tables so a session can be resumed with its
// pools intact instead of regenerating them.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

var ErrNotFound = errors.New("draft session not found")

type PlayerRecord struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Available []spell.Spell `json:"available"`
	Selected  *spell.Spell  `json:"selected,omitempty"`
}

type Record struct {
	Code         string           `json:"code"`
	SpellsAmount int              `json:"spells_amount"`
	CurrentIndex int              `json:"current_index"`
	Phase        engine.GamePhase `json:"phase"`
	Players      []PlayerRecord   `json:"players"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, code string) (*Record, error)
	Delete(ctx context.Context, code string) error
}

// FromPlayers copies the draft-relevant player state into a record.
func FromPlayers(code string, spellsAmount, currentIndex int, phase engine.GamePhase, players []*engine.Player) *Record {
	rec := &Record{
		Code:         code,
		SpellsAmount: spellsAmount,
		CurrentIndex: currentIndex,
		Phase:        phase,
		Players:      make([]PlayerRecord, 0, len(players)),
	}
	for _, p := range players {
		pr := PlayerRecord{ID: p.ID, Name: p.Name, Available: make([]spell.Spell, 0, len(p.AvailableSpells))}
		for _, sp := range p.AvailableSpells {
			pr.Available = append(pr.Available, *sp)
		}
		if p.SelectedSpell != nil {
			sel := *p.SelectedSpell
			pr.Selected = &sel
		}
		rec.Players = append(rec.Players, pr)
	}
	return rec
}

// Restore rebuilds live players from a record. Every spell gets a fresh pointer.
func Restore(rec *Record) []*engine.Player {
	players := make([]*engine.Player, 0, len(rec.Players))
	for _, pr := range rec.Players {
		p := engine.NewPlayer(pr.ID, pr.Name)
		for i := range pr.Available {
			sp := pr.Available[i]
			p.AvailableSpells = append(p.AvailableSpells, &sp)
		}
		if pr.Selected != nil {
			sel := *pr.Selected
			p.SelectedSpell = &sel
		}
		players = append(players, p)
	}
	return players
}
