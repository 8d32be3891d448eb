package engine

import "github.com/DoyleJ11/spell-draft-backend/internal/spell"

// Player is owned by the host game. The draft reads and writes only the
// two spell fields.
type Player struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	AvailableSpells []*spell.Spell `json:"available_spells"`
	SelectedSpell   *spell.Spell   `json:"selected_spell,omitempty"`
}

func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name}
}

// RemoveSpell removes the first pool entry that is sp, returns true if found.
func (p *Player) RemoveSpell(sp *spell.Spell) bool {
	for i, s := range p.AvailableSpells {
		if s == sp {
			p.AvailableSpells = append(p.AvailableSpells[:i], p.AvailableSpells[i+1:]...)
			return true
		}
	}
	return false
}
