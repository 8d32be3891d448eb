// Package board renders one player's spell pool as a fixed 2x10 grid of
// clickable tiles on a Surface.
package board

import (
	"errors"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

var ErrNotImplemented = errors.New("board: lookup not implemented")

// Surface is the panel tiles are drawn on.
type Surface interface {
	Attach(f *Field)
	Detach(f *Field)
	SetVisible(visible bool)
}

// Field is the visual half of a tile: what the surface draws and where
// clicks arrive.
type Field struct {
	Coord engine.Coord
	Index int
	Label string
	Empty bool

	handlers []func()
}

func (f *Field) OnClick(fn func()) {
	f.handlers = append(f.handlers, fn)
}

func (f *Field) Click() {
	for _, h := range f.handlers {
		h()
	}
}

// Tile binds a grid slot to an optional spell still owned by the player's pool.
type Tile struct {
	Coord engine.Coord
	Index int
	Field *Field

	occupant *spell.Spell
}

func newTile(c engine.Coord) *Tile {
	i := engine.SlotIndex(c)
	return &Tile{
		Coord: c,
		Index: i,
		Field: &Field{Coord: c, Index: i, Empty: true},
	}
}

func (t *Tile) Occupant() *spell.Spell { return t.occupant }

// SetOccupant places sp on the tile; nil empties it.
func (t *Tile) SetOccupant(sp *spell.Spell) {
	t.occupant = sp
	t.Field.Empty = sp == nil
	t.Field.Label = sp.String()
}

type Board struct {
	surface Surface
	tiles   [engine.GridWidth][engine.GridHeight]*Tile
	built   bool
}

func New(surface Surface) *Board {
	return &Board{surface: surface}
}

// Build clears the board and lays out every slot for p. Slot i holds
// p.AvailableSpells[i] when the pool is long enough and is empty otherwise.
// onPick is bound to each tile individually.
func (b *Board) Build(p *engine.Player, onPick func(*Tile)) {
	b.Clear()

	for col := 0; col < engine.GridWidth; col++ {
		for row := 0; row < engine.GridHeight; row++ {
			tile := newTile(engine.Coord{Col: col, Row: row})
			if onPick != nil {
				tile.Field.OnClick(func() { onPick(tile) })
			}
			if p != nil && tile.Index < len(p.AvailableSpells) {
				tile.SetOccupant(p.AvailableSpells[tile.Index])
			} else {
				tile.SetOccupant(nil)
			}
			b.tiles[col][row] = tile
		}
	}

	for col := 0; col < engine.GridWidth; col++ {
		for row := 0; row < engine.GridHeight; row++ {
			b.surface.Attach(b.tiles[col][row].Field)
		}
	}
	b.built = true
}

// Clear detaches every tile from the surface. Safe to call on an empty board.
func (b *Board) Clear() {
	if !b.built {
		return
	}
	for col := 0; col < engine.GridWidth; col++ {
		for row := 0; row < engine.GridHeight; row++ {
			b.surface.Detach(b.tiles[col][row].Field)
			b.tiles[col][row] = nil
		}
	}
	b.built = false
}

func (b *Board) SetVisible(visible bool) {
	b.surface.SetVisible(visible)
}

// Elements returns every tile, column by column. Empty before the first Build.
func (b *Board) Elements() []*Tile {
	if !b.built {
		return nil
	}
	tiles := make([]*Tile, 0, engine.GridSlots)
	for col := 0; col < engine.GridWidth; col++ {
		for row := 0; row < engine.GridHeight; row++ {
			tiles = append(tiles, b.tiles[col][row])
		}
	}
	return tiles
}

func (b *Board) GetElement(c engine.Coord) (*Tile, error) {
	return nil, ErrNotImplemented
}

func (b *Board) GetElementByRef(t *Tile) (*Tile, error) {
	return nil, ErrNotImplemented
}
