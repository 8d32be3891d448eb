package board

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

func playerWith(n int) *engine.Player {
	p := engine.NewPlayer("A", "Alice")
	gen := spell.NewSequential("S")
	for i := 0; i < n; i++ {
		p.AvailableSpells = append(p.AvailableSpells, gen.Generate())
	}
	return p
}

func TestBuild_AttachesEverySlot(t *testing.T) {
	for _, poolSize := range []int{0, 3, 19, 20, 25} {
		panel := NewPanel()
		b := New(panel)
		p := playerWith(poolSize)

		b.Build(p, nil)

		tiles := b.Elements()
		require.Len(t, tiles, engine.GridSlots)
		assert.Equal(t, engine.GridSlots, panel.Len())

		for _, tile := range tiles {
			if tile.Index < poolSize {
				assert.Same(t, p.AvailableSpells[tile.Index], tile.Occupant(), "slot %d", tile.Index)
				assert.False(t, tile.Field.Empty)
			} else {
				assert.Nil(t, tile.Occupant(), "slot %d should be empty", tile.Index)
				assert.True(t, tile.Field.Empty)
			}
		}
	}
}

func TestBuild_EveryPoolEntryShownOnce(t *testing.T) {
	b := New(NewPanel())
	p := playerWith(engine.GridSlots)
	b.Build(p, nil)

	shown := map[*spell.Spell]int{}
	for _, tile := range b.Elements() {
		shown[tile.Occupant()]++
	}
	for _, sp := range p.AvailableSpells {
		assert.Equal(t, 1, shown[sp], "spell %s", sp.ID)
	}
}

func TestBuild_ReplacesPreviousTiles(t *testing.T) {
	panel := NewPanel()
	b := New(panel)

	b.Build(playerWith(5), nil)
	old := panel.Fields()
	b.Build(playerWith(2), nil)

	assert.Equal(t, engine.GridSlots, panel.Len())
	for _, f := range panel.Fields() {
		assert.NotContains(t, old, f)
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	panel := NewPanel()
	b := New(panel)

	b.Clear()
	assert.Zero(t, panel.Len())

	b.Build(playerWith(3), nil)
	b.Clear()
	assert.Zero(t, panel.Len())
	b.Clear()
	assert.Zero(t, panel.Len())
	assert.Nil(t, b.Elements())
}

func TestClick_ResolvesTheTileItWasBoundTo(t *testing.T) {
	b := New(NewPanel())
	p := playerWith(4)

	var got []*Tile
	b.Build(p, func(tile *Tile) { got = append(got, tile) })

	tiles := b.Elements()
	for _, tile := range tiles {
		tile.Field.Click()
	}

	require.Len(t, got, len(tiles))
	for i := range tiles {
		assert.Same(t, tiles[i], got[i])
	}
}

func TestSetVisible(t *testing.T) {
	panel := NewPanel()
	b := New(panel)
	assert.True(t, panel.Visible())

	b.SetVisible(false)
	assert.False(t, panel.Visible())

	var buf bytes.Buffer
	require.NoError(t, panel.Render(&buf))
	assert.Contains(t, buf.String(), "hidden")
}

func TestGetElement_NotImplemented(t *testing.T) {
	b := New(NewPanel())
	b.Build(playerWith(1), nil)

	_, err := b.GetElement(engine.Coord{Col: 0, Row: 0})
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = b.GetElementByRef(b.Elements()[0])
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestPanel_RenderShowsLabelsInReadingOrder(t *testing.T) {
	panel := NewPanel()
	b := New(panel)
	b.Build(playerWith(3), nil)

	var buf bytes.Buffer
	require.NoError(t, panel.Render(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, engine.GridHeight)
	assert.Contains(t, lines[0], "S1")
	assert.Contains(t, lines[0], "S2")
	assert.Contains(t, lines[1], "S3")
	assert.NotContains(t, lines[2], "S")
}
