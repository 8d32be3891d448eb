package board

import (
	"fmt"
	"io"
	"strings"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
)

// Panel is an in-memory Surface. It keeps attached fields in attach order.
// Not safe for concurrent use; the lobby goroutine owns it.
type Panel struct {
	fields  []*Field
	visible bool
}

func NewPanel() *Panel {
	return &Panel{visible: true}
}

func (p *Panel) Attach(f *Field) {
	p.fields = append(p.fields, f)
}

func (p *Panel) Detach(f *Field) {
	for i, existing := range p.fields {
		if existing == f {
			p.fields = append(p.fields[:i], p.fields[i+1:]...)
			return
		}
	}
}

func (p *Panel) SetVisible(visible bool) { p.visible = visible }
func (p *Panel) Visible() bool          { return p.visible }
func (p *Panel) Len() int               { return len(p.fields) }

func (p *Panel) Fields() []*Field {
	out := make([]*Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// Render writes the attached fields as a text grid, one board row per line.
func (p *Panel) Render(w io.Writer) error {
	if !p.visible {
		_, err := fmt.Fprintln(w, "(board hidden)")
		return err
	}

	byIndex := make(map[int]*Field, len(p.fields))
	for _, f := range p.fields {
		byIndex[f.Index] = f
	}

	for row := 0; row < engine.GridHeight; row++ {
		cells := make([]string, 0, engine.GridWidth)
		for col := 0; col < engine.GridWidth; col++ {
			i := engine.SlotIndex(engine.Coord{Col: col, Row: row})
			f, ok := byIndex[i]
			switch {
			case !ok:
				cells = append(cells, fmt.Sprintf("%2d  %-28s", i, "?"))
			case f.Empty:
				cells = append(cells, fmt.Sprintf("%2d  %-28s", i, "."))
			default:
				cells = append(cells, fmt.Sprintf("%2d  %-28s", i, f.Label))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " | "), " ")); err != nil {
			return err
		}
	}
	return nil
}
