package engine

const (
	GridWidth  = 2
	GridHeight = 10
	GridSlots  = GridWidth * GridHeight
)

type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// SlotIndex maps a grid coordinate onto [0, GridSlots) in reading order.
// It is a bijection; CoordOf is its inverse.
func SlotIndex(c Coord) int {
	return c.Row*GridWidth + c.Col
}

func CoordOf(index int) Coord {
	return Coord{Col: index % GridWidth, Row: index / GridWidth}
}

func InGrid(c Coord) bool {
	return c.Col >= 0 && c.Col < GridWidth && c.Row >= 0 && c.Row < GridHeight
}
