package engine

func IndexOf(players []*Player, p *Player) int {
	if p == nil {
		return -1
	}
	for i, candidate := range players {
		if candidate == p {
			return i
		}
	}
	return -1
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// ValidSpellsAmount reports whether every pool entry fits on the board.
func ValidSpellsAmount(n int) bool {
	return n > 0 && n <= GridSlots
}
