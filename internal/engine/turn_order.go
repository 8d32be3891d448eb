package engine

// Rotation is the authority on who drafts next. The host game implements it;
// the session never computes wraparound on its own.
type Rotation interface {
	SwitchToNextPlayer() *Player
}
