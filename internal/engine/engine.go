package engine

import (
	"errors"

	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

var ErrNoPlayers = errors.New("draft needs at least one player")
var ErrUnknownPlayer = errors.New("player is not part of this draft")
var ErrDraftCompleted = errors.New("draft already completed")
var ErrInvalidSpellsAmount = errors.New("spells amount out of range")

var errNothingSelected = errors.New("no pick waiting to advance")

// GamePhase is the host game's phase. The draft only ever asks for Casting.
type GamePhase string

const (
	PhaseSpellDraft GamePhase = "spellDraft"
	PhaseCasting    GamePhase = "casting"
)

type Status string

const (
	StatusIdle         Status = "idle"
	StatusAwaitingPick Status = "awaitingPick"
	StatusComplete     Status = "complete"
)

type EventType string

const (
	EvtSpellPicked    EventType = "SpellPicked"
	EvtTurnAdvanced   EventType = "TurnAdvanced"
	EvtDraftCompleted EventType = "DraftCompleted"
)

type Event struct {
	Type     EventType
	PlayerID string
	SpellID  string
}

/*
	Select  -> EvtSpellPicked
	Advance -> EvtTurnAdvanced (+ EvtDraftCompleted when the last player in list order picked)
*/

// Session is the draft state machine with no rendering attached.
// The player list is shared with the host; Session mutates AvailableSpells
// and SelectedSpell and nothing else.
type Session struct {
	players  []*Player
	rotation Rotation
	current  *Player
	status   Status

	selected  bool
	finishing bool
}

func NewSession(players []*Player, rotation Rotation) (*Session, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	return &Session{
		players:  players,
		rotation: rotation,
		status:   StatusIdle,
	}, nil
}

// Populate tops every pool up to amount. It returns how many spells were generated.
func (s *Session) Populate(gen spell.Generator, amount int) int {
	generated := 0
	for _, p := range s.players {
		for len(p.AvailableSpells) < amount {
			p.AvailableSpells = append(p.AvailableSpells, gen.Generate())
			generated++
		}
	}
	return generated
}

func (s *Session) Players() []*Player { return s.players }
func (s *Session) Current() *Player   { return s.current }
func (s *Session) Status() Status     { return s.status }

// SetCurrent points the turn cursor at p. The first call moves an idle
// session to AwaitingPick.
func (s *Session) SetCurrent(p *Player) error {
	if IndexOf(s.players, p) < 0 {
		return ErrUnknownPlayer
	}
	s.current = p
	if s.status == StatusIdle {
		s.status = StatusAwaitingPick
	}
	return nil
}

// Select hands sp to the current player. A nil spell is an empty slot and
// changes nothing. Removing a spell the pool no longer holds is a no-op,
// the assignment still happens.
func (s *Session) Select(sp *spell.Spell) ([]Event, error) {
	if s.status == StatusComplete {
		return nil, ErrDraftCompleted
	}
	if sp == nil {
		return nil, nil
	}

	idx := IndexOf(s.players, s.current)
	if idx < 0 {
		return nil, ErrUnknownPlayer
	}

	// Evaluated before rotating.
	s.finishing = idx+1 == len(s.players)
	s.selected = true

	s.current.SelectedSpell = sp
	s.current.RemoveSpell(sp)

	return []Event{{Type: EvtSpellPicked, PlayerID: s.current.ID, SpellID: sp.ID}}, nil
}

// Advance asks the rotation for the next player. The rotation's wraparound
// rule is trusted as-is.
func (s *Session) Advance() ([]Event, error) {
	if !s.selected {
		return nil, errNothingSelected
	}
	s.selected = false

	next := s.rotation.SwitchToNextPlayer()
	if IndexOf(s.players, next) < 0 {
		return nil, ErrUnknownPlayer
	}
	s.current = next

	events := []Event{{Type: EvtTurnAdvanced, PlayerID: next.ID}}

	if s.finishing {
		s.finishing = false
		s.status = StatusComplete
		events = append(events, Event{Type: EvtDraftCompleted})
	}
	return events, nil
}
