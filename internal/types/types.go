package types

import "github.com/DoyleJ11/spell-draft-backend/internal/lobby"

type ClientMessage struct {
	Type   string `json:"type"` // "Click"
	Slot   *int   `json:"slot,omitempty"`
	Player string `json:"player,omitempty"` // who the click is for; must be the player to act
}

type ServerMessage struct {
	Type    string       `json:"type"` // "StateSnapshot" | "Error"
	Version int          `json:"version,omitempty"`
	State   *lobby.State `json:"state,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type CreateLobbyRequest struct {
	Players      []string `json:"players"`
	SpellsAmount int      `json:"spells_amount,omitempty"`
	ResumeCode   string   `json:"resume_code,omitempty"`
}

type CreateLobbyResponse struct {
	Code string `json:"code"`
}

type ClickRequest struct {
	Slot   *int   `json:"slot"`
	Player string `json:"player"`
}

type ListLobbiesResponse struct {
	Codes []string `json:"codes"`
}
