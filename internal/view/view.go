// Package view builds the read-only JSON representations that the web and
// agent surfaces expose to their clients. It never mutates game state.
package view

import (
	"github.com/mozilla/datawar/internal/game"
	"github.com/mozilla/datawar/internal/log"
)

// CardView describes one card for the client.
type CardView struct {
	ID          string `json:"id"`
	TypeID      string `json:"typeId"`
	Value       int    `json:"value"`
	Special     string `json:"special,omitempty"`
	FaceDown    bool   `json:"faceDown,omitempty"`
	Description string `json:"description,omitempty"`
}

// PlayerView shows one seat of the table.
type PlayerView struct {
	DeckCount     int        `json:"deckCount"`
	InPlay        []CardView `json:"inPlay"`
	TurnValue     int        `json:"turnValue"`
	CarryModifier int        `json:"carryModifier,omitempty"`
	LaunchStacks  int        `json:"launchStacks"`
}

// SuspensionView tells the client what input is expected.
type SuspensionView struct {
	Kind       string     `json:"kind"`
	Prompt     string     `json:"prompt,omitempty"`
	Candidates []CardView `json:"candidates,omitempty"`
	Min        int        `json:"min,omitempty"`
	Max        int        `json:"max,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  string `json:"player,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// StateView is the whole table from the human player's perspective. Deck
// order and face-down cards on either side stay hidden until revealed.
type StateView struct {
	Turn         int            `json:"turn"`
	Phase        string         `json:"phase"`
	You          PlayerView     `json:"you"`
	Opponent     PlayerView     `json:"opponent"`
	Pending      []string       `json:"pending,omitempty"`
	Suspension   SuspensionView `json:"suspension"`
	Winner       string         `json:"winner,omitempty"`
	WinCondition string         `json:"winCondition,omitempty"`
}

func buildCard(c game.Card, faceDown bool) CardView {
	if faceDown {
		return CardView{FaceDown: true}
	}
	v := CardView{ID: c.ID, TypeID: c.TypeID, Value: c.Value}
	if c.IsSpecial {
		v.Special = c.SpecialType.String()
	}
	return v
}

func buildPlayer(p game.PlayerSnapshot, hideFaceDown bool) PlayerView {
	pv := PlayerView{
		DeckCount:     p.DeckCount,
		TurnValue:     p.TurnValue,
		CarryModifier: p.CarryModifier,
		LaunchStacks:  p.LaunchStacks,
	}
	for _, pc := range p.InPlay {
		pv.InPlay = append(pv.InPlay, buildCard(pc.Card, hideFaceDown && pc.FaceDown))
	}
	return pv
}

func buildSuspension(s game.Suspension) SuspensionView {
	sv := SuspensionView{Kind: s.Kind.String(), Prompt: s.Prompt, Min: s.Min, Max: s.Max}
	for _, c := range s.Candidates {
		sv.Candidates = append(sv.Candidates, buildCard(c, false))
	}
	return sv
}

// BuildStateView renders the machine's current state for the human seat.
// The suspension comes from the controller so tap/selection prompts cover
// both drain suspensions and phase-level waits.
func BuildStateView(m *game.Machine) StateView {
	snap := m.Game().Snapshot()
	sv := StateView{
		Turn:       snap.Turn,
		Phase:      m.Phase().String(),
		You:        buildPlayer(snap.Player, true),
		Opponent:   buildPlayer(snap.CPU, true),
		Suspension: buildSuspension(m.Suspension()),
	}
	for _, eff := range snap.Pending {
		sv.Pending = append(sv.Pending, eff.String())
	}
	if snap.Winner != "" {
		sv.Winner = snap.Winner.String()
		sv.WinCondition = snap.WinCondition.String()
	}
	return sv
}

// BuildEventViews converts raw events for the client, skipping everything
// at or before sinceSeq.
func BuildEventViews(events []log.GameEvent, sinceSeq int) []EventView {
	var out []EventView
	for _, e := range events {
		if e.Seq <= sinceSeq {
			continue
		}
		out = append(out, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Phase:   e.Phase,
			Player:  e.Player,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return out
}
