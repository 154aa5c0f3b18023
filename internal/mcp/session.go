// Package mcp exposes a Data War game over the Model Context Protocol so
// an agent can play the human seat through tool calls. The engine is
// synchronous, so every tool is a direct dispatch followed by a fresh
// state view; there is no background game loop.
package mcp

import (
	"encoding/json"
	"sync"

	"github.com/mozilla/datawar/internal/game"
	"github.com/mozilla/datawar/internal/log"
	"github.com/mozilla/datawar/internal/view"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	State    view.StateView   `json:"state"`
	Events   []view.EventView `json:"events"`
	GameOver bool             `json:"game_over"`
	Winner   string           `json:"winner,omitempty"`
	Result   string           `json:"result,omitempty"`
}

// GameSession holds one game and the event cursor for incremental replay.
// The mutex serializes tool calls; the engine itself is single-owner.
type GameSession struct {
	mu      sync.Mutex
	machine *game.Machine
	logger  *log.MemoryLogger
	lastSeq int
}

// NewGameSession deals a game and fast-forwards the menu screens so the
// first tool response is already at the ready state.
func NewGameSession(cfg *game.Config, seed int64) (*GameSession, error) {
	logger := log.NewMemoryLogger()
	g, err := game.NewGame(cfg, game.Options{Seed: seed, Logger: logger})
	if err != nil {
		return nil, err
	}
	m := game.NewMachine(g, game.MachineOptions{SkipGuide: true})
	m.Start()
	return &GameSession{machine: m, logger: logger}, nil
}

// dispatch feeds an event into the controller and reports the new state.
func (s *GameSession) dispatch(ev game.Event, cardIDs ...string) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.Dispatch(ev, cardIDs...)
	return s.respond()
}

// snapshot reports the current state without dispatching anything.
func (s *GameSession) snapshot() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.respond()
}

func (s *GameSession) respond() *ToolResponse {
	g := s.machine.Game()
	events := view.BuildEventViews(g.Events(), s.lastSeq)
	if n := len(events); n > 0 {
		s.lastSeq = events[n-1].Seq
	}
	if events == nil {
		events = []view.EventView{}
	}
	resp := &ToolResponse{
		State:    view.BuildStateView(s.machine),
		Events:   events,
		GameOver: g.HasWinner(),
	}
	if g.HasWinner() {
		resp.Winner = g.Winner().String()
		resp.Result = g.WinCondition().String()
	}
	return resp
}

func respondJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal response"}`
	}
	return string(data)
}
