// Package web serves the browser UI: embedded static files, a card
// composition API, and a per-connection websocket session that drives one
// game each.
package web

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/mozilla/datawar/internal/game"
	"github.com/mozilla/datawar/internal/view"
)

//go:embed static
var staticFiles embed.FS

// CardTypeInfo is the JSON representation of one composition entry for the
// /api/cards endpoint.
type CardTypeInfo struct {
	TypeID              string `json:"typeId"`
	Value               int    `json:"value"`
	Special             string `json:"special,omitempty"`
	TriggersAnotherPlay bool   `json:"triggersAnotherPlay,omitempty"`
	Count               int    `json:"count"`
}

// Server is the Data War web UI server.
type Server struct {
	cfg *game.Config
	mux *http.ServeMux
}

// NewServer creates a web server playing games with the given composition.
func NewServer(cfg *game.Config) *Server {
	if cfg == nil {
		cfg = game.DefaultConfig()
	}
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardTypeInfo
	for _, e := range s.cfg.Cards {
		cards = append(cards, CardTypeInfo{
			TypeID:              e.TypeID,
			Value:               e.Value,
			Special:             e.SpecialType,
			TriggersAnotherPlay: e.TriggersAnotherPlay,
			Count:               e.Count,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

// clientMessage is the envelope for all browser-to-server messages.
type clientMessage struct {
	Type    string   `json:"type"`              // "event"
	Event   string   `json:"event,omitempty"`   // phase-controller event name
	CardIDs []string `json:"cardIds,omitempty"` // for CARD_SELECTED
}

// serverMessage is the envelope for all server-to-browser messages.
type serverMessage struct {
	Type   string           `json:"type"` // "state" | "error"
	State  *view.StateView  `json:"state,omitempty"`
	Events []view.EventView `json:"events,omitempty"`
	Error  string           `json:"error,omitempty"`
}

var clientEvents = map[string]game.Event{
	"NEXT":            game.EventNext,
	"REVEAL_CARDS":    game.EventRevealCards,
	"CARDS_REVEALED":  game.EventCardsRevealed,
	"TAP_DECK":        game.EventTapDeck,
	"CARD_SELECTED":   game.EventCardSelected,
	"DISMISS_EFFECT":  game.EventDismissEffect,
	"ANIMATIONS_DONE": game.EventAnimationsDone,
	"RESET_GAME":      game.EventResetGame,
	"QUIT_GAME":       game.EventQuitGame,
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// One game per connection. The engine is synchronous, so this loop is
	// the only goroutine touching it.
	g, err := game.NewGame(s.cfg, game.Options{Seed: time.Now().UnixNano()})
	if err != nil {
		log.Printf("new game: %v", err)
		return
	}
	m := game.NewMachine(g, game.MachineOptions{})
	lastSeq := 0

	send := func(msg serverMessage) error {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return wsConn.Write(ctx, websocket.MessageText, data)
	}
	sendState := func() error {
		sv := view.BuildStateView(m)
		events := view.BuildEventViews(g.Events(), lastSeq)
		if n := len(events); n > 0 {
			lastSeq = events[n-1].Seq
		}
		return send(serverMessage{Type: "state", State: &sv, Events: events})
	}

	if err := sendState(); err != nil {
		return
	}

	for {
		_, data, err := wsConn.Read(ctx)
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			send(serverMessage{Type: "error", Error: "malformed message"})
			continue
		}
		if msg.Type != "event" {
			send(serverMessage{Type: "error", Error: "unknown message type"})
			continue
		}
		ev, ok := clientEvents[msg.Event]
		if !ok {
			send(serverMessage{Type: "error", Error: "unknown event " + msg.Event})
			continue
		}
		// Undefined events for the current phase are a silent no-op; the
		// refreshed state tells the client where things stand.
		m.Dispatch(ev, msg.CardIDs...)
		if err := sendState(); err != nil {
			return
		}
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
