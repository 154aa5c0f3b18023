package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mozilla/datawar/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// configFile is the optional deck composition YAML path, set by main.
var configFile string

// SetConfigFile sets the path to the composition YAML file. Empty means
// the stock 64-card deck.
func SetConfigFile(path string) {
	configFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(revealCardsTool(), handleRevealCards)
	s.AddTool(tapDeckTool(), handleTapDeck)
	s.AddTool(dismissEffectTool(), handleDismissEffect)
	s.AddTool(selectCardsTool(), handleSelectCards)
	s.AddTool(resetGameTool(), handleResetGame)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Data War game against the cpu. Returns the initial state at the 'ready' phase. "+
			"Play proceeds by tool calls: reveal_cards flips a card each, tap_deck advances Data War rounds and pre-reveal picks, "+
			"dismiss_effect acknowledges special-effect modals, select_cards answers card picks."),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible deal; 0 or omitted for a random game")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state, phase, pending suspension and new events. Read-only."),
	)
}

func revealCardsTool() mcp.Tool {
	return mcp.NewTool("reveal_cards",
		mcp.WithDescription("Reveal this turn's cards (valid in the 'ready' phase). The engine plays both sides, applies "+
			"instant effects and mandatory extra plays, then compares values. Automatically acknowledges the reveal animation."),
	)
}

func tapDeckTool() mcp.Tool {
	return mcp.NewTool("tap_deck",
		mcp.WithDescription("Tap the deck to advance: deals the Data War face-up card, closes a war round, or opens the "+
			"pre-reveal card pick (valid in data_war.* and pre_reveal.awaiting_interaction)."),
	)
}

func dismissEffectTool() mcp.Tool {
	return mcp.NewTool("dismiss_effect",
		mcp.WithDescription("Dismiss the special-effect modal so queued effects apply (valid in special_effect.showing)."),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Answer a pending card selection with card ids from the suspension's candidates list. "+
			"Used for Temper Tantrum steals (up to 2 ids) and Open-What-You-Want picks (exactly 1 id)."),
		mcp.WithString("card_ids", mcp.Required(), mcp.Description("Space-separated card ids, e.g. 'a1b2 c3d4'")),
	)
}

func resetGameTool() mcp.Tool {
	return mcp.NewTool("reset_game",
		mcp.WithDescription("Abandon the current game and deal a fresh one with the same options."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Use reset_game to start over."), nil
	}

	var cfg *game.Config
	if configFile != "" {
		loaded, err := game.LoadConfig(configFile)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load composition: %v", err), nil
		}
		cfg = loaded
	}

	seed := int64(request.GetInt("seed", 0))
	sess, err := NewGameSession(cfg, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.snapshot())), nil
}

func handleRevealCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	resp := activeSession.dispatch(game.EventRevealCards)
	// The reveal animation is cosmetic for an agent; acknowledge it so the
	// response already reflects the comparison outcome.
	resp = activeSession.dispatch(game.EventCardsRevealed)
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleTapDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.dispatch(game.EventTapDeck))), nil
}

func handleDismissEffect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.dispatch(game.EventDismissEffect))), nil
}

func handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	ids := strings.Fields(request.GetString("card_ids", ""))
	if len(ids) == 0 {
		return mcp.NewToolResultError("card_ids must name at least one candidate id."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.dispatch(game.EventCardSelected, ids...))), nil
}

func handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	activeSession.dispatch(game.EventResetGame)
	// Land back at the ready phase rather than the menu screens.
	activeSession.mu.Lock()
	activeSession.machine.Start()
	activeSession.mu.Unlock()
	return mcp.NewToolResultText(respondJSON(activeSession.snapshot())), nil
}
