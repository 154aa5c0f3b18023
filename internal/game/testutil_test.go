package game

import (
	"testing"

	"github.com/mozilla/datawar/internal/log"
)

// newScriptedGame deals a game where each side's opening plays are fixed by
// typeId. The remainder of the deck is shuffled deterministically from the
// seed.
func newScriptedGame(t *testing.T, seed int64, playerCards, cpuCards []string) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g, err := NewGame(nil, Options{
		Seed:           seed,
		PlayerStrategy: OrderCustom,
		CPUStrategy:    OrderCustom,
		PlayerCustom:   playerCards,
		CPUCustom:      cpuCards,
		Logger:         logger,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, logger
}

// newScriptedMachine wraps a scripted game in a controller fast-forwarded
// to the ready state.
func newScriptedMachine(t *testing.T, seed int64, playerCards, cpuCards []string) (*Machine, *log.MemoryLogger) {
	t.Helper()
	g, logger := newScriptedGame(t, seed, playerCards, cpuCards)
	m := NewMachine(g, MachineOptions{SkipGuide: true})
	m.Start()
	if m.Phase() != PhaseReady {
		t.Fatalf("expected ready after Start, got %s", m.Phase())
	}
	return m, logger
}

// runScriptedTurn plays one full hand through the engine without the phase
// controller, auto-answering any selection with the first candidates.
func runScriptedTurn(t *testing.T, g *Game) {
	t.Helper()
	g.BeginTurn()
	g.PlayBothSides()
	for g.IsDataWar() && !g.HasWinner() {
		g.DataWarFaceDown()
		g.DataWarFaceUp()
	}
	if g.HasWinner() {
		return
	}
	g.ResolveComparison()
	for !g.DrainEffects() {
		susp := g.Suspension()
		ids := make([]string, 0, susp.Max)
		for _, c := range susp.Candidates[:susp.Max] {
			ids = append(ids, c.ID)
		}
		if err := g.ProvideSelection(ids); err != nil {
			t.Fatalf("ProvideSelection: %v", err)
		}
	}
	g.FinishTurn()
}

// bankLaunchStack moves one launch-stack instance out of either draw pile
// into the given seat's collection, keeping the total card count intact.
func bankLaunchStack(t *testing.T, g *Game, to PlayerID) {
	t.Helper()
	// Search bottom-up so scripted cards at the top stay in place.
	for _, p := range []*PlayerState{g.State(PlayerCPU), g.State(PlayerHuman)} {
		for i := len(p.Deck) - 1; i >= 0; i-- {
			c := p.Deck[i]
			if c.SpecialType == SpecialLaunchStack {
				p.Deck = append(p.Deck[:i], p.Deck[i+1:]...)
				dst := g.State(to)
				dst.LaunchStacks = append(dst.LaunchStacks, c)
				return
			}
		}
	}
	t.Fatal("no launch-stack card left in either deck")
}

func hasEventWithCard(logger *log.MemoryLogger, et log.EventType, typeID string) bool {
	for _, e := range logger.EventsOfType(et) {
		if e.Card == typeID {
			return true
		}
	}
	return false
}

func deckIDs(deck []Card) map[string]bool {
	ids := make(map[string]bool, len(deck))
	for _, c := range deck {
		ids[c.ID] = true
	}
	return ids
}
