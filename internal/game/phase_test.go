package game

import (
	"strings"
	"testing"

	"github.com/mozilla/datawar/internal/log"
)

func TestMenuFlow(t *testing.T) {
	g, _ := newScriptedGame(t, 30, nil, nil)
	m := NewMachine(g, MachineOptions{})

	want := []Phase{
		PhaseSelectBillionaire, PhaseSelectBackground, PhaseIntro,
		PhaseQuickStartGuide, PhaseYourMission, PhaseVSAnimation, PhaseReady,
	}
	for _, p := range want {
		if !m.Dispatch(EventNext) {
			t.Fatalf("NEXT rejected in %s", m.Phase())
		}
		if m.Phase() != p {
			t.Fatalf("expected %s, got %s", p, m.Phase())
		}
	}
}

func TestSkipGuide(t *testing.T) {
	g, _ := newScriptedGame(t, 31, nil, nil)
	m := NewMachine(g, MachineOptions{SkipGuide: true})
	m.Dispatch(EventNext) // select_billionaire
	m.Dispatch(EventNext) // select_background
	m.Dispatch(EventNext) // intro
	m.Dispatch(EventNext)
	if m.Phase() != PhaseYourMission {
		t.Errorf("expected your_mission, got %s", m.Phase())
	}
}

func TestUndefinedEventsAreIgnored(t *testing.T) {
	g, _ := newScriptedGame(t, 32, nil, nil)
	m := NewMachine(g, MachineOptions{})

	if m.Dispatch(EventTapDeck) {
		t.Error("TAP_DECK in welcome must be a no-op")
	}
	if m.Phase() != PhaseWelcome {
		t.Errorf("phase changed to %s", m.Phase())
	}

	m.Start()
	if m.Dispatch(EventCardsRevealed) {
		t.Error("CARDS_REVEALED in ready must be a no-op")
	}
	if m.Dispatch(EventDismissEffect) {
		t.Error("DISMISS_EFFECT in ready must be a no-op")
	}
}

func TestRevealCycle(t *testing.T) {
	m, _ := newScriptedMachine(t, 33, []string{"common-6"}, []string{"common-1"})

	if !m.Dispatch(EventRevealCards) {
		t.Fatal("REVEAL_CARDS rejected in ready")
	}
	if m.Phase() != PhaseRevealing {
		t.Fatalf("expected revealing, got %s", m.Phase())
	}
	if got := m.Game().Turn(); got != 1 {
		t.Errorf("turn: got %d, want 1", got)
	}

	if !m.Dispatch(EventCardsRevealed) {
		t.Fatal("CARDS_REVEALED rejected")
	}
	// 6 vs 1, no pending effects: straight through to the next ready.
	if m.Phase() != PhaseReady {
		t.Fatalf("expected ready, got %s", m.Phase())
	}
	if got := m.Game().State(PlayerHuman).DeckCount(); got != 33 {
		t.Errorf("player deck: got %d, want 33", got)
	}
}

// Hostile takeover routes comparison into the data-war sub-states, never
// straight to resolving.
func TestHostileTakeoverRoutesToDataWar(t *testing.T) {
	m, _ := newScriptedMachine(t, 34,
		[]string{"hostile-takeover"},
		[]string{"common-2", "common-1", "common-3", "common-4", "common-5"})

	m.Dispatch(EventRevealCards)
	m.Dispatch(EventCardsRevealed)
	if m.Phase() != PhaseDataWarFaceDown {
		t.Fatalf("expected data_war.reveal_face_down, got %s", m.Phase())
	}
	if got := m.Suspension().Kind; got != SuspensionAwaitingTap {
		t.Errorf("suspension: got %s, want awaiting_tap", got)
	}

	m.Dispatch(EventTapDeck)
	if m.Phase() != PhaseDataWarFaceUp {
		t.Fatalf("expected data_war.reveal_face_up, got %s", m.Phase())
	}
	m.Dispatch(EventTapDeck)

	// 0 vs at least 2 cannot tie again; the war resolves.
	if m.Phase() != PhaseReady && m.Phase() != PhaseGameOver {
		t.Fatalf("war did not resolve, stuck in %s", m.Phase())
	}
	if m.TurnCount() < 2 {
		t.Errorf("turn count: got %d, want at least 2 (hand + war cycle)", m.TurnCount())
	}
}

func TestPhaseStringsAreDotDelimited(t *testing.T) {
	nested := map[Phase]string{
		PhaseDataWarFaceDown:   "data_war.reveal_face_down",
		PhaseDataWarFaceUp:     "data_war.reveal_face_up",
		PhaseSpecialShowing:    "special_effect.showing",
		PhasePreRevealAwaiting: "pre_reveal.awaiting_interaction",
	}
	for p, want := range nested {
		if p.String() != want {
			t.Errorf("%d: got %s, want %s", p, p.String(), want)
		}
	}
	if strings.Contains(PhaseReady.String(), ".") {
		t.Error("flat states must not be dot-delimited")
	}
}

func TestSpecialEffectGating(t *testing.T) {
	m, logger := newScriptedMachine(t, 35, []string{"tracker-2", "leveraged-buyout"}, []string{"common-1"})

	m.Dispatch(EventRevealCards)
	m.Dispatch(EventCardsRevealed)
	if m.Phase() != PhaseSpecialShowing {
		t.Fatalf("expected special_effect.showing, got %s", m.Phase())
	}
	if got := m.Suspension().Kind; got != SuspensionAwaitingModalDismiss {
		t.Errorf("suspension: got %s", got)
	}

	// The drain only runs after the dismissal.
	if len(logger.EventsOfType(log.EventSteal)) != 0 {
		t.Error("effects must not apply before DISMISS_EFFECT")
	}
	m.Dispatch(EventDismissEffect)
	if m.Phase() != PhaseReady {
		t.Fatalf("expected ready after processing, got %s", m.Phase())
	}
	if len(logger.EventsOfType(log.EventSteal)) == 0 {
		t.Error("expected the buyout steal after processing")
	}
}

func TestSelectionSuspensionThroughMachine(t *testing.T) {
	m, _ := newScriptedMachine(t, 36, []string{"temper-tantrum"}, []string{"common-5"})

	m.Dispatch(EventRevealCards)
	m.Dispatch(EventCardsRevealed)
	if m.Phase() != PhaseSpecialShowing {
		t.Fatalf("expected special_effect.showing, got %s", m.Phase())
	}
	m.Dispatch(EventDismissEffect)
	if m.Phase() != PhaseSpecialProcessing {
		t.Fatalf("expected special_effect.processing, got %s", m.Phase())
	}
	susp := m.Suspension()
	if susp.Kind != SuspensionAwaitingSelection || len(susp.Candidates) == 0 {
		t.Fatalf("expected a selection suspension, got %s", susp.Kind)
	}

	if m.Dispatch(EventCardSelected, "bogus") {
		t.Error("invalid selection must be rejected")
	}
	if !m.Dispatch(EventCardSelected, susp.Candidates[0].ID) {
		t.Fatal("valid selection rejected")
	}
	if m.Phase() != PhaseReady {
		t.Fatalf("expected ready, got %s", m.Phase())
	}
}

func TestPreRevealPickFlow(t *testing.T) {
	m, _ := newScriptedMachine(t, 37, []string{"tracker-2", "open-what-you-want"}, []string{"common-1"})

	m.Dispatch(EventRevealCards)
	m.Dispatch(EventCardsRevealed)
	m.Dispatch(EventDismissEffect)
	if m.Phase() != PhasePreRevealAwaiting {
		t.Fatalf("expected pre_reveal.awaiting_interaction, got %s", m.Phase())
	}

	m.Dispatch(EventTapDeck)
	if m.Phase() != PhasePreRevealSelecting {
		t.Fatalf("expected pre_reveal.selecting, got %s", m.Phase())
	}
	susp := m.Suspension()
	if susp.Kind != SuspensionAwaitingSelection || len(susp.Candidates) != 3 {
		t.Fatalf("expected 3 pick candidates, got %d", len(susp.Candidates))
	}

	chosen := susp.Candidates[1]
	if !m.Dispatch(EventCardSelected, chosen.ID) {
		t.Fatal("pick rejected")
	}
	// The pick loops straight back into the reveal cycle and the chosen
	// card is the one just played.
	if m.Phase() != PhaseRevealing {
		t.Fatalf("expected revealing, got %s", m.Phase())
	}
	inPlay := m.Game().State(PlayerHuman).InPlay()
	if len(inPlay) == 0 || inPlay[0].ID != chosen.ID {
		t.Error("expected the chosen card to be the first card played")
	}
}

func TestResetClearsEverything(t *testing.T) {
	m, _ := newScriptedMachine(t, 38, []string{"temper-tantrum"}, []string{"common-5"})

	m.Dispatch(EventRevealCards)
	m.Dispatch(EventCardsRevealed)
	m.Dispatch(EventDismissEffect)
	if m.Game().Suspension().Kind != SuspensionAwaitingSelection {
		t.Fatal("setup: expected a suspended drain")
	}

	// Reset must be safe from a suspended point.
	if !m.Dispatch(EventResetGame) {
		t.Fatal("RESET_GAME rejected")
	}
	if m.Phase() != PhaseWelcome {
		t.Fatalf("expected welcome, got %s", m.Phase())
	}
	g := m.Game()
	if g.Turn() != 0 || g.HasWinner() || g.HasPendingEffects() {
		t.Error("reset left stale turn state")
	}
	if !g.Suspension().None() {
		t.Error("reset left a dangling suspension")
	}
	if g.TrackerSmackerActive() != "" {
		t.Error("reset left the smacker flag set")
	}
	if g.TotalCards() != 64 {
		t.Errorf("reset broke conservation: %d cards", g.TotalCards())
	}
	if got := g.State(PlayerHuman).DeckCount(); got != 32 {
		t.Errorf("player deck after reset: got %d, want 32", got)
	}
}

func TestQuitFromAnyState(t *testing.T) {
	m, _ := newScriptedMachine(t, 39, nil, nil)
	m.Dispatch(EventRevealCards)
	if !m.Dispatch(EventQuitGame) {
		t.Fatal("QUIT_GAME rejected")
	}
	if m.Phase() != PhaseWelcome {
		t.Errorf("expected welcome, got %s", m.Phase())
	}
}

func TestRunTurnCompletesAHand(t *testing.T) {
	m, _ := newScriptedMachine(t, 40, []string{"common-6"}, []string{"common-1"})
	if !m.RunTurn() {
		t.Fatal("RunTurn failed")
	}
	if m.Game().Turn() != 1 {
		t.Errorf("turn: got %d, want 1", m.Game().Turn())
	}
	if m.Phase() != PhaseReady {
		t.Errorf("expected ready, got %s", m.Phase())
	}
}
