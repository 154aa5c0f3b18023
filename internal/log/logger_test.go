package log

import (
	"strings"
	"testing"
)

func TestMemoryLoggerAssignsSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, "revealing"))
	l.Log(NewPlayEvent(1, "revealing", "player", "common-3", false))
	l.Log(NewPlayEvent(1, "revealing", "cpu", "common-5", false))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d: seq %d", i, e.Seq)
		}
	}

	plays := l.EventsOfType(EventPlay)
	if len(plays) != 2 {
		t.Errorf("expected 2 play events, got %d", len(plays))
	}
	if last := l.LastEvent(); last.Card != "common-5" {
		t.Errorf("last event card: got %q", last.Card)
	}

	drained := l.Drain()
	if len(drained) != 3 || len(l.Events()) != 0 {
		t.Error("drain must return and clear the buffer")
	}
}

func TestFaceDownPlayHidesCard(t *testing.T) {
	e := NewPlayEvent(2, "data_war.reveal_face_down", "cpu", "common-4", true)
	if !strings.Contains(e.Details, "face-down") {
		t.Errorf("details: %q", e.Details)
	}
	if strings.Contains(e.Details, "common-4") {
		t.Errorf("face-down detail leaks the card: %q", e.Details)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var sb strings.Builder
	l := NewTextLogger(&sb)
	l.Log(NewTurnEvent(3, "revealing"))
	l.Log(NewCompareEvent(3, "comparing", 4, 2, "player wins the hand"))

	out := sb.String()
	if !strings.Contains(out, "=== Turn 3 ===") {
		t.Errorf("missing turn header: %q", out)
	}
	if !strings.Contains(out, "player 4 vs cpu 2") {
		t.Errorf("missing comparison line: %q", out)
	}
	if got := len(strings.Split(strings.TrimSpace(out), "\n")); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}

	// The text logger keeps the in-memory view too.
	if len(l.Events()) != 2 {
		t.Error("text logger must retain events")
	}
}
