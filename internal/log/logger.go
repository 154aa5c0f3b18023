package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Drain returns all accumulated events and clears the buffer.
func (l *MemoryLogger) Drain() []GameEvent {
	events := l.events
	l.events = nil
	return events
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	for len(phase) < 24 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d ===", turn),
	}
}

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase -> %s", phase),
	}
}

func NewShuffleEvent(turn int, phase, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles their deck", player),
	}
}

func NewPlayEvent(turn int, phase, player, card string, faceDown bool) GameEvent {
	detail := fmt.Sprintf("%s plays %s", player, card)
	if faceDown {
		detail = fmt.Sprintf("%s plays a card face-down", player)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlay,
		Card:    card,
		Details: detail,
	}
}

func NewAnotherPlayEvent(turn int, phase, player, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAnotherPlay,
		Card:    card,
		Details: fmt.Sprintf("%s must play again (%s)", player, card),
	}
}

func NewModifierEvent(turn int, phase, player, card string, oldValue, newValue int, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventModifier,
		Card:    card,
		Details: fmt.Sprintf("%s applies %s: %s value %d -> %d", player, card, target, oldValue, newValue),
	}
}

func NewEffectBlockedEvent(turn int, phase, player, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectBlocked,
		Card:    card,
		Details: fmt.Sprintf("%s's %s is negated by Tracker-Smacker", player, card),
	}
}

func NewInstantEvent(turn int, phase, player, card, detail string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventInstant,
		Card:    card,
		Details: detail,
	}
}

func NewDeckSwapEvent(turn int, phase, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeckSwap,
		Details: "Forced Empathy: draw decks swap sides",
	}
}

func NewEffectQueuedEvent(turn int, phase, player, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectQueued,
		Card:    card,
		Details: fmt.Sprintf("%s queues %s for end of turn", player, card),
	}
}

func NewEffectAppliedEvent(turn int, phase, player, card, detail string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectApplied,
		Card:    card,
		Details: detail,
	}
}

func NewEffectSkippedEvent(turn int, phase, player, card, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectSkipped,
		Card:    card,
		Details: fmt.Sprintf("%s's %s does not fire (%s)", player, card, reason),
	}
}

func NewCompareEvent(turn int, phase string, playerValue, cpuValue int, result string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventCompare,
		Details: fmt.Sprintf("compare: player %d vs cpu %d -> %s", playerValue, cpuValue, result),
	}
}

func NewDataWarEvent(turn int, phase, detail string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDataWar,
		Details: detail,
	}
}

func NewStealEvent(turn int, phase, player, card string, from string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSteal,
		Card:    card,
		Details: fmt.Sprintf("%s takes %s from %s", player, card, from),
	}
}

func NewRecallEvent(turn int, phase, player string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRecall,
		Details: fmt.Sprintf("Mandatory Recall: %d launch stack(s) shuffled back into %s's deck", count, player),
	}
}

func NewLaunchStackEvent(turn int, phase, player string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventLaunchStack,
		Details: fmt.Sprintf("%s collects a launch stack (%d total)", player, count),
	}
}

func NewCollectEvent(turn int, phase, player string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCollect,
		Details: fmt.Sprintf("%s collects %d card(s)", player, count),
	}
}

func NewMiniGameEvent(turn int, phase, detail string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventMiniGame,
		Details: detail,
	}
}

func NewWinEvent(turn int, phase, winner, condition string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins the game (%s)", winner, condition),
	}
}

func NewResetEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventReset,
		Details: "game reset",
	}
}
