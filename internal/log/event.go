package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPhaseChange
	EventShuffle
	EventPlay
	EventAnotherPlay
	EventModifier
	EventEffectBlocked
	EventInstant
	EventDeckSwap
	EventEffectQueued
	EventEffectApplied
	EventEffectSkipped
	EventCompare
	EventDataWar
	EventSteal
	EventRecall
	EventLaunchStack
	EventCollect
	EventMiniGame
	EventWin
	EventReset
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPhaseChange:
		return "PhaseChange"
	case EventShuffle:
		return "Shuffle"
	case EventPlay:
		return "Play"
	case EventAnotherPlay:
		return "AnotherPlay"
	case EventModifier:
		return "Modifier"
	case EventEffectBlocked:
		return "EffectBlocked"
	case EventInstant:
		return "Instant"
	case EventDeckSwap:
		return "DeckSwap"
	case EventEffectQueued:
		return "EffectQueued"
	case EventEffectApplied:
		return "EffectApplied"
	case EventEffectSkipped:
		return "EffectSkipped"
	case EventCompare:
		return "Compare"
	case EventDataWar:
		return "DataWar"
	case EventSteal:
		return "Steal"
	case EventRecall:
		return "Recall"
	case EventLaunchStack:
		return "LaunchStack"
	case EventCollect:
		return "Collect"
	case EventMiniGame:
		return "MiniGame"
	case EventWin:
		return "Win"
	case EventReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // phase string at emission time (e.g. "data_war.reveal_face_up")
	Player  string    // acting seat ("player" or "cpu"), empty for neutral events
	Type    EventType // event type
	Card    string    // card typeId (if applicable)
	Details string    // human-readable detail string
}
