package game

import "fmt"

// --- Enums ---

// PlayerID identifies one of the two seats.
type PlayerID string

const (
	PlayerHuman PlayerID = "player"
	PlayerCPU   PlayerID = "cpu"
)

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID {
	if p == PlayerHuman {
		return PlayerCPU
	}
	return PlayerHuman
}

func (p PlayerID) String() string {
	return string(p)
}

// SpecialType is the closed set of special-card behaviors. New card types
// must be added here and handled exhaustively in the resolver.
type SpecialType int

const (
	SpecialNone SpecialType = iota
	SpecialTracker
	SpecialBlocker
	SpecialLaunchStack
	SpecialForcedEmpathy
	SpecialOpenWhatYouWant
	SpecialTrackerSmacker
	SpecialMandatoryRecall
	SpecialHostileTakeover
	SpecialPatentTheft
	SpecialLeveragedBuyout
	SpecialTemperTantrum
	SpecialDataGrab
)

func (s SpecialType) String() string {
	switch s {
	case SpecialTracker:
		return "tracker"
	case SpecialBlocker:
		return "blocker"
	case SpecialLaunchStack:
		return "launch_stack"
	case SpecialForcedEmpathy:
		return "forced_empathy"
	case SpecialOpenWhatYouWant:
		return "open_what_you_want"
	case SpecialTrackerSmacker:
		return "tracker_smacker"
	case SpecialMandatoryRecall:
		return "mandatory_recall"
	case SpecialHostileTakeover:
		return "hostile_takeover"
	case SpecialPatentTheft:
		return "patent_theft"
	case SpecialLeveragedBuyout:
		return "leveraged_buyout"
	case SpecialTemperTantrum:
		return "temper_tantrum"
	case SpecialDataGrab:
		return "data_grab"
	default:
		return "none"
	}
}

// ParseSpecialType maps a config string to its SpecialType.
func ParseSpecialType(s string) (SpecialType, error) {
	switch s {
	case "", "none":
		return SpecialNone, nil
	case "tracker":
		return SpecialTracker, nil
	case "blocker":
		return SpecialBlocker, nil
	case "launch_stack":
		return SpecialLaunchStack, nil
	case "forced_empathy":
		return SpecialForcedEmpathy, nil
	case "open_what_you_want":
		return SpecialOpenWhatYouWant, nil
	case "tracker_smacker":
		return SpecialTrackerSmacker, nil
	case "mandatory_recall":
		return SpecialMandatoryRecall, nil
	case "hostile_takeover":
		return SpecialHostileTakeover, nil
	case "patent_theft":
		return SpecialPatentTheft, nil
	case "leveraged_buyout":
		return SpecialLeveragedBuyout, nil
	case "temper_tantrum":
		return SpecialTemperTantrum, nil
	case "data_grab":
		return SpecialDataGrab, nil
	default:
		return SpecialNone, fmt.Errorf("unknown special type %q", s)
	}
}

// RequiresAnotherPlay reports whether cards of this special type mandate an
// immediate follow-up play by the same player.
func (s SpecialType) RequiresAnotherPlay() bool {
	return s == SpecialTracker || s == SpecialBlocker || s == SpecialLaunchStack
}

// IsBillionaireMove reports whether Tracker-Smacker negates this effect when
// its owner is the blocked player. Launch stacks, recalls, open-what-you-want
// and data grabs are explicitly exempt.
func (s SpecialType) IsBillionaireMove() bool {
	return s == SpecialPatentTheft || s == SpecialLeveragedBuyout || s == SpecialTemperTantrum
}

// WinCondition records how a game was won.
type WinCondition int

const (
	WinNone WinCondition = iota
	WinAllCards
	WinLaunchStacks
)

func (w WinCondition) String() string {
	switch w {
	case WinAllCards:
		return "all_cards"
	case WinLaunchStacks:
		return "launch_stacks"
	default:
		return "none"
	}
}

// --- Card (immutable once created) ---

// Card is a single physical card instance. ID is unique per instance for the
// lifetime of the process; TypeID identifies the printed card.
type Card struct {
	ID                  string
	TypeID              string
	Value               int
	IsSpecial           bool
	SpecialType         SpecialType
	TriggersAnotherPlay bool
}

func (c Card) String() string {
	if c.IsSpecial {
		return fmt.Sprintf("%s (%s, value %d)", c.TypeID, c.SpecialType, c.Value)
	}
	return fmt.Sprintf("%s (value %d)", c.TypeID, c.Value)
}

// PlayedCard is a card in the in-play zone together with its facing.
type PlayedCard struct {
	Card     Card
	FaceDown bool
}

// --- Deck ordering strategies ---

type OrderStrategy string

const (
	OrderRandom         OrderStrategy = "random"
	OrderHighValueFirst OrderStrategy = "high-value-first"
	OrderLowValueFirst  OrderStrategy = "low-value-first"
	OrderSpecialFirst   OrderStrategy = "special-first"
	OrderTrackerFirst   OrderStrategy = "tracker-first"
	OrderLaunchStkFirst OrderStrategy = "launch-stack-first"
	OrderCustom         OrderStrategy = "custom"
)

// --- Suspension ---

// SuspensionKind enumerates the reasons the engine is waiting on a human.
type SuspensionKind int

const (
	SuspensionNone SuspensionKind = iota
	SuspensionAwaitingTap
	SuspensionAwaitingSelection
	SuspensionAwaitingModalDismiss
)

func (k SuspensionKind) String() string {
	switch k {
	case SuspensionAwaitingTap:
		return "awaiting_tap"
	case SuspensionAwaitingSelection:
		return "awaiting_selection"
	case SuspensionAwaitingModalDismiss:
		return "awaiting_modal_dismiss"
	default:
		return "none"
	}
}

// Suspension describes a pending human decision. The engine never blocks on
// it: it surfaces the suspension and resumes when the matching event
// (TAP_DECK, CARD_SELECTED, DISMISS_EFFECT) arrives.
type Suspension struct {
	Kind       SuspensionKind
	Prompt     string
	Candidates []Card
	Min, Max   int
}

// None reports whether no human decision is pending.
func (s Suspension) None() bool {
	return s.Kind == SuspensionNone
}
