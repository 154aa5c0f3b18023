package game

import "log"

// blockerStrengths maps blocker typeIds to the amount subtracted from the
// opponent's turn value. Unknown blocker typeIds are rejected at config
// validation time.
var blockerStrengths = map[string]int{
	"blocker-1": 1,
	"blocker-2": 2,
}

// BlockerStrength returns the subtraction strength for a blocker typeId,
// falling back to the card value when the typeId has no entry.
func BlockerStrength(c Card) int {
	if s, ok := blockerStrengths[c.TypeID]; ok {
		return s
	}
	return c.Value
}

// BaseValue returns the card's face value.
func BaseValue(c Card) int {
	return c.Value
}

// IsInstantEffect reports whether the card's effect applies the moment it is
// played rather than being queued until the winner is known.
func IsInstantEffect(c Card) bool {
	switch c.SpecialType {
	case SpecialForcedEmpathy, SpecialTrackerSmacker, SpecialHostileTakeover:
		return true
	default:
		return false
	}
}

// ShouldTriggerAnotherPlay reports whether playing this card means the same
// player immediately plays again before comparison.
func ShouldTriggerAnotherPlay(c Card) bool {
	return c.TriggersAnotherPlay
}

// ApplyTrackerModifier adds a tracker's value to the current turn value.
// Calling it with a non-tracker card is a caller bug: it is logged and the
// value is returned unchanged rather than aborting mid-turn.
func ApplyTrackerModifier(currentValue int, tracker Card) int {
	if tracker.SpecialType != SpecialTracker {
		log.Printf("warning: ApplyTrackerModifier called with non-tracker card %s", tracker.TypeID)
		return currentValue
	}
	return currentValue + tracker.Value
}

// ApplyBlockerModifier subtracts a blocker's strength from the opponent's
// turn value. The result may go negative; clamping is a display concern.
// Misuse degrades to a logged no-op like ApplyTrackerModifier.
func ApplyBlockerModifier(opponentValue int, blocker Card) int {
	if blocker.SpecialType != SpecialBlocker {
		log.Printf("warning: ApplyBlockerModifier called with non-blocker card %s", blocker.TypeID)
		return opponentValue
	}
	return opponentValue - BlockerStrength(blocker)
}

// IsEffectBlocked reports whether Tracker-Smacker negates an effect owned by
// cardOwner: blocked iff the flag is set and its holder is cardOwner's
// opponent. A player's own effects are never blocked by their own smacker.
func IsEffectBlocked(trackerSmackerActive PlayerID, cardOwner PlayerID) bool {
	return trackerSmackerActive != "" && trackerSmackerActive == cardOwner.Opponent()
}

// ShouldTriggerDataWar decides whether this comparison escalates to a Data
// War. Hostile Takeover on either card always forces the war, even on
// unequal values. An equal-value comparison where either card mandates
// another play is not yet a war: the extra play happens first.
func ShouldTriggerDataWar(cardA, cardB Card, valueA, valueB int) bool {
	if cardA.SpecialType == SpecialHostileTakeover || cardB.SpecialType == SpecialHostileTakeover {
		return true
	}
	if valueA != valueB {
		return false
	}
	if cardA.TriggersAnotherPlay || cardB.TriggersAnotherPlay {
		return false
	}
	return true
}

// Outcome is the result of comparing two turn values.
type Outcome struct {
	Winner PlayerID // empty on tie
	IsTie  bool
}

// CompareCards compares accumulated turn values with strict greater-than;
// equality is a tie. All arithmetic is integral.
func CompareCards(playerValue, cpuValue int) Outcome {
	switch {
	case playerValue > cpuValue:
		return Outcome{Winner: PlayerHuman}
	case cpuValue > playerValue:
		return Outcome{Winner: PlayerCPU}
	default:
		return Outcome{IsTie: true}
	}
}
