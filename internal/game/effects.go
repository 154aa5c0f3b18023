package game

// SpecialEffect records a special card played during the current turn.
// Instant effects apply at play time and never appear in the pending queue;
// everything else is enqueued in play order and drained once the turn's
// winner is known.
type SpecialEffect struct {
	Type     SpecialType
	PlayedBy PlayerID
	Card     Card
}

func (e SpecialEffect) String() string {
	return e.Type.String() + " by " + e.PlayedBy.String()
}

// enqueueEffect appends a deferred effect to the turn's pending queue.
func (g *Game) enqueueEffect(who PlayerID, c Card) {
	g.pending = append(g.pending, SpecialEffect{Type: c.SpecialType, PlayedBy: who, Card: c})
}

// PendingEffects returns a copy of the turn's deferred-effect queue, in the
// order the effects were enqueued.
func (g *Game) PendingEffects() []SpecialEffect {
	out := make([]SpecialEffect, len(g.pending))
	copy(out, g.pending)
	return out
}

// HasPendingEffects is the phase-machine guard for routing into the
// special_effect sub-states.
func (g *Game) HasPendingEffects() bool {
	return len(g.pending) > 0
}
