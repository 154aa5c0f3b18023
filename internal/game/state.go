package game

// PlayerState is one seat's mutable turn record: draw pile, in-play cards,
// accumulated turn value, modifier carry, and the launch-stack collection.
// It is owned exclusively by the Game; external callers read snapshots.
type PlayerState struct {
	ID   PlayerID
	Deck []Card // draw pile; front is the top

	// Per-turn state, reset after every resolved turn.
	Played        []PlayedCard // cards in play this turn, in play order
	TurnValue     int          // accumulated comparison value, may go negative
	CarryModifier int          // tracker value carried onto this player's next play

	// Launch stacks leave circulation once collected; they count toward the
	// win condition but are never part of Deck.
	LaunchStacks []Card
}

// NewPlayerState creates an empty seat with the given draw pile.
func NewPlayerState(id PlayerID, deck []Card) *PlayerState {
	return &PlayerState{ID: id, Deck: deck}
}

// DeckCount returns the number of cards remaining in the draw pile.
func (p *PlayerState) DeckCount() int {
	return len(p.Deck)
}

// LaunchStackCount returns the number of collected launch stacks.
func (p *PlayerState) LaunchStackCount() int {
	return len(p.LaunchStacks)
}

// Draw removes and returns the top card of the draw pile. Drawing from an
// empty deck is a defined no-op (ok=false): exhaustion is a win-condition
// path, not a fault, and the win check should have fired first.
func (p *PlayerState) Draw() (Card, bool) {
	if len(p.Deck) == 0 {
		return Card{}, false
	}
	c := p.Deck[0]
	p.Deck = p.Deck[1:]
	return c, true
}

// CollectToBottom appends cards to the bottom of the draw pile in the order
// given.
func (p *PlayerState) CollectToBottom(cards ...Card) {
	p.Deck = append(p.Deck, cards...)
}

// PlayedCard returns the most recently played card this turn, or false if
// none has been played.
func (p *PlayerState) PlayedCard() (Card, bool) {
	if len(p.Played) == 0 {
		return Card{}, false
	}
	return p.Played[len(p.Played)-1].Card, true
}

// LastFaceUp returns the most recent face-up card in play, or false.
func (p *PlayerState) LastFaceUp() (Card, bool) {
	for i := len(p.Played) - 1; i >= 0; i-- {
		if !p.Played[i].FaceDown {
			return p.Played[i].Card, true
		}
	}
	return Card{}, false
}

// InPlay returns all cards in this seat's half of the in-play zone.
func (p *PlayerState) InPlay() []Card {
	out := make([]Card, 0, len(p.Played))
	for _, pc := range p.Played {
		out = append(out, pc.Card)
	}
	return out
}

// TakeInPlay empties the in-play zone and returns its cards in play order.
func (p *PlayerState) TakeInPlay() []Card {
	out := p.InPlay()
	p.Played = nil
	return out
}

// removeInPlay removes a single card from the in-play zone by instance ID.
func (p *PlayerState) removeInPlay(id string) (Card, bool) {
	for i, pc := range p.Played {
		if pc.Card.ID == id {
			p.Played = append(p.Played[:i], p.Played[i+1:]...)
			return pc.Card, true
		}
	}
	return Card{}, false
}

// ResetHand clears the per-turn fields. The draw pile and launch-stack
// collection persist across turns.
func (p *PlayerState) ResetHand() {
	p.Played = nil
	p.TurnValue = 0
	p.CarryModifier = 0
}

// CardCount is this seat's contribution to the conservation invariant:
// draw pile + in play + collected launch stacks.
func (p *PlayerState) CardCount() int {
	return len(p.Deck) + len(p.Played) + len(p.LaunchStacks)
}
