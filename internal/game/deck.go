package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

// NewDeck expands a validated composition into card instances, each with a
// fresh unique ID. The returned deck is in composition order (not shuffled).
func NewDeck(cfg *Config) ([]Card, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	deck := make([]Card, 0, cfg.TotalCards())
	for _, e := range cfg.Cards {
		st, _ := ParseSpecialType(e.SpecialType)
		for i := 0; i < e.Count; i++ {
			deck = append(deck, Card{
				ID:                  uuid.NewString(),
				TypeID:              e.TypeID,
				Value:               e.Value,
				IsSpecial:           e.IsSpecial,
				SpecialType:         st,
				TriggersAnotherPlay: e.TriggersAnotherPlay,
			})
		}
	}
	return deck, nil
}

// ShuffleDeck returns a new uniformly shuffled copy of deck. The input is
// not mutated.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// OrderDeck returns a deterministically reordered copy of deck per the given
// strategy. For the partition strategies, matching cards move to the front
// with relative order preserved on both sides of the partition. The random
// strategy delegates to ShuffleDeck. The custom strategy pulls the first
// unused card matching each requested typeId (in request order) to the
// front, shuffles the remainder, and concatenates; requested typeIds with no
// remaining match are skipped.
func OrderDeck(rng *rand.Rand, deck []Card, strategy OrderStrategy, customTypeIDs []string) []Card {
	switch strategy {
	case OrderRandom:
		return ShuffleDeck(rng, deck)
	case OrderHighValueFirst:
		out := make([]Card, len(deck))
		copy(out, deck)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
		return out
	case OrderLowValueFirst:
		out := make([]Card, len(deck))
		copy(out, deck)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
		return out
	case OrderSpecialFirst:
		return partitionFirst(deck, func(c Card) bool { return c.IsSpecial })
	case OrderTrackerFirst:
		return partitionFirst(deck, func(c Card) bool { return c.SpecialType == SpecialTracker })
	case OrderLaunchStkFirst:
		return partitionFirst(deck, func(c Card) bool { return c.SpecialType == SpecialLaunchStack })
	case OrderCustom:
		front, rest := pullByTypeIDs(deck, customTypeIDs, nil)
		return append(front, ShuffleDeck(rng, rest)...)
	default:
		out := make([]Card, len(deck))
		copy(out, deck)
		return out
	}
}

// partitionFirst moves cards matching pred to the front, preserving the
// relative order within each partition.
func partitionFirst(deck []Card, pred func(Card) bool) []Card {
	out := make([]Card, 0, len(deck))
	var rest []Card
	for _, c := range deck {
		if pred(c) {
			out = append(out, c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(out, rest...)
}

// pullByTypeIDs extracts the first unused card matching each requested
// typeId, in request order. used may be nil; when non-nil it is shared
// across calls so two sides never claim the same instance.
func pullByTypeIDs(deck []Card, typeIDs []string, used map[string]bool) (picked, rest []Card) {
	if used == nil {
		used = make(map[string]bool)
	}
	for _, want := range typeIDs {
		for _, c := range deck {
			if c.TypeID == want && !used[c.ID] {
				used[c.ID] = true
				picked = append(picked, c)
				break
			}
		}
	}
	for _, c := range deck {
		if !used[c.ID] {
			rest = append(rest, c)
		}
	}
	return picked, rest
}

// DealCards splits deck contiguously: the first cardsPerPlayer cards to the
// player, the next cardsPerPlayer to the cpu. A partial deal never silently
// drops cards; a size mismatch is an error.
func DealCards(deck []Card, cardsPerPlayer int) (playerDeck, cpuDeck []Card, err error) {
	if len(deck) != 2*cardsPerPlayer {
		return nil, nil, fmt.Errorf("deal: deck has %d cards, need exactly %d", len(deck), 2*cardsPerPlayer)
	}
	playerDeck = append([]Card(nil), deck[:cardsPerPlayer]...)
	cpuDeck = append([]Card(nil), deck[cardsPerPlayer:]...)
	return playerDeck, cpuDeck, nil
}

// InitializeGameDeck builds, orders and deals the game deck. When both
// strategies are custom and at least one custom order is supplied, named
// cards are explicitly assigned to each side first (player's list, then
// cpu's, sharing a used set) and the shuffled remainder fills both hands.
// That path guarantees two specific hands for deterministic scenarios.
// Otherwise the whole deck is ordered by the player strategy, dealt, and the
// cpu half re-ordered by the cpu strategy.
func InitializeGameDeck(cfg *Config, rng *rand.Rand, playerStrategy, cpuStrategy OrderStrategy, playerCustom, cpuCustom []string) (playerDeck, cpuDeck []Card, err error) {
	deck, err := NewDeck(cfg)
	if err != nil {
		return nil, nil, err
	}

	if playerStrategy == OrderCustom && cpuStrategy == OrderCustom && (len(playerCustom) > 0 || len(cpuCustom) > 0) {
		used := make(map[string]bool)
		playerFront, _ := pullByTypeIDs(deck, playerCustom, used)
		cpuFront, rest := pullByTypeIDs(deck, cpuCustom, used)
		rest = ShuffleDeck(rng, rest)

		playerDeck = playerFront
		cpuDeck = cpuFront
		for _, c := range rest {
			if len(playerDeck) < cfg.CardsPerPlayer {
				playerDeck = append(playerDeck, c)
			} else {
				cpuDeck = append(cpuDeck, c)
			}
		}
		if len(playerDeck) != cfg.CardsPerPlayer || len(cpuDeck) != cfg.CardsPerPlayer {
			return nil, nil, fmt.Errorf("deal: custom assignment produced %d/%d hands, want %d each",
				len(playerDeck), len(cpuDeck), cfg.CardsPerPlayer)
		}
		return playerDeck, cpuDeck, nil
	}

	ordered := OrderDeck(rng, deck, playerStrategy, playerCustom)
	playerDeck, cpuDeck, err = DealCards(ordered, cfg.CardsPerPlayer)
	if err != nil {
		return nil, nil, err
	}
	cpuDeck = OrderDeck(rng, cpuDeck, cpuStrategy, cpuCustom)
	return playerDeck, cpuDeck, nil
}
