package game

import "math/rand"

// CardCustody reports which seat collected a card during the Data Grab
// mini-game.
type CardCustody struct {
	Card        Card
	CollectedBy PlayerID
}

// MiniGameResult is the shape the Data Grab collaborator reports back.
// Cards nobody collected default to UncollectedTo.
type MiniGameResult struct {
	Collected     []CardCustody
	Uncollected   []Card
	UncollectedTo PlayerID
}

// MiniGame is the external Data Grab collaborator. The engine finalizes
// card distribution from its result without simulating the mini-game
// itself. A nil collaborator (or a nil result) falls back to a uniform
// random odd/even split.
type MiniGame interface {
	Play(inPlay []Card) *MiniGameResult
}

// randomSplit is the fallback distribution: shuffle the in-play cards and
// alternate custody between the two seats.
func randomSplit(rng *rand.Rand, inPlay []Card) *MiniGameResult {
	shuffled := ShuffleDeck(rng, inPlay)
	res := &MiniGameResult{UncollectedTo: PlayerHuman}
	for i, c := range shuffled {
		who := PlayerHuman
		if i%2 == 1 {
			who = PlayerCPU
		}
		res.Collected = append(res.Collected, CardCustody{Card: c, CollectedBy: who})
	}
	return res
}
