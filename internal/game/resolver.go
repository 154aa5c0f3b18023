package game

import (
	"fmt"

	"github.com/mozilla/datawar/internal/log"
)

// IsDataWar is the phase-controller guard evaluated in the comparing
// state. Hostile Takeover forces the first escalation even on unequal
// values; once a war is underway only a genuine tie keeps it going.
func (g *Game) IsDataWar() bool {
	if g.HasWinner() {
		return false
	}
	pc, ok := g.player.LastFaceUp()
	if !ok {
		return false
	}
	cc, ok := g.cpu.LastFaceUp()
	if !ok {
		return false
	}
	pv := g.player.TurnValue + g.player.CarryModifier
	cv := g.cpu.TurnValue + g.cpu.CarryModifier
	if g.warRound > 0 {
		// The sitting-out player's last face-up may still be the Hostile
		// Takeover card; it must not force a second round.
		return CompareCards(pv, cv).IsTie && !pc.TriggersAnotherPlay && !cc.TriggersAnotherPlay
	}
	return ShouldTriggerDataWar(pc, cc, pv, cv)
}

// ResolveComparison folds any unconsumed modifier carry into the turn
// values and compares them. On a decisive result the turn winner is
// recorded; card movement waits for the effect drain.
func (g *Game) ResolveComparison() Outcome {
	for _, p := range []*PlayerState{g.player, g.cpu} {
		p.TurnValue += p.CarryModifier
		p.CarryModifier = 0
	}
	out := CompareCards(g.player.TurnValue, g.cpu.TurnValue)
	result := "tie"
	if !out.IsTie {
		result = out.Winner.String() + " wins the hand"
		g.turnWinner = out.Winner
	}
	g.logger.Log(log.NewCompareEvent(g.turn, g.phase, g.player.TurnValue, g.cpu.TurnValue, result))
	return out
}

// warParticipants returns the seats that contribute cards to the current
// escalation round. The Hostile Takeover player sits out the first round
// only; from the second round on, both seats play.
func (g *Game) warParticipants() []PlayerID {
	if g.warRound == 0 && g.hostileTakeover {
		return []PlayerID{g.htPlayer.Opponent()}
	}
	return []PlayerID{PlayerHuman, PlayerCPU}
}

// DataWarFaceDown deals each participating seat's three face-down cards.
// Running out of cards mid-war ends the game in the opponent's favor.
func (g *Game) DataWarFaceDown() {
	g.logger.Log(log.NewDataWarEvent(g.turn, g.phase,
		fmt.Sprintf("Data War round %d: 3 cards face-down", g.warRound+1)))
	for _, id := range g.warParticipants() {
		for i := 0; i < 3; i++ {
			if !g.playCard(id, true) {
				return
			}
		}
	}
}

// DataWarFaceUp deals each participating seat's face-up card, which
// re-enters comparison, and closes the escalation round.
func (g *Game) DataWarFaceUp() {
	for _, id := range g.warParticipants() {
		if !g.playCard(id, false) {
			return
		}
		g.runAnotherPlayChain(id)
	}
	g.warRound++
}

// --- Deferred effect drain ---

// DrainEffects applies the turn's queued effects in play order, now that
// the winner is known. It returns false if a human decision suspended the
// drain; after ProvideSelection the call resumes where it left off.
func (g *Game) DrainEffects() bool {
	for g.drainIdx < len(g.pending) {
		if !g.applyEffect(g.pending[g.drainIdx]) {
			return false
		}
		g.drainIdx++
	}
	return true
}

func (g *Game) applyEffect(eff SpecialEffect) bool {
	who := eff.PlayedBy.String()
	card := eff.Card.TypeID

	if eff.Type.IsBillionaireMove() && IsEffectBlocked(g.trackerSmacker, eff.PlayedBy) {
		g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "negated by Tracker-Smacker"))
		return true
	}

	switch eff.Type {
	case SpecialOpenWhatYouWant:
		if eff.PlayedBy != g.turnWinner {
			g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "did not win the hand"))
			return true
		}
		if eff.PlayedBy == PlayerCPU {
			g.autoOpenPick(g.cpu)
			g.logger.Log(log.NewEffectAppliedEvent(g.turn, g.phase, who, card, "cpu reorders its top cards"))
			return true
		}
		g.openPickFor = eff.PlayedBy
		g.logger.Log(log.NewEffectAppliedEvent(g.turn, g.phase, who, card,
			fmt.Sprintf("%s will pick from their top 3 before the next reveal", who)))

	case SpecialMandatoryRecall:
		if eff.PlayedBy != g.turnWinner {
			g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "did not win the hand"))
			return true
		}
		g.recallLaunchStacks(eff.PlayedBy.Opponent())

	case SpecialTemperTantrum:
		if eff.PlayedBy == g.turnWinner {
			g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "won the hand"))
			return true
		}
		winner := g.state(g.turnWinner)
		candidates := winner.InPlay()
		if len(candidates) == 0 {
			g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "nothing to take"))
			return true
		}
		max := 2
		if len(candidates) < max {
			max = len(candidates)
		}
		if eff.PlayedBy == PlayerCPU {
			ids := make([]string, max)
			for i := 0; i < max; i++ {
				ids[i] = candidates[i].ID
			}
			g.stealFromPlay(g.turnWinner, eff.PlayedBy, ids)
			return true
		}
		g.suspension = Suspension{
			Kind:       SuspensionAwaitingSelection,
			Prompt:     fmt.Sprintf("Temper Tantrum: pick up to %d of the winner's cards", max),
			Candidates: candidates,
			Min:        1,
			Max:        max,
		}
		return false

	case SpecialPatentTheft:
		if eff.PlayedBy != g.turnWinner {
			g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "did not win the hand"))
			return true
		}
		opp := g.state(eff.PlayedBy.Opponent())
		if opp.LaunchStackCount() == 0 {
			g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "opponent has no launch stacks"))
			return true
		}
		me := g.state(eff.PlayedBy)
		stolen := opp.LaunchStacks[len(opp.LaunchStacks)-1]
		opp.LaunchStacks = opp.LaunchStacks[:len(opp.LaunchStacks)-1]
		me.LaunchStacks = append(me.LaunchStacks, stolen)
		g.logger.Log(log.NewStealEvent(g.turn, g.phase, who, stolen.TypeID, eff.PlayedBy.Opponent().String()))
		g.logger.Log(log.NewLaunchStackEvent(g.turn, g.phase, who, me.LaunchStackCount()))
		g.checkWinCondition()

	case SpecialLeveragedBuyout:
		if eff.PlayedBy != g.turnWinner {
			g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "did not win the hand"))
			return true
		}
		g.StealCards(eff.PlayedBy.Opponent(), eff.PlayedBy, 2)

	case SpecialDataGrab:
		g.runDataGrab()

	default:
		g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, who, card, "no deferred behavior"))
	}
	return true
}

// ProvideSelection resumes a drain suspended on a human card pick,
// applying the chosen steal. Excess picks beyond the allowed count are
// rejected, unknown ids likewise.
func (g *Game) ProvideSelection(cardIDs []string) error {
	if g.suspension.Kind != SuspensionAwaitingSelection {
		return fmt.Errorf("no selection pending")
	}
	if len(cardIDs) < g.suspension.Min || len(cardIDs) > g.suspension.Max {
		return fmt.Errorf("must pick between %d and %d cards", g.suspension.Min, g.suspension.Max)
	}
	allowed := make(map[string]bool, len(g.suspension.Candidates))
	for _, c := range g.suspension.Candidates {
		allowed[c.ID] = true
	}
	for _, id := range cardIDs {
		if !allowed[id] {
			return fmt.Errorf("card %s is not a candidate", id)
		}
	}
	eff := g.pending[g.drainIdx]
	g.suspension = Suspension{}
	g.stealFromPlay(g.turnWinner, eff.PlayedBy, cardIDs)
	g.drainIdx++
	return nil
}

// stealFromPlay moves chosen in-play cards from one seat to the other
// before collection. Stolen launch stacks join the taker's collection,
// which can itself end the game.
func (g *Game) stealFromPlay(from, to PlayerID, cardIDs []string) {
	src := g.state(from)
	dst := g.state(to)
	for _, id := range cardIDs {
		c, ok := src.removeInPlay(id)
		if !ok {
			continue
		}
		g.logger.Log(log.NewStealEvent(g.turn, g.phase, to.String(), c.TypeID, from.String()))
		if c.SpecialType == SpecialLaunchStack {
			dst.LaunchStacks = append(dst.LaunchStacks, c)
			g.logger.Log(log.NewLaunchStackEvent(g.turn, g.phase, to.String(), dst.LaunchStackCount()))
			g.checkWinCondition()
		} else {
			dst.CollectToBottom(c)
		}
	}
}

// recallLaunchStacks shuffles a seat's collected launch stacks back into
// its draw pile. The whole resulting deck is shuffled, not just the
// returned cards.
func (g *Game) recallLaunchStacks(id PlayerID) {
	p := g.state(id)
	n := p.LaunchStackCount()
	if n == 0 {
		g.logger.Log(log.NewEffectSkippedEvent(g.turn, g.phase, id.String(), "mandatory-recall", "no launch stacks to recall"))
		return
	}
	p.Deck = ShuffleDeck(g.rng, append(p.Deck, p.LaunchStacks...))
	p.LaunchStacks = nil
	g.logger.Log(log.NewRecallEvent(g.turn, g.phase, id.String(), n))
	g.logger.Log(log.NewShuffleEvent(g.turn, g.phase, id.String()))
}

// runDataGrab hands every in-play card to the mini-game collaborator and
// finalizes custody from its result. Without a collaborator (or with a
// nil result) the cards split uniformly at random.
func (g *Game) runDataGrab() {
	inPlay := append(g.player.TakeInPlay(), g.cpu.TakeInPlay()...)
	if len(inPlay) == 0 {
		return
	}
	var res *MiniGameResult
	if g.minigame != nil {
		res = g.minigame.Play(inPlay)
	}
	if res == nil {
		res = randomSplit(g.rng, inPlay)
		g.logger.Log(log.NewMiniGameEvent(g.turn, g.phase, "Data Grab: no mini-game result, cards split at random"))
	} else {
		g.logger.Log(log.NewMiniGameEvent(g.turn, g.phase,
			fmt.Sprintf("Data Grab: %d card(s) collected", len(res.Collected))))
	}
	give := func(id PlayerID, c Card) {
		p := g.state(id)
		if c.SpecialType == SpecialLaunchStack {
			p.LaunchStacks = append(p.LaunchStacks, c)
			g.logger.Log(log.NewLaunchStackEvent(g.turn, g.phase, id.String(), p.LaunchStackCount()))
		} else {
			p.CollectToBottom(c)
		}
	}
	for _, cc := range res.Collected {
		give(cc.CollectedBy, cc.Card)
	}
	fallback := res.UncollectedTo
	if fallback == "" {
		fallback = g.turnWinner
	}
	if fallback == "" {
		fallback = PlayerHuman
	}
	for _, c := range res.Uncollected {
		give(fallback, c)
	}
	g.checkWinCondition()
}

// --- Collection ---

// FinishTurn moves the remaining in-play cards to the turn winner's deck
// bottom, banks any launch stacks among them, and clears all turn-scoped
// state. Calling it without a resolved winner is a no-op.
func (g *Game) FinishTurn() {
	if g.turnWinner == "" {
		return
	}
	winner := g.state(g.turnWinner)
	loser := g.state(g.turnWinner.Opponent())

	spoils := append(loser.TakeInPlay(), winner.TakeInPlay()...)
	var collected []Card
	for _, c := range spoils {
		if c.SpecialType == SpecialLaunchStack {
			winner.LaunchStacks = append(winner.LaunchStacks, c)
			g.logger.Log(log.NewLaunchStackEvent(g.turn, g.phase, winner.ID.String(), winner.LaunchStackCount()))
		} else {
			collected = append(collected, c)
		}
	}
	if len(collected) > 0 {
		winner.CollectToBottom(collected...)
		g.logger.Log(log.NewCollectEvent(g.turn, g.phase, winner.ID.String(), len(collected)))
	}

	g.player.ResetHand()
	g.cpu.ResetHand()
	g.pending = nil
	g.drainIdx = 0
	g.trackerSmacker = ""
	g.hostileTakeover = false
	g.htPlayer = ""
	g.warRound = 0
	g.turnWinner = ""
	g.suspension = Suspension{}

	g.checkWinCondition()
}

// --- Open-What-You-Want pre-reveal pick ---

// HasPreRevealPick reports whether a seat owes a top-3 pick before the
// next reveal.
func (g *Game) HasPreRevealPick() bool { return g.openPickFor != "" }

// PreRevealPicker returns the seat that owes the pick.
func (g *Game) PreRevealPicker() PlayerID { return g.openPickFor }

// PreRevealCandidates returns the pickable top cards of the owing seat's
// deck, at most three.
func (g *Game) PreRevealCandidates() []Card {
	if g.openPickFor == "" {
		return nil
	}
	deck := g.state(g.openPickFor).Deck
	n := 3
	if len(deck) < n {
		n = len(deck)
	}
	out := make([]Card, n)
	copy(out, deck[:n])
	return out
}

// ApplyOpenPick moves the chosen candidate to the top of the owing seat's
// deck and shuffles the remaining candidates to the bottom. The rest of
// the deck keeps its order.
func (g *Game) ApplyOpenPick(cardID string) error {
	if g.openPickFor == "" {
		return fmt.Errorf("no pre-reveal pick pending")
	}
	candidates := g.PreRevealCandidates()
	found := false
	for _, c := range candidates {
		if c.ID == cardID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("card %s is not among the top %d", cardID, len(candidates))
	}
	p := g.state(g.openPickFor)
	g.reorderTopPick(p, len(candidates), cardID)
	g.logger.Log(log.NewEffectAppliedEvent(g.turn, g.phase, g.openPickFor.String(), "open-what-you-want",
		fmt.Sprintf("%s puts a chosen card on top", g.openPickFor)))
	g.openPickFor = ""
	return nil
}

// autoOpenPick performs the cpu's random top-3 pick immediately.
func (g *Game) autoOpenPick(p *PlayerState) {
	n := 3
	if len(p.Deck) < n {
		n = len(p.Deck)
	}
	if n == 0 {
		return
	}
	g.reorderTopPick(p, n, p.Deck[g.rng.Intn(n)].ID)
}

func (g *Game) reorderTopPick(p *PlayerState, n int, chosenID string) {
	top := p.Deck[:n]
	rest := p.Deck[n:]
	var chosen Card
	others := make([]Card, 0, n-1)
	for _, c := range top {
		if c.ID == chosenID {
			chosen = c
		} else {
			others = append(others, c)
		}
	}
	deck := make([]Card, 0, len(p.Deck))
	deck = append(deck, chosen)
	deck = append(deck, rest...)
	deck = append(deck, ShuffleDeck(g.rng, others)...)
	p.Deck = deck
}
