package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozilla/datawar/internal/log"
)

// Options configures a new game session. Zero values mean: default config,
// time-based seed, random ordering for both seats, an in-memory event
// logger, and the uniform-random Data Grab fallback.
type Options struct {
	Seed           int64
	PlayerStrategy OrderStrategy
	CPUStrategy    OrderStrategy
	PlayerCustom   []string
	CPUCustom      []string
	Logger         log.EventLogger
	MiniGame       MiniGame
}

// Game is the single owner of all rules state: both seats, the deferred
// effect queue, the turn-scoped flags, and the sticky win record. All
// mutation goes through its command methods; callers read Snapshot.
// It is not safe for concurrent use; the presentation layer serializes
// access.
type Game struct {
	cfg      *Config
	opts     Options
	rng      *rand.Rand
	logger   log.EventLogger
	minigame MiniGame

	player *PlayerState
	cpu    *PlayerState

	turn  int
	phase string

	// Turn-scoped state, cleared by FinishTurn.
	pending         []SpecialEffect
	drainIdx        int
	trackerSmacker  PlayerID // seat whose smacker is active, "" when inactive
	hostileTakeover bool
	htPlayer        PlayerID
	warRound        int
	turnWinner      PlayerID
	suspension      Suspension

	// Survives into the beneficiary's next turn.
	openPickFor PlayerID

	// Sticky once set.
	winner       PlayerID
	winCondition WinCondition
}

// NewGame deals a fresh game. A nil cfg uses the default deck composition.
func NewGame(cfg *Config, opts Options) (*Game, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.PlayerStrategy == "" {
		opts.PlayerStrategy = OrderRandom
	}
	if opts.CPUStrategy == "" {
		opts.CPUStrategy = OrderRandom
	}
	if opts.Logger == nil {
		opts.Logger = log.NewMemoryLogger()
	}

	g := &Game{
		cfg:      cfg,
		opts:     opts,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		logger:   opts.Logger,
		minigame: opts.MiniGame,
	}
	if err := g.deal(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) deal() error {
	playerDeck, cpuDeck, err := InitializeGameDeck(
		g.cfg, g.rng,
		g.opts.PlayerStrategy, g.opts.CPUStrategy,
		g.opts.PlayerCustom, g.opts.CPUCustom,
	)
	if err != nil {
		return err
	}
	g.player = NewPlayerState(PlayerHuman, playerDeck)
	g.cpu = NewPlayerState(PlayerCPU, cpuDeck)
	return nil
}

// Reset abandons the current game and deals a new one with the same
// options. The RNG stream continues, so a reset game is not a replay of
// the first.
func (g *Game) Reset() error {
	g.logger.Log(log.NewResetEvent(g.turn))
	if err := g.deal(); err != nil {
		return err
	}
	g.turn = 0
	g.phase = ""
	g.pending = nil
	g.drainIdx = 0
	g.trackerSmacker = ""
	g.hostileTakeover = false
	g.htPlayer = ""
	g.warRound = 0
	g.turnWinner = ""
	g.suspension = Suspension{}
	g.openPickFor = ""
	g.winner = ""
	g.winCondition = WinNone
	return nil
}

// --- Accessors ---

// Turn returns the 1-based turn number, 0 before the first turn.
func (g *Game) Turn() int { return g.turn }

// Winner returns the winning seat, or "" while the game is live. Once
// non-empty it never changes.
func (g *Game) Winner() PlayerID { return g.winner }

// WinCondition returns how the game was won.
func (g *Game) WinCondition() WinCondition { return g.winCondition }

// HasWinner reports whether the game is over.
func (g *Game) HasWinner() bool { return g.winner != "" }

// Suspension returns the pending human decision, if any.
func (g *Game) Suspension() Suspension { return g.suspension }

// TurnWinner returns the winner of the current turn's comparison, or ""
// before resolution (or on an unresolved tie).
func (g *Game) TurnWinner() PlayerID { return g.turnWinner }

// TrackerSmackerActive returns the seat whose Tracker-Smacker is live this
// turn, or "".
func (g *Game) TrackerSmackerActive() PlayerID { return g.trackerSmacker }

// SetPhase records the phase controller's current state for event
// attribution and snapshots.
func (g *Game) SetPhase(phase string) {
	if phase == g.phase {
		return
	}
	g.phase = phase
	g.logger.Log(log.NewPhaseChangeEvent(g.turn, phase))
}

// Phase returns the last phase string recorded by the controller.
func (g *Game) Phase() string { return g.phase }

// Events returns the full event history.
func (g *Game) Events() []log.GameEvent { return g.logger.Events() }

func (g *Game) state(id PlayerID) *PlayerState {
	if id == PlayerHuman {
		return g.player
	}
	return g.cpu
}

// State exposes a seat's live state. Mutating it outside the command
// methods breaks the conservation invariant; presentation code should use
// Snapshot instead.
func (g *Game) State(id PlayerID) *PlayerState { return g.state(id) }

// TotalCards sums every zone of both seats. Outside an in-flight mutation
// it always equals the configured deck size.
func (g *Game) TotalCards() int {
	return g.player.CardCount() + g.cpu.CardCount()
}

// --- Turn flow commands ---

// BeginTurn opens a new turn. If either seat cannot play, the other wins
// by default instead.
func (g *Game) BeginTurn() {
	if g.HasWinner() {
		return
	}
	g.checkWinCondition()
	if g.HasWinner() {
		return
	}
	g.turn++
	g.logger.Log(log.NewTurnEvent(g.turn, g.phase))
}

// PlayBothSides draws and ingests one face-up card per seat, following
// each with its mandatory extra plays (trackers, blockers, launch stacks).
// Afterward both seats' last face-up cards are ready for comparison.
func (g *Game) PlayBothSides() {
	for _, id := range []PlayerID{PlayerHuman, PlayerCPU} {
		if g.HasWinner() {
			return
		}
		if g.playCard(id, false) {
			g.runAnotherPlayChain(id)
		}
	}
}

// playCard draws the seat's top card into the in-play zone. Failure to
// draw ends the game in the opponent's favor; callers that must survive an
// empty deck, like the another-play chain, check deck depth first.
func (g *Game) playCard(id PlayerID, faceDown bool) bool {
	if g.HasWinner() {
		return false
	}
	p := g.state(id)
	c, ok := p.Draw()
	if !ok {
		g.setWinner(id.Opponent(), WinAllCards)
		return false
	}
	p.Played = append(p.Played, PlayedCard{Card: c, FaceDown: faceDown})
	g.logger.Log(log.NewPlayEvent(g.turn, g.phase, id.String(), c.TypeID, faceDown))
	if !faceDown {
		g.ingest(id, c)
	}
	return true
}

// runAnotherPlayChain keeps playing for a seat while its latest card
// mandates a follow-up play. An empty deck is terminal for the chain, not
// for the game: the hand still resolves, with any unconsumed carry folded
// into the turn value at comparison time.
func (g *Game) runAnotherPlayChain(id PlayerID) {
	for {
		if g.HasWinner() {
			return
		}
		last, ok := g.state(id).PlayedCard()
		if !ok || !ShouldTriggerAnotherPlay(last) {
			return
		}
		if g.state(id).DeckCount() == 0 {
			return
		}
		g.logger.Log(log.NewAnotherPlayEvent(g.turn, g.phase, id.String(), last.TypeID))
		if !g.playCard(id, false) {
			return
		}
	}
}

// ingest applies a face-up card's immediate consequences: its value
// contribution, instant effects, modifier arithmetic, and deferred-effect
// queueing.
func (g *Game) ingest(id PlayerID, c Card) {
	me := g.state(id)
	opp := g.state(id.Opponent())

	switch c.SpecialType {
	case SpecialTracker:
		if IsEffectBlocked(g.trackerSmacker, id) {
			g.logger.Log(log.NewEffectBlockedEvent(g.turn, g.phase, id.String(), c.TypeID))
			me.CarryModifier = 0
			return
		}
		// The tracker's own slot contributes nothing; its value rides on
		// this seat's next play.
		old := me.CarryModifier
		me.CarryModifier = ApplyTrackerModifier(me.CarryModifier, c)
		g.logger.Log(log.NewModifierEvent(g.turn, g.phase, id.String(), c.TypeID, old, me.CarryModifier, "carry"))

	case SpecialBlocker:
		if IsEffectBlocked(g.trackerSmacker, id) {
			g.logger.Log(log.NewEffectBlockedEvent(g.turn, g.phase, id.String(), c.TypeID))
			return
		}
		old := opp.TurnValue
		opp.TurnValue = ApplyBlockerModifier(opp.TurnValue, c)
		g.logger.Log(log.NewModifierEvent(g.turn, g.phase, id.String(), c.TypeID, old, opp.TurnValue, id.Opponent().String()))

	case SpecialTrackerSmacker:
		g.trackerSmacker = id
		opp.CarryModifier = 0
		g.logger.Log(log.NewInstantEvent(g.turn, g.phase, id.String(), c.TypeID,
			fmt.Sprintf("%s activates Tracker-Smacker", id)))

	case SpecialForcedEmpathy:
		g.swapDecks(id)

	case SpecialHostileTakeover:
		g.hostileTakeover = true
		g.htPlayer = id
		g.logger.Log(log.NewInstantEvent(g.turn, g.phase, id.String(), c.TypeID,
			fmt.Sprintf("%s forces a Data War", id)))

	default:
		old := me.TurnValue
		me.TurnValue += BaseValue(c) + me.CarryModifier
		if me.CarryModifier != 0 {
			g.logger.Log(log.NewModifierEvent(g.turn, g.phase, id.String(), c.TypeID, old, me.TurnValue, id.String()))
		}
		me.CarryModifier = 0
		if c.IsSpecial && c.SpecialType != SpecialNone && c.SpecialType != SpecialLaunchStack {
			g.enqueueEffect(id, c)
			g.logger.Log(log.NewEffectQueuedEvent(g.turn, g.phase, id.String(), c.TypeID))
		}
	}
}

// swapDecks exchanges the two draw piles. Launch-stack collections and
// turn values stay put. Playing Forced Empathy twice swaps twice.
func (g *Game) swapDecks(by PlayerID) {
	g.player.Deck, g.cpu.Deck = g.cpu.Deck, g.player.Deck
	g.logger.Log(log.NewDeckSwapEvent(g.turn, g.phase, by.String()))
}

// StealCards moves up to count cards from the top of one seat's draw pile
// to the bottom of the other's, clamping to availability. Returns the
// number actually moved.
func (g *Game) StealCards(from, to PlayerID, count int) int {
	src := g.state(from)
	dst := g.state(to)
	if count > len(src.Deck) {
		count = len(src.Deck)
	}
	if count <= 0 {
		return 0
	}
	moved := make([]Card, count)
	copy(moved, src.Deck[:count])
	src.Deck = src.Deck[count:]
	dst.CollectToBottom(moved...)
	g.logger.Log(log.NewStealEvent(g.turn, g.phase, to.String(),
		fmt.Sprintf("%d card(s)", count), from.String()))
	return count
}

// --- Win handling ---

// setWinner records the game's winner. The first call wins; later calls
// are ignored.
func (g *Game) setWinner(id PlayerID, cond WinCondition) {
	if g.winner != "" {
		return
	}
	g.winner = id
	g.winCondition = cond
	g.logger.Log(log.NewWinEvent(g.turn, g.phase, id.String(), cond.String()))
}

// checkWinCondition tests the launch-stack threshold, and deck exhaustion
// when no cards are in flight.
func (g *Game) checkWinCondition() {
	if g.winner != "" {
		return
	}
	need := g.cfg.launchStacksToWin()
	for _, p := range []*PlayerState{g.player, g.cpu} {
		if p.LaunchStackCount() >= need {
			g.setWinner(p.ID, WinLaunchStacks)
			return
		}
	}
	for _, p := range []*PlayerState{g.player, g.cpu} {
		if p.DeckCount() == 0 && len(p.Played) == 0 {
			g.setWinner(p.ID.Opponent(), WinAllCards)
			return
		}
	}
}

// --- Snapshots ---

// PlayerSnapshot is a read-only view of one seat.
type PlayerSnapshot struct {
	ID            PlayerID     `json:"id"`
	DeckCount     int          `json:"deckCount"`
	InPlay        []PlayedCard `json:"inPlay"`
	TurnValue     int          `json:"turnValue"`
	CarryModifier int          `json:"carryModifier"`
	LaunchStacks  int          `json:"launchStacks"`
}

// Snapshot is a read-only view of the whole session for presentation
// layers. It shares no mutable state with the Game.
type Snapshot struct {
	Turn           int             `json:"turn"`
	Phase          string          `json:"phase"`
	Player         PlayerSnapshot  `json:"player"`
	CPU            PlayerSnapshot  `json:"cpu"`
	Pending        []SpecialEffect `json:"pending,omitempty"`
	Suspension     Suspension      `json:"suspension"`
	TrackerSmacker PlayerID        `json:"trackerSmacker,omitempty"`
	TurnWinner     PlayerID        `json:"turnWinner,omitempty"`
	Winner         PlayerID        `json:"winner,omitempty"`
	WinCondition   WinCondition    `json:"winCondition"`
}

func snapshotPlayer(p *PlayerState) PlayerSnapshot {
	inPlay := make([]PlayedCard, len(p.Played))
	copy(inPlay, p.Played)
	return PlayerSnapshot{
		ID:            p.ID,
		DeckCount:     p.DeckCount(),
		InPlay:        inPlay,
		TurnValue:     p.TurnValue,
		CarryModifier: p.CarryModifier,
		LaunchStacks:  p.LaunchStackCount(),
	}
}

// Snapshot captures the current session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Turn:           g.turn,
		Phase:          g.phase,
		Player:         snapshotPlayer(g.player),
		CPU:            snapshotPlayer(g.cpu),
		Pending:        g.PendingEffects(),
		Suspension:     g.suspension,
		TrackerSmacker: g.trackerSmacker,
		TurnWinner:     g.turnWinner,
		Winner:         g.winner,
		WinCondition:   g.winCondition,
	}
}
