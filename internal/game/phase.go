package game

// Phase is the controller's state. Nested states render dot-delimited
// (e.g. "data_war.reveal_face_up").
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseSelectBillionaire
	PhaseSelectBackground
	PhaseIntro
	PhaseQuickStartGuide
	PhaseYourMission
	PhaseVSAnimation
	PhaseReady
	PhaseRevealing
	PhaseEffectChecking
	PhaseEffectNotifying
	PhaseComparing
	PhaseDataWarAnimating
	PhaseDataWarFaceDown
	PhaseDataWarFaceUp
	PhaseSpecialShowing
	PhaseSpecialProcessing
	PhaseResolving
	PhasePreRevealProcessing
	PhasePreRevealAnimating
	PhasePreRevealAwaiting
	PhasePreRevealSelecting
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "welcome"
	case PhaseSelectBillionaire:
		return "select_billionaire"
	case PhaseSelectBackground:
		return "select_background"
	case PhaseIntro:
		return "intro"
	case PhaseQuickStartGuide:
		return "quick_start_guide"
	case PhaseYourMission:
		return "your_mission"
	case PhaseVSAnimation:
		return "vs_animation"
	case PhaseReady:
		return "ready"
	case PhaseRevealing:
		return "revealing"
	case PhaseEffectChecking:
		return "effect_notification.checking"
	case PhaseEffectNotifying:
		return "effect_notification.showing"
	case PhaseComparing:
		return "comparing"
	case PhaseDataWarAnimating:
		return "data_war.animating"
	case PhaseDataWarFaceDown:
		return "data_war.reveal_face_down"
	case PhaseDataWarFaceUp:
		return "data_war.reveal_face_up"
	case PhaseSpecialShowing:
		return "special_effect.showing"
	case PhaseSpecialProcessing:
		return "special_effect.processing"
	case PhaseResolving:
		return "resolving"
	case PhasePreRevealProcessing:
		return "pre_reveal.processing"
	case PhasePreRevealAnimating:
		return "pre_reveal.animating"
	case PhasePreRevealAwaiting:
		return "pre_reveal.awaiting_interaction"
	case PhasePreRevealSelecting:
		return "pre_reveal.selecting"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a discrete input to the controller. Events not defined for the
// current state are ignored.
type Event int

const (
	EventNext Event = iota
	EventRevealCards
	EventCardsRevealed
	EventTapDeck
	EventCardSelected
	EventDismissEffect
	EventAnimationsDone
	EventResetGame
	EventQuitGame
)

func (e Event) String() string {
	switch e {
	case EventNext:
		return "NEXT"
	case EventRevealCards:
		return "REVEAL_CARDS"
	case EventCardsRevealed:
		return "CARDS_REVEALED"
	case EventTapDeck:
		return "TAP_DECK"
	case EventCardSelected:
		return "CARD_SELECTED"
	case EventDismissEffect:
		return "DISMISS_EFFECT"
	case EventAnimationsDone:
		return "ANIMATIONS_DONE"
	case EventResetGame:
		return "RESET_GAME"
	case EventQuitGame:
		return "QUIT_GAME"
	default:
		return "UNKNOWN"
	}
}

// MachineOptions tunes the controller's presentation flow.
type MachineOptions struct {
	// SkipGuide jumps over the quick-start guide screen.
	SkipGuide bool
}

// Machine gates when reveal, comparison, escalation and resolution may
// occur. It never mutates turn state directly: it reads the game's guard
// predicates and calls its command methods, which own all card movement.
type Machine struct {
	game *Game
	opts MachineOptions

	phase     Phase
	turnCount int // increments at resolution and per Data War cycle
}

// NewMachine wraps a game in a controller starting at the welcome screen.
func NewMachine(g *Game, opts MachineOptions) *Machine {
	m := &Machine{game: g, opts: opts, phase: PhaseWelcome}
	g.SetPhase(m.phase.String())
	return m
}

// Phase returns the current controller state.
func (m *Machine) Phase() Phase { return m.phase }

// Game returns the underlying session.
func (m *Machine) Game() *Game { return m.game }

// TurnCount returns the controller's cycle counter. Distinct from
// Game.Turn, it also counts each Data War escalation cycle.
func (m *Machine) TurnCount() int { return m.turnCount }

func (m *Machine) setPhase(p Phase) {
	m.phase = p
	m.game.SetPhase(p.String())
}

// Suspension reports what human input the controller is waiting for.
func (m *Machine) Suspension() Suspension {
	switch m.phase {
	case PhaseReady, PhaseDataWarFaceDown, PhaseDataWarFaceUp, PhasePreRevealAwaiting:
		return Suspension{Kind: SuspensionAwaitingTap, Prompt: "tap the deck"}
	case PhaseSpecialShowing:
		return Suspension{Kind: SuspensionAwaitingModalDismiss, Prompt: "dismiss the effect"}
	case PhaseSpecialProcessing:
		return m.game.Suspension()
	case PhasePreRevealSelecting:
		return Suspension{
			Kind:       SuspensionAwaitingSelection,
			Prompt:     "pick one of your top cards",
			Candidates: m.game.PreRevealCandidates(),
			Min:        1,
			Max:        1,
		}
	default:
		return Suspension{}
	}
}

// Dispatch feeds one event into the controller. It returns true when the
// event caused a transition; events undefined for the current state are
// ignored and return false.
func (m *Machine) Dispatch(ev Event, cardIDs ...string) bool {
	switch ev {
	case EventResetGame, EventQuitGame:
		if err := m.game.Reset(); err != nil {
			return false
		}
		m.turnCount = 0
		m.setPhase(PhaseWelcome)
		return true
	}

	switch m.phase {
	case PhaseWelcome:
		if ev == EventNext {
			m.setPhase(PhaseSelectBillionaire)
			return true
		}
	case PhaseSelectBillionaire:
		if ev == EventNext {
			m.setPhase(PhaseSelectBackground)
			return true
		}
	case PhaseSelectBackground:
		if ev == EventNext {
			m.setPhase(PhaseIntro)
			return true
		}
	case PhaseIntro:
		if ev == EventNext {
			if m.opts.SkipGuide {
				m.setPhase(PhaseYourMission)
			} else {
				m.setPhase(PhaseQuickStartGuide)
			}
			return true
		}
	case PhaseQuickStartGuide:
		if ev == EventNext {
			m.setPhase(PhaseYourMission)
			return true
		}
	case PhaseYourMission:
		if ev == EventNext {
			m.setPhase(PhaseVSAnimation)
			return true
		}
	case PhaseVSAnimation:
		if ev == EventNext || ev == EventAnimationsDone {
			m.setPhase(PhaseReady)
			return true
		}

	case PhaseReady:
		if ev == EventRevealCards {
			m.beginReveal()
			return true
		}

	case PhaseRevealing:
		if ev == EventCardsRevealed {
			m.setPhase(PhaseEffectChecking)
			m.advance()
			return true
		}

	case PhaseDataWarFaceDown:
		if ev == EventTapDeck {
			m.setPhase(PhaseDataWarFaceUp)
			m.game.DataWarFaceUp()
			if m.game.HasWinner() {
				m.setPhase(PhaseGameOver)
			}
			return true
		}
	case PhaseDataWarFaceUp:
		if ev == EventTapDeck {
			m.turnCount++
			m.setPhase(PhaseComparing)
			m.advance()
			return true
		}

	case PhaseSpecialShowing:
		if ev == EventDismissEffect {
			m.setPhase(PhaseSpecialProcessing)
			m.drain()
			return true
		}
	case PhaseSpecialProcessing:
		if ev == EventCardSelected {
			if err := m.game.ProvideSelection(cardIDs); err != nil {
				return false
			}
			m.drain()
			return true
		}

	case PhasePreRevealAwaiting:
		if ev == EventTapDeck {
			m.setPhase(PhasePreRevealSelecting)
			return true
		}
	case PhasePreRevealSelecting:
		if ev == EventCardSelected && len(cardIDs) == 1 {
			if err := m.game.ApplyOpenPick(cardIDs[0]); err != nil {
				return false
			}
			m.beginReveal()
			return true
		}
	}
	return false
}

// beginReveal opens a turn and plays both seats' cards, landing in
// revealing (or game_over if a seat could not play).
func (m *Machine) beginReveal() {
	if m.game.HasWinner() {
		m.setPhase(PhaseGameOver)
		return
	}
	m.game.BeginTurn()
	if m.game.HasWinner() {
		m.setPhase(PhaseGameOver)
		return
	}
	m.setPhase(PhaseRevealing)
	m.game.PlayBothSides()
	if m.game.HasWinner() {
		m.setPhase(PhaseGameOver)
	}
}

// advance runs the transient states that need no external event, stopping
// at the next state that waits for input.
func (m *Machine) advance() {
	for {
		if m.game.HasWinner() && m.phase != PhaseGameOver {
			m.setPhase(PhaseGameOver)
			return
		}
		switch m.phase {
		case PhaseEffectChecking:
			if m.game.HasPendingEffects() {
				m.setPhase(PhaseEffectNotifying)
			} else {
				m.setPhase(PhaseComparing)
			}
		case PhaseEffectNotifying:
			// Non-blocking badge; resolution is not gated on it.
			m.setPhase(PhaseComparing)
		case PhaseComparing:
			if m.game.IsDataWar() {
				m.setPhase(PhaseDataWarAnimating)
				continue
			}
			m.game.ResolveComparison()
			if m.game.HasPendingEffects() {
				m.setPhase(PhaseSpecialShowing)
				return
			}
			m.setPhase(PhaseResolving)
		case PhaseDataWarAnimating:
			m.setPhase(PhaseDataWarFaceDown)
			m.game.DataWarFaceDown()
			if m.game.HasWinner() {
				m.setPhase(PhaseGameOver)
			}
			return
		case PhaseResolving:
			m.game.FinishTurn()
			m.turnCount++
			if m.game.HasWinner() {
				m.setPhase(PhaseGameOver)
				return
			}
			m.setPhase(PhasePreRevealProcessing)
		case PhasePreRevealProcessing:
			if !m.game.HasPreRevealPick() {
				m.setPhase(PhaseReady)
				return
			}
			m.setPhase(PhasePreRevealAnimating)
		case PhasePreRevealAnimating:
			m.setPhase(PhasePreRevealAwaiting)
			return
		default:
			return
		}
	}
}

// drain continues the deferred-effect drain, routing to resolving when it
// completes and staying in processing while a selection is pending.
func (m *Machine) drain() {
	if m.game.DrainEffects() {
		m.setPhase(PhaseResolving)
		m.advance()
	}
}

// Start fast-forwards the menu screens to the ready state.
func (m *Machine) Start() {
	for m.phase != PhaseReady && m.phase != PhaseGameOver {
		if !m.Dispatch(EventNext) {
			return
		}
	}
}

// RunTurn drives one full hand with synthetic inputs, auto-answering every
// suspension (taps, dismissals, and first-candidate selections). It
// returns false once the game is over.
func (m *Machine) RunTurn() bool {
	if m.phase == PhaseGameOver {
		return false
	}
	if m.phase != PhaseReady && m.phase != PhasePreRevealAwaiting {
		return false
	}
	for {
		switch m.phase {
		case PhaseReady:
			m.Dispatch(EventRevealCards)
		case PhaseRevealing:
			m.Dispatch(EventCardsRevealed)
		case PhaseDataWarFaceDown, PhaseDataWarFaceUp, PhasePreRevealAwaiting:
			m.Dispatch(EventTapDeck)
		case PhaseSpecialShowing:
			m.Dispatch(EventDismissEffect)
		case PhaseSpecialProcessing:
			susp := m.game.Suspension()
			if susp.Kind != SuspensionAwaitingSelection {
				return false
			}
			n := susp.Max
			if n > len(susp.Candidates) {
				n = len(susp.Candidates)
			}
			ids := make([]string, 0, n)
			for _, c := range susp.Candidates[:n] {
				ids = append(ids, c.ID)
			}
			m.Dispatch(EventCardSelected, ids...)
		case PhasePreRevealSelecting:
			cands := m.game.PreRevealCandidates()
			if len(cands) == 0 {
				return false
			}
			m.Dispatch(EventCardSelected, cands[0].ID)
		case PhaseGameOver:
			return false
		default:
			return false
		}
		// A hand is complete when we are back at a turn boundary.
		if m.phase == PhaseReady || m.phase == PhasePreRevealAwaiting || m.phase == PhaseGameOver {
			return m.phase != PhaseGameOver
		}
	}
}

// Run plays up to maxTurns hands automatically and returns the number
// completed.
func (m *Machine) Run(maxTurns int) int {
	m.Start()
	played := 0
	for played < maxTurns {
		if !m.RunTurn() {
			if m.phase == PhaseGameOver {
				played++
			}
			break
		}
		played++
	}
	return played
}
