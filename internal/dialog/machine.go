package dialog

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// State is what the conversation is waiting for next.
type State int

const (
	Idle State = iota
	AwaitingRate
	AwaitingBonus
	AwaitingCredits
	AwaitingManualSession
	AwaitingDay
	AwaitingRange
)

var stateNames = [...]string{
	Idle:                  "idle",
	AwaitingRate:          "awaiting_rate",
	AwaitingBonus:         "awaiting_bonus",
	AwaitingCredits:       "awaiting_credits",
	AwaitingManualSession: "awaiting_manual_session",
	AwaitingDay:           "awaiting_day",
	AwaitingRange:         "awaiting_range",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Action is a menu choice that opens an input prompt.
type Action string

const (
	ActionSetRate    Action = "set_rate"
	ActionSetBonus   Action = "set_bonus"
	ActionSetCredits Action = "set_credits"
	ActionFixSession Action = "fix_sessions"
	ActionEditDay    Action = "edit_past"
)

// Actions lists the menu actions in display order.
var Actions = []Action{ActionSetRate, ActionSetBonus, ActionSetCredits, ActionFixSession, ActionEditDay}

// Prompt names the message shown when entering a state.
type Prompt string

const (
	PromptRate          Prompt = "rate_prompt"
	PromptBonus         Prompt = "bonus_prompt"
	PromptCredits       Prompt = "credits_prompt"
	PromptManualSession Prompt = "add_session_prompt"
	PromptDay           Prompt = "select_day_prompt"
	PromptRange         Prompt = "add_range_prompt"
)

var (
	ErrNoPendingInput = errors.New("no input expected")
	ErrUnknownAction  = errors.New("unknown action")
)

// transition describes one awaiting state: its prompt, and where a rejected
// input leaves the conversation.
type transition struct {
	prompt    Prompt
	onFailure State
}

var begins = map[Action]State{
	ActionSetRate:    AwaitingRate,
	ActionSetBonus:   AwaitingBonus,
	ActionSetCredits: AwaitingCredits,
	ActionFixSession: AwaitingManualSession,
	ActionEditDay:    AwaitingDay,
}

var transitions = map[State]transition{
	AwaitingRate:          {prompt: PromptRate, onFailure: AwaitingRate},
	AwaitingBonus:         {prompt: PromptBonus, onFailure: AwaitingBonus},
	AwaitingCredits:       {prompt: PromptCredits, onFailure: AwaitingCredits},
	AwaitingManualSession: {prompt: PromptManualSession, onFailure: Idle},
	AwaitingDay:           {prompt: PromptDay, onFailure: AwaitingDay},
	AwaitingRange:         {prompt: PromptRange, onFailure: AwaitingRange},
}

var profileFieldFor = map[State]domain.ProfileField{
	AwaitingRate:    domain.FieldHourlyRate,
	AwaitingBonus:   domain.FieldFixedBonus,
	AwaitingCredits: domain.FieldCreditPoints,
}

// OutcomeKind tells the caller which effect an accepted input asks for.
type OutcomeKind int

const (
	// OutcomeSetField: store Value into Field.
	OutcomeSetField OutcomeKind = iota
	// OutcomeDaySelected: show the sessions of Day, then prompt for a range.
	OutcomeDaySelected
	// OutcomeRecordSession: record the closed session [Start, End).
	OutcomeRecordSession
)

// Outcome is the typed result of an accepted input. Next is the state the
// machine moved to.
type Outcome struct {
	Kind  OutcomeKind
	Field domain.ProfileField
	Value float64
	Day   time.Time
	Start time.Time
	End   time.Time
	Next  State
}

// Machine is the per-user conversation state. It performs no I/O; callers
// apply each Outcome against the services. Not safe for concurrent use.
type Machine struct {
	state State
	day   time.Time
}

func NewMachine() *Machine {
	return &Machine{state: Idle}
}

func (m *Machine) State() State { return m.state }

// Begin starts a prompt from any state, abandoning pending input, and returns
// the prompt to show.
func (m *Machine) Begin(action Action) (Prompt, error) {
	next, ok := begins[action]
	if !ok {
		return "", fmt.Errorf("%q: %w", action, ErrUnknownAction)
	}
	m.state = next
	m.day = time.Time{}
	return transitions[next].prompt, nil
}

// Reset abandons pending input.
func (m *Machine) Reset() {
	m.state = Idle
	m.day = time.Time{}
}

// Prompt returns the prompt for the current state, or "" when idle.
func (m *Machine) Prompt() Prompt {
	return transitions[m.state].prompt
}

// Submit feeds one line of user input. On success the machine advances and
// the Outcome describes what to apply. On a *ParseError the machine moves to
// the state's failure target.
func (m *Machine) Submit(text string) (Outcome, error) {
	t, ok := transitions[m.state]
	if !ok {
		return Outcome{}, ErrNoPendingInput
	}

	out, err := m.accept(text)
	if err != nil {
		m.state = t.onFailure
		if m.state == Idle {
			m.day = time.Time{}
		}
		return Outcome{}, err
	}
	out.Next = m.state
	return out, nil
}

func (m *Machine) accept(text string) (Outcome, error) {
	switch m.state {
	case AwaitingRate, AwaitingBonus, AwaitingCredits:
		v, err := ParseAmount(text)
		if err != nil {
			return Outcome{}, err
		}
		field := profileFieldFor[m.state]
		m.state = Idle
		return Outcome{Kind: OutcomeSetField, Field: field, Value: v}, nil

	case AwaitingManualSession:
		start, end, err := ParseManualSession(text)
		if err != nil {
			return Outcome{}, err
		}
		m.state = Idle
		return Outcome{Kind: OutcomeRecordSession, Start: start, End: end}, nil

	case AwaitingDay:
		day, err := ParseDay(text)
		if err != nil {
			return Outcome{}, err
		}
		m.day = day
		m.state = AwaitingRange
		return Outcome{Kind: OutcomeDaySelected, Day: day}, nil

	case AwaitingRange:
		start, end, err := ParseTimeRange(m.day, text)
		if err != nil {
			return Outcome{}, err
		}
		day := m.day
		m.state = Idle
		m.day = time.Time{}
		return Outcome{Kind: OutcomeRecordSession, Day: day, Start: start, End: end}, nil
	}
	return Outcome{}, ErrNoPendingInput
}
