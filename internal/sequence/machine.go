// Package sequence drives the demo through its phases: letters spawn, fall,
// a label is revealed and finally the icons become clickable.
package sequence

import (
	"fmt"
	"time"

	"asciidrop/internal/engine"
)

type State int

const (
	StateSpawning State = iota
	StateSettling
	StateRevealing
	StateInteractive
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "Spawning"
	case StateSettling:
		return "Settling"
	case StateRevealing:
		return "Revealing"
	case StateInteractive:
		return "Interactive"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Event int

const (
	EventTick Event = iota // timed rows
	EventSpace
)

// GuardFunc returns true if the transition may fire.
type GuardFunc func() bool

// Transition is one row of the table. Rows with EventTick fire once the
// machine has spent After in From.
type Transition struct {
	From  State
	To    State
	Event Event
	After time.Duration
	Guard GuardFunc // nil = always
}

// Machine is a flat, forward-only state machine. It is driven from the main
// loop and is not safe for concurrent use.
type Machine struct {
	rows        []Transition
	onEnter     map[State]*engine.Event
	state       State
	timeInState time.Duration
	started     bool
	firing      bool
}

func NewMachine(initial State, rows []Transition) *Machine {
	return &Machine{
		rows:    rows,
		onEnter: make(map[State]*engine.Event),
		state:   initial,
	}
}

// OnEnter registers an action run each time s is entered. Actions for the
// initial state run in Start.
func (m *Machine) OnEnter(s State, action func()) {
	ev, ok := m.onEnter[s]
	if !ok {
		ev = &engine.Event{}
		m.onEnter[s] = ev
	}
	ev.AddListener(action)
}

// Start enters the initial state. Calling it again does nothing.
func (m *Machine) Start() {
	if m.started {
		return
	}
	m.started = true
	m.enter(m.state)
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) TimeInState() time.Duration {
	return m.timeInState
}

// Update adds dt to the time in the current state and fires at most one
// timed row. Time past the row's delay carries into the new state.
func (m *Machine) Update(dt time.Duration) bool {
	if !m.started || m.firing {
		return false
	}
	if dt > 0 {
		m.timeInState += dt
	}
	for _, row := range m.rows {
		if row.From != m.state || row.Event != EventTick {
			continue
		}
		if m.timeInState < row.After {
			continue
		}
		if row.Guard != nil && !row.Guard() {
			continue
		}
		excess := m.timeInState - row.After
		m.transition(row.To)
		m.timeInState = excess
		return true
	}
	return false
}

// Advance fires the first row matching ev whose guard passes. Events raised
// from inside an OnEnter action are rejected.
func (m *Machine) Advance(ev Event) bool {
	if !m.started || m.firing || ev == EventTick {
		return false
	}
	for _, row := range m.rows {
		if row.From != m.state || row.Event != ev {
			continue
		}
		if row.Guard != nil && !row.Guard() {
			continue
		}
		m.transition(row.To)
		return true
	}
	return false
}

func (m *Machine) transition(to State) {
	m.state = to
	m.timeInState = 0
	m.enter(to)
}

func (m *Machine) enter(s State) {
	m.firing = true
	defer func() { m.firing = false }()
	if ev, ok := m.onEnter[s]; ok {
		ev.Invoke()
	}
}
