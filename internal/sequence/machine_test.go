package sequence

import (
	"testing"
	"time"
)

func newTestMachine(guard GuardFunc) (*Machine, *[]string) {
	var entered []string
	m := NewMachine(StateSpawning, []Transition{
		{From: StateSpawning, To: StateSettling, After: 5 * time.Second},
		{From: StateSettling, To: StateRevealing, After: 2 * time.Second},
		{From: StateRevealing, To: StateInteractive, Event: EventSpace, Guard: guard},
	})
	for _, s := range []State{StateSpawning, StateSettling, StateRevealing, StateInteractive} {
		m.OnEnter(s, func() { entered = append(entered, s.String()) })
	}
	return m, &entered
}

func TestMachineStartRunsInitialOnce(t *testing.T) {
	m, entered := newTestMachine(nil)
	if m.Update(time.Hour) {
		t.Error("Update before Start should not transition")
	}
	m.Start()
	m.Start()
	if len(*entered) != 1 || (*entered)[0] != "Spawning" {
		t.Errorf("Expected [Spawning], got %v", *entered)
	}
}

func TestMachineTimedTransitions(t *testing.T) {
	m, entered := newTestMachine(nil)
	m.Start()

	steps := []struct {
		dt    time.Duration
		fired bool
		state State
	}{
		{4999 * time.Millisecond, false, StateSpawning},
		{time.Millisecond, true, StateSettling},
		{1999 * time.Millisecond, false, StateSettling},
		{time.Millisecond, true, StateRevealing},
		{time.Hour, false, StateRevealing},
	}
	for i, s := range steps {
		if got := m.Update(s.dt); got != s.fired {
			t.Errorf("step %d: expected fired=%v, got %v", i, s.fired, got)
		}
		if m.State() != s.state {
			t.Errorf("step %d: expected %s, got %s", i, s.state, m.State())
		}
	}
	want := []string{"Spawning", "Settling", "Revealing"}
	if len(*entered) != len(want) {
		t.Fatalf("Expected %v, got %v", want, *entered)
	}
	for i := range want {
		if (*entered)[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, *entered)
		}
	}
}

func TestMachineOneTimedTransitionPerUpdate(t *testing.T) {
	m, _ := newTestMachine(nil)
	m.Start()

	// 8s covers both delays but only one row fires; the excess carries over
	if !m.Update(8 * time.Second) {
		t.Fatal("Expected a transition")
	}
	if m.State() != StateSettling {
		t.Errorf("Expected Settling, got %s", m.State())
	}
	if m.TimeInState() != 3*time.Second {
		t.Errorf("Expected 3s carried over, got %v", m.TimeInState())
	}
	if !m.Update(0) || m.State() != StateRevealing {
		t.Errorf("Expected carried time to reach Revealing, got %s", m.State())
	}
	if m.TimeInState() != time.Second {
		t.Errorf("Expected 1s carried over, got %v", m.TimeInState())
	}
}

func TestMachineEventGuard(t *testing.T) {
	ready := false
	m, _ := newTestMachine(func() bool { return ready })
	m.Start()

	if m.Advance(EventSpace) {
		t.Error("Space has no row out of Spawning")
	}
	m.Update(5 * time.Second)
	m.Update(2 * time.Second)

	if m.Advance(EventSpace) {
		t.Error("Guard should block Space")
	}
	ready = true
	if !m.Advance(EventSpace) {
		t.Error("Expected Space to fire once guard passes")
	}
	if m.State() != StateInteractive {
		t.Errorf("Expected Interactive, got %s", m.State())
	}
	if m.Advance(EventSpace) {
		t.Error("Interactive has no outgoing rows")
	}
	if m.Advance(EventTick) {
		t.Error("EventTick is not an external event")
	}
}

func TestMachineRejectsReentrantEvents(t *testing.T) {
	m := NewMachine(StateSpawning, []Transition{
		{From: StateSpawning, To: StateSettling, Event: EventSpace},
		{From: StateSettling, To: StateRevealing, Event: EventSpace},
	})
	var inner bool
	m.OnEnter(StateSettling, func() { inner = m.Advance(EventSpace) })
	m.Start()

	if !m.Advance(EventSpace) {
		t.Fatal("Expected outer Space to fire")
	}
	if inner {
		t.Error("Space raised from OnEnter should be rejected")
	}
	if m.State() != StateSettling {
		t.Errorf("Expected Settling, got %s", m.State())
	}
}

func TestStateString(t *testing.T) {
	if StateInteractive.String() != "Interactive" {
		t.Errorf("Expected Interactive, got %s", StateInteractive)
	}
	if State(9).String() != "State(9)" {
		t.Errorf("Expected State(9), got %s", State(9))
	}
}
