package physics

// DefaultStep matches a 120 Hz simulation.
const DefaultStep = float32(1.0 / 120.0)

// stepSlack absorbs float32 rounding when frame time is a multiple of Step.
const stepSlack = 1e-6

// DefaultMaxSteps bounds catch-up work after a slow frame.
const DefaultMaxSteps = 8

// Stepper turns variable frame times into a whole number of fixed steps.
// Leftover time carries into the next frame; backlog beyond MaxSteps is
// dropped so a stall cannot snowball.
type Stepper struct {
	Step     float32
	MaxSteps int
	acc      float32
}

func NewStepper(step float32, maxSteps int) *Stepper {
	if step <= 0 {
		step = DefaultStep
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Stepper{Step: step, MaxSteps: maxSteps}
}

// Advance adds elapsed seconds and calls step once per fixed step due.
// It returns the number of steps run.
func (s *Stepper) Advance(elapsed float32, step func(dt float32)) int {
	if elapsed > 0 {
		s.acc += elapsed
	}
	n := 0
	for s.acc+stepSlack >= s.Step && n < s.MaxSteps {
		step(s.Step)
		s.acc -= s.Step
		n++
	}
	if s.acc < 0 || (n == s.MaxSteps && s.acc+stepSlack >= s.Step) {
		s.acc = 0
	}
	return n
}

// Remainder is the carried time not yet simulated.
func (s *Stepper) Remainder() float32 {
	return s.acc
}
