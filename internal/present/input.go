// Package present puts ASCII frames on screen, either in the raylib window or
// in a terminal, and samples the user's input for the frame.
package present

import (
	"fmt"

	"asciidrop/internal/ascii"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame's worth of user actions. Positions are in the
// surface's pixel space, the same space the renderer's viewport uses.
type Input struct {
	Space       bool
	Quit        bool
	ToggleDebug bool
	Clicks      []rl.Vector2
	Drag        rl.Vector2
	Wheel       float32
	Resized     bool
}

// HUD is what the overlay shows. Resolution and Muted are also edited by the
// window's debug panel; the caller reads them back after Present.
type HUD struct {
	Hint       string
	Debug      bool
	State      string
	Letters    int
	Icons      int
	Steps      int
	Culled     int
	FPS        int
	Resolution float32
	Muted      bool
}

// Lines is the debug readout, one entry per row.
func (h *HUD) Lines() []string {
	return []string{
		fmt.Sprintf("State:   %s", h.State),
		fmt.Sprintf("Letters: %d", h.Letters),
		fmt.Sprintf("Icons:   %d", h.Icons),
		fmt.Sprintf("Steps:   %d", h.Steps),
		fmt.Sprintf("Culled:  %d", h.Culled),
		fmt.Sprintf("FPS:     %d", h.FPS),
	}
}

// Surface is where frames go and input comes from.
type Surface interface {
	// Size is the output size in pixels.
	Size() (width, height int)
	// Poll samples input since the previous call.
	Poll() Input
	Present(f ascii.Frame, hud *HUD)
	Close()
}

// pointer splits a press/release pair into either a click or a drag.
// Movement beyond slop turns the gesture into a drag for good.
type pointer struct {
	slop    float32
	down    bool
	dragged bool
	press   rl.Vector2
	last    rl.Vector2
}

func (p *pointer) Press(pos rl.Vector2) {
	p.down = true
	p.dragged = false
	p.press = pos
	p.last = pos
}

// Move returns the motion since the last sample while the button is held.
func (p *pointer) Move(pos rl.Vector2) rl.Vector2 {
	if !p.down {
		return rl.Vector2{}
	}
	delta := rl.Vector2Subtract(pos, p.last)
	p.last = pos
	if !p.dragged && rl.Vector2Distance(pos, p.press) > p.slop {
		p.dragged = true
	}
	return delta
}

// Release reports whether the gesture was a click.
func (p *pointer) Release(pos rl.Vector2) bool {
	if !p.down {
		return false
	}
	p.Move(pos)
	p.down = false
	return !p.dragged
}
