package present

import (
	"asciidrop/internal/ascii"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const clickSlop = 4

var (
	glyphColor = rl.RayWhite
	hintColor  = rl.Gray
	panelColor = rl.NewColor(20, 20, 30, 220)
)

// Window owns the raylib context. A hidden window still provides the GL
// context the renderer needs when output goes to a terminal.
type Window struct {
	font    rl.Font
	pointer pointer
	width   int
	height  int
}

func OpenWindow(width, height int, title string, fps int, hidden bool) *Window {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if hidden {
		flags |= rl.FlagWindowHidden
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(width), int32(height), title)
	if fps > 0 {
		rl.SetTargetFPS(int32(fps))
	}
	rl.SetExitKey(rl.KeyEscape)

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(panelColor))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.LightGray))

	return &Window{
		font:    rl.GetFontDefault(),
		pointer: pointer{slop: clickSlop},
		width:   rl.GetScreenWidth(),
		height:  rl.GetScreenHeight(),
	}
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) Poll() Input {
	in := Input{
		Space:       rl.IsKeyPressed(rl.KeySpace),
		Quit:        rl.WindowShouldClose(),
		ToggleDebug: rl.IsKeyPressed(rl.KeyF1),
		Wheel:       rl.GetMouseWheelMove(),
	}

	mouse := rl.GetMousePosition()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		w.pointer.Press(mouse)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		if w.pointer.Release(mouse) {
			in.Clicks = append(in.Clicks, mouse)
		}
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		in.Drag = w.pointer.Move(mouse)
	}

	if rl.IsWindowResized() {
		w.width, w.height = rl.GetScreenWidth(), rl.GetScreenHeight()
		in.Resized = true
	}
	return in
}

// Present draws one glyph per cell, stretched across the window.
func (w *Window) Present(f ascii.Frame, hud *HUD) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	cell := ascii.CellFor(f, w.width, w.height)
	for row, line := range f.Lines {
		col := 0
		for _, r := range line {
			if r != ' ' {
				pos := rl.Vector2{X: float32(col) * cell.W, Y: float32(row) * cell.H}
				rl.DrawTextCodepoint(w.font, r, pos, cell.H, glyphColor)
			}
			col++
		}
	}

	w.drawHUD(hud)
	rl.EndDrawing()
}

func (w *Window) drawHUD(hud *HUD) {
	if hud == nil {
		return
	}
	if hud.Hint != "" {
		rl.DrawText(hud.Hint, 10, int32(w.height)-30, 20, hintColor)
	}
	if !hud.Debug {
		return
	}

	lines := hud.Lines()
	panel := rl.Rectangle{X: 10, Y: 10, Width: 220, Height: float32(len(lines)*20 + 70)}
	rl.DrawRectangleRec(panel, panelColor)
	for i, line := range lines {
		rl.DrawText(line, 20, int32(20+i*20), 16, rl.Green)
	}

	y := float32(20 + len(lines)*20)
	hud.Resolution = gui.Slider(rl.Rectangle{X: 90, Y: y, Width: 120, Height: 16}, "Resolution", "", hud.Resolution, 0.1, 1)
	hud.Muted = gui.CheckBox(rl.Rectangle{X: 20, Y: y + 26, Width: 16, Height: 16}, "Mute", hud.Muted)
}

func (w *Window) Close() {
	rl.CloseWindow()
}
