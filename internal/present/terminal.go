package present

import (
	"fmt"

	"asciidrop/internal/ascii"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cellPixels scales terminal drag distances to roughly window pixels so
// the orbit controller feels the same on both surfaces.
const cellPixels = 8

// Terminal draws frames with tcell. One terminal cell is one glyph, so the
// surface is cols x rows*RowStep pixels and renders at resolution 1.
type Terminal struct {
	screen  tcell.Screen
	events  chan tcell.Event
	quit    chan struct{}
	pointer pointer
	style   tcell.Style
	hud     tcell.Style
}

// OpenTerminal takes over the controlling terminal.
func OpenTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return NewTerminal(screen), nil
}

// NewTerminal wraps an initialised screen.
func NewTerminal(screen tcell.Screen) *Terminal {
	screen.EnableMouse()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		style:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		hud:    tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGreen).Bold(true),
	}
	go t.pollEvents()
	return t
}

func (t *Terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

func (t *Terminal) Size() (int, int) {
	cols, rows := t.screen.Size()
	return cols, rows * ascii.RowStep
}

// Poll drains every event queued since the last frame.
func (t *Terminal) Poll() Input {
	var in Input
	for {
		select {
		case ev := <-t.events:
			t.handle(ev, &in)
		default:
			return in
		}
	}
}

func (t *Terminal) handle(ev tcell.Event, in *Input) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			in.Quit = true
		case tcell.KeyF1:
			in.ToggleDebug = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				in.Space = true
			case 'q', 'Q':
				in.Quit = true
			case 'd', 'D':
				in.ToggleDebug = true
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		pos := CellCenter(x, y)
		buttons := ev.Buttons()

		if buttons&tcell.WheelUp != 0 {
			in.Wheel++
		}
		if buttons&tcell.WheelDown != 0 {
			in.Wheel--
		}

		switch {
		case buttons&tcell.Button1 != 0 && !t.pointer.down:
			t.pointer.Press(pos)
		case buttons&tcell.Button1 != 0:
			d := t.pointer.Move(pos)
			in.Drag = rl.Vector2Add(in.Drag, rl.Vector2Scale(rl.Vector2{X: d.X, Y: d.Y / ascii.RowStep}, cellPixels))
		case t.pointer.down:
			if t.pointer.Release(pos) {
				in.Clicks = append(in.Clicks, pos)
			}
		}

	case *tcell.EventResize:
		t.screen.Sync()
		in.Resized = true
	}
}

// CellCenter maps a terminal cell to the centre of its pixel block.
func CellCenter(col, row int) rl.Vector2 {
	return rl.Vector2{X: float32(col) + 0.5, Y: (float32(row) + 0.5) * ascii.RowStep}
}

func (t *Terminal) Present(f ascii.Frame, hud *HUD) {
	cols, rows := t.screen.Size()
	for y := 0; y < rows; y++ {
		var line []rune
		if y < len(f.Lines) {
			line = []rune(f.Lines[y])
		}
		for x := 0; x < cols; x++ {
			r := ' '
			if x < len(line) {
				r = line[x]
			}
			t.screen.SetContent(x, y, r, nil, t.style)
		}
	}

	if hud != nil {
		if hud.Hint != "" {
			t.drawText(1, rows-1, hud.Hint)
		}
		if hud.Debug {
			for i, line := range hud.Lines() {
				t.drawText(1, 1+i, line)
			}
		}
	}
	t.screen.Show()
}

func (t *Terminal) drawText(x, y int, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, t.hud)
	}
}

func (t *Terminal) Close() {
	close(t.quit)
	t.screen.Fini()
}
