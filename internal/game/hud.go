package game

import "asciidrop/internal/sequence"

const (
	hintSpace = "Press SPACE to continue"
	hintClick = "Click an icon to open it"
)

// hint is the bottom-line prompt for the current phase. It stays empty
// while Space would be ignored.
func hint(state sequence.State, spaceReady bool) string {
	switch {
	case state == sequence.StateInteractive:
		return hintClick
	case spaceReady:
		return hintSpace
	}
	return ""
}
