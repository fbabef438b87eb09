package ui

import "github.com/gdamore/tcell/v2"

// View is everything the battle screen shows. It is built by the caller
// so this package stays independent of the engine.
type View struct {
	Title    string
	Status   string
	Enemy    *Panel
	Player   *Panel
	Moves    []MoveView
	Messages []Message
	Help     string
}

// Panel is one creature's name plate.
type Panel struct {
	Label     string
	Level     int
	HP        int
	MaxHP     int
	Condition string
	Color     tcell.Color
}

// MoveView is one selectable move.
type MoveView struct {
	Key   rune
	Name  string
	PP    int
	MaxPP int
	Color tcell.Color
}

// Message is one line of the battle log.
type Message struct {
	Text  string
	Color tcell.Color
}

// HPBar renders a fixed-width bar for hp out of max.
func HPBar(hp, max, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if max > 0 && hp > 0 {
		filled = hp * width / max
		if filled == 0 {
			filled = 1
		}
	}
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}

// HPColor picks a bar color by remaining fraction.
func HPColor(hp, max int) tcell.Color {
	switch {
	case max <= 0 || hp*4 <= max:
		return tcell.ColorRed
	case hp*2 <= max:
		return tcell.ColorYellow
	default:
		return tcell.ColorGreen
	}
}
