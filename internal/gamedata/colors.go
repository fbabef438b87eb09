package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: want 6 digits", hex)
	}
	color := tcell.GetColor("#" + hex)
	if color == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q", hex)
	}
	return color, nil
}

// colorOr parses hex, returning fallback when it is not a valid color.
func colorOr(hex string, fallback tcell.Color) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return color
}

// ElementColor returns the display color for an element type.
func (d *Data) ElementColor(t ElementType) tcell.Color {
	return colorOr(d.TypeColor(t), tcell.ColorWhite)
}

// TCellColor returns the species color as a tcell.Color.
func (s *SpeciesDef) TCellColor() tcell.Color {
	return colorOr(s.Color, tcell.ColorWhite)
}
