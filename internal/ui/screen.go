// Package ui draws the battle screen with tcell.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen owns the terminal. Drawing goes through Put so text is clipped and
// measured in grapheme clusters.
type Screen struct {
	screen tcell.Screen
}

// NewScreen opens the terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for the next terminal or posted event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent queues an event for PollEvent. Safe to call from any goroutine.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

// Begin clears the buffer for a new frame and returns its size.
func (s *Screen) Begin() (width, height int) {
	s.screen.Clear()
	return s.screen.Size()
}

// Put draws str starting at (x, y), clipped at the right edge, and returns
// the column after the last cell drawn.
func (s *Screen) Put(x, y int, str string, style tcell.Style) int {
	width, _ := s.screen.Size()
	if x < 0 {
		x = 0
	}
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		w := g.Width()
		if x+w > width {
			break
		}
		runes := g.Runes()
		s.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// Show flushes the frame to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// Sync forces a full redraw, used after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}
