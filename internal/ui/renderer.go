package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const hpBarWidth = 20

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the battle view.
func (r *Renderer) Render(v View) {
	width, height := r.screen.Begin()

	title := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	r.drawText(0, 0, v.Title, title)
	r.drawText(width-uniseg.StringWidth(v.Status)-1, 0, v.Status, tcell.StyleDefault.Foreground(tcell.ColorGray))

	if v.Enemy != nil {
		r.drawPanel(2, 2, v.Enemy)
	} else {
		r.drawText(2, 2, "No enemy in sight.", tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	if v.Player != nil {
		r.drawPanel(2, 6, v.Player)
	}

	// Moves
	y := 10
	for i, m := range v.Moves {
		x := 2 + (i%2)*30
		if i > 0 && i%2 == 0 {
			y++
		}
		style := tcell.StyleDefault.Foreground(m.Color)
		if m.PP == 0 {
			style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		}
		r.drawText(x, y, fmt.Sprintf("[%c] %-14s %2d/%-2d", m.Key, m.Name, m.PP, m.MaxPP), style)
	}

	// Battle log, newest at the bottom.
	top := y + 2
	bottom := height - 2
	rows := bottom - top
	msgs := v.Messages
	if rows > 0 && len(msgs) > rows {
		msgs = msgs[len(msgs)-rows:]
	}
	for i, msg := range msgs {
		r.RenderMessage(msg.Text, top+i, tcell.StyleDefault.Foreground(msg.Color))
	}

	r.drawText(0, height-1, v.Help, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
	r.screen.Show()
}

func (r *Renderer) drawPanel(x, y int, p *Panel) {
	name := tcell.StyleDefault.Foreground(p.Color).Bold(true)
	r.drawText(x, y, fmt.Sprintf("%s  Lv%d", p.Label, p.Level), name)
	r.drawText(x, y+1, HPBar(p.HP, p.MaxHP, hpBarWidth), tcell.StyleDefault.Foreground(HPColor(p.HP, p.MaxHP)))
	r.drawText(x+hpBarWidth+1, y+1, fmt.Sprintf("%d/%d", p.HP, p.MaxHP), tcell.StyleDefault)
	if p.Condition != "" {
		r.drawText(x, y+2, p.Condition, tcell.StyleDefault.Foreground(tcell.ColorFuchsia))
	}
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	r.screen.Put(x, y, s, style)
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int, style tcell.Style) {
	r.drawText(0, y, msg, style)
}
