package game

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/combat"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/telemetry"
	"github.com/samdwyer/critterquest/internal/ui"
)

// maxMessages bounds the on-screen battle log.
const maxMessages = 200

// Options configure the terminal client loop.
type Options struct {
	Saver            Saver
	Slot             string
	TickInterval     time.Duration
	AutoSaveInterval time.Duration
}

// tick is posted by the ticker goroutine so the engine only ever runs on
// the event loop.
type tick struct{}

// Game is the terminal client: it owns the screen and feeds key presses to
// the engine as commands.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *Engine
	session  *Session
	opts     Options

	messages []ui.Message
	lastSave time.Time
	running  bool
}

// New creates a terminal game around an engine and session.
func New(engine *Engine, sess *Session, opts Options) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		engine:   engine,
		session:  sess,
		opts:     opts,
		running:  true,
	}
	sess.SetSink(g.record)
	return g, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.session")
	span.SetAttributes(
		attribute.String("session", g.session.ID),
		attribute.String("area", g.session.AreaID),
	)
	defer span.End()

	g.lastSave = time.Now()
	g.say(combat.CategorySystem, "Welcome! Press e to look for a battle.")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(g.opts.TickInterval)
		defer ticker.Stop()
		postTicks(g.screen.PostEvent, ticker.C, stop)
	}()

	for g.running {
		g.renderer.Render(g.view())
		g.handleInput(ctx)
	}

	g.save(ctx)
	g.screen.Close()
	return nil
}

// postTicks posts a tick event for every beat until stop closes. A tick the
// full event queue rejects is dropped; the next beat tries again.
func postTicks(post func(tcell.Event) error, beats <-chan time.Time, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-beats:
			_ = post(tcell.NewEventInterrupt(tick{}))
		}
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(tick); ok {
			g.onTick(ctx)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent maps keys to engine commands.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	e, sess := g.engine, g.session
	switch r := ev.Rune(); r {
	case 'q', 'Q':
		g.running = false
	case '1', '2', '3', '4':
		active := sess.Active()
		i := int(r - '1')
		if active == nil || i >= len(active.Moves) {
			return
		}
		g.show(e.SubmitPlayerMove(ctx, sess, active.Moves[i].MoveID))
	case 'e':
		g.show(e.StartEncounter(ctx, sess, ""))
	case 'c':
		g.show(e.AttemptCapture(ctx, sess))
	case 'f':
		g.show(e.AttemptFlee(ctx, sess))
	case 's':
		next, ok := sess.Roster.NextAlive()
		if !ok {
			return
		}
		g.show(e.SwitchActive(ctx, sess, next))
	case 'p':
		g.show(e.UseItem(ctx, sess, "potion", sess.Roster.Active))
	case 'h':
		g.record(e.HealAll(ctx, sess))
	case 'n':
		g.show(e.MoveToNextArea(ctx, sess))
	case 'a':
		sess.AutoBattle = !sess.AutoBattle
		g.say(combat.CategorySystem, "Auto battle %s.", onOff(sess.AutoBattle))
	case 'w':
		g.save(ctx)
	}
}

// onTick advances deferred steps, runs the background heartbeat and
// autosaves on schedule.
func (g *Game) onTick(ctx context.Context) {
	g.engine.Scheduler().RunDue()
	g.record(g.engine.Tick(ctx, g.session))

	if g.opts.AutoSaveInterval > 0 && time.Since(g.lastSave) >= g.opts.AutoSaveInterval && !g.session.Busy() {
		g.save(ctx)
	}
}

func (g *Game) save(ctx context.Context) {
	if g.opts.Saver == nil {
		return
	}
	g.lastSave = time.Now()
	if err := g.opts.Saver.Save(ctx, g.opts.Slot, g.engine.Snapshot(g.session)); err != nil {
		log.Printf("Warning: save failed: %v", err)
		g.say(combat.CategorySystem, "Save failed.")
	}
}

func (g *Game) show(out *Outcome, _ error) {
	g.record(out)
}

// record appends an outcome's log to the on-screen messages.
func (g *Game) record(out *Outcome) {
	if out == nil {
		return
	}
	for _, entry := range out.Log {
		g.messages = append(g.messages, ui.Message{Text: entry.Text, Color: categoryColor(entry.Category)})
	}
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

func (g *Game) say(cat combat.Category, format string, args ...any) {
	g.messages = append(g.messages, ui.Message{Text: fmt.Sprintf(format, args...), Color: categoryColor(cat)})
}

// view builds the screen model from the session.
func (g *Game) view() ui.View {
	data := g.engine.Data()
	sess := g.session

	title := sess.AreaID
	if area := data.Areas.GetByID(sess.AreaID); area != nil {
		title = area.Name
	}
	v := ui.View{
		Title:    title,
		Status:   fmt.Sprintf("$%d  %s  auto:%s", sess.Money, sess.State(), onOff(sess.AutoBattle)),
		Messages: g.messages,
		Help:     "1-4 move  e explore  c catch  f flee  s switch  p potion  h heal  n next area  a auto  w save  q quit",
	}
	if sess.HasEnemy() {
		v.Enemy = g.panel(combat.DisplayName(sess.Enemy), sess.Enemy)
	}
	if active := sess.Active(); active != nil {
		v.Player = g.panel(active.Name, active)
		for i, m := range active.Moves {
			mv := ui.MoveView{Key: rune('1' + i), Name: m.MoveID, PP: m.PP, MaxPP: m.MaxPP, Color: tcell.ColorWhite}
			if def := data.Moves.GetByID(m.MoveID); def != nil {
				mv.Name = def.Name
				mv.Color = data.ElementColor(def.Type)
			}
			v.Moves = append(v.Moves, mv)
		}
	}
	return v
}

func (g *Game) panel(label string, c *entity.Combatant) *ui.Panel {
	p := &ui.Panel{
		Label: label,
		Level: c.Level,
		HP:    c.CurrentHP,
		MaxHP: c.MaxHP(),
		Color: tcell.ColorWhite,
	}
	data := g.engine.Data()
	if def := data.Species.GetByID(c.SpeciesID); def != nil && def.Color != "" {
		p.Color = def.TCellColor()
	} else if len(c.Types) > 0 {
		p.Color = data.ElementColor(c.Types[0])
	}
	var conds []string
	if c.HasMajorStatus() {
		conds = append(conds, combat.StatusLabel(c.Status))
	}
	if c.IsConfused() {
		conds = append(conds, combat.StatusLabel(gamedata.StatusConfusion))
	}
	p.Condition = strings.Join(conds, " ")
	return p
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func categoryColor(cat combat.Category) tcell.Color {
	switch cat {
	case combat.CategoryPlayerAttack, combat.CategoryBuff:
		return tcell.ColorAqua
	case combat.CategoryEnemyAttack, combat.CategoryDebuff:
		return tcell.ColorOrange
	case combat.CategoryPlayerDamage, combat.CategoryDefeat, combat.CategoryCatchFail:
		return tcell.ColorRed
	case combat.CategoryEnemyDamage:
		return tcell.ColorYellow
	case combat.CategoryVictory, combat.CategoryCatchSuccess, combat.CategoryStatusCured:
		return tcell.ColorGreen
	case combat.CategoryMapProgress, combat.CategoryGymLeaderIntro, combat.CategoryGymLeaderDefeat:
		return tcell.ColorGold
	case combat.CategoryEvolution, combat.CategoryAbilityActivation:
		return tcell.ColorFuchsia
	case combat.CategoryStatusInflicted, combat.CategoryStatusEffect:
		return tcell.ColorViolet
	case combat.CategorySystem:
		return tcell.ColorGray
	default:
		return tcell.ColorWhite
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
