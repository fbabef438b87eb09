// Package server exposes the battle engine over websockets. Each connection
// gets its own engine and session; commands arrive as JSON and every
// outcome, immediate or deferred, is written back on the same socket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/samdwyer/critterquest/internal/game"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/storage"
)

// Options configure a Server.
type Options struct {
	Config game.Config
	// Saver persists sessions. Save and load commands fail without one.
	Saver game.Saver
	// Clock drives deferred steps. Defaults to the wall clock.
	Clock game.Clock
	// TickInterval is how often deferred steps and the heartbeat run.
	TickInterval time.Duration
	Logger       *log.Logger
}

// Server accepts websocket connections and runs one session per connection.
type Server struct {
	data     *gamedata.Data
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*conn
}

// New creates a server over the loaded game data.
func New(data *gamedata.Data, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = game.RealClock()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[server] ", log.LstdFlags)
	}
	return &Server{
		data:   data,
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[string]*conn),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v", err)
		return
	}

	c, err := s.open(r.Context(), ws, r.URL.Query().Get("slot"))
	if err != nil {
		s.logger.Printf("open session: %v", err)
		_ = ws.WriteJSON(Message{Type: MessageError, Error: err.Error()})
		_ = ws.Close()
		return
	}

	s.mu.Lock()
	s.conns[c.id] = c
	s.mu.Unlock()
	s.logger.Printf("session %s connected", c.id)

	c.run(context.WithoutCancel(r.Context()))

	s.mu.Lock()
	delete(s.conns, c.id)
	s.mu.Unlock()
	s.logger.Printf("session %s closed", c.id)
}

// open builds the engine for a new connection and restores slot when it
// names an existing save.
func (s *Server) open(ctx context.Context, ws *websocket.Conn, slot string) (*conn, error) {
	cfg := s.opts.Config
	engine := game.NewEngine(s.data, cfg, cfg.NewRand(), game.NewScheduler(s.opts.Clock))

	var sess *game.Session
	if slot != "" && s.opts.Saver != nil {
		save, err := s.opts.Saver.Load(ctx, slot)
		switch {
		case err == nil:
			sess, err = engine.Restore(save)
			if err != nil {
				return nil, fmt.Errorf("restore %s: %w", slot, err)
			}
		case errors.Is(err, storage.ErrNotFound):
		default:
			return nil, fmt.Errorf("load %s: %w", slot, err)
		}
	}
	if sess == nil {
		var err error
		sess, err = engine.NewSession(uuid.NewString())
		if err != nil {
			return nil, err
		}
	}
	if slot == "" {
		slot = sess.ID
	}

	c := &conn{
		id:     sess.ID,
		slot:   slot,
		ws:     ws,
		engine: engine,
		sess:   sess,
		saver:  s.opts.Saver,
		tick:   s.opts.TickInterval,
		logger: s.logger,
	}
	sess.SetSink(c.deliver)
	return c, nil
}

// MessageType tags outbound messages.
type MessageType string

const (
	MessageWelcome  MessageType = "welcome"
	MessageResult   MessageType = "result"
	MessageDeferred MessageType = "deferred"
	MessageTick     MessageType = "tick"
	MessageError    MessageType = "error"
)

// Command is an inbound client request.
type Command struct {
	Type  string `json:"type"`
	Move  string `json:"move,omitempty"`
	Item  string `json:"item,omitempty"`
	Area  string `json:"area,omitempty"`
	Index int    `json:"index,omitempty"`
}

// Message is an outbound server message.
type Message struct {
	Type    MessageType   `json:"type"`
	Session string        `json:"session,omitempty"`
	Command string        `json:"command,omitempty"`
	Error   string        `json:"error,omitempty"`
	Outcome *game.Outcome `json:"outcome,omitempty"`
}

// errUnknownCommand is returned for command types the server does not know.
var errUnknownCommand = errors.New("unknown command")

// conn is one websocket client and its session. mu serialises engine calls
// and socket writes between the reader and the ticker.
type conn struct {
	id     string
	slot   string
	ws     *websocket.Conn
	engine *game.Engine
	sess   *game.Session
	saver  game.Saver
	tick   time.Duration
	logger *log.Logger

	mu sync.Mutex
}

func (c *conn) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.ws.Close()

	c.mu.Lock()
	c.write(Message{Type: MessageWelcome, Session: c.id, Outcome: c.engine.View(c.sess)})
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.heartbeat(ctx)
	}()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Printf("session %s read: %v", c.id, err)
			}
			break
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.mu.Lock()
			c.write(Message{Type: MessageError, Error: fmt.Sprintf("decode command: %v", err)})
			c.mu.Unlock()
			continue
		}
		c.handle(ctx, cmd)
	}

	cancel()
	<-done
	c.save(context.WithoutCancel(ctx))
}

// heartbeat runs due deferred steps until ctx ends. With auto battle on it
// also drives the engine heartbeat.
func (c *conn) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			c.engine.Scheduler().RunDue()
			if c.sess.AutoBattle {
				out := c.engine.Tick(ctx, c.sess)
				if len(out.Log) > 0 || len(out.Events) > 0 {
					c.write(Message{Type: MessageTick, Outcome: out})
				}
			}
			c.mu.Unlock()
		}
	}
}

func (c *conn) handle(ctx context.Context, cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, err := c.dispatch(ctx, cmd)
	msg := Message{Type: MessageResult, Command: cmd.Type, Outcome: out}
	if err != nil {
		msg.Error = err.Error()
	}
	c.write(msg)
}

func (c *conn) dispatch(ctx context.Context, cmd Command) (*game.Outcome, error) {
	e, sess := c.engine, c.sess
	switch cmd.Type {
	case "state":
		return e.View(sess), nil
	case "explore":
		return e.StartEncounter(ctx, sess, cmd.Area)
	case "move":
		return e.SubmitPlayerMove(ctx, sess, cmd.Move)
	case "capture":
		if cmd.Item == "" {
			return e.AttemptCapture(ctx, sess)
		}
		return e.AttemptCaptureWith(ctx, sess, cmd.Item)
	case "flee":
		return e.AttemptFlee(ctx, sess)
	case "switch":
		return e.SwitchActive(ctx, sess, cmd.Index)
	case "item":
		return e.UseItem(ctx, sess, cmd.Item, cmd.Index)
	case "heal":
		return e.HealAll(ctx, sess), nil
	case "next":
		return e.MoveToNextArea(ctx, sess)
	case "auto":
		sess.AutoBattle = !sess.AutoBattle
		return e.View(sess), nil
	case "save":
		if err := c.persist(ctx); err != nil {
			return e.View(sess), err
		}
		return e.View(sess), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, cmd.Type)
	}
}

// deliver is the session sink. It runs inside RunDue, so mu is held.
func (c *conn) deliver(out *game.Outcome) {
	c.write(Message{Type: MessageDeferred, Outcome: out})
}

func (c *conn) write(msg Message) {
	if err := c.ws.WriteJSON(msg); err != nil {
		c.logger.Printf("session %s write: %v", c.id, err)
	}
}

func (c *conn) persist(ctx context.Context) error {
	if c.saver == nil {
		return errors.New("saving is not configured")
	}
	if c.sess.Busy() {
		return game.ErrBusy
	}
	return c.saver.Save(ctx, c.slot, c.engine.Snapshot(c.sess))
}

// save persists the session on disconnect when a saver is configured.
func (c *conn) save(ctx context.Context) {
	if c.saver == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.SetSink(nil)
	c.engine.Scheduler().Drain()
	if err := c.saver.Save(ctx, c.slot, c.engine.Snapshot(c.sess)); err != nil {
		c.logger.Printf("session %s save: %v", c.id, err)
	}
}
