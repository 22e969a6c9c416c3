package web

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

// session drives one game for one websocket connection.
type session struct {
	id       string
	player   string
	game     registry.Game
	conn     *websocket.Conn
	send     chan []byte
	store    *storage.Store
	logger   *log.Logger
	tickRate int

	mu      sync.Mutex
	held    heldInput
	pause   bool
	restart bool

	tick       uint64
	lastTick   time.Time
	scoreSaved bool
	dropped    atomic.Int64
}

// run blocks until the client goes away or ctx is cancelled.
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.writePump(ctx)
	go func() {
		s.readPump()
		cancel()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()

	s.enqueue(s.stateMessage(s.game.State()))
	for {
		select {
		case <-ctx.Done():
			if n := s.dropped.Load(); n > 0 {
				s.logger.Debug("frames dropped for slow client", "count", n)
			}
			return
		case now := <-ticker.C:
			s.step(now)
		}
	}
}

// frame builds the next input from the hold state and pending toggles.
func (s *session) frame(now time.Time) core.InputFrame {
	in := core.NewInputFrame()
	if s.lastTick.IsZero() {
		in.DeltaMs = 1000 / float64(s.tickRate)
	} else {
		in.DeltaMs = core.ClampFrameMs(float64(now.Sub(s.lastTick)) / float64(time.Millisecond))
	}
	s.lastTick = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.held.apply(&in)
	if s.pause {
		in.Set(core.ActionPause)
		s.pause = false
	}
	if s.restart {
		in.Set(core.ActionRestart)
		s.restart = false
	}
	return in
}

func (s *session) step(now time.Time) {
	st := s.game.Step(s.frame(now)).State
	s.tick++

	switch {
	case !st.GameOver:
		s.scoreSaved = false
	case !s.scoreSaved:
		s.saveScore(st)
		s.scoreSaved = true
	}

	s.enqueue(s.stateMessage(st))
}

func (s *session) saveScore(st core.GameState) {
	s.logger.Info("game over", "score", st.Score, "level", st.Level, "player", s.player)
	if s.store == nil || st.Score <= 0 {
		return
	}
	_, err := s.store.SaveScore(storage.ScoreRecord{
		GameID: s.game.ID(),
		Player: s.player,
		Score:  st.Score,
		Level:  st.Level,
	})
	if err != nil {
		s.logger.Warn("could not save score", "error", err)
	}
}

func (s *session) stateMessage(st core.GameState) any {
	msg := StateMessage{
		Type:    TypeState,
		Session: s.id,
		Game:    s.game.ID(),
		Tick:    s.tick,
		Status:  st,
	}
	if obs, ok := s.game.(registry.Observable); ok {
		msg.State = obs.Export()
	}
	return msg
}

// enqueue queues a message without blocking; a full queue drops it.
func (s *session) enqueue(msg any) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("cannot encode message", "error", err)
		return
	}
	select {
	case s.send <- b:
	default:
		s.dropped.Add(1)
	}
}

// handle applies one client message.
func (s *session) handle(payload []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		s.enqueue(ErrorMessage{Type: TypeError, Error: "invalid json"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch msg.Type {
	case TypeInput:
		s.held = heldInput{
			left:  msg.Left,
			right: msg.Right,
			fire:  msg.Fire,
			up:    msg.Up,
			down:  msg.Down,
		}
	case TypePause:
		s.pause = true
	case TypeRestart:
		s.restart = true
	default:
		s.logger.Debug("unknown message type", "type", msg.Type)
	}
}

// readPump reads client messages until the connection fails.
func (s *session) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read failed", "error", err)
			}
			return
		}
		s.handle(payload)
	}
}

// writePump is the only writer on the connection.
func (s *session) writePump(ctx context.Context) {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
