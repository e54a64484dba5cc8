// Package transport is the WebSocket edge: a chi router exposing a health
// endpoint and an upgrade endpoint, and the read-pump/write-pump machinery
// that turns a raw connection into a coordinator.Connection. Each
// connection gets a buffered send channel and its own write pump, so a
// slow client's socket can never block the coordinator's broadcast.
package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"scrabblesrv/internal/coordinator"
	"scrabblesrv/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// Dispatcher is the subset of coordinator.Coordinator the transport layer
// calls into after decoding an inbound envelope.
type Dispatcher interface {
	CreateRoom(conn coordinator.Connection, nickname string, maxPlayers int, playerID string)
	JoinRoom(conn coordinator.Connection, roomCode, nickname, playerID string)
	Reconnect(conn coordinator.Connection, playerID, lastRoomID string)
	ToggleReady(conn coordinator.Connection, ready bool)
	StartGame(conn coordinator.Connection)
	PlayMove(conn coordinator.Connection, action model.Action, placements []model.Placement, exchangeIDs []string)
	LeaveRoom(conn coordinator.Connection)
	Disconnect(conn coordinator.Connection)
}

// Server wires the router to a Dispatcher.
type Server struct {
	dispatcher Dispatcher
	upgrader   websocket.Upgrader
}

// New builds a transport Server. allowedOrigin "*" disables origin
// checking entirely.
func New(dispatcher Dispatcher, allowedOrigin string) *Server {
	return &Server{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return allowedOrigin == "*" || r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// Router builds the HTTP router: /healthz for liveness, /ws for the game
// socket.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/ws", s.handleWS)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &socketConn{ws: ws, send: make(chan []byte, sendBufferSize)}
	go writePump(conn)
	readPump(conn, s.dispatcher)
}

// socketConn adapts a gorilla websocket connection to
// coordinator.Connection: Send enqueues onto a buffered channel so a slow
// client can never block the caller holding a room lock.
type socketConn struct {
	ws   *websocket.Conn
	send chan []byte
}

func (c *socketConn) Send(env coordinator.Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("type", env.Type).Msg("failed to marshal outbound envelope")
		return
	}
	select {
	case c.send <- b:
	default:
		log.Warn().Str("type", env.Type).Msg("dropping outbound envelope, send buffer full")
	}
}

func writePump(c *socketConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.ws.Close()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(c *socketConn, dispatcher Dispatcher) {
	defer func() {
		dispatcher.Disconnect(c)
		close(c.send)
	}()

	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		dispatchInbound(c, dispatcher, raw)
	}
}
