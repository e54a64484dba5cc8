// Package coordinator binds transport-level connections to players and
// dispatches decoded inbound commands to the room registry and the game
// lifecycle, then broadcasts the resulting state. It never touches a raw
// websocket, only the Connection interface below.
package coordinator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"scrabblesrv/internal/game"
	"scrabblesrv/internal/model"
	"scrabblesrv/internal/registry"
	"scrabblesrv/internal/rules"
)

// Connection is everything the coordinator needs from a transport-level
// socket: a way to push an outbound envelope and an opaque identity used
// to find which player, if any, is currently bound to it.
type Connection interface {
	Send(envelope Envelope)
}

// Envelope is the wire-level {type, payload} message shape.
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Coordinator is the process-wide dispatcher. It is safe for concurrent use
// by many connections' read pumps.
type Coordinator struct {
	Registry  *registry.Registry
	Lifecycle *game.Lifecycle
	Dict      rules.Dictionary
	IDGen     func() string
	Rand      *rand.Rand

	bindingsMu sync.Mutex
	bindings   map[Connection]binding
}

type binding struct {
	roomCode string
	playerID string
}

// New builds a Coordinator over an existing registry and lifecycle.
func New(reg *registry.Registry, lifecycle *game.Lifecycle, dict rules.Dictionary, idGen func() string, rng *rand.Rand) *Coordinator {
	return &Coordinator{
		Registry:  reg,
		Lifecycle: lifecycle,
		Dict:      dict,
		IDGen:     idGen,
		Rand:      rng,
		bindings:  make(map[Connection]binding),
	}
}

func (c *Coordinator) bind(conn Connection, roomCode, playerID string) {
	c.bindingsMu.Lock()
	c.bindings[conn] = binding{roomCode: roomCode, playerID: playerID}
	c.bindingsMu.Unlock()
}

func (c *Coordinator) lookup(conn Connection) (binding, bool) {
	c.bindingsMu.Lock()
	defer c.bindingsMu.Unlock()
	b, ok := c.bindings[conn]
	return b, ok
}

func (c *Coordinator) unbind(conn Connection) {
	c.bindingsMu.Lock()
	delete(c.bindings, conn)
	c.bindingsMu.Unlock()
}

// Disconnect marks every player bound to conn as disconnected, clears the
// binding, and broadcasts the room's updated roster. The player stays in
// the room for a later Reconnect.
func (c *Coordinator) Disconnect(conn Connection) {
	b, ok := c.lookup(conn)
	if !ok {
		return
	}
	c.unbind(conn)

	room := c.Registry.Get(b.roomCode)
	if room == nil {
		return
	}
	room.Lock()
	if p := room.M.Player(b.playerID); p != nil {
		p.Connected = false
		p.ConnID = ""
		room.M.Touch(time.Now())
	}
	snapshot := cloneRoomPublic(room.M)
	room.Unlock()

	c.broadcastRoomUpdate(room, snapshot)
}

// moveRuleViolationCodes are the error codes a submitted move can fail
// validation with. Per the wire protocol's error-handling bands, these are
// reported to the submitter as invalidMove rather than the generic error
// envelope, which is reserved for protocol-level and infrastructure
// failures.
var moveRuleViolationCodes = map[model.ErrorCode]bool{
	model.ErrNotYourTurn:       true,
	model.ErrOutOfBounds:       true,
	model.ErrCellOccupied:      true,
	model.ErrTileNotInRack:     true,
	model.ErrDuplicateTile:     true,
	model.ErrNotAligned:        true,
	model.ErrMustCoverCenter:   true,
	model.ErrNotContiguous:     true,
	model.ErrNotConnected:      true,
	model.ErrNoWordFormed:      true,
	model.ErrInvalidWord:       true,
	model.ErrNoTilesToExchange: true,
	model.ErrBagTooSmall:       true,
}

// sendError reports err to conn. A move-rule-violation code is sent as
// invalidMove {roomId, reason} (with the offending word, when the error
// carries one); everything else is sent as the generic error
// {code, message} envelope. roomCode is only used for the invalidMove
// shape and may be empty when conn is not yet bound to a room.
func (c *Coordinator) sendError(conn Connection, roomCode string, err error) {
	code := model.ErrServerError
	msg := err.Error()
	var word string
	if ce, ok := err.(*model.CodedError); ok {
		code = ce.Code
		msg = ce.Message
		word = ce.Word
	}

	if moveRuleViolationCodes[code] {
		conn.Send(Envelope{Type: "invalidMove", Payload: struct {
			RoomID string `json:"roomId"`
			Reason string `json:"reason"`
			Word   string `json:"word,omitempty"`
		}{RoomID: roomCode, Reason: string(code), Word: word}})
		log.Debug().Str("code", string(code)).Str("message", msg).Msg("rejected move")
		return
	}

	conn.Send(Envelope{Type: "error", Payload: map[string]string{"code": string(code), "message": msg}})
	log.Debug().Str("code", string(code)).Str("message", msg).Msg("rejected inbound command")
}
