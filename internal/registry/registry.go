// Package registry owns the process-wide table of rooms: creation with
// collision-free codes, joining, leaving, and host succession. It is the
// only place that allocates a *model.Room or mutates the room table.
//
// Locking is two-tier: one mutex guards the table itself, and each Room
// carries its own mutex guarding that room's mutable state (see Room below).
package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"scrabblesrv/internal/model"
)

const (
	shortCodeLength = 4
	longCodeLength  = 6
	codeRetries     = 1000
)

// Registry is the process-wide room table.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	rand  func(n int) string
}

// Room wraps a model.Room with the mutex that serializes mutation of its
// game state and player list, per the concurrency model.
type Room struct {
	mu sync.Mutex
	M  *model.Room
}

// Lock and Unlock expose the room's serialization mutex directly so
// callers (the coordinator, the timers) can hold it across a multi-step
// read-validate-commit sequence.
func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

// New builds an empty Registry. randomCode generates a random string of
// the given alphabet-length drawn from model.RoomCodeAlphabet; tests inject
// a seeded generator for determinism.
func New(randomCode func(n int) string) *Registry {
	return &Registry{rooms: make(map[string]*Room), rand: randomCode}
}

// CreateRoom allocates a new room with a unique code, clamped capacity, and
// a single host player. playerID is generated via uuid.NewString if empty.
func (reg *Registry) CreateRoom(maxPlayers int, nickname, playerID string) (*Room, error) {
	if maxPlayers < model.MinCapacity {
		maxPlayers = model.MinCapacity
	}
	if maxPlayers > model.MaxCapacity {
		maxPlayers = model.MaxCapacity
	}
	if playerID == "" {
		playerID = uuid.NewString()
	}

	code, err := reg.generateCode()
	if err != nil {
		return nil, err
	}

	host := &model.Player{
		ID:       playerID,
		Nickname: model.TruncateNickname(nickname),
	}
	m := &model.Room{
		Code:     code,
		HostID:   host.ID,
		Status:   model.RoomWaiting,
		Capacity: maxPlayers,
		Players:  []*model.Player{host},
	}
	m.Touch(time.Now())

	room := &Room{M: m}
	reg.mu.Lock()
	reg.rooms[code] = room
	reg.mu.Unlock()

	log.Info().Str("roomCode", code).Str("hostId", host.ID).Msg("room created")
	return room, nil
}

// generateCode retries at shortCodeLength, then falls back to
// longCodeLength, before giving up with ROOM_ID_GENERATION_FAILED.
func (reg *Registry) generateCode() (string, error) {
	if code, ok := reg.tryGenerateCode(shortCodeLength, codeRetries); ok {
		return code, nil
	}
	if code, ok := reg.tryGenerateCode(longCodeLength, codeRetries); ok {
		return code, nil
	}
	return "", model.NewError(model.ErrRoomIDGenerationFail, "could not generate a unique room code")
}

func (reg *Registry) tryGenerateCode(length, attempts int) (string, bool) {
	for i := 0; i < attempts; i++ {
		code := reg.rand(length)
		reg.mu.RLock()
		_, taken := reg.rooms[code]
		reg.mu.RUnlock()
		if !taken {
			return code, true
		}
	}
	return "", false
}

// Get returns the room with the given code, or nil.
func (reg *Registry) Get(code string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[code]
}

// Delete removes a room from the table outright.
func (reg *Registry) Delete(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

// Snapshot returns every currently registered room, for the idle sweep.
func (reg *Registry) Snapshot() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		out = append(out, r)
	}
	return out
}

// JoinRoom attaches a player to an existing room, or re-attaches one
// already present under the given playerID.
func (reg *Registry) JoinRoom(code, nickname, playerID string) (*Room, error) {
	room := reg.Get(code)
	if room == nil {
		return nil, model.NewError(model.ErrRoomNotFound, "no room with that code")
	}

	room.Lock()
	defer room.Unlock()
	m := room.M

	if playerID != "" {
		if existing := m.Player(playerID); existing != nil {
			m.Touch(time.Now())
			return room, nil
		}
	}

	if m.Status != model.RoomWaiting {
		return nil, model.NewError(model.ErrRoomNotJoinable, "room is not accepting new players")
	}
	if len(m.Players) >= m.Capacity {
		return nil, model.NewError(model.ErrRoomFull, "room is full")
	}

	clean := model.TruncateNickname(nickname)
	if m.HasNickname(clean, "") {
		return nil, model.NewError(model.ErrNicknameTaken, "nickname already in use in this room")
	}

	if playerID == "" {
		playerID = uuid.NewString()
	}
	m.Players = append(m.Players, &model.Player{ID: playerID, Nickname: clean})
	m.Touch(time.Now())
	return room, nil
}

// RemovePlayer deletes a player from the room. If the room becomes empty it
// is dropped from the registry entirely; otherwise, if the removed player
// was host, the new players[0] inherits HostID.
func (reg *Registry) RemovePlayer(room *Room, playerID string) {
	room.Lock()
	m := room.M
	removed := m.RemovePlayer(playerID)
	if !removed {
		room.Unlock()
		return
	}
	m.Touch(time.Now())
	empty := len(m.Players) == 0
	if !empty && m.HostID == playerID {
		m.HostID = m.Players[0].ID
	}
	code := m.Code
	room.Unlock()

	if empty {
		reg.Delete(code)
	}
}

// SweepIdle deletes every room with no connected players whose last
// activity is older than idleThreshold.
func (reg *Registry) SweepIdle(idleThreshold func(lastActivity time.Time) bool) []string {
	var evicted []string
	for _, room := range reg.Snapshot() {
		room.Lock()
		stale := !room.M.AnyConnected() && idleThreshold(room.M.LastActivityAt)
		code := room.M.Code
		room.Unlock()
		if stale {
			reg.Delete(code)
			evicted = append(evicted, code)
		}
	}
	return evicted
}
