package coordinator

import (
	"scrabblesrv/internal/model"
	"scrabblesrv/internal/registry"
)

// publicRoom is the wire shape for a room's shared, non-secret state: every
// player's rack is omitted here and re-attached per recipient in
// personalizedGameState, since a rack is private to its owner.
type publicRoom struct {
	Code           string         `json:"code"`
	HostID         string         `json:"hostId"`
	Status         model.RoomStatus `json:"status"`
	Capacity       int            `json:"capacity"`
	Players        []publicPlayer `json:"players"`
	LastActivityAt int64          `json:"lastActivityAt"`
}

type publicPlayer struct {
	ID        string            `json:"id"`
	Nickname  string            `json:"nickname"`
	Connected bool              `json:"connected"`
	Ready     bool              `json:"ready"`
	Score     int               `json:"score"`
	RackSize  int               `json:"rackSize"`
	Stats     model.PlayerStats `json:"stats"`
}

// cloneRoomPublic builds the shared view of a room, to be sent to every
// member. It is safe to build while holding the room's lock and send after
// releasing it.
func cloneRoomPublic(m *model.Room) publicRoom {
	players := make([]publicPlayer, len(m.Players))
	for i, p := range m.Players {
		players[i] = publicPlayer{
			ID:        p.ID,
			Nickname:  p.Nickname,
			Connected: p.Connected,
			Ready:     p.Ready,
			Score:     p.Score,
			RackSize:  p.Rack.Size(),
			Stats:     p.Stats,
		}
	}
	return publicRoom{
		Code:           m.Code,
		HostID:         m.HostID,
		Status:         m.Status,
		Capacity:       m.Capacity,
		Players:        players,
		LastActivityAt: m.LastActivityAt.Unix(),
	}
}

// publicGameState is the shared, board-level view of a game in progress.
type publicGameState struct {
	Board             *model.Board `json:"board"`
	BagSize           int          `json:"bagSize"`
	TurnIndex         int          `json:"turnIndex"`
	ActivePlayerID    string       `json:"activePlayerId"`
	TurnEndsAt        int64        `json:"turnEndsAt"`
	ConsecutivePasses int          `json:"consecutivePasses"`
	Version           int64        `json:"version"`
}

func cloneGameStatePublic(g *model.GameState) publicGameState {
	return publicGameState{
		Board:             g.Board,
		BagSize:           g.Bag.Size(),
		TurnIndex:         g.TurnIndex,
		ActivePlayerID:    g.ActivePlayerID,
		TurnEndsAt:        g.TurnDeadline.Unix(),
		ConsecutivePasses: g.ConsecutivePasses,
		Version:           g.Version,
	}
}

// personalizedGameState attaches one recipient's own rack to the shared
// game-state view; every other player's rack stays unpopulated.
type personalizedGameState struct {
	publicGameState
	Rack []model.Tile `json:"rack"`
}

// personalizedGameState must be called while room is locked. It builds one
// recipient's game-state view; used by sendFullState, which only ever
// serves a single connection, so a shared multi-recipient snapshot would
// be wasted work there.
func (c *Coordinator) personalizedGameState(room *registry.Room, recipientID string) personalizedGameState {
	out := personalizedGameState{publicGameState: cloneGameStatePublic(room.M.Game)}
	if p := room.M.Player(recipientID); p != nil {
		out.Rack = p.Rack.Tiles
	}
	return out
}

// gameStateSnapshot is the data broadcastGameState needs, captured while
// holding the room's lock so the broadcast itself can run unlocked. It
// carries every player's rack rather than just the recipient's, so one
// snapshot taken under one lock acquisition serves every connection bound
// to the room.
type gameStateSnapshot struct {
	roomCode string
	state    publicGameState
	racks    map[string][]model.Tile
}

// snapshotGameState must be called while room is locked. room.M.Game must
// be non-nil.
func snapshotGameState(room *registry.Room) gameStateSnapshot {
	racks := make(map[string][]model.Tile, len(room.M.Players))
	for _, p := range room.M.Players {
		racks[p.ID] = append([]model.Tile(nil), p.Rack.Tiles...)
	}
	return gameStateSnapshot{
		roomCode: room.M.Code,
		state:    cloneGameStatePublic(room.M.Game),
		racks:    racks,
	}
}

// turnUpdateSnapshot is the data broadcastTurnUpdate needs, captured while
// holding the room's lock.
type turnUpdateSnapshot struct {
	roomCode       string
	activePlayerID string
	turnEndsAt     int64
	version        int64
}

// snapshotTurnUpdate must be called while room is locked. room.M.Game must
// be non-nil.
func snapshotTurnUpdate(room *registry.Room) turnUpdateSnapshot {
	g := room.M.Game
	return turnUpdateSnapshot{
		roomCode:       room.M.Code,
		activePlayerID: g.ActivePlayerID,
		turnEndsAt:     g.TurnDeadline.Unix(),
		version:        g.Version,
	}
}

// broadcastRoomUpdate sends a roomUpdate envelope to every connected
// binding for the room.
func (c *Coordinator) broadcastRoomUpdate(room *registry.Room, snap publicRoom) {
	c.forEachConn(room, func(conn Connection, _ string) {
		conn.Send(Envelope{Type: "roomUpdate", Payload: snap})
	})
}

// broadcastGameState sends a personalized gameState envelope to every
// connected binding for the room, built from a snapshot taken under the
// room's lock.
func (c *Coordinator) broadcastGameState(room *registry.Room, snap gameStateSnapshot) {
	c.forEachConn(room, func(conn Connection, playerID string) {
		conn.Send(Envelope{Type: "gameState", Payload: struct {
			RoomID    string                `json:"roomId"`
			GameState personalizedGameState `json:"gameState"`
		}{RoomID: snap.roomCode, GameState: personalizedGameState{
			publicGameState: snap.state,
			Rack:            snap.racks[playerID],
		}}})
	})
}

// broadcastTurnUpdate sends a turnUpdate envelope to every connected
// binding for the room, built from a snapshot taken under the room's lock.
func (c *Coordinator) broadcastTurnUpdate(room *registry.Room, snap turnUpdateSnapshot) {
	payload := struct {
		RoomID         string `json:"roomId"`
		ActivePlayerID string `json:"activePlayerId"`
		TurnEndsAt     int64  `json:"turnEndsAt"`
		Version        int64  `json:"version"`
	}{RoomID: snap.roomCode, ActivePlayerID: snap.activePlayerID, TurnEndsAt: snap.turnEndsAt, Version: snap.version}
	c.forEachConn(room, func(conn Connection, _ string) {
		conn.Send(Envelope{Type: "turnUpdate", Payload: payload})
	})
}

// forEachConn walks the coordinator's live bindings and calls fn for each
// one currently bound to room, passing the bound player id.
func (c *Coordinator) forEachConn(room *registry.Room, fn func(conn Connection, playerID string)) {
	c.bindingsMu.Lock()
	targets := make(map[Connection]string, len(c.bindings))
	for conn, b := range c.bindings {
		if b.roomCode == room.M.Code {
			targets[conn] = b.playerID
		}
	}
	c.bindingsMu.Unlock()

	for conn, playerID := range targets {
		fn(conn, playerID)
	}
}
