package coordinator

import (
	"time"

	"scrabblesrv/internal/model"
	"scrabblesrv/internal/registry"
)

// CreateRoom handles an inbound createRoom command: attaches conn to the
// newly created host player, then sends a full state snapshot and
// broadcasts the room roster.
func (c *Coordinator) CreateRoom(conn Connection, nickname string, maxPlayers int, playerID string) {
	room, err := c.Registry.CreateRoom(maxPlayers, nickname, playerID)
	if err != nil {
		c.sendError(conn, "", err)
		return
	}

	room.Lock()
	hostID := room.M.HostID
	if p := room.M.Player(hostID); p != nil {
		p.Connected = true
		p.ConnID = hostID
	}
	snapshot := cloneRoomPublic(room.M)
	room.Unlock()

	c.bind(conn, room.M.Code, hostID)
	conn.Send(Envelope{Type: "fullState", Payload: struct {
		Room publicRoom `json:"room"`
	}{Room: snapshot}})
	c.broadcastRoomUpdate(room, snapshot)
}

// JoinRoom handles an inbound joinRoom command.
func (c *Coordinator) JoinRoom(conn Connection, roomCode, nickname, playerID string) {
	room, err := c.Registry.JoinRoom(roomCode, nickname, playerID)
	if err != nil {
		c.sendError(conn, roomCode, err)
		return
	}

	room.Lock()
	resolvedID := playerID
	if resolvedID == "" {
		// A brand-new player was appended by JoinRoom; it is the most
		// recently added entry.
		resolvedID = room.M.Players[len(room.M.Players)-1].ID
	}
	if p := room.M.Player(resolvedID); p != nil {
		p.Connected = true
		p.ConnID = resolvedID
	}
	snapshot := cloneRoomPublic(room.M)
	room.Unlock()

	c.bind(conn, room.M.Code, resolvedID)
	c.sendFullState(conn, room, resolvedID)
	c.broadcastRoomUpdate(room, snapshot)
}

// Reconnect rebinds conn to an existing player in an existing room.
func (c *Coordinator) Reconnect(conn Connection, playerID, lastRoomID string) {
	room := c.Registry.Get(lastRoomID)
	if room == nil {
		c.sendError(conn, lastRoomID, model.NewError(model.ErrRoomNotFound, "no room with that code"))
		return
	}
	room.Lock()
	p := room.M.Player(playerID)
	if p == nil {
		room.Unlock()
		c.sendError(conn, lastRoomID, model.NewError(model.ErrNotInRoom, "player is not a member of this room"))
		return
	}
	p.Connected = true
	p.ConnID = playerID
	room.M.Touch(time.Now())
	snapshot := cloneRoomPublic(room.M)
	room.Unlock()

	c.bind(conn, room.M.Code, playerID)
	c.sendFullState(conn, room, playerID)
	c.broadcastRoomUpdate(room, snapshot)
}

func (c *Coordinator) sendFullState(conn Connection, room *registry.Room, recipientID string) {
	room.Lock()
	roomSnap := cloneRoomPublic(room.M)
	var gs *personalizedGameState
	if room.M.Game != nil {
		g := c.personalizedGameState(room, recipientID)
		gs = &g
	}
	room.Unlock()

	conn.Send(Envelope{Type: "fullState", Payload: struct {
		Room      publicRoom             `json:"room"`
		GameState *personalizedGameState `json:"gameState,omitempty"`
	}{Room: roomSnap, GameState: gs}})
}

// ToggleReady handles an inbound toggleReady command.
func (c *Coordinator) ToggleReady(conn Connection, ready bool) {
	b, ok := c.lookup(conn)
	if !ok {
		c.sendError(conn, "", model.NewError(model.ErrNotInRoom, "connection is not bound to a room"))
		return
	}
	room := c.Registry.Get(b.roomCode)
	if room == nil {
		c.sendError(conn, b.roomCode, model.NewError(model.ErrRoomNotFound, "no room with that code"))
		return
	}
	room.Lock()
	p := room.M.Player(b.playerID)
	if p == nil {
		room.Unlock()
		c.sendError(conn, b.roomCode, model.NewError(model.ErrNotInRoom, "player is not a member of this room"))
		return
	}
	p.Ready = ready
	room.M.Touch(time.Now())
	snapshot := cloneRoomPublic(room.M)
	room.Unlock()

	c.broadcastRoomUpdate(room, snapshot)
}

// StartGame handles an inbound startGame command. It is host-only and
// gated on: at least 2 players, players within capacity, every player
// ready, and status waiting.
func (c *Coordinator) StartGame(conn Connection) {
	b, ok := c.lookup(conn)
	if !ok {
		c.sendError(conn, "", model.NewError(model.ErrNotInRoom, "connection is not bound to a room"))
		return
	}
	room := c.Registry.Get(b.roomCode)
	if room == nil {
		c.sendError(conn, b.roomCode, model.NewError(model.ErrRoomNotFound, "no room with that code"))
		return
	}

	room.Lock()
	err := startGamePreconditions(room.M, b.playerID)
	if err == nil {
		c.Lifecycle.StartGame(room.M)
	}
	snapshot := cloneRoomPublic(room.M)
	var gsSnap gameStateSnapshot
	var turnSnap turnUpdateSnapshot
	if err == nil {
		gsSnap = snapshotGameState(room)
		turnSnap = snapshotTurnUpdate(room)
	}
	room.Unlock()

	if err != nil {
		c.sendError(conn, b.roomCode, err)
		return
	}

	c.broadcastRoomUpdate(room, snapshot)
	c.broadcastGameState(room, gsSnap)
	c.broadcastTurnUpdate(room, turnSnap)
}

func startGamePreconditions(m *model.Room, requesterID string) error {
	if m.HostID != requesterID {
		return model.NewError(model.ErrNotHost, "only the host can start the game")
	}
	if m.Status != model.RoomWaiting {
		return model.NewError(model.ErrInvalidState, "room is not waiting to start")
	}
	if len(m.Players) < 2 {
		return model.NewError(model.ErrMinPlayers, "at least two players are required")
	}
	if len(m.Players) > m.Capacity {
		return model.NewError(model.ErrInvalidState, "too many players for this room's capacity")
	}
	for _, p := range m.Players {
		if !p.Ready {
			return model.NewError(model.ErrNotAllReady, "not every player is ready")
		}
	}
	return nil
}

// PlayMove handles an inbound playMove command.
func (c *Coordinator) PlayMove(conn Connection, action model.Action, placements []model.Placement, exchangeIDs []string) {
	b, ok := c.lookup(conn)
	if !ok {
		c.sendError(conn, "", model.NewError(model.ErrNotInRoom, "connection is not bound to a room"))
		return
	}
	room := c.Registry.Get(b.roomCode)
	if room == nil {
		c.sendError(conn, b.roomCode, model.NewError(model.ErrRoomNotFound, "no room with that code"))
		return
	}

	room.Lock()
	move, ended, err := c.Lifecycle.PlayMove(room.M, b.playerID, action, placements, exchangeIDs)
	var gsSnap gameStateSnapshot
	var turnSnap turnUpdateSnapshot
	if err == nil {
		gsSnap = snapshotGameState(room)
		turnSnap = snapshotTurnUpdate(room)
	}
	room.Unlock()

	if err != nil {
		c.sendError(conn, b.roomCode, err)
		return
	}

	conn.Send(Envelope{Type: "moveAccepted", Payload: struct {
		RoomID string            `json:"roomId"`
		Move   *model.MoveSummary `json:"move"`
	}{RoomID: b.roomCode, Move: move}})

	c.broadcastGameState(room, gsSnap)
	c.broadcastTurnUpdate(room, turnSnap)

	if ended {
		c.broadcastGameEnded(room)
	}
}

func (c *Coordinator) broadcastGameEnded(room *registry.Room) {
	room.Lock()
	scores := make(map[string]int, len(room.M.Players))
	stats := make(map[string]model.PlayerStats, len(room.M.Players))
	var winners []string
	best := 0
	for _, p := range room.M.Players {
		scores[p.ID] = p.Score
		stats[p.ID] = p.Stats
		if p.Score > best {
			best = p.Score
		}
	}
	for _, p := range room.M.Players {
		if p.Score == best {
			winners = append(winners, p.ID)
		}
	}
	code := room.M.Code
	room.Unlock()

	c.forEachConn(room, func(conn Connection, _ string) {
		conn.Send(Envelope{Type: "gameEnded", Payload: struct {
			RoomID        string                       `json:"roomId"`
			Scores        map[string]int               `json:"scores"`
			StatsByPlayer map[string]model.PlayerStats `json:"statsByPlayer"`
			WinnerIDs     []string                     `json:"winnerIds"`
		}{RoomID: code, Scores: scores, StatsByPlayer: stats, WinnerIDs: winners}})
	})
}

// LeaveRoom handles an inbound leaveRoom command: if the leaver is the
// active player mid-game, a pass is forced first so the turn pointer stays
// consistent, then the player is removed from the room.
func (c *Coordinator) LeaveRoom(conn Connection) {
	b, ok := c.lookup(conn)
	if !ok {
		return
	}
	room := c.Registry.Get(b.roomCode)
	if room == nil {
		c.unbind(conn)
		return
	}

	room.Lock()
	var ended bool
	if room.M.Game != nil && room.M.Game.ActivePlayerID == b.playerID {
		_, ended, _ = c.Lifecycle.PlayMove(room.M, b.playerID, model.ActionPass, nil, nil)
	}
	room.Unlock()

	c.unbind(conn)
	c.Registry.RemovePlayer(room, b.playerID)

	if c.Registry.Get(b.roomCode) == nil {
		return
	}

	room.Lock()
	snapshot := cloneRoomPublic(room.M)
	hasGame := room.M.Game != nil
	var turnSnap turnUpdateSnapshot
	if hasGame {
		turnSnap = snapshotTurnUpdate(room)
	}
	room.Unlock()
	c.broadcastRoomUpdate(room, snapshot)
	if hasGame {
		c.broadcastTurnUpdate(room, turnSnap)
	}
	if ended {
		c.broadcastGameEnded(room)
	}
}

// ForceTimeoutPass is invoked by the turn-timeout timer on behalf of the
// active player when their deadline has passed.
func (c *Coordinator) ForceTimeoutPass(room *registry.Room) {
	room.Lock()
	if room.M.Game == nil {
		room.Unlock()
		return
	}
	activeID := room.M.Game.ActivePlayerID
	_, ended, err := c.Lifecycle.PlayMove(room.M, activeID, model.ActionPass, nil, nil)
	var gsSnap gameStateSnapshot
	var turnSnap turnUpdateSnapshot
	if err == nil {
		gsSnap = snapshotGameState(room)
		turnSnap = snapshotTurnUpdate(room)
	}
	room.Unlock()
	if err != nil {
		return
	}

	c.broadcastGameState(room, gsSnap)
	c.broadcastTurnUpdate(room, turnSnap)
	if ended {
		c.broadcastGameEnded(room)
	}
}
