// Package game implements the per-room game lifecycle (bag shuffling,
// racks, turn pointer, move application, end detection) on top of the pure
// rules engine in package rules. StartGame resets and deals a room; the
// per-action handlers mutate state only after the rules engine has signed
// off on a proposed move.
package game

import (
	"math/rand"
	"time"

	"scrabblesrv/internal/model"
	"scrabblesrv/internal/rules"
)

// Lifecycle owns the dependencies a room's game needs but does not itself
// carry: the dictionary, an id generator for move/tile ids, and the PRNG
// used for bag shuffles. Tests construct a Lifecycle with a seeded *rand.Rand
// so shuffles are reproducible.
type Lifecycle struct {
	Config Config
	Dict   rules.Dictionary
	IDGen  func() string
	Rand   *rand.Rand
}

// NewLifecycle builds a Lifecycle. idGen is called once per bag tile at
// StartGame and once per recorded move.
func NewLifecycle(cfg Config, dict rules.Dictionary, idGen func() string, rng *rand.Rand) *Lifecycle {
	return &Lifecycle{Config: cfg, Dict: dict, IDGen: idGen, Rand: rng}
}

// StartGame resets every player, paints a fresh board, builds and shuffles
// the bag, deals racks, and sets the active player to players[0]. Callers
// are responsible for checking start preconditions (player count, all
// ready, room status) before calling this.
func (l *Lifecycle) StartGame(room *model.Room) {
	for _, p := range room.Players {
		p.ResetForNewGame()
	}

	bag := model.NewBag(l.Config.Language, l.IDGen)
	bag.Shuffle(l.Rand)

	for _, p := range room.Players {
		p.Rack.Add(bag.Draw(model.MaxRackSize))
	}

	now := time.Now()
	room.Game = &model.GameState{
		Board:          model.NewBoard(),
		Bag:            bag,
		TurnIndex:      0,
		ActivePlayerID: room.Players[0].ID,
		TurnDeadline:   now.Add(l.Config.TurnDuration),
		TurnDuration:   l.Config.TurnDuration,
		StartedAt:      now,
		Version:        1,
	}
	room.Status = model.RoomPlaying
}

// PlayMove dispatches a submitted action for the room's active player.
// It is the caller's responsibility to serialize calls per room (see the
// concurrency model) and to have already confirmed room.Game != nil and
// playerID == room.Game.ActivePlayerID before deeper validation; this
// function re-checks both defensively.
//
// On success it returns the recorded move summary and whether the game
// ended as a result. On failure no state is mutated.
func (l *Lifecycle) PlayMove(room *model.Room, playerID string, action model.Action, placements []model.Placement, exchangeIDs []string) (*model.MoveSummary, bool, error) {
	if room.Game == nil {
		return nil, false, model.NewError(model.ErrInvalidState, "room has no active game")
	}
	player := room.Player(playerID)
	if player == nil {
		return nil, false, model.NewError(model.ErrNotInRoom, "player is not a member of this room")
	}
	if playerID != room.Game.ActivePlayerID {
		return nil, false, model.NewError(model.ErrNotYourTurn, "it is not this player's turn")
	}

	switch action {
	case model.ActionPass:
		return l.applyPass(room, player)
	case model.ActionExchange:
		return l.applyExchange(room, player, exchangeIDs)
	case model.ActionPlay:
		return l.applyPlay(room, player, placements)
	default:
		return nil, false, model.NewError(model.ErrBadPayload, "unknown move action")
	}
}
