package game

import (
	"math/rand"
	"testing"

	"scrabblesrv/internal/model"
)

type permissiveDict struct{}

func (permissiveDict) IsValid(string) bool { return true }

func newTestLifecycle() *Lifecycle {
	n := 0
	idGen := func() string {
		n++
		return "id" + string(rune('0'+n%10)) + string(rune('a'+n/10))
	}
	return NewLifecycle(DefaultConfig(), permissiveDict{}, idGen, rand.New(rand.NewSource(7)))
}

func newTestRoom(playerIDs ...string) *model.Room {
	players := make([]*model.Player, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = &model.Player{ID: id, Nickname: id, Connected: true}
	}
	return &model.Room{Code: "ABCD", HostID: playerIDs[0], Status: model.RoomWaiting, Capacity: 4, Players: players}
}

func TestLifecycle_StartGameDealsRacksAndSetsActivePlayer(t *testing.T) {
	l := newTestLifecycle()
	room := newTestRoom("p1", "p2")

	l.StartGame(room)

	if room.Status != model.RoomPlaying {
		t.Fatalf("status = %s, want playing", room.Status)
	}
	for _, p := range room.Players {
		if p.Rack.Size() != model.MaxRackSize {
			t.Fatalf("player %s rack size = %d, want %d", p.ID, p.Rack.Size(), model.MaxRackSize)
		}
	}
	if room.Game.ActivePlayerID != room.Players[0].ID {
		t.Fatalf("active player = %s, want %s", room.Game.ActivePlayerID, room.Players[0].ID)
	}
	if room.Game.Bag.Size() != 100-2*model.MaxRackSize {
		t.Fatalf("bag size = %d", room.Game.Bag.Size())
	}
}

func TestLifecycle_PlayMove_RejectsWrongTurn(t *testing.T) {
	l := newTestLifecycle()
	room := newTestRoom("p1", "p2")
	l.StartGame(room)

	_, _, err := l.PlayMove(room, "p2", model.ActionPass, nil, nil)
	ce, ok := err.(*model.CodedError)
	if !ok || ce.Code != model.ErrNotYourTurn {
		t.Fatalf("err = %v, want NOT_YOUR_TURN", err)
	}
}

func TestLifecycle_PassIdempotence(t *testing.T) {
	l := newTestLifecycle()
	room := newTestRoom("p1", "p2", "p3")
	l.StartGame(room)

	for i := 0; i < 3; i++ {
		active := room.Game.ActivePlayerID
		_, _, err := l.PlayMove(room, active, model.ActionPass, nil, nil)
		if err != nil {
			t.Fatalf("pass %d: unexpected error %v", i, err)
		}
	}

	if room.Game.ConsecutivePasses != 3 {
		t.Fatalf("consecutivePasses = %d, want 3", room.Game.ConsecutivePasses)
	}
	for _, p := range room.Players {
		if p.Rack.Size() != model.MaxRackSize {
			t.Fatalf("player %s rack mutated by passes", p.ID)
		}
	}
}

func TestLifecycle_EndBySixPasses(t *testing.T) {
	l := newTestLifecycle()
	room := newTestRoom("p1", "p2", "p3", "p4")
	l.StartGame(room)

	var ended bool
	for i := 0; i < 6; i++ {
		active := room.Game.ActivePlayerID
		_, e, err := l.PlayMove(room, active, model.ActionPass, nil, nil)
		if err != nil {
			t.Fatalf("pass %d: unexpected error %v", i, err)
		}
		ended = e
	}

	if !ended {
		t.Fatalf("game did not end after 6 passes")
	}
	if room.Status != model.RoomFinished {
		t.Fatalf("status = %s, want finished", room.Status)
	}
	for _, p := range room.Players {
		if p.Score >= 0 {
			t.Fatalf("player %s score = %d, want negative rack penalty", p.ID, p.Score)
		}
	}
}

func TestLifecycle_ExchangeRoundTrip(t *testing.T) {
	l := newTestLifecycle()
	room := newTestRoom("p1", "p2")
	l.StartGame(room)

	active := room.Game.ActivePlayerID
	player := room.Player(active)
	before := room.Game.Bag.Size()
	ids := []string{player.Rack.Tiles[0].ID, player.Rack.Tiles[1].ID}

	_, _, err := l.PlayMove(room, active, model.ActionExchange, nil, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if player.Rack.Size() != model.MaxRackSize {
		t.Fatalf("rack size after exchange = %d, want %d", player.Rack.Size(), model.MaxRackSize)
	}
	if room.Game.Bag.Size() != before {
		t.Fatalf("bag size after exchange = %d, want %d", room.Game.Bag.Size(), before)
	}
}
