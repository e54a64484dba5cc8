package registry

import (
	"math/rand"
	"testing"
	"time"

	"scrabblesrv/internal/model"
)

func newTestRegistry() *Registry {
	return New(RandomCodeGenerator(rand.New(rand.NewSource(1))))
}

func TestCreateRoom_ClampsCapacityAndAssignsHost(t *testing.T) {
	reg := newTestRegistry()

	room, err := reg.CreateRoom(99, "Alice", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room.M.Capacity != model.MaxCapacity {
		t.Fatalf("capacity = %d, want clamped to %d", room.M.Capacity, model.MaxCapacity)
	}
	if len(room.M.Players) != 1 || room.M.Players[0].Nickname != "Alice" {
		t.Fatalf("unexpected players: %+v", room.M.Players)
	}
	if room.M.HostID != room.M.Players[0].ID {
		t.Fatalf("hostId = %s, want %s", room.M.HostID, room.M.Players[0].ID)
	}
	if room.M.Status != model.RoomWaiting {
		t.Fatalf("status = %s, want waiting", room.M.Status)
	}
	if reg.Get(room.M.Code) == nil {
		t.Fatalf("room not registered under its code")
	}
}

func TestCreateRoom_UsesSuppliedPlayerID(t *testing.T) {
	reg := newTestRegistry()
	room, err := reg.CreateRoom(2, "Bob", "fixed-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room.M.HostID != "fixed-id" {
		t.Fatalf("hostId = %s, want fixed-id", room.M.HostID)
	}
}

func TestGenerateCode_FailsWhenEveryRetryCollides(t *testing.T) {
	reg := New(func(n int) string { return "DUP1" })
	if _, err := reg.CreateRoom(2, "A", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := reg.CreateRoom(2, "B", "b")
	ce, ok := err.(*model.CodedError)
	if !ok || ce.Code != model.ErrRoomIDGenerationFail {
		t.Fatalf("err = %v, want ROOM_ID_GENERATION_FAILED", err)
	}
}

func TestJoinRoom_HappyPath(t *testing.T) {
	reg := newTestRegistry()
	room, _ := reg.CreateRoom(4, "Alice", "host")

	joined, err := reg.JoinRoom(room.M.Code, "Bob", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(joined.M.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(joined.M.Players))
	}
}

func TestJoinRoom_ReattachExistingPlayerIsIdempotent(t *testing.T) {
	reg := newTestRegistry()
	room, _ := reg.CreateRoom(4, "Alice", "host")
	if _, err := reg.JoinRoom(room.M.Code, "Bob", "bob-id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rejoined, err := reg.JoinRoom(room.M.Code, "ignored", "bob-id")
	if err != nil {
		t.Fatalf("unexpected error on reattach: %v", err)
	}
	if len(rejoined.M.Players) != 2 {
		t.Fatalf("reattach duplicated the player: %+v", rejoined.M.Players)
	}
}

func TestJoinRoom_RejectsUnknownCode(t *testing.T) {
	reg := newTestRegistry()
	_, err := reg.JoinRoom("NOPE", "Alice", "")
	ce, ok := err.(*model.CodedError)
	if !ok || ce.Code != model.ErrRoomNotFound {
		t.Fatalf("err = %v, want ROOM_NOT_FOUND", err)
	}
}

func TestJoinRoom_RejectsFullRoom(t *testing.T) {
	reg := newTestRegistry()
	room, _ := reg.CreateRoom(1, "Alice", "host")
	_, err := reg.JoinRoom(room.M.Code, "Bob", "")
	ce, ok := err.(*model.CodedError)
	if !ok || ce.Code != model.ErrRoomFull {
		t.Fatalf("err = %v, want ROOM_FULL", err)
	}
}

func TestJoinRoom_RejectsDuplicateNickname(t *testing.T) {
	reg := newTestRegistry()
	room, _ := reg.CreateRoom(4, "Alice", "host")
	_, err := reg.JoinRoom(room.M.Code, "alice", "")
	ce, ok := err.(*model.CodedError)
	if !ok || ce.Code != model.ErrNicknameTaken {
		t.Fatalf("err = %v, want NICKNAME_TAKEN", err)
	}
}

func TestJoinRoom_RejectsWhenGameAlreadyStarted(t *testing.T) {
	reg := newTestRegistry()
	room, _ := reg.CreateRoom(4, "Alice", "host")
	room.M.Status = model.RoomPlaying

	_, err := reg.JoinRoom(room.M.Code, "Bob", "")
	ce, ok := err.(*model.CodedError)
	if !ok || ce.Code != model.ErrRoomNotJoinable {
		t.Fatalf("err = %v, want ROOM_NOT_JOINABLE", err)
	}
}

func TestRemovePlayer_TransfersHostWhenHostLeaves(t *testing.T) {
	reg := newTestRegistry()
	room, _ := reg.CreateRoom(4, "Alice", "host")
	reg.JoinRoom(room.M.Code, "Bob", "bob-id")

	reg.RemovePlayer(room, "host")

	if room.M.HostID != "bob-id" {
		t.Fatalf("hostId = %s, want bob-id", room.M.HostID)
	}
	if len(room.M.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(room.M.Players))
	}
	if reg.Get(room.M.Code) == nil {
		t.Fatalf("room should still exist with a remaining player")
	}
}

func TestRemovePlayer_DeletesEmptyRoom(t *testing.T) {
	reg := newTestRegistry()
	room, _ := reg.CreateRoom(4, "Alice", "host")

	reg.RemovePlayer(room, "host")

	if reg.Get(room.M.Code) != nil {
		t.Fatalf("expected empty room to be dropped from the registry")
	}
}

func TestSweepIdle_EvictsOnlyStaleDisconnectedRooms(t *testing.T) {
	reg := newTestRegistry()
	stale, _ := reg.CreateRoom(4, "Alice", "a")
	stale.M.LastActivityAt = time.Now().Add(-time.Hour)

	active, _ := reg.CreateRoom(4, "Bob", "b")
	active.M.Players[0].Connected = true
	active.M.LastActivityAt = time.Now().Add(-time.Hour)

	recent, _ := reg.CreateRoom(4, "Carl", "c")
	recent.M.LastActivityAt = time.Now()

	threshold := func(last time.Time) bool { return time.Since(last) > 30*time.Minute }
	evicted := reg.SweepIdle(threshold)

	if len(evicted) != 1 || evicted[0] != stale.M.Code {
		t.Fatalf("evicted = %v, want only %s", evicted, stale.M.Code)
	}
	if reg.Get(stale.M.Code) != nil {
		t.Fatalf("stale room should have been evicted")
	}
	if reg.Get(active.M.Code) == nil {
		t.Fatalf("connected room should survive the sweep")
	}
	if reg.Get(recent.M.Code) == nil {
		t.Fatalf("recently active room should survive the sweep")
	}
}
