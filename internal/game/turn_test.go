package game

import (
	"testing"

	"scrabblesrv/internal/model"
)

func TestCheckEndOfGame_EmptyRackBonus(t *testing.T) {
	room := newTestRoom("p1", "p2")
	room.Game = &model.GameState{Bag: &model.Bag{}}
	p1, p2 := room.Players[0], room.Players[1]
	p1.Rack = model.Rack{}
	p2.Rack = model.Rack{Tiles: []model.Tile{{Value: 5}, {Value: 2}}}
	p1.Score, p2.Score = 10, 20

	ended := checkEndOfGame(room, 6)
	if !ended {
		t.Fatalf("expected game to end when bag is empty and a rack is empty")
	}
	if room.Status != model.RoomFinished {
		t.Fatalf("status = %s, want finished", room.Status)
	}
	if p1.Score != 10+7 {
		t.Fatalf("p1 score = %d, want %d", p1.Score, 17)
	}
	if p2.Score != 20-7 {
		t.Fatalf("p2 score = %d, want %d", p2.Score, 13)
	}
}

func TestCheckEndOfGame_NoTriggerWhileBagNonemptyAndUnderPasses(t *testing.T) {
	room := newTestRoom("p1", "p2")
	room.Game = &model.GameState{Bag: &model.Bag{Tiles: []model.Tile{{}, {}}}, ConsecutivePasses: 1}
	room.Players[0].Rack = model.Rack{Tiles: []model.Tile{{Value: 1}}}
	room.Players[1].Rack = model.Rack{Tiles: []model.Tile{{Value: 1}}}

	if checkEndOfGame(room, 6) {
		t.Fatalf("did not expect the game to end")
	}
	if room.Status == model.RoomFinished {
		t.Fatalf("room incorrectly marked finished")
	}
}

func TestAdvanceTurn_WrapsAndBumpsVersion(t *testing.T) {
	room := newTestRoom("p1", "p2")
	room.Game = &model.GameState{TurnIndex: 1, ActivePlayerID: "p2", TurnDuration: 0, Version: 4}

	advanceTurn(room)

	if room.Game.TurnIndex != 0 {
		t.Fatalf("turnIndex = %d, want 0", room.Game.TurnIndex)
	}
	if room.Game.ActivePlayerID != "p1" {
		t.Fatalf("activePlayerId = %s, want p1", room.Game.ActivePlayerID)
	}
	if room.Game.Version != 5 {
		t.Fatalf("version = %d, want 5", room.Game.Version)
	}
}
