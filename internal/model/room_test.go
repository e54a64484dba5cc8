package model

import "testing"

func TestRoom_HasNicknameCaseInsensitive(t *testing.T) {
	r := &Room{Players: []*Player{{ID: "1", Nickname: "Sam"}}}
	if !r.HasNickname("sam", "") {
		t.Fatalf("expected case-insensitive collision")
	}
	if r.HasNickname("sam", "1") {
		t.Fatalf("excludeID should exempt the player's own nickname")
	}
	if r.HasNickname("other", "") {
		t.Fatalf("unexpected collision for a distinct nickname")
	}
}

func TestRoom_RemovePlayer(t *testing.T) {
	r := &Room{Players: []*Player{{ID: "1"}, {ID: "2"}}}
	if !r.RemovePlayer("1") {
		t.Fatalf("expected removal to report true")
	}
	if len(r.Players) != 1 || r.Players[0].ID != "2" {
		t.Fatalf("players after removal = %+v", r.Players)
	}
	if r.RemovePlayer("1") {
		t.Fatalf("removing an absent id should report false")
	}
}

func TestRoom_AnyConnected(t *testing.T) {
	r := &Room{Players: []*Player{{ID: "1", Connected: false}, {ID: "2", Connected: true}}}
	if !r.AnyConnected() {
		t.Fatalf("expected at least one connected player")
	}
	r.Players[1].Connected = false
	if r.AnyConnected() {
		t.Fatalf("expected no connected players")
	}
}
