package model

import "testing"

func TestRack_HasRejectsDuplicateIDs(t *testing.T) {
	r := Rack{Tiles: []Tile{{ID: "a"}, {ID: "b"}}}
	if r.Has([]string{"a", "a"}) {
		t.Fatalf("Has reported true for a duplicated id")
	}
	if !r.Has([]string{"a", "b"}) {
		t.Fatalf("Has reported false for a fully present set")
	}
	if r.Has([]string{"a", "z"}) {
		t.Fatalf("Has reported true for a missing id")
	}
}

func TestRack_RemoveReturnsOnlyNamedTiles(t *testing.T) {
	r := Rack{Tiles: []Tile{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	removed := r.Remove([]string{"b"})
	if len(removed) != 1 || removed[0].ID != "b" {
		t.Fatalf("removed = %+v, want just b", removed)
	}
	if r.Size() != 2 {
		t.Fatalf("rack size = %d, want 2", r.Size())
	}
}

func TestRack_FaceValue(t *testing.T) {
	r := Rack{Tiles: []Tile{{Value: 3}, {Value: 1}, {Value: 0}}}
	if got := r.FaceValue(); got != 4 {
		t.Fatalf("FaceValue = %d, want 4", got)
	}
}

func TestTruncateNickname(t *testing.T) {
	short := "Sam"
	if got := TruncateNickname(short); got != short {
		t.Fatalf("TruncateNickname(%q) = %q, want unchanged", short, got)
	}
	long := "ThisNicknameIsDefinitelyTooLong"
	got := TruncateNickname(long)
	if len([]rune(got)) != MaxNicknameLength {
		t.Fatalf("len(TruncateNickname(long)) = %d, want %d", len([]rune(got)), MaxNicknameLength)
	}
}

func TestPlayer_ResetForNewGame(t *testing.T) {
	p := &Player{Score: 40, Ready: true, Rack: Rack{Tiles: []Tile{{ID: "a"}}}, Stats: PlayerStats{Passes: 2}}
	p.ResetForNewGame()
	if p.Score != 0 || p.Ready || p.Rack.Size() != 0 || p.Stats.Passes != 0 {
		t.Fatalf("player not fully reset: %+v", p)
	}
}

func TestTile_PlaceOnlyAffectsJokers(t *testing.T) {
	joker := &Tile{IsJoker: true}
	joker.Place("Q")
	if joker.Letter != "Q" || joker.Value != 0 {
		t.Fatalf("joker placement = %+v", joker)
	}

	fixed := &Tile{Letter: "Z", Value: 10}
	fixed.Place("Q")
	if fixed.Letter != "Z" {
		t.Fatalf("non-joker letter mutated: %+v", fixed)
	}
}
