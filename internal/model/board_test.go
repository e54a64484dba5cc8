package model

import "testing"

func TestStandardPremium_Corners(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {0, 14}, {14, 0}, {14, 14}, {0, 7}, {14, 7}, {7, 0}, {7, 14}} {
		if got := standardPremium(c[0], c[1]); got != PremiumTripleWord {
			t.Fatalf("premium(%d,%d) = %s, want TW", c[0], c[1], got)
		}
	}
}

func TestStandardPremium_Center(t *testing.T) {
	if got := standardPremium(CenterX, CenterY); got != PremiumDoubleWord {
		t.Fatalf("premium(center) = %s, want DW", got)
	}
}

func TestStandardPremium_SymmetricTripleLetter(t *testing.T) {
	want := PremiumTripleLetter
	points := [][2]int{{1, 5}, {13, 9}, {9, 13}, {5, 1}}
	for _, p := range points {
		if got := standardPremium(p[0], p[1]); got != want {
			t.Fatalf("premium(%d,%d) = %s, want TL", p[0], p[1], got)
		}
	}
}

func TestBoard_PlaceConsumesCellAndStampsProvenance(t *testing.T) {
	b := NewBoard()
	tl := &Tile{ID: "x", Letter: "X", Value: 8}
	b.Place(3, 3, tl, "player-1", 4)

	cell := b.At(3, 3)
	if cell.Tile != tl {
		t.Fatalf("cell tile not set")
	}
	if !cell.BonusUsed {
		t.Fatalf("bonusUsed not stamped")
	}
	if cell.FromPlayerID != "player-1" || cell.TurnPlayed != 4 {
		t.Fatalf("provenance not stamped: %+v", cell)
	}
}

func TestInBounds(t *testing.T) {
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true}, {14, 14, true}, {-1, 0, false}, {0, 15, false}, {15, 0, false},
	}
	for _, tc := range cases {
		if got := InBounds(tc.x, tc.y); got != tc.want {
			t.Fatalf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
