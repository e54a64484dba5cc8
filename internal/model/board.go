package model

const BoardSize = 15

// CenterX and CenterY are the coordinates of the mandatory first-move cell.
const (
	CenterX = 7
	CenterY = 7
)

// Premium is a per-cell bonus multiplier. The zero value means no bonus.
type Premium string

const (
	PremiumNone          Premium = ""
	PremiumDoubleLetter  Premium = "DL"
	PremiumTripleLetter  Premium = "TL"
	PremiumDoubleWord    Premium = "DW"
	PremiumTripleWord    Premium = "TW"
)

// Cell is one square of the board.
type Cell struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Premium   Premium `json:"premium,omitempty"`
	Tile      *Tile   `json:"tile,omitempty"`
	BonusUsed bool    `json:"bonusUsed"`

	// FromPlayerID and TurnPlayed record provenance of the placed tile, for
	// display purposes only; they have no effect on scoring.
	FromPlayerID string `json:"fromPlayerId,omitempty"`
	TurnPlayed    int    `json:"turnPlayed,omitempty"`
}

// Board is the 15x15 playing surface.
type Board struct {
	Cells [BoardSize][BoardSize]Cell `json:"cells"`
}

// NewBoard builds an empty board with the standard premium layout painted on.
func NewBoard() *Board {
	b := &Board{}
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			b.Cells[x][y] = Cell{X: x, Y: y, Premium: standardPremium(x, y)}
		}
	}
	return b
}

// At returns a pointer to the cell at (x,y). Callers must bounds-check first;
// use InBounds.
func (b *Board) At(x, y int) *Cell {
	return &b.Cells[x][y]
}

// InBounds reports whether (x,y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// Place drops tile onto the cell at (x,y), consuming the cell's premium and
// stamping provenance. It does not validate legality; callers must have
// already done so.
func (b *Board) Place(x, y int, tile *Tile, playerID string, turn int) {
	c := b.At(x, y)
	c.Tile = tile
	c.BonusUsed = true
	c.FromPlayerID = playerID
	c.TurnPlayed = turn
}

var tripleWordCells = [][2]int{
	{0, 0}, {0, 7}, {0, 14},
	{7, 0}, {7, 14},
	{14, 0}, {14, 7}, {14, 14},
}

var tripleLetterOffsets = [][2]int{
	{1, 5}, {1, 9}, {5, 1}, {5, 5}, {5, 9}, {5, 13},
}

// doubleLetterCells lists the standard 24-cell double-letter pattern. DW
// squares are not listed here: standardPremium generates them from the
// diagonal run (1,1)..(4,4) and its reflections, plus the center cell.
var doubleLetterCells = [][2]int{
	{0, 3}, {0, 11},
	{2, 6}, {2, 8},
	{3, 0}, {3, 7}, {3, 14},
	{6, 2}, {6, 6}, {6, 8}, {6, 12},
	{7, 3}, {7, 11},
	{8, 2}, {8, 6}, {8, 8}, {8, 12},
	{11, 0}, {11, 7}, {11, 14},
	{12, 6}, {12, 8},
	{14, 3}, {14, 11},
}

// standardPremium computes the canonical, 8-fold symmetric 15x15 Scrabble
// premium layout for (x,y).
func standardPremium(x, y int) Premium {
	for _, c := range tripleWordCells {
		if c[0] == x && c[1] == y {
			return PremiumTripleWord
		}
	}
	for _, o := range tripleLetterOffsets {
		for _, p := range symmetries(o[0], o[1]) {
			if p[0] == x && p[1] == y {
				return PremiumTripleLetter
			}
		}
	}
	if x == CenterX && y == CenterY {
		return PremiumDoubleWord
	}
	for d := 1; d <= 4; d++ {
		for _, p := range symmetries(d, d) {
			if p[0] == x && p[1] == y {
				return PremiumDoubleWord
			}
		}
	}
	for _, c := range doubleLetterCells {
		if c[0] == x && c[1] == y {
			return PremiumDoubleLetter
		}
	}
	return PremiumNone
}

// symmetries returns the 8-fold reflections of (x,y) across both diagonals
// and both axes of the 15x15 board.
func symmetries(x, y int) [][2]int {
	last := BoardSize - 1
	mx, my := last-x, last-y
	pts := [][2]int{
		{x, y}, {mx, y}, {x, my}, {mx, my},
		{y, x}, {my, x}, {y, mx}, {my, mx},
	}
	seen := make(map[[2]int]bool, len(pts))
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
