package rules

import "scrabblesrv/internal/model"

// axisKind is the line a set of collinear placements runs along.
type axisKind int

const (
	axisRow axisKind = iota // placements share a Y; the word runs along X
	axisCol                 // placements share an X; the word runs along Y
)

func otherAxis(ax axisKind) axisKind {
	if ax == axisRow {
		return axisCol
	}
	return axisRow
}

// cellAt maps a (fixed, coord) pair on the given axis back to board (x,y).
func cellAt(ax axisKind, fixed, coord int) (x, y int) {
	if ax == axisRow {
		return coord, fixed
	}
	return fixed, coord
}

// placedTile is a newly-placed tile pending commit, with its display
// letter already resolved (the chosen letter, for a joker).
type placedTile struct {
	tile   *model.Tile
	letter string
}

// spanCell is one cell along a built word span, new or pre-existing.
type spanCell struct {
	x, y    int
	tile    *model.Tile
	letter  string
	isNew   bool
	premium model.Premium
}

// chosenLetter resolves the display letter for a placement: the player's
// chosen letter for a joker, or the tile's own fixed letter.
func chosenLetter(tile *model.Tile, p model.Placement) string {
	if tile.IsJoker && p.Letter != "" {
		return p.Letter
	}
	return tile.Letter
}

// alignment determines the shared axis of a placement set. A single
// placement is reported on axisRow by convention; callers probe the other
// axis separately for the cross-word case.
func alignment(placements []model.Placement) (axisKind, int, bool) {
	if len(placements) == 1 {
		return axisRow, placements[0].Y, true
	}
	sameRow, sameCol := true, true
	y0, x0 := placements[0].Y, placements[0].X
	for _, p := range placements[1:] {
		if p.Y != y0 {
			sameRow = false
		}
		if p.X != x0 {
			sameCol = false
		}
	}
	switch {
	case sameRow:
		return axisRow, y0, true
	case sameCol:
		return axisCol, x0, true
	default:
		return 0, 0, false
	}
}

func coversCenter(placements []model.Placement) bool {
	for _, p := range placements {
		if p.X == model.CenterX && p.Y == model.CenterY {
			return true
		}
	}
	return false
}

// newTilesByCoord indexes placements by their position along ax's varying
// coordinate, for the main-axis span.
func newTilesByCoord(ax axisKind, placements []model.Placement, tiles map[string]*model.Tile) map[int]placedTile {
	out := make(map[int]placedTile, len(placements))
	for _, p := range placements {
		coord := p.X
		if ax == axisCol {
			coord = p.Y
		}
		t := tiles[p.TileID]
		out[coord] = placedTile{tile: t, letter: chosenLetter(t, p)}
	}
	return out
}

func crossFixed(crossAxis axisKind, p model.Placement) int {
	if crossAxis == axisRow {
		return p.Y
	}
	return p.X
}

func crossCoord(crossAxis axisKind, p model.Placement) int {
	if crossAxis == axisRow {
		return p.X
	}
	return p.Y
}

// buildSpan extends the coordinate range covered by newTiles through any
// contiguous pre-existing tiles on either end, then walks the full range.
// It reports contiguous=false if any cell in the extended range is empty
// (neither a new placement nor a pre-existing tile) — a gap.
func buildSpan(board *model.Board, ax axisKind, fixed int, newTiles map[int]placedTile) ([]spanCell, bool) {
	if len(newTiles) == 0 {
		return nil, true
	}
	minCoord, maxCoord := minMaxKeys(newTiles)

	for {
		x, y := cellAt(ax, fixed, minCoord-1)
		if !model.InBounds(x, y) {
			break
		}
		if board.At(x, y).Tile == nil {
			break
		}
		minCoord--
	}
	for {
		x, y := cellAt(ax, fixed, maxCoord+1)
		if !model.InBounds(x, y) {
			break
		}
		if board.At(x, y).Tile == nil {
			break
		}
		maxCoord++
	}

	cells := make([]spanCell, 0, maxCoord-minCoord+1)
	for c := minCoord; c <= maxCoord; c++ {
		x, y := cellAt(ax, fixed, c)
		if nt, ok := newTiles[c]; ok {
			cells = append(cells, spanCell{
				x: x, y: y, tile: nt.tile, letter: nt.letter,
				isNew: true, premium: board.At(x, y).Premium,
			})
			continue
		}
		existing := board.At(x, y).Tile
		if existing == nil {
			return nil, false
		}
		cells = append(cells, spanCell{x: x, y: y, tile: existing, letter: existing.Letter, isNew: false})
	}
	return cells, true
}

func minMaxKeys(m map[int]placedTile) (min, max int) {
	first := true
	for k := range m {
		if first {
			min, max = k, k
			first = false
			continue
		}
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	return
}

// touchesExisting reports whether any placement is orthogonally adjacent to
// a pre-existing board tile.
func touchesExisting(board *model.Board, placements []model.Placement) bool {
	deltas := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, p := range placements {
		for _, d := range deltas {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !model.InBounds(nx, ny) {
				continue
			}
			if board.At(nx, ny).Tile != nil {
				return true
			}
		}
	}
	return false
}

// scoreSpan builds the display and dictionary-query forms of a word span,
// checks it against dict, and computes its score.
func scoreSpan(span []spanCell, dict Dictionary) (*WordResult, error) {
	display := make([]byte, 0, len(span))
	query := make([]byte, 0, len(span))
	letterSum := 0
	wordMult := 1
	for _, c := range span {
		letter := c.letter
		if letter == "" {
			letter = "?"
		}
		display = append(display, letter...)
		if c.isNew && c.tile.IsJoker {
			query = append(query, '?')
		} else {
			query = append(query, letter...)
		}

		mult := 1
		if c.isNew {
			switch c.premium {
			case model.PremiumDoubleLetter:
				mult = 2
			case model.PremiumTripleLetter:
				mult = 3
			case model.PremiumDoubleWord:
				wordMult *= 2
			case model.PremiumTripleWord:
				wordMult *= 3
			}
		}
		letterSum += c.tile.Value * mult
	}

	word := string(display)
	if !dict.IsValid(string(query)) {
		return nil, model.NewWordError(model.ErrInvalidWord, "word not found in dictionary", word)
	}
	return &WordResult{Word: word, Score: letterSum * wordMult}, nil
}
