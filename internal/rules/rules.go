// Package rules is the pure, deterministic Scrabble rules and scoring
// engine (no I/O, no mutation of its inputs). It operates on a read-only
// board snapshot, a rack snapshot, and a proposed placement set, and
// decides legality, word formation, and score.
package rules

import (
	"scrabblesrv/internal/model"
)

// Dictionary is the read-only word-validity oracle the engine consults.
// dictionary.Dictionary satisfies this without an import cycle.
type Dictionary interface {
	IsValid(word string) bool
}

// WordResult is one scored word formed by a play.
type WordResult struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// PlayResult is the outcome of validating and scoring a legal play.
type PlayResult struct {
	MainWord    WordResult
	CrossWords  []WordResult
	TilesPlaced int
	Score       int
}

// Words returns every word formed by the play, main word first.
func (r *PlayResult) Words() []string {
	out := make([]string, 0, 1+len(r.CrossWords))
	out = append(out, r.MainWord.Word)
	for _, c := range r.CrossWords {
		out = append(out, c.Word)
	}
	return out
}

const bingoBonus = 50
const bingoTileCount = 7

// ValidatePlay checks a proposed play against the rules in order, returning
// the first violation as a *model.CodedError, or a PlayResult on success.
// isFirstMove must be true iff board has no tiles placed yet.
func ValidatePlay(board *model.Board, rack *model.Rack, placements []model.Placement, isFirstMove bool, dict Dictionary) (*PlayResult, error) {
	if len(placements) == 0 {
		return nil, model.NewError(model.ErrNoWordFormed, "no placements submitted")
	}

	// Each rule runs as its own pass over every placement, in the order
	// bounds, occupancy, duplicates, rack membership, so a batch violating
	// more than one rule is reported by whichever rule comes first,
	// regardless of which placement in the slice triggers it.
	for _, p := range placements {
		if !model.InBounds(p.X, p.Y) {
			return nil, model.NewError(model.ErrOutOfBounds, "placement out of bounds")
		}
	}
	for _, p := range placements {
		if board.At(p.X, p.Y).Tile != nil {
			return nil, model.NewError(model.ErrCellOccupied, "cell already occupied")
		}
	}
	seen := make(map[string]bool, len(placements))
	for _, p := range placements {
		if seen[p.TileID] {
			return nil, model.NewError(model.ErrDuplicateTile, "tile used twice in one placement set")
		}
		seen[p.TileID] = true
	}
	tiles := make(map[string]*model.Tile, len(placements))
	for _, p := range placements {
		t := rack.Find(p.TileID)
		if t == nil {
			return nil, model.NewError(model.ErrTileNotInRack, "tile not in rack")
		}
		tiles[p.TileID] = t
	}

	ax, fixed, ok := alignment(placements)
	if !ok {
		return nil, model.NewError(model.ErrNotAligned, "placements are not collinear")
	}

	if isFirstMove && !coversCenter(placements) {
		return nil, model.NewError(model.ErrMustCoverCenter, "first move must cover the center cell")
	}

	newTiles := newTilesByCoord(ax, placements, tiles)
	mainSpan, contiguous := buildSpan(board, ax, fixed, newTiles)
	if !contiguous {
		return nil, model.NewError(model.ErrNotContiguous, "placements leave a gap")
	}

	if !isFirstMove && !touchesExisting(board, placements) {
		return nil, model.NewError(model.ErrNotConnected, "play is not connected to an existing word")
	}

	var mainResult *WordResult
	var crossResults []WordResult

	if len(mainSpan) >= 2 {
		w, err := scoreSpan(mainSpan, dict)
		if err != nil {
			return nil, err
		}
		mainResult = w
	}

	crossAxis := otherAxis(ax)
	for _, p := range placements {
		t := tiles[p.TileID]
		single := map[int]placedTile{crossCoord(crossAxis, p): {tile: t, letter: chosenLetter(t, p)}}
		span, _ := buildSpan(board, crossAxis, crossFixed(crossAxis, p), single)
		if len(span) < 2 {
			continue
		}
		w, err := scoreSpan(span, dict)
		if err != nil {
			return nil, err
		}
		crossResults = append(crossResults, *w)
	}

	if mainResult == nil {
		if len(crossResults) == 0 {
			return nil, model.NewError(model.ErrNoWordFormed, "no word of length >= 2 was formed")
		}
		// Single-tile play where only the cross axis formed a word: that
		// span is promoted to the main word.
		mainResult = &crossResults[0]
		crossResults = crossResults[1:]
	}

	total := mainResult.Score
	for _, c := range crossResults {
		total += c.Score
	}
	if len(placements) == bingoTileCount {
		total += bingoBonus
	}

	return &PlayResult{
		MainWord:    *mainResult,
		CrossWords:  crossResults,
		TilesPlaced: len(placements),
		Score:       total,
	}, nil
}

// ValidateExchange checks that an exchange request is legal: a non-empty
// id list, all ids present on the rack with no duplicates, and enough
// tiles left in the bag to satisfy the draw that follows.
func ValidateExchange(rack *model.Rack, bagSize int, ids []string) error {
	if len(ids) == 0 {
		return model.NewError(model.ErrNoTilesToExchange, "no tiles named for exchange")
	}
	if bagSize < len(ids) {
		return model.NewError(model.ErrBagTooSmall, "bag does not have enough tiles for this exchange")
	}
	if !rack.Has(ids) {
		return model.NewError(model.ErrTileNotInRack, "one or more exchanged tiles are not on the rack")
	}
	return nil
}
