package model

import "math/rand"

// Language selects a letter distribution for a new game's Bag.
type Language string

const (
	LanguageEnglish Language = "EN"
	LanguageFrench  Language = "FR"
)

type letterDef struct {
	letter string
	count  int
	value  int
}

// englishDistribution is the standard English Scrabble letter distribution.
var englishDistribution = []letterDef{
	{"A", 9, 1}, {"B", 2, 3}, {"C", 2, 3}, {"D", 4, 2}, {"E", 12, 1},
	{"F", 2, 4}, {"G", 3, 2}, {"H", 2, 4}, {"I", 9, 1}, {"J", 1, 8},
	{"K", 1, 5}, {"L", 4, 1}, {"M", 2, 3}, {"N", 6, 1}, {"O", 8, 1},
	{"P", 2, 3}, {"Q", 1, 10}, {"R", 6, 1}, {"S", 4, 1}, {"T", 6, 1},
	{"U", 4, 1}, {"V", 2, 4}, {"W", 2, 4}, {"X", 1, 8}, {"Y", 2, 4},
	{"Z", 1, 10}, {"", 2, 0},
}

// frenchDistribution is the standard French Scrabble letter distribution.
var frenchDistribution = []letterDef{
	{"A", 9, 1}, {"B", 2, 3}, {"C", 2, 3}, {"D", 3, 2}, {"E", 15, 1},
	{"F", 2, 4}, {"G", 2, 2}, {"H", 2, 4}, {"I", 8, 1}, {"J", 1, 8},
	{"K", 1, 10}, {"L", 5, 1}, {"M", 3, 2}, {"N", 6, 1}, {"O", 6, 1},
	{"P", 2, 3}, {"Q", 1, 8}, {"R", 6, 1}, {"S", 6, 1}, {"T", 6, 1},
	{"U", 6, 1}, {"V", 2, 4}, {"W", 1, 10}, {"X", 1, 10}, {"Y", 1, 10},
	{"Z", 1, 10}, {"", 2, 0},
}

// Bag is the pool of undrawn tiles, represented so that draw = pop-from-tail
// and return = append-then-shuffle.
type Bag struct {
	Tiles []Tile `json:"tiles"`
}

// NewBag builds the full tile set for the given language, with stable
// per-tile ids, unshuffled.
func NewBag(lang Language, idGen func() string) *Bag {
	dist := englishDistribution
	if lang == LanguageFrench {
		dist = frenchDistribution
	}
	bag := &Bag{}
	for _, d := range dist {
		for i := 0; i < d.count; i++ {
			bag.Tiles = append(bag.Tiles, Tile{
				ID:      idGen(),
				Letter:  d.letter,
				Value:   d.value,
				IsJoker: d.letter == "",
			})
		}
	}
	return bag
}

// Shuffle performs a uniform Fisher-Yates shuffle using rng, which callers
// inject so shuffles are reproducible under test.
func (b *Bag) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(b.Tiles), func(i, j int) {
		b.Tiles[i], b.Tiles[j] = b.Tiles[j], b.Tiles[i]
	})
}

// Size returns the number of tiles remaining in the bag.
func (b *Bag) Size() int {
	return len(b.Tiles)
}

// Draw pops up to n tiles off the tail of the bag. It returns fewer than n
// tiles if the bag is smaller than n; it never errors.
func (b *Bag) Draw(n int) []Tile {
	if n > len(b.Tiles) {
		n = len(b.Tiles)
	}
	if n <= 0 {
		return nil
	}
	start := len(b.Tiles) - n
	drawn := append([]Tile{}, b.Tiles[start:]...)
	b.Tiles = b.Tiles[:start]
	return drawn
}

// Return appends tiles to the bag and reshuffles, the way a rejected
// exchange set is mixed back in.
func (b *Bag) Return(tiles []Tile, rng *rand.Rand) {
	b.Tiles = append(b.Tiles, tiles...)
	b.Shuffle(rng)
}
