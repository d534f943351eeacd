package closet

import (
	"golang.org/x/text/unicode/norm"
)

// Category identifies a slot in an outfit.
type Category string

const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
	CategoryJacket Category = "jacket"
	CategoryShoe   Category = "shoe"
)

// DefaultOrder is the order categories are filled during generation.
// Tops first so silhouette and color constraints prune early.
var DefaultOrder = []Category{CategoryTop, CategoryBottom, CategoryJacket, CategoryShoe}

// categoryKeys maps outfit categories to their closet file keys.
var categoryKeys = map[Category]string{
	CategoryTop:    "tops",
	CategoryBottom: "bottoms",
	CategoryJacket: "jackets",
	CategoryShoe:   "shoes",
}

// Key returns the closet file key for a category (e.g. "top" -> "tops").
func (c Category) Key() string {
	return categoryKeys[c]
}

// Attributes describes the style properties of a single piece.
type Attributes struct {
	// Color is a lowercase color name. Colors outside the policy's
	// neutral set count toward the one-accent-color limit.
	Color string `json:"color"`

	// Warmth ranges 1 (light) to 3 (warm).
	Warmth int `json:"warmth"`

	// Comfort ranges 1 (restrictive) to 3 (comfortable).
	Comfort int `json:"comfort"`

	// Fancy marks pieces suitable for dressed-up outfits.
	Fancy bool `json:"fancy"`

	// Loose marks pieces with a loose silhouette.
	Loose bool `json:"loose"`
}

// Piece is a single clothing item in the closet.
type Piece struct {
	Name       string     `json:"name"`
	Filename   string     `json:"filename"`
	Attributes Attributes `json:"attributes"`
}

// Closet is the full inventory, one list per category.
// Lists preserve the order they appear in the closet file.
type Closet struct {
	Tops    []Piece `json:"tops"`
	Bottoms []Piece `json:"bottoms"`
	Jackets []Piece `json:"jackets"`
	Shoes   []Piece `json:"shoes"`
}

// Pieces returns the list for the given category.
func (c *Closet) Pieces(cat Category) []Piece {
	switch cat {
	case CategoryTop:
		return c.Tops
	case CategoryBottom:
		return c.Bottoms
	case CategoryJacket:
		return c.Jackets
	case CategoryShoe:
		return c.Shoes
	}
	return nil
}

// All returns every piece in the closet in category order.
func (c *Closet) All() []Piece {
	var all []Piece
	for _, cat := range DefaultOrder {
		all = append(all, c.Pieces(cat)...)
	}
	return all
}

// NormalizeName applies NFC normalization so piece names typed on the
// command line match names in the closet file regardless of how either
// was composed.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// FindPiece looks up a piece by name across all categories.
// Returns the piece, its category, and whether it was found.
func (c *Closet) FindPiece(name string) (Piece, Category, bool) {
	want := NormalizeName(name)
	for _, cat := range DefaultOrder {
		for _, p := range c.Pieces(cat) {
			if NormalizeName(p.Name) == want {
				return p, cat, true
			}
		}
	}
	return Piece{}, "", false
}
