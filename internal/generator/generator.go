// Package generator selects one piece per category from a closet,
// subject to a policy, using seeded backtracking search.
//
// Determinism: the same closet, policy, and seed always produce the
// same outfit. All randomness flows through a single rand.Rand seeded
// once per run, and categories are filled in a fixed order.
package generator

import (
	"math/rand"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
	"github.com/kelseymakesthings/auto-outfit/internal/policy"
)

// Outfit is a complete selection, one piece per category.
type Outfit struct {
	// Order is the category fill order used during generation.
	Order []closet.Category

	// Pieces maps each category to its chosen piece.
	Pieces policy.Selection

	// Seed is the RNG seed the outfit was generated with.
	Seed int64
}

// Names returns chosen piece names in category order.
func (o *Outfit) Names() []string {
	names := make([]string, len(o.Order))
	for i, cat := range o.Order {
		names[i] = o.Pieces[cat].Name
	}
	return names
}

// Filenames returns chosen image filenames in category order.
func (o *Outfit) Filenames() []string {
	files := make([]string, len(o.Order))
	for i, cat := range o.Order {
		files[i] = o.Pieces[cat].Filename
	}
	return files
}

// Options configures a generator.
type Options struct {
	// Seed seeds the shuffle RNG. Callers that want a fresh outfit per
	// run pass a time-derived seed and surface it for reproduction.
	Seed int64

	// Order overrides the category fill order. Defaults to
	// closet.DefaultOrder. Categories absent from Order are not filled.
	Order []closet.Category
}

// Generator produces outfits from one closet under one policy.
type Generator struct {
	closet *closet.Closet
	policy *policy.Policy
	order  []closet.Category
	seed   int64
	rng    *rand.Rand
}

// New creates a generator.
func New(c *closet.Closet, p *policy.Policy, opts Options) *Generator {
	order := opts.Order
	if order == nil {
		order = closet.DefaultOrder
	}
	return &Generator{
		closet: c,
		policy: p,
		order:  order,
		seed:   opts.Seed,
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}
}

// Generate searches for an outfit satisfying the policy.
//
// Each category's pieces are shuffled once, then filled in order with
// backtracking: a piece that leaves the partial selection valid is
// kept, otherwise the next candidate is tried. Returns a GenerateError
// (never a partial outfit) when a category is empty or no combination
// satisfies the policy.
func (g *Generator) Generate() (*Outfit, error) {
	for _, cat := range g.order {
		if len(g.closet.Pieces(cat)) == 0 {
			return nil, NewEmptyCategoryError(cat)
		}
	}

	candidates := make(map[closet.Category][]closet.Piece, len(g.order))
	combinations := 1
	for _, cat := range g.order {
		pieces := g.closet.Pieces(cat)
		shuffled := make([]closet.Piece, len(pieces))
		copy(shuffled, pieces)
		g.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		candidates[cat] = shuffled
		combinations *= len(pieces)
	}

	sel := make(policy.Selection, len(g.order))
	if !g.fill(candidates, sel, 0) {
		return nil, NewNoValidOutfitError(combinations)
	}

	return &Outfit{Order: g.order, Pieces: sel, Seed: g.seed}, nil
}

// fill assigns categories from index depth onward, backtracking when
// the policy rejects the partial selection.
func (g *Generator) fill(candidates map[closet.Category][]closet.Piece, sel policy.Selection, depth int) bool {
	if depth == len(g.order) {
		return true
	}

	cat := g.order[depth]
	for _, piece := range candidates[cat] {
		sel[cat] = piece
		if g.policy.IsValid(sel) && g.fill(candidates, sel, depth+1) {
			return true
		}
		delete(sel, cat)
	}

	return false
}
