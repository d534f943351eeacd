// Package policy evaluates style constraints over partial outfits.
//
// A policy is checked after every piece the generator tentatively adds,
// so each rule must hold for incomplete selections: a rule only fails
// when the pieces selected so far already violate it.
package policy

import (
	"fmt"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
)

// DefaultNeutralColors are colors that never count as an accent.
var DefaultNeutralColors = []string{"black", "white", "tan", "gray", "jeanblue"}

// Selection is a partial or complete outfit, at most one piece per category.
type Selection map[closet.Category]closet.Piece

// UnknownPieceError indicates a required piece name that does not exist
// in the closet.
type UnknownPieceError struct {
	Name string
}

func (e *UnknownPieceError) Error() string {
	return fmt.Sprintf("required piece %q not found in closet", e.Name)
}

// Options configures a policy. Zero values leave a rule unconstrained.
type Options struct {
	// Warmth, when 1-3, requires bottom and jacket warmth to equal it.
	Warmth int

	// Comfort, when 1-3, requires every piece's comfort to be at least it.
	Comfort int

	// Fancy requires every piece to be fancy.
	Fancy bool

	// RequiredPiece names a piece that must appear in the outfit.
	RequiredPiece string

	// NeutralColors overrides DefaultNeutralColors when non-nil.
	NeutralColors []string

	// ExcludeNames lists piece names to reject (e.g. recently worn).
	// The required piece, if any, is exempt.
	ExcludeNames []string
}

// Policy holds compiled constraint state for one generation run.
type Policy struct {
	warmth        int
	comfort       int
	fancy         bool
	requiredPiece string
	requiredCat   closet.Category
	neutrals      map[string]bool
	excluded      map[string]bool
}

// New compiles options into a policy against the given closet.
// Returns UnknownPieceError if the required piece does not exist.
func New(c *closet.Closet, opts Options) (*Policy, error) {
	p := &Policy{
		warmth:   opts.Warmth,
		comfort:  opts.Comfort,
		fancy:    opts.Fancy,
		neutrals: make(map[string]bool),
		excluded: make(map[string]bool),
	}

	neutrals := opts.NeutralColors
	if neutrals == nil {
		neutrals = DefaultNeutralColors
	}
	for _, color := range neutrals {
		p.neutrals[color] = true
	}

	if opts.RequiredPiece != "" {
		piece, cat, ok := c.FindPiece(opts.RequiredPiece)
		if !ok {
			return nil, &UnknownPieceError{Name: opts.RequiredPiece}
		}
		p.requiredPiece = closet.NormalizeName(piece.Name)
		p.requiredCat = cat
	}

	for _, name := range opts.ExcludeNames {
		normalized := closet.NormalizeName(name)
		if normalized == p.requiredPiece {
			continue
		}
		p.excluded[normalized] = true
	}

	return p, nil
}

// RequiredCategory returns the category of the required piece, or ""
// when no piece is required.
func (p *Policy) RequiredCategory() closet.Category {
	return p.requiredCat
}

// IsValid reports whether the selection satisfies every rule.
// Selections may be partial; a partial selection is valid when nothing
// chosen so far violates a rule.
func (p *Policy) IsValid(sel Selection) bool {
	return p.colorMatched(sel) &&
		p.hasSilhouette(sel) &&
		p.meetsWarmth(sel) &&
		p.meetsComfort(sel) &&
		p.isFancy(sel) &&
		p.containsRequired(sel) &&
		p.avoidsExcluded(sel)
}

// colorMatched allows at most one distinct non-neutral color.
func (p *Policy) colorMatched(sel Selection) bool {
	accents := make(map[string]bool)
	for _, piece := range sel {
		if !p.neutrals[piece.Attributes.Color] {
			accents[piece.Attributes.Color] = true
		}
	}
	return len(accents) <= 1
}

// hasSilhouette rejects a loose top paired with a loose bottom.
func (p *Policy) hasSilhouette(sel Selection) bool {
	top, hasTop := sel[closet.CategoryTop]
	bottom, hasBottom := sel[closet.CategoryBottom]
	return !(hasTop && hasBottom && top.Attributes.Loose && bottom.Attributes.Loose)
}

// meetsWarmth requires bottom and jacket warmth to equal the requested level.
func (p *Policy) meetsWarmth(sel Selection) bool {
	if p.warmth == 0 {
		return true
	}
	if bottom, ok := sel[closet.CategoryBottom]; ok && bottom.Attributes.Warmth != p.warmth {
		return false
	}
	if jacket, ok := sel[closet.CategoryJacket]; ok && jacket.Attributes.Warmth != p.warmth {
		return false
	}
	return true
}

func (p *Policy) meetsComfort(sel Selection) bool {
	if p.comfort == 0 {
		return true
	}
	for _, piece := range sel {
		if piece.Attributes.Comfort < p.comfort {
			return false
		}
	}
	return true
}

func (p *Policy) isFancy(sel Selection) bool {
	if !p.fancy {
		return true
	}
	for _, piece := range sel {
		if !piece.Attributes.Fancy {
			return false
		}
	}
	return true
}

// containsRequired rejects any piece filling the required piece's
// category other than the required piece itself.
func (p *Policy) containsRequired(sel Selection) bool {
	if p.requiredPiece == "" {
		return true
	}
	piece, ok := sel[p.requiredCat]
	if !ok {
		return true
	}
	return closet.NormalizeName(piece.Name) == p.requiredPiece
}

func (p *Policy) avoidsExcluded(sel Selection) bool {
	if len(p.excluded) == 0 {
		return true
	}
	for _, piece := range sel {
		if p.excluded[closet.NormalizeName(piece.Name)] {
			return false
		}
	}
	return true
}
