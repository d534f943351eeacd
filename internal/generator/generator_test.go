package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
	"github.com/kelseymakesthings/auto-outfit/internal/policy"
	"github.com/kelseymakesthings/auto-outfit/internal/testutil"
)

func mustPolicy(t *testing.T, c *closet.Closet, opts policy.Options) *policy.Policy {
	t.Helper()
	p, err := policy.New(c, opts)
	require.NoError(t, err)
	return p
}

func TestGenerate_OnePiecePerCategory(t *testing.T) {
	c := testutil.NewCloset()
	p := mustPolicy(t, c, policy.Options{})

	outfit, err := New(c, p, Options{Seed: 1}).Generate()
	require.NoError(t, err)

	require.Len(t, outfit.Pieces, 4)
	for _, cat := range closet.DefaultOrder {
		piece, ok := outfit.Pieces[cat]
		require.True(t, ok, "category %s missing", cat)
		assert.NotEmpty(t, piece.Name)
	}
	assert.Len(t, outfit.Names(), 4)
	assert.Len(t, outfit.Filenames(), 4)
}

func TestGenerate_DeterministicUnderSeed(t *testing.T) {
	c := testutil.NewCloset()

	first, err := New(c, mustPolicy(t, c, policy.Options{}), Options{Seed: 42}).Generate()
	require.NoError(t, err)

	second, err := New(c, mustPolicy(t, c, policy.Options{}), Options{Seed: 42}).Generate()
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names(), "same seed must yield the same outfit")
	assert.Equal(t, int64(42), first.Seed)
}

func TestGenerate_SeedsVaryOutfits(t *testing.T) {
	c := testutil.NewCloset()
	p := mustPolicy(t, c, policy.Options{})

	// With 3*3*2*2 combinations some pair of seeds in a small range
	// must disagree; all equal would mean the seed is ignored.
	seen := make(map[string]bool)
	for seed := int64(0); seed < 20; seed++ {
		outfit, err := New(c, p, Options{Seed: seed}).Generate()
		require.NoError(t, err)
		key := ""
		for _, name := range outfit.Names() {
			key += name + "|"
		}
		seen[key] = true
	}
	assert.Greater(t, len(seen), 1, "different seeds should produce different outfits")
}

func TestGenerate_EmptyCategory(t *testing.T) {
	c := testutil.NewCloset()
	c.Jackets = nil
	p := mustPolicy(t, c, policy.Options{})

	outfit, err := New(c, p, Options{Seed: 1}).Generate()
	require.Error(t, err)
	assert.Nil(t, outfit, "no partial outfit on failure")
	assert.True(t, IsEmptyCategoryError(err))

	var genErr *GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, closet.CategoryJacket, genErr.Category)
}

func TestGenerate_NoValidOutfit(t *testing.T) {
	c := testutil.NewCloset()
	// The fixture has no comfort-3 jacket, so comfort 3 is unsatisfiable.
	p := mustPolicy(t, c, policy.Options{Comfort: 3})

	outfit, err := New(c, p, Options{Seed: 1}).Generate()
	require.Error(t, err)
	assert.Nil(t, outfit)
	assert.True(t, IsNoValidOutfitError(err))
}

func TestGenerate_RespectsPolicy(t *testing.T) {
	c := testutil.NewCloset()
	p := mustPolicy(t, c, policy.Options{Fancy: true})

	for seed := int64(0); seed < 10; seed++ {
		outfit, err := New(c, p, Options{Seed: seed}).Generate()
		require.NoError(t, err)
		for _, cat := range outfit.Order {
			assert.True(t, outfit.Pieces[cat].Attributes.Fancy,
				"seed %d: %s is not fancy", seed, outfit.Pieces[cat].Name)
		}
	}
}

func TestGenerate_IncludesRequiredPiece(t *testing.T) {
	c := testutil.NewCloset()
	p := mustPolicy(t, c, policy.Options{RequiredPiece: "wool coat"})

	for seed := int64(0); seed < 10; seed++ {
		outfit, err := New(c, p, Options{Seed: seed}).Generate()
		require.NoError(t, err)
		assert.Equal(t, "wool coat", outfit.Pieces[closet.CategoryJacket].Name)
	}
}

func TestGenerate_AvoidsExcludedPieces(t *testing.T) {
	c := testutil.NewCloset()
	p := mustPolicy(t, c, policy.Options{ExcludeNames: []string{"white tee", "black blouse"}})

	outfit, err := New(c, p, Options{Seed: 7}).Generate()
	require.NoError(t, err)
	assert.Equal(t, "green cardigan", outfit.Pieces[closet.CategoryTop].Name,
		"only top left after exclusions")
}

func TestGenerate_CustomOrder(t *testing.T) {
	c := testutil.NewCloset()
	p := mustPolicy(t, c, policy.Options{})

	order := []closet.Category{closet.CategoryShoe, closet.CategoryTop}
	outfit, err := New(c, p, Options{Seed: 1, Order: order}).Generate()
	require.NoError(t, err)

	assert.Len(t, outfit.Pieces, 2, "only ordered categories are filled")
	assert.Equal(t, order, outfit.Order)
}

func TestGenerate_BacktracksAcrossCategories(t *testing.T) {
	// One top is loose, both bottoms are loose except one. The search
	// must backtrack off the loose top / loose bottom pairing.
	c := &closet.Closet{
		Tops: []closet.Piece{
			{Name: "loose top", Attributes: closet.Attributes{Color: "black", Warmth: 1, Comfort: 1, Loose: true}},
		},
		Bottoms: []closet.Piece{
			{Name: "loose bottom", Attributes: closet.Attributes{Color: "black", Warmth: 1, Comfort: 1, Loose: true}},
			{Name: "fitted bottom", Attributes: closet.Attributes{Color: "black", Warmth: 1, Comfort: 1}},
		},
		Jackets: []closet.Piece{
			{Name: "jacket", Attributes: closet.Attributes{Color: "black", Warmth: 1, Comfort: 1}},
		},
		Shoes: []closet.Piece{
			{Name: "shoes", Attributes: closet.Attributes{Color: "black", Warmth: 1, Comfort: 1}},
		},
	}
	p := mustPolicy(t, c, policy.Options{})

	for seed := int64(0); seed < 10; seed++ {
		outfit, err := New(c, p, Options{Seed: seed}).Generate()
		require.NoError(t, err)
		assert.Equal(t, "fitted bottom", outfit.Pieces[closet.CategoryBottom].Name)
	}
}

func TestGenerateError_Messages(t *testing.T) {
	err := NewEmptyCategoryError(closet.CategoryShoe)
	assert.Contains(t, err.Error(), "EMPTY_CATEGORY")
	assert.Contains(t, err.Error(), "shoe")

	err = NewNoValidOutfitError(36)
	assert.Contains(t, err.Error(), "NO_VALID_OUTFIT")
	assert.Equal(t, "36", err.Details["combinations"])
}
