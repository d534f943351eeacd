package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
	"github.com/kelseymakesthings/auto-outfit/internal/generator"
	"github.com/kelseymakesthings/auto-outfit/internal/policy"
	"github.com/kelseymakesthings/auto-outfit/internal/testutil"
)

func TestText(t *testing.T) {
	outfit := &generator.Outfit{
		Order: []closet.Category{closet.CategoryTop, closet.CategoryBottom},
		Pieces: policy.Selection{
			closet.CategoryTop:    closet.Piece{Name: "white tee"},
			closet.CategoryBottom: closet.Piece{Name: "blue jeans"},
		},
	}

	assert.Equal(t, "Your outfit for today: white tee, blue jeans", Text(outfit))
}

func TestMontage_Dimensions(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, filepath.Join(dir, "a.png"), 2, 3)
	testutil.WritePNG(t, filepath.Join(dir, "b.png"), 4, 5)

	img, err := Montage(dir, []string{"a.png", "b.png"})
	require.NoError(t, err)

	// Strip is 6x5 before the quarter turn, 5x6 after.
	b := img.Bounds()
	assert.Equal(t, 5, b.Dx())
	assert.Equal(t, 6, b.Dy())
}

func TestMontage_MissingImage(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, filepath.Join(dir, "a.png"), 2, 2)

	_, err := Montage(dir, []string{"a.png", "missing.png"})
	require.Error(t, err)

	var missingErr *MissingImageError
	require.True(t, errors.As(err, &missingErr))
	assert.Contains(t, missingErr.Path, "missing.png")
}

func TestWriteComposite(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, filepath.Join(dir, "a.png"), 2, 2)
	testutil.WritePNG(t, filepath.Join(dir, "b.png"), 2, 2)

	out := filepath.Join(t.TempDir(), "composite.png")
	require.NoError(t, WriteComposite(dir, []string{"a.png", "b.png"}, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
