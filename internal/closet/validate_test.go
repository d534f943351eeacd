package closet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validClosetJSON = `{
	"tops": [{"name": "white tee", "filename": "tee.png",
		"attributes": {"color": "white", "warmth": 1, "comfort": 3, "fancy": false, "loose": false}}],
	"bottoms": [{"name": "blue jeans", "filename": "jeans.png",
		"attributes": {"color": "jeanblue", "warmth": 2, "comfort": 2, "fancy": false, "loose": false}}],
	"jackets": [{"name": "denim jacket", "filename": "jacket.png",
		"attributes": {"color": "jeanblue", "warmth": 2, "comfort": 2, "fancy": false, "loose": false}}],
	"shoes": [{"name": "sneakers", "filename": "sneakers.png",
		"attributes": {"color": "white", "warmth": 1, "comfort": 3, "fancy": false, "loose": false}}]
}`

func TestValidateSchema_Valid(t *testing.T) {
	errs := ValidateSchema([]byte(validClosetJSON))
	assert.Empty(t, errs)
}

func TestValidateSchema_WarmthOutOfRange(t *testing.T) {
	data := `{
		"tops": [{"name": "parka", "filename": "parka.png",
			"attributes": {"color": "green", "warmth": 5, "comfort": 2, "fancy": false, "loose": false}}],
		"bottoms": [], "jackets": [], "shoes": []
	}`

	errs := ValidateSchema([]byte(data))
	require.NotEmpty(t, errs)
	for _, e := range errs {
		assert.Equal(t, ErrSchemaViolation, e.Code)
	}
}

func TestValidateSchema_MissingAttributes(t *testing.T) {
	data := `{
		"tops": [{"name": "parka", "filename": "parka.png"}],
		"bottoms": [], "jackets": [], "shoes": []
	}`

	errs := ValidateSchema([]byte(data))
	assert.NotEmpty(t, errs)
}

func TestValidateSchema_EmptyName(t *testing.T) {
	data := `{
		"tops": [{"name": "", "filename": "x.png",
			"attributes": {"color": "white", "warmth": 1, "comfort": 1, "fancy": false, "loose": false}}],
		"bottoms": [], "jackets": [], "shoes": []
	}`

	errs := ValidateSchema([]byte(data))
	assert.NotEmpty(t, errs)
}

func TestValidate_EmptyCategory(t *testing.T) {
	c := &Closet{
		Tops: []Piece{{Name: "white tee", Filename: "tee.png"}},
	}

	errs := Validate(c)
	require.Len(t, errs, 3, "bottoms, jackets, and shoes are empty")
	for _, e := range errs {
		assert.Equal(t, ErrEmptyCategory, e.Code)
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	c := &Closet{
		Tops:    []Piece{{Name: "staple", Filename: "a.png"}},
		Bottoms: []Piece{{Name: "staple", Filename: "b.png"}},
		Jackets: []Piece{{Name: "jacket", Filename: "c.png"}},
		Shoes:   []Piece{{Name: "shoes", Filename: "d.png"}},
	}

	errs := Validate(c)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateName, errs[0].Code)
	assert.Contains(t, errs[0].Field, "bottoms.staple")
}

func TestValidate_CleanCloset(t *testing.T) {
	c := &Closet{
		Tops:    []Piece{{Name: "tee", Filename: "a.png"}},
		Bottoms: []Piece{{Name: "jeans", Filename: "b.png"}},
		Jackets: []Piece{{Name: "jacket", Filename: "c.png"}},
		Shoes:   []Piece{{Name: "shoes", Filename: "d.png"}},
	}

	assert.Empty(t, Validate(c))
}

func TestCheckImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tee.png"), []byte("png"), 0o644))

	c := &Closet{
		Tops:    []Piece{{Name: "tee", Filename: "tee.png"}},
		Bottoms: []Piece{{Name: "jeans", Filename: "missing.png"}},
	}

	errs := CheckImages(c, dir)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrMissingImage, errs[0].Code)
	assert.Contains(t, errs[0].Field, "bottoms.jeans")
}
