// Package testutil provides deterministic closet fixtures for tests.
package testutil

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
)

// NewCloset returns a small closet used across tests.
//
// The fixture is chosen so common policies are satisfiable: an
// all-neutral fancy outfit exists, warmth level 2 has a bottom and a
// jacket, and "green cardigan" is the only non-neutral top.
func NewCloset() *closet.Closet {
	return &closet.Closet{
		Tops: []closet.Piece{
			{Name: "white tee", Filename: "white_tee.png", Attributes: closet.Attributes{Color: "white", Warmth: 1, Comfort: 3}},
			{Name: "black blouse", Filename: "black_blouse.png", Attributes: closet.Attributes{Color: "black", Warmth: 1, Comfort: 2, Fancy: true}},
			{Name: "green cardigan", Filename: "green_cardigan.png", Attributes: closet.Attributes{Color: "green", Warmth: 2, Comfort: 3, Loose: true}},
		},
		Bottoms: []closet.Piece{
			{Name: "blue jeans", Filename: "blue_jeans.png", Attributes: closet.Attributes{Color: "jeanblue", Warmth: 2, Comfort: 2}},
			{Name: "black slacks", Filename: "black_slacks.png", Attributes: closet.Attributes{Color: "black", Warmth: 2, Comfort: 2, Fancy: true}},
			{Name: "linen pants", Filename: "linen_pants.png", Attributes: closet.Attributes{Color: "tan", Warmth: 1, Comfort: 3, Loose: true}},
		},
		Jackets: []closet.Piece{
			{Name: "denim jacket", Filename: "denim_jacket.png", Attributes: closet.Attributes{Color: "jeanblue", Warmth: 2, Comfort: 2}},
			{Name: "wool coat", Filename: "wool_coat.png", Attributes: closet.Attributes{Color: "gray", Warmth: 3, Comfort: 2, Fancy: true}},
		},
		Shoes: []closet.Piece{
			{Name: "white sneakers", Filename: "white_sneakers.png", Attributes: closet.Attributes{Color: "white", Warmth: 1, Comfort: 3}},
			{Name: "black heels", Filename: "black_heels.png", Attributes: closet.Attributes{Color: "black", Warmth: 1, Comfort: 1, Fancy: true}},
		},
	}
}

// WriteClosetFile marshals a closet to dir/closet.json and returns the path.
func WriteClosetFile(t *testing.T, dir string, c *closet.Closet) string {
	t.Helper()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		t.Fatalf("marshal closet: %v", err)
	}

	path := filepath.Join(dir, "closet.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write closet file: %v", err)
	}

	return path
}

// WriteImages writes a tiny PNG for every piece in the closet under
// dir/images and returns the images directory.
func WriteImages(t *testing.T, dir string, c *closet.Closet) string {
	t.Helper()

	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		t.Fatalf("create images dir: %v", err)
	}

	for _, p := range c.All() {
		WritePNG(t, filepath.Join(imagesDir, p.Filename), 2, 3)
	}

	return imagesDir
}

// WritePNG writes a solid-color PNG of the given size to path.
func WritePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}
