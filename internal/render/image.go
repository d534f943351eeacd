package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
)

// MissingImageError indicates a piece's image file does not exist.
type MissingImageError struct {
	Path string
}

func (e *MissingImageError) Error() string {
	return fmt.Sprintf("image file not found: %s", e.Path)
}

// Montage loads each filename from imagesDir, stacks the images
// left-to-right (top-aligned), and rotates the strip a quarter turn
// clockwise so the outfit reads top to bottom.
func Montage(imagesDir string, filenames []string) (image.Image, error) {
	images := make([]image.Image, 0, len(filenames))
	for _, name := range filenames {
		img, err := loadImage(filepath.Join(imagesDir, name))
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return rotate90(hstack(images)), nil
}

// WriteComposite runs Montage and encodes the result as PNG at path.
func WriteComposite(imagesDir string, filenames []string, path string) error {
	img, err := Montage(imagesDir, filenames)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create composite: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode composite: %w", err)
	}

	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, &MissingImageError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	return img, nil
}

// hstack places images side by side, aligned to the top edge.
func hstack(images []image.Image) image.Image {
	width, height := 0, 0
	for _, img := range images {
		b := img.Bounds()
		width += b.Dx()
		if b.Dy() > height {
			height = b.Dy()
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range images {
		b := img.Bounds()
		dst := image.Rect(x, 0, x+b.Dx(), b.Dy())
		draw.Draw(out, dst, img, b.Min, draw.Src)
		x += b.Dx()
	}

	return out
}

// rotate90 rotates an image a quarter turn clockwise.
func rotate90(src image.Image) image.Image {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(b.Max.Y-1-y, x-b.Min.X, src.At(x, y))
		}
	}
	return out
}
