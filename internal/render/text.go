// Package render turns a generated outfit into console text and an
// optional composite image of the chosen pieces.
package render

import (
	"strings"

	"github.com/kelseymakesthings/auto-outfit/internal/generator"
)

// Text returns the one-line console rendering of an outfit:
// piece names joined in category fill order.
func Text(outfit *generator.Outfit) string {
	return "Your outfit for today: " + strings.Join(outfit.Names(), ", ")
}
