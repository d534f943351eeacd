package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
)

// Rules customizes the built-in style rules. All fields are optional;
// an empty field keeps the default.
type Rules struct {
	// NeutralColors replaces the default neutral color set.
	NeutralColors []string `yaml:"neutral_colors,omitempty"`

	// CategoryOrder replaces the default category fill order.
	// Values are singular category names: top, bottom, jacket, shoe.
	CategoryOrder []string `yaml:"category_order,omitempty"`
}

// LoadRules reads and parses a rules YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or names an unknown category.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	// Strict field validation catches typos like "neutral_color:"
	var rules Rules
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if _, err := rules.Order(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	return &rules, nil
}

// Order returns the configured category fill order, or
// closet.DefaultOrder when CategoryOrder is empty.
func (r *Rules) Order() ([]closet.Category, error) {
	if len(r.CategoryOrder) == 0 {
		return closet.DefaultOrder, nil
	}

	seen := make(map[closet.Category]bool)
	order := make([]closet.Category, 0, len(r.CategoryOrder))
	for _, name := range r.CategoryOrder {
		cat := closet.Category(name)
		if cat.Key() == "" {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		if seen[cat] {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[cat] = true
		order = append(order, cat)
	}

	return order, nil
}
