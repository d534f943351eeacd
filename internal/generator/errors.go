package generator

import (
	"errors"
	"fmt"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
)

// GenerateError represents a failure to produce an outfit.
//
// Generation errors include:
//   - Empty category: a required category has no pieces at all
//   - No valid outfit: all combinations violate the policy
//
// A GenerateError is terminal; the generator never returns a partial
// outfit alongside one.
type GenerateError struct {
	// Code identifies the error category.
	Code GenerateErrorCode

	// Message is a human-readable description.
	Message string

	// Category identifies the affected category (for empty-category errors).
	Category closet.Category

	// Details contains additional context.
	Details map[string]string
}

// GenerateErrorCode categorizes generation errors.
type GenerateErrorCode string

const (
	// ErrCodeEmptyCategory indicates a category with no pieces.
	ErrCodeEmptyCategory GenerateErrorCode = "EMPTY_CATEGORY"

	// ErrCodeNoValidOutfit indicates every combination violates the policy.
	ErrCodeNoValidOutfit GenerateErrorCode = "NO_VALID_OUTFIT"
)

// Error implements the error interface.
func (e *GenerateError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s: %s (category=%s)", e.Code, e.Message, e.Category)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsEmptyCategoryError returns true if the error is an empty-category error.
// Uses errors.As to handle wrapped errors.
func IsEmptyCategoryError(err error) bool {
	var ge *GenerateError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeEmptyCategory
	}
	return false
}

// IsNoValidOutfitError returns true if the error is a no-valid-outfit error.
// Uses errors.As to handle wrapped errors.
func IsNoValidOutfitError(err error) bool {
	var ge *GenerateError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeNoValidOutfit
	}
	return false
}

// NewEmptyCategoryError creates a GenerateError for an empty category.
func NewEmptyCategoryError(cat closet.Category) *GenerateError {
	return &GenerateError{
		Code:     ErrCodeEmptyCategory,
		Message:  "category has no pieces",
		Category: cat,
	}
}

// NewNoValidOutfitError creates a GenerateError for an unsatisfiable policy.
func NewNoValidOutfitError(combinations int) *GenerateError {
	return &GenerateError{
		Code:    ErrCodeNoValidOutfit,
		Message: "no outfit satisfies the closet and constraints",
		Details: map[string]string{
			"combinations": fmt.Sprintf("%d", combinations),
		},
	}
}
