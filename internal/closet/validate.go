package closet

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

// Validation error codes (E100-E199)
const (
	ErrSchemaViolation = "E100" // closet does not match the schema
	ErrEmptyCategory   = "E101" // category has no pieces
	ErrDuplicateName   = "E102" // piece name appears more than once
	ErrMissingImage    = "E103" // referenced image file does not exist
)

// ValidationError represents a closet validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidateSchema checks raw closet JSON against the embedded CUE schema.
// Returns all violations found (does not fail-fast).
func ValidateSchema(data []byte) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The schema is embedded; a compile failure is a programming error.
		panic(fmt.Sprintf("embedded closet schema does not compile: %v", err))
	}
	def := schema.LookupPath(cue.ParsePath("#Closet"))

	expr, err := cuejson.Extract("closet.json", data)
	if err != nil {
		return []ValidationError{{
			Field:   "closet",
			Message: fmt.Sprintf("invalid JSON: %v", err),
			Code:    ErrSchemaViolation,
		}}
	}

	unified := def.Unify(ctx.BuildExpr(expr))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs []ValidationError
		for _, e := range cueerrors.Errors(err) {
			ve := ValidationError{
				Field:   pathString(e.Path()),
				Message: e.Error(),
				Code:    ErrSchemaViolation,
			}
			if pos := e.Position(); pos.IsValid() {
				ve.Line = pos.Line()
			}
			errs = append(errs, ve)
		}
		return errs
	}

	return nil
}

// Validate runs semantic checks on a parsed closet:
// non-empty categories and unique piece names.
// Returns all errors found (does not fail-fast).
func Validate(c *Closet) []ValidationError {
	var errs []ValidationError

	for _, cat := range DefaultOrder {
		if len(c.Pieces(cat)) == 0 {
			errs = append(errs, ValidationError{
				Field:   cat.Key(),
				Message: "category has no pieces",
				Code:    ErrEmptyCategory,
			})
		}
	}

	seen := make(map[string]string) // normalized name -> category key
	for _, cat := range DefaultOrder {
		for _, p := range c.Pieces(cat) {
			name := NormalizeName(p.Name)
			if prev, ok := seen[name]; ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.%s", cat.Key(), p.Name),
					Message: fmt.Sprintf("duplicate piece name (also in %s)", prev),
					Code:    ErrDuplicateName,
				})
				continue
			}
			seen[name] = cat.Key()
		}
	}

	return errs
}

// CheckImages verifies that every piece's image file exists under imagesDir.
// Returns all missing files (does not fail-fast).
func CheckImages(c *Closet, imagesDir string) []ValidationError {
	var errs []ValidationError

	for _, cat := range DefaultOrder {
		for _, p := range c.Pieces(cat) {
			path := filepath.Join(imagesDir, p.Filename)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.%s", cat.Key(), p.Name),
					Message: fmt.Sprintf("image file not found: %s", path),
					Code:    ErrMissingImage,
				})
			}
		}
	}

	return errs
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "closet"
	}
	s := path[0]
	for _, p := range path[1:] {
		s += "." + p
	}
	return s
}
