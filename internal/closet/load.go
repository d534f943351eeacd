package closet

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load error codes (E001-E009)
const (
	ErrCodeNotFound    = "E001" // closet file not found
	ErrCodeReadError   = "E002" // closet file could not be read
	ErrCodeInvalidJSON = "E003" // closet file is not valid JSON
)

// LoadError represents a failure to read or parse the closet file.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads and parses a closet file.
// The file must be a JSON object with tops/bottoms/jackets/shoes arrays.
// Schema conformance beyond JSON well-formedness is checked by Validate;
// Load only guarantees the result is structurally a Closet.
func Load(path string) (*Closet, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "closet file not found", Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadError, Path: path, Message: fmt.Sprintf("error reading closet file: %v", err), Err: err}
	}

	var c Closet
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidJSON, Path: path, Message: fmt.Sprintf("invalid JSON: %v", err), Err: err}
	}

	return &c, nil
}

// LoadRaw reads the closet file and parses it into a generic JSON tree.
// Used by commands that query the closet with JSONPath rather than
// through the typed model.
func LoadRaw(path string) (any, []byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "closet file not found", Err: err}
	}
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeReadError, Path: path, Message: fmt.Sprintf("error reading closet file: %v", err), Err: err}
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeInvalidJSON, Path: path, Message: fmt.Sprintf("invalid JSON: %v", err), Err: err}
	}

	return root, data, nil
}
