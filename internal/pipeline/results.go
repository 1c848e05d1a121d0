package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MeKo-Tech/lattice/internal/layout"
)

// PageResult is the on-disk recognizer output for one page: page
// metadata plus the reading-ordered word stream.
type PageResult struct {
	Page  layout.Page   `json:"page"`
	Words []layout.Word `json:"words"`
}

// LoadPageResult reads recognizer output from a JSON file. Missing or
// malformed files are fatal for the page's text extraction.
func LoadPageResult(path string) (*PageResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-provided result path is expected
	if err != nil {
		return nil, fmt.Errorf("reading recognition results: %w", err)
	}
	var res PageResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parsing recognition results: %w", err)
	}
	if res.Words == nil {
		return nil, ErrNoRecognition
	}
	return &res, nil
}
