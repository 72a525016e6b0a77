package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/roach88/kringle/internal/match"
)

// resultsFile is the interchange shape: {"assignments": {giver: receiver}}.
type resultsFile struct {
	Assignments map[string]string `json:"assignments"`
}

// ExportJSON writes assignments in the interchange shape. Keys are
// sorted by encoding/json, so output is stable for a given draw.
func ExportJSON(w io.Writer, assignments match.Assignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resultsFile{Assignments: assignments}); err != nil {
		return fmt.Errorf("export results: %w", err)
	}
	return nil
}

// ReadResultsFile loads assignments from an interchange file, for draws
// produced by other tooling or exported earlier.
func ReadResultsFile(path string) (match.Assignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var rf resultsFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decode results %s: %w", path, err)
	}
	if rf.Assignments == nil {
		return nil, fmt.Errorf("decode results %s: missing \"assignments\" key", path)
	}
	return match.Assignment(rf.Assignments), nil
}
