package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/steamnick/nick-batcher/internal/model"
)

// ValidationError aborts a batch before any request is sent. Row numbers are
// 1-based, matching the table shown to the user.
type ValidationError struct {
	MalformedRows []int
	DuplicateRows []int
}

// Error names every offending row in one message
func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MalformedRows) > 0 {
		parts = append(parts, fmt.Sprintf("invalid identifier at row %s (must be exactly %d digits)",
			joinRows(e.MalformedRows), model.SteamIDLength))
	}
	if len(e.DuplicateRows) > 0 {
		parts = append(parts, fmt.Sprintf("duplicate identifier at row %s", joinRows(e.DuplicateRows)))
	}
	return strings.Join(parts, "; ")
}

// ValidateEntries checks every identifier for the 17-digit pattern and for
// uniqueness. Any violation rejects the whole batch; the returned error
// names all offending rows at once.
func ValidateEntries(entries []*model.Entry) error {
	verr := &ValidationError{}
	seen := make(map[string]bool, len(entries))

	for i, e := range entries {
		if !model.ValidSteamID(e.SteamID) {
			verr.MalformedRows = append(verr.MalformedRows, i+1)
			continue
		}
		if seen[e.SteamID] {
			verr.DuplicateRows = append(verr.DuplicateRows, i+1)
			continue
		}
		seen[e.SteamID] = true
	}

	if len(verr.MalformedRows) == 0 && len(verr.DuplicateRows) == 0 {
		return nil
	}
	return verr
}

func joinRows(rows []int) string {
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, strconv.Itoa(row))
	}
	return strings.Join(parts, ", ")
}
