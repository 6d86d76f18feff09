package roster

import (
	"fmt"
	"strings"

	"github.com/steamnick/nick-batcher/internal/model"
)

// CSV field separator. Only the first occurrence splits a line, so labels
// may contain commas.
const csvSeparator = ","

// ParsedLine is one successfully parsed CSV line
type ParsedLine struct {
	SteamID string
	Label   string
}

// LineError reports a CSV line that could not be parsed. Line numbers are
// 1-based, matching what the user sees in the paste box.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

// Error returns a human-readable description of the parse failure
func (le LineError) Error() string {
	return fmt.Sprintf("line %d: %s", le.Line, le.Reason)
}

// ParseCSV parses pasted CSV text into identifier/label pairs. Blank lines
// are skipped. A line without a separator is reported as a LineError and
// excluded from the result; parsing continues with the remaining lines.
func ParseCSV(text string) ([]ParsedLine, []LineError) {
	var parsed []ParsedLine
	var errs []LineError

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		idx := strings.Index(line, csvSeparator)
		if idx < 0 {
			errs = append(errs, LineError{Line: i + 1, Text: line, Reason: "missing comma separator"})
			continue
		}

		steamID := strings.TrimSpace(line[:idx])
		label := strings.TrimSpace(line[idx+1:])
		if steamID == "" {
			errs = append(errs, LineError{Line: i + 1, Text: line, Reason: "empty identifier"})
			continue
		}

		parsed = append(parsed, ParsedLine{SteamID: steamID, Label: label})
	}

	return parsed, errs
}

// ExportCSV renders entries as literal "identifier,label" lines, one per
// entry, in row order, with no trailing newline.
func ExportCSV(entries []*model.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.SteamID+csvSeparator+e.Label)
	}
	return strings.Join(lines, "\n")
}
