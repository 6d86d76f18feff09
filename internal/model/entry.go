package model

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// SteamIDLength is the exact digit count of a canonical account identifier.
const SteamIDLength = 17

var steamIDPattern = regexp.MustCompile(`^[0-9]{17}$`)

// Entry represents a single roster row: one account identifier and the
// nickname label to assign to it.
type Entry struct {
	ID      string `json:"id"`
	SteamID string `json:"steam_id"`
	Label   string `json:"label"`

	// Runtime-only state, not persisted.
	Status    EntryStatus `json:"-"`
	LastError string      `json:"-"`
}

// NewEntry creates a pending roster entry with a fresh row ID.
func NewEntry(steamID, label string) *Entry {
	return &Entry{
		ID:      generateEntryID(),
		SteamID: strings.TrimSpace(steamID),
		Label:   label,
		Status:  EntryStatusPending,
	}
}

// ValidSteamID reports whether s is a canonical identifier: exactly 17 ASCII
// digits, nothing else.
func ValidSteamID(s string) bool {
	return steamIDPattern.MatchString(s)
}

// DisplayName returns the label, or the identifier when no label is set.
func (e *Entry) DisplayName() string {
	if strings.TrimSpace(e.Label) != "" {
		return e.Label
	}
	return e.SteamID
}

// ResetStatus returns the entry to the pending state before a new batch run.
func (e *Entry) ResetStatus() {
	e.Status = EntryStatusPending
	e.LastError = ""
}

// generateEntryID generates a unique row ID
func generateEntryID() string {
	return "entry-" + uuid.New().String()
}
