package roster

import (
	"encoding/json"
	"log"

	"github.com/steamnick/nick-batcher/internal/model"
)

// Store is the persistence surface the roster writes through. Implemented by
// config.Settings on top of Fyne preferences.
type Store interface {
	RosterJSON() string
	SetRosterJSON(payload string)
}

// Roster is the ordered list of nickname entries. Order reflects table row
// order in the UI. All mutators save immediately.
type Roster struct {
	store   Store
	entries []*model.Entry
}

// Load reads the persisted roster from the store. A missing or undecodable
// payload yields an empty roster; decode failures are logged, never surfaced.
func Load(store Store) *Roster {
	r := &Roster{store: store}

	payload := store.RosterJSON()
	if payload == "" {
		return r
	}

	var entries []*model.Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		log.Printf("roster: failed to decode persisted entries, starting empty: %v", err)
		return r
	}

	for _, e := range entries {
		e.Status = model.EntryStatusPending
	}
	r.entries = entries
	return r
}

// Entries returns the entries in row order. The returned slice is shared;
// callers mutate entry fields through the roster's setters.
func (r *Roster) Entries() []*model.Entry {
	return r.entries
}

// Len returns the number of entries
func (r *Roster) Len() int {
	return len(r.entries)
}

// Add appends a new entry and saves
func (r *Roster) Add(steamID, label string) *model.Entry {
	entry := model.NewEntry(steamID, label)
	r.entries = append(r.entries, entry)
	r.Save()
	return entry
}

// Remove deletes the entry with the given row ID and saves
func (r *Roster) Remove(rowID string) {
	for i, e := range r.entries {
		if e.ID == rowID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.Save()
			return
		}
	}
}

// SetSteamID updates the identifier of a row and saves
func (r *Roster) SetSteamID(rowID, steamID string) {
	if e := r.find(rowID); e != nil && e.SteamID != steamID {
		e.SteamID = steamID
		r.Save()
	}
}

// SetLabel updates the label of a row and saves
func (r *Roster) SetLabel(rowID, label string) {
	if e := r.find(rowID); e != nil && e.Label != label {
		e.Label = label
		r.Save()
	}
}

// Replace swaps the whole entry list (CSV import) and saves
func (r *Roster) Replace(entries []*model.Entry) {
	r.entries = entries
	r.Save()
}

// Contains reports whether any entry carries the given identifier
func (r *Roster) Contains(steamID string) bool {
	for _, e := range r.entries {
		if e.SteamID == steamID {
			return true
		}
	}
	return false
}

// ResetStatuses returns every entry to the pending state before a batch run
func (r *Roster) ResetStatuses() {
	for _, e := range r.entries {
		e.ResetStatus()
	}
}

// Save writes the current entries through the store. Encode failures are
// logged and the in-memory list stays authoritative.
func (r *Roster) Save() {
	payload, err := json.Marshal(r.entries)
	if err != nil {
		log.Printf("roster: failed to encode entries, keeping in-memory state: %v", err)
		return
	}
	r.store.SetRosterJSON(string(payload))
}

func (r *Roster) find(rowID string) *model.Entry {
	for _, e := range r.entries {
		if e.ID == rowID {
			return e
		}
	}
	return nil
}
