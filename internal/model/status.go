package model

// EntryStatus represents the apply state of a roster entry
type EntryStatus string

const (
	// EntryStatusPending means the entry has not been submitted yet
	EntryStatusPending EntryStatus = "Pending"

	// EntryStatusApplying means the nickname request for the entry is in flight
	EntryStatusApplying EntryStatus = "Applying"

	// EntryStatusApplied means the nickname was accepted by the service
	EntryStatusApplied EntryStatus = "Applied"

	// EntryStatusFailed means the nickname request failed after the retry
	EntryStatusFailed EntryStatus = "Failed"
)

// String returns the string representation of EntryStatus
func (es EntryStatus) String() string {
	return string(es)
}

// IsActive returns true if a request for the entry is currently in flight
func (es EntryStatus) IsActive() bool {
	return es == EntryStatusApplying
}

// IsFinished returns true if the entry reached a terminal state for this batch
func (es EntryStatus) IsFinished() bool {
	return es == EntryStatusApplied || es == EntryStatusFailed
}
