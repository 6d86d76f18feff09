package roster

// Package roster holds the ordered list of nickname entries behind an
// explicit state object with an explicit save operation. Every mutation
// writes through to the persistent store; store failures are logged and the
// in-memory state keeps working.
