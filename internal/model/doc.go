package model

// Package model defines domain data structures used across the app: roster
// entries, per-entry apply status, and identifier validation. Structures are
// designed for direct binding in the UI and explicit state transitions.
