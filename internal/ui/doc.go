package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires user interactions to the roster state and the batch
// workflow, and renders entry rows, the activity log, notifications, and
// settings.
