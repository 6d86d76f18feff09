package workflow

// Package workflow implements the batch pipeline: the prefix-scoped cleanup
// pass followed by the sequential apply pass. Requests are issued one at a
// time with a configurable delay between them and a single retry per
// request. The sleep function is injectable so tests run without real
// timers.
