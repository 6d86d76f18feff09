package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/steamnick/nick-batcher/internal/model"
	"github.com/steamnick/nick-batcher/internal/steam"
)

// Default pacing. The remote service rate-limits informally, so consecutive
// requests are always separated by a delay.
const (
	DefaultApplyDelay   = 1500 * time.Millisecond
	DefaultCleanupDelay = 1000 * time.Millisecond
	DefaultRetryDelay   = 500 * time.Millisecond
)

// Report summarizes one batch run
type Report struct {
	BatchID       string
	Applied       int
	Failed        int
	Cleared       int
	CleanupFailed int
}

// Summary returns a one-line human-readable report
func (r *Report) Summary() string {
	s := fmt.Sprintf("applied %d, failed %d", r.Applied, r.Failed)
	if r.Cleared > 0 || r.CleanupFailed > 0 {
		s += fmt.Sprintf(", cleared %d stale", r.Cleared)
		if r.CleanupFailed > 0 {
			s += fmt.Sprintf(" (%d clear failures)", r.CleanupFailed)
		}
	}
	return s
}

// Service runs cleanup and apply passes against the community client. All
// requests are sequential; nothing is ever issued concurrently.
type Service struct {
	client Nicknamer

	delayMu      sync.RWMutex
	applyDelay   time.Duration
	cleanupDelay time.Duration
	retryDelay   time.Duration

	// sleep is injectable for deterministic tests
	sleep func(ctx context.Context, d time.Duration) error

	onUpdate func(*model.Entry)
	onLog    func(line string)
}

// NewService creates a workflow service with the given pacing. Zero delays
// fall back to the defaults.
func NewService(client Nicknamer, applyDelay, cleanupDelay, retryDelay time.Duration) *Service {
	if applyDelay <= 0 {
		applyDelay = DefaultApplyDelay
	}
	if cleanupDelay <= 0 {
		cleanupDelay = DefaultCleanupDelay
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Service{
		client:       client,
		applyDelay:   applyDelay,
		cleanupDelay: cleanupDelay,
		retryDelay:   retryDelay,
		sleep:        sleepContext,
	}
}

// SetUpdateCallback sets the callback invoked on every per-entry state change
func (s *Service) SetUpdateCallback(callback func(*model.Entry)) {
	s.onUpdate = callback
}

// SetLogCallback sets the callback receiving human-readable progress lines
func (s *Service) SetLogCallback(callback func(line string)) {
	s.onLog = callback
}

// SetDelays reconfigures pacing between batches
func (s *Service) SetDelays(applyDelay, cleanupDelay, retryDelay time.Duration) {
	s.delayMu.Lock()
	defer s.delayMu.Unlock()
	if applyDelay > 0 {
		s.applyDelay = applyDelay
	}
	if cleanupDelay > 0 {
		s.cleanupDelay = cleanupDelay
	}
	if retryDelay > 0 {
		s.retryDelay = retryDelay
	}
}

// Run validates the entries, then executes the cleanup pass followed by the
// apply pass. A validation failure returns before any request is sent.
// Per-row request failures never abort the batch.
func (s *Service) Run(ctx context.Context, entries []*model.Entry, prefix string, friends []steam.Friend) (*Report, error) {
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}

	report := &Report{BatchID: "batch-" + uuid.New().String()}
	log.Printf("workflow: starting %s with %d entries, prefix %q, %d friends scanned",
		report.BatchID, len(entries), prefix, len(friends))

	s.runCleanup(ctx, entries, prefix, friends, report)
	s.runApply(ctx, entries, prefix, report)

	log.Printf("workflow: finished %s: %s", report.BatchID, report.Summary())
	return report, nil
}

// runCleanup clears prefix-tagged nicknames of friends that are no longer in
// the roster. Only runs with a non-empty prefix. Best effort, no rollback.
func (s *Service) runCleanup(ctx context.Context, entries []*model.Entry, prefix string, friends []steam.Friend, report *Report) {
	if prefix == "" {
		return
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.SteamID] = true
	}

	var stale []steam.Friend
	for _, f := range friends {
		if f.Nickname != "" && strings.HasPrefix(f.Nickname, prefix) && !present[f.SteamID] {
			stale = append(stale, f)
		}
	}

	for i, f := range stale {
		if ctx.Err() != nil {
			return
		}

		err := s.callWithRetry(ctx, func(ctx context.Context) error {
			return s.client.ClearNickname(ctx, f.SteamID)
		})
		if err != nil {
			report.CleanupFailed++
			s.logf("cleanup: failed to clear %q from %s: %v", f.Nickname, f.SteamID, err)
		} else {
			report.Cleared++
			s.logf("cleanup: cleared stale nickname %q from %s", f.Nickname, f.SteamID)
		}

		if i < len(stale)-1 {
			if err := s.sleep(ctx, s.delay(&s.cleanupDelay)); err != nil {
				return
			}
		}
	}
}

// runApply sets prefix+label on every entry in row order with a delay
// between consecutive rows, excluding the last.
func (s *Service) runApply(ctx context.Context, entries []*model.Entry, prefix string, report *Report) {
	for i, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		entry.Status = model.EntryStatusApplying
		entry.LastError = ""
		s.notify(entry)

		nickname := prefix + entry.Label
		steamID := entry.SteamID
		err := s.callWithRetry(ctx, func(ctx context.Context) error {
			return s.client.SetNickname(ctx, steamID, nickname)
		})
		if err != nil {
			entry.Status = model.EntryStatusFailed
			entry.LastError = err.Error()
			report.Failed++
			s.logf("apply: row %d (%s) failed: %v", i+1, entry.SteamID, err)
		} else {
			entry.Status = model.EntryStatusApplied
			report.Applied++
			s.logf("apply: row %d (%s) set to %q", i+1, entry.SteamID, nickname)
		}
		s.notify(entry)

		if i < len(entries)-1 {
			if err := s.sleep(ctx, s.delay(&s.applyDelay)); err != nil {
				return
			}
		}
	}
}

// callWithRetry attempts a request with exactly one retry after the retry
// delay. A second failure is final.
func (s *Service) callWithRetry(ctx context.Context, call func(context.Context) error) error {
	const maxRetries = 1
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := s.sleep(ctx, s.delay(&s.retryDelay)); err != nil {
				return err
			}
			log.Printf("workflow: retrying request, attempt %d", attempt+1)
		}

		if err := call(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return lastErr
}

func (s *Service) delay(field *time.Duration) time.Duration {
	s.delayMu.RLock()
	defer s.delayMu.RUnlock()
	return *field
}

// notifyUpdate calls the update callback if set
func (s *Service) notify(entry *model.Entry) {
	if s.onUpdate != nil {
		s.onUpdate(entry)
	}
}

func (s *Service) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	log.Print(line)
	if s.onLog != nil {
		s.onLog(line)
	}
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
