package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamnick/nick-batcher/internal/model"
	"github.com/steamnick/nick-batcher/internal/steam"
)

// recordedCall is one request issued against the fake client, in order
type recordedCall struct {
	op       string // "set" or "clear"
	steamID  string
	nickname string
}

// fakeClient records calls and fails on demand
type fakeClient struct {
	mu       sync.Mutex
	calls    []recordedCall
	failures map[string]int // steamID -> remaining failures
}

func newFakeClient() *fakeClient {
	return &fakeClient{failures: make(map[string]int)}
}

func (f *fakeClient) SetNickname(_ context.Context, steamID, nickname string) error {
	return f.record("set", steamID, nickname)
}

func (f *fakeClient) ClearNickname(_ context.Context, steamID string) error {
	return f.record("clear", steamID, "")
}

func (f *fakeClient) record(op, steamID, nickname string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{op: op, steamID: steamID, nickname: nickname})
	if f.failures[steamID] > 0 {
		f.failures[steamID]--
		return errors.New("connection reset")
	}
	return nil
}

// newTestService wires a service with an instant, recorded sleep
func newTestService(client *fakeClient) (*Service, *[]time.Duration) {
	svc := NewService(client, time.Second, 750*time.Millisecond, 250*time.Millisecond)
	var sleeps []time.Duration
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return ctx.Err()
	}
	return svc, &sleeps
}

func TestRun_DuplicateRejectedBeforeAnyRequest(t *testing.T) {
	client := newFakeClient()
	svc, _ := newTestService(client)

	entries := entriesOf("76561198000000001", "76561198000000001")
	_, err := svc.Run(context.Background(), entries, "", nil)

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, client.calls, "no request may be sent for a rejected batch")
}

func TestRun_MalformedRejectedBeforeAnyRequest(t *testing.T) {
	client := newFakeClient()
	svc, _ := newTestService(client)

	_, err := svc.Run(context.Background(), entriesOf("nope"), "[T] ", []steam.Friend{
		{SteamID: "76561198000000009", Nickname: "[T] Stale"},
	})

	require.Error(t, err)
	assert.Empty(t, client.calls, "cleanup must not run for a rejected batch")
}

func TestRun_AppliesInOrderWithPrefixAndDelays(t *testing.T) {
	client := newFakeClient()
	svc, sleeps := newTestService(client)

	entries := []*model.Entry{
		model.NewEntry("76561198000000001", "Alice"),
		model.NewEntry("76561198000000002", "Bob"),
		model.NewEntry("76561198000000003", "Carol"),
	}

	report, err := svc.Run(context.Background(), entries, "[T] ", nil)
	require.NoError(t, err)

	require.Len(t, client.calls, 3)
	assert.Equal(t, recordedCall{"set", "76561198000000001", "[T] Alice"}, client.calls[0])
	assert.Equal(t, recordedCall{"set", "76561198000000002", "[T] Bob"}, client.calls[1])
	assert.Equal(t, recordedCall{"set", "76561198000000003", "[T] Carol"}, client.calls[2])

	// Delay between consecutive rows only, never after the last
	assert.Equal(t, []time.Duration{time.Second, time.Second}, *sleeps)

	for _, e := range entries {
		assert.Equal(t, model.EntryStatusApplied, e.Status)
	}
	assert.Equal(t, 3, report.Applied)
	assert.Zero(t, report.Failed)
}

func TestRun_RetriesExactlyOnce(t *testing.T) {
	client := newFakeClient()
	client.failures["76561198000000001"] = 1
	svc, sleeps := newTestService(client)

	entries := entriesOf("76561198000000001")
	report, err := svc.Run(context.Background(), entries, "", nil)
	require.NoError(t, err)

	require.Len(t, client.calls, 2, "one failure plus one retry")
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, *sleeps, "only the retry delay")
	assert.Equal(t, model.EntryStatusApplied, entries[0].Status)
	assert.Equal(t, 1, report.Applied)
}

func TestRun_SecondFailureMarksRowAndContinues(t *testing.T) {
	client := newFakeClient()
	client.failures["76561198000000001"] = 2
	svc, _ := newTestService(client)

	entries := entriesOf("76561198000000001", "76561198000000002")
	report, err := svc.Run(context.Background(), entries, "", nil)
	require.NoError(t, err, "per-row failures never abort the batch")

	// Two attempts for the first row, one for the second
	require.Len(t, client.calls, 3)

	assert.Equal(t, model.EntryStatusFailed, entries[0].Status)
	assert.Contains(t, entries[0].LastError, "connection reset")
	assert.Equal(t, model.EntryStatusApplied, entries[1].Status)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Failed)
}

func TestRun_CleanupSkippedWithoutPrefix(t *testing.T) {
	client := newFakeClient()
	svc, _ := newTestService(client)

	friends := []steam.Friend{
		{SteamID: "76561198000000009", Nickname: "[T] Stale"},
	}
	_, err := svc.Run(context.Background(), nil, "", friends)
	require.NoError(t, err)

	assert.Empty(t, client.calls, "cleanup only fires with a non-empty prefix")
}

func TestRun_CleanupClearsStalePrefixedOnly(t *testing.T) {
	client := newFakeClient()
	svc, _ := newTestService(client)

	entries := entriesOf("76561198000000001")
	friends := []steam.Friend{
		{SteamID: "76561198000000001", Nickname: "[T] Kept"},   // still in roster
		{SteamID: "76561198000000002", Nickname: "[T] Bob"},    // stale, prefixed
		{SteamID: "76561198000000003", Nickname: "Unrelated"},  // no prefix
		{SteamID: "76561198000000004", Nickname: ""},           // no nickname
	}

	report, err := svc.Run(context.Background(), entries, "[T] ", friends)
	require.NoError(t, err)

	var clears []string
	for _, call := range client.calls {
		if call.op == "clear" {
			clears = append(clears, call.steamID)
		}
	}
	assert.Equal(t, []string{"76561198000000002"}, clears)
	assert.Equal(t, 1, report.Cleared)
}

func TestRun_CleanupPrecedesApply(t *testing.T) {
	client := newFakeClient()
	svc, _ := newTestService(client)

	entries := entriesOf("76561198000000001")
	friends := []steam.Friend{
		{SteamID: "76561198000000002", Nickname: "[T] Stale"},
	}

	_, err := svc.Run(context.Background(), entries, "[T] ", friends)
	require.NoError(t, err)

	require.Len(t, client.calls, 2)
	assert.Equal(t, "clear", client.calls[0].op)
	assert.Equal(t, "set", client.calls[1].op)
}

func TestRun_CleanupFailureLoggedAndCounted(t *testing.T) {
	client := newFakeClient()
	client.failures["76561198000000002"] = 2
	svc, _ := newTestService(client)

	var lines []string
	svc.SetLogCallback(func(line string) { lines = append(lines, line) })

	friends := []steam.Friend{
		{SteamID: "76561198000000002", Nickname: "[T] Stale"},
	}
	report, err := svc.Run(context.Background(), nil, "[T] ", friends)
	require.NoError(t, err)

	assert.Equal(t, 1, report.CleanupFailed)
	assert.Zero(t, report.Cleared)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "failed to clear")
	assert.Contains(t, joined, "76561198000000002")
}

func TestRun_UpdateCallbackSeesTransitions(t *testing.T) {
	client := newFakeClient()
	svc, _ := newTestService(client)

	var seen []model.EntryStatus
	svc.SetUpdateCallback(func(e *model.Entry) { seen = append(seen, e.Status) })

	_, err := svc.Run(context.Background(), entriesOf("76561198000000001"), "", nil)
	require.NoError(t, err)

	assert.Equal(t, []model.EntryStatus{model.EntryStatusApplying, model.EntryStatusApplied}, seen)
}

func TestRun_ContextCancellationStopsBetweenRows(t *testing.T) {
	client := newFakeClient()
	svc, _ := newTestService(client)

	ctx, cancel := context.WithCancel(context.Background())
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		cancel() // cancel during the inter-row delay
		return ctx.Err()
	}

	entries := entriesOf("76561198000000001", "76561198000000002")
	_, err := svc.Run(ctx, entries, "", nil)
	require.NoError(t, err)

	require.Len(t, client.calls, 1, "second row must not be attempted after cancellation")
	assert.Equal(t, model.EntryStatusPending, entries[1].Status)
}

func TestReport_Summary(t *testing.T) {
	report := &Report{Applied: 2, Failed: 1, Cleared: 3, CleanupFailed: 1}
	summary := report.Summary()

	assert.Equal(t, "applied 2, failed 1, cleared 3 stale (1 clear failures)", summary)

	plain := &Report{Applied: 5}
	assert.Equal(t, "applied 5, failed 0", plain.Summary())
}

func TestNewService_DefaultDelays(t *testing.T) {
	svc := NewService(newFakeClient(), 0, 0, 0)

	assert.Equal(t, DefaultApplyDelay, svc.applyDelay)
	assert.Equal(t, DefaultCleanupDelay, svc.cleanupDelay)
	assert.Equal(t, DefaultRetryDelay, svc.retryDelay)
}
