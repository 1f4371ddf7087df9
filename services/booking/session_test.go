package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"lumora/models"
	"lumora/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryCache implements SessionCache in memory, recording enough about each
// call to assert on TTLs and on the context the lock release ran under.
type memoryCache struct {
	mu           sync.Mutex
	data         map[string]string
	ttls         map[string]time.Duration
	delCtxErr    error
	delCtxErrSet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *memoryCache) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = stringify(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = stringify(value)
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (m *memoryCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delCtxErr = ctx.Err()
	m.delCtxErrSet = true
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			delete(m.ttls, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

type fakeOrchestrator struct {
	meeting  *models.Meeting
	err      error
	onCreate func()
}

func (f *fakeOrchestrator) CreateMeeting(ctx context.Context, req models.BookingRequest) (*models.Meeting, error) {
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.meeting, nil
}

type fakeDispatcher struct {
	result notification.Result
	calls  int
}

func (f *fakeDispatcher) Notify(ctx context.Context, meeting models.Meeting, req models.BookingRequest) notification.Result {
	f.calls++
	return f.result
}

func sessionFixture(cache *memoryCache, orch MeetingOrchestrator) *DefaultWizardSessionService {
	return &DefaultWizardSessionService{
		Cache:        cache,
		Catalog:      NewStaticCatalog(),
		Grid:         testGrid(),
		Orchestrator: orch,
		Notifier:     &fakeDispatcher{result: notification.Result{AttendeeDelivered: true, OperatorDelivered: true}},
		Now:          func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
		Logger:       zap.NewNop(),
	}
}

func testMeeting() *models.Meeting {
	return &models.Meeting{
		CalendarEventID:      "evt-1",
		VideoMeetingURL:      "https://meet.example/j/42",
		VideoMeetingPassword: "s3cret",
	}
}

func advanceToContact(t *testing.T, svc *DefaultWizardSessionService) string {
	t.Helper()
	ctx := context.Background()

	state, err := svc.Start(ctx)
	require.NoError(t, err)
	id := state.SessionID

	_, err = svc.SelectService(ctx, id, "ai-consultation")
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, id, models.TimeSlot{Date: "2025-03-10", Start: 10 * 60})
	require.NoError(t, err)
	return id
}

func TestWizardSession_FullFlowEndsInSuccess(t *testing.T) {
	cache := newMemoryCache()
	svc := sessionFixture(cache, &fakeOrchestrator{meeting: testMeeting()})
	id := advanceToContact(t, svc)

	state, result, err := svc.Submit(context.Background(), id, models.ContactFields{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.SubmissionSuccess, state.Status)
	require.NotNil(t, state.Meeting)
	assert.Equal(t, "https://meet.example/j/42", state.Meeting.VideoMeetingURL)
	// The confirmed session lingers only briefly.
	assert.Equal(t, successTTL, cache.ttls["wizard:"+id])
	// The submit lock never outlives the attempt.
	assert.False(t, cache.has("submit:"+id))
}

func TestWizardSession_SubmitReleasesLockWhenRequestCancelled(t *testing.T) {
	cache := newMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The client disconnects while the providers are working.
	orch := &fakeOrchestrator{meeting: testMeeting(), onCreate: cancel}
	svc := sessionFixture(cache, orch)
	id := advanceToContact(t, svc)

	_, _, err := svc.Submit(ctx, id, models.ContactFields{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)

	assert.False(t, cache.has("submit:"+id))
	require.True(t, cache.delCtxErrSet)
	assert.NoError(t, cache.delCtxErr)
}

func TestWizardSession_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	cache := newMemoryCache()
	svc := sessionFixture(cache, &fakeOrchestrator{meeting: testMeeting()})
	id := advanceToContact(t, svc)

	cache.Set(context.Background(), "submit:"+id, 1, submitLockTTL)

	_, _, err := svc.Submit(context.Background(), id, models.ContactFields{Name: "Jane Doe", Email: "jane@example.com"})
	var inFlight *SubmissionInFlightError
	require.ErrorAs(t, err, &inFlight)
	assert.Equal(t, id, inFlight.SessionID)
}

func TestWizardSession_SubmitFailureKeepsContactAndReleasesLock(t *testing.T) {
	cache := newMemoryCache()
	slot := models.TimeSlot{Date: "2025-03-10", Start: 10 * 60}
	orch := &fakeOrchestrator{err: &SlotConflictError{Slot: slot}}
	svc := sessionFixture(cache, orch)
	id := advanceToContact(t, svc)

	_, _, err := svc.Submit(context.Background(), id, models.ContactFields{Name: "Jane Doe", Email: "jane@example.com"})
	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)

	state, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionError, state.Status)
	assert.Equal(t, models.StepContactInfo, state.Step)
	assert.Equal(t, "Jane Doe", state.Contact.Name)
	assert.Contains(t, state.LastError, "taken")
	assert.False(t, cache.has("submit:"+id))
}

func TestWizardSession_UnknownSessionIsNotFound(t *testing.T) {
	svc := sessionFixture(newMemoryCache(), &fakeOrchestrator{meeting: testMeeting()})

	_, err := svc.Get(context.Background(), "missing")
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestWizardSession_SelectSlotRejectsOffGridSlot(t *testing.T) {
	svc := sessionFixture(newMemoryCache(), &fakeOrchestrator{meeting: testMeeting()})

	ctx := context.Background()
	state, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.SelectService(ctx, state.SessionID, "ai-consultation")
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, state.SessionID, models.TimeSlot{Date: "2025-03-10", Start: 10*60 + 7})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "slot", validation.Field)
}
