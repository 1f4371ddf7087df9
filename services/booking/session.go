package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lumora/models"
	"lumora/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionTTL = 30 * time.Minute
	// A successful booking keeps its confirmation readable briefly before
	// the session disappears.
	successTTL = 5 * time.Minute
	// Upper bound on one submission attempt; the lock expires with it.
	submitLockTTL = 2 * time.Minute
)

// WizardSessionService drives the booking wizard for one visitor. State lives
// in Redis keyed by session ID and only changes through the pure transitions
// in wizard.go.
type WizardSessionService interface {
	Start(ctx context.Context) (*models.BookingWizardState, error)
	Get(ctx context.Context, sessionID string) (*models.BookingWizardState, error)
	SelectService(ctx context.Context, sessionID, serviceID string) (*models.BookingWizardState, error)
	SelectSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (*models.BookingWizardState, error)
	GoBack(ctx context.Context, sessionID string) (*models.BookingWizardState, error)
	Submit(ctx context.Context, sessionID string, fields models.ContactFields) (*models.BookingWizardState, *notification.Result, error)
	Cancel(ctx context.Context, sessionID string) error
}

// SessionCache is the slice of Redis the wizard session store uses.
// Satisfied by *redis.Client.
type SessionCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DefaultWizardSessionService implements WizardSessionService.
type DefaultWizardSessionService struct {
	Cache        SessionCache
	Catalog      CatalogService
	Grid         Grid
	Orchestrator MeetingOrchestrator
	Notifier     notification.Dispatcher
	Now          func() time.Time
	Logger       *zap.Logger
}

func (s *DefaultWizardSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start creates a new wizard session.
func (s *DefaultWizardSessionService) Start(ctx context.Context) (*models.BookingWizardState, error) {
	state := NewWizardState(uuid.New().String())
	if err := s.save(ctx, state, sessionTTL); err != nil {
		return nil, err
	}
	s.Logger.Debug("wizard session started", zap.String("sessionID", state.SessionID))
	return &state, nil
}

// Get returns the current state of a session.
func (s *DefaultWizardSessionService) Get(ctx context.Context, sessionID string) (*models.BookingWizardState, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// SelectService resolves the catalog entry, records it, and advances to the
// date/time step.
func (s *DefaultWizardSessionService) SelectService(ctx context.Context, sessionID, serviceID string) (*models.BookingWizardState, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	svc, ok := s.Catalog.ByID(serviceID)
	if !ok {
		return &state, NewValidationError("service", fmt.Sprintf("unknown service %q", serviceID))
	}
	state, err = SelectService(state, svc)
	if err != nil {
		return &state, err
	}
	state, err = Advance(state)
	if err != nil {
		return &state, err
	}

	if err := s.save(ctx, state, sessionTTL); err != nil {
		return nil, err
	}
	return &state, nil
}

// SelectSlot validates the slot against the grid, records it, and advances to
// the contact step. The grid check catches stale or fabricated slots early;
// the calendar store remains the conflict authority at submit time.
func (s *DefaultWizardSessionService) SelectSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (*models.BookingWizardState, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !s.Grid.Contains(slot, s.now()) {
		return &state, NewValidationError("slot", "slot is not bookable")
	}
	state, err = SelectSlot(state, slot)
	if err != nil {
		return &state, err
	}
	state, err = Advance(state)
	if err != nil {
		return &state, err
	}

	if err := s.save(ctx, state, sessionTTL); err != nil {
		return nil, err
	}
	return &state, nil
}

// GoBack steps backward without clearing entered data.
func (s *DefaultWizardSessionService) GoBack(ctx context.Context, sessionID string) (*models.BookingWizardState, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state = Back(state)
	if err := s.save(ctx, state, sessionTTL); err != nil {
		return nil, err
	}
	return &state, nil
}

// Submit runs the full booking attempt: guard the transition, take the
// per-session in-flight lock, create the meeting, then dispatch
// notifications. Notification failures never fail the booking.
func (s *DefaultWizardSessionService) Submit(ctx context.Context, sessionID string, fields models.ContactFields) (*models.BookingWizardState, *notification.Result, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	state, req, err := BeginSubmit(state, fields)
	if err != nil {
		return &state, nil, err
	}

	// Submitting acts as a mutex over the single in-flight request; the
	// SETNX makes it hold across concurrent handlers too.
	lockKey := "submit:" + sessionID
	locked, err := s.Cache.SetNX(ctx, lockKey, 1, submitLockTTL).Result()
	if err != nil {
		return &state, nil, fmt.Errorf("failed to acquire submission lock: %w", err)
	}
	if !locked {
		return &state, nil, &SubmissionInFlightError{SessionID: sessionID}
	}
	defer s.releaseSubmitLock(lockKey)

	if err := s.save(ctx, state, sessionTTL); err != nil {
		return nil, nil, err
	}

	meeting, err := s.Orchestrator.CreateMeeting(ctx, req)
	if err != nil {
		state = FailSubmit(state, submitFailureReason(err))
		if saveErr := s.save(ctx, state, sessionTTL); saveErr != nil {
			s.Logger.Error("failed to persist error state", zap.String("sessionID", sessionID), zap.Error(saveErr))
		}
		return &state, nil, err
	}

	result := s.Notifier.Notify(ctx, *meeting, req)
	if !result.AllDelivered() {
		s.Logger.Warn("booking confirmed but some notifications failed",
			zap.String("sessionID", sessionID),
			zap.Bool("attendee", result.AttendeeDelivered),
			zap.Bool("operator", result.OperatorDelivered))
	}

	state = FinishSuccess(state, *meeting)
	if err := s.save(ctx, state, successTTL); err != nil {
		s.Logger.Error("failed to persist success state", zap.String("sessionID", sessionID), zap.Error(err))
	}
	return &state, &result, nil
}

// Cancel discards the session entirely.
func (s *DefaultWizardSessionService) Cancel(ctx context.Context, sessionID string) error {
	if err := s.Cache.Del(ctx, "wizard:"+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

// releaseSubmitLock runs on its own context so a cancelled request cannot
// leave the lock to linger until its TTL.
func (s *DefaultWizardSessionService) releaseSubmitLock(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Cache.Del(ctx, key).Err(); err != nil {
		s.Logger.Warn("failed to release submission lock, it will expire on its own",
			zap.String("key", key), zap.Error(err))
	}
}

func submitFailureReason(err error) string {
	var conflict *SlotConflictError
	if errors.As(err, &conflict) {
		return "the selected slot was just taken, please pick another time"
	}
	return "booking failed, please retry"
}

func (s *DefaultWizardSessionService) save(ctx context.Context, state models.BookingWizardState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard state: %w", err)
	}
	if err := s.Cache.Set(ctx, "wizard:"+state.SessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store wizard state: %w", err)
	}
	return nil
}

func (s *DefaultWizardSessionService) load(ctx context.Context, sessionID string) (models.BookingWizardState, error) {
	var state models.BookingWizardState
	data, err := s.Cache.Get(ctx, "wizard:"+sessionID).Result()
	if err != nil {
		return state, &SessionNotFoundError{SessionID: sessionID}
	}
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return state, fmt.Errorf("failed to parse wizard state: %w", err)
	}
	return state, nil
}
