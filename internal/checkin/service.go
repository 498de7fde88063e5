package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/config"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
	"github.com/jalvarado-dev/memberhub-backend/pkg/metrics"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the check-in controllers.
type Service interface {
	CheckInWithCode(ctx context.Context, userID, eventID uuid.UUID, req CheckInRequest) (*EntryDTO, error)
	CheckInManual(ctx context.Context, actorID, eventID uuid.UUID, req ManualCheckInRequest) (*EntryDTO, error)
	History(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]HistoryItemDTO, error)
	EventRoster(ctx context.Context, eventID uuid.UUID) ([]EntryDTO, error)
}

type ledgerRepository interface {
	RecordAttendance(ctx context.Context, dto CreateEntryDTO) (*models.AttendanceEntry, error)
	HasEntry(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]HistoryItemDTO, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.AttendanceEntry, error)
}

type eventFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

type service struct {
	ledger  ledgerRepository
	events  eventFinder
	cfg     config.CheckinConfig
	metrics *metrics.CheckinMetrics
	nowFunc func() time.Time
}

// ServiceParams bundles the dependencies required to build a check-in service.
type ServiceParams struct {
	Ledger        ledgerRepository
	Events        eventFinder
	CheckinConfig config.CheckinConfig
	Metrics       *metrics.CheckinMetrics

	// NowFunc overrides the clock in tests.
	NowFunc func() time.Time
}

// NewService constructs a check-in service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event finder is required")
	}
	nowFunc := params.NowFunc
	if nowFunc == nil {
		nowFunc = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		ledger:  params.Ledger,
		events:  params.Events,
		cfg:     params.CheckinConfig,
		metrics: params.Metrics,
		nowFunc: nowFunc,
	}, nil
}

// CheckInWithCode validates the submitted code against the event and records
// attendance worth the event's point value.
func (s *service) CheckInWithCode(ctx context.Context, userID, eventID uuid.UUID, req CheckInRequest) (*EntryDTO, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()

	if event.CheckinCode == nil || event.CodeExpiresAt == nil {
		s.metrics.IncRejected("no_code")
		return nil, pkgerrors.New(pkgerrors.CodeExpired, "check-in is not open for this event")
	}
	if !now.Before(*event.CodeExpiresAt) {
		s.metrics.IncRejected("code_expired")
		return nil, pkgerrors.New(pkgerrors.CodeExpired, "check-in code has expired")
	}

	submitted := strings.ToUpper(strings.TrimSpace(req.Code))
	if submitted != *event.CheckinCode {
		s.metrics.IncRejected("code_mismatch")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "incorrect check-in code")
	}

	if now.After(event.StartsAt.Add(s.cfg.AdmissionWindow)) {
		s.metrics.IncRejected("window_closed")
		return nil, pkgerrors.New(pkgerrors.CodeExpired, "check-in window has closed")
	}

	return s.record(ctx, CreateEntryDTO{
		EventID:      event.ID,
		UserID:       userID,
		PointsEarned: event.Points,
		Method:       enums.CheckinMethodCode,
	})
}

// CheckInManual lets an admin record attendance directly, bypassing the code
// and admission-window checks. Duplicate prevention still applies.
func (s *service) CheckInManual(ctx context.Context, actorID, eventID uuid.UUID, req ManualCheckInRequest) (*EntryDTO, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	points := event.Points
	if req.Points != nil {
		if *req.Points < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "points must be non-negative")
		}
		points = *req.Points
	}

	recordedBy := actorID
	return s.record(ctx, CreateEntryDTO{
		EventID:      event.ID,
		UserID:       req.UserID,
		PointsEarned: points,
		Method:       enums.CheckinMethodManual,
		RecordedBy:   &recordedBy,
	})
}

func (s *service) History(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]HistoryItemDTO, error) {
	items, err := s.ledger.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list attendance")
	}
	return items, nil
}

func (s *service) EventRoster(ctx context.Context, eventID uuid.UUID) ([]EntryDTO, error) {
	if _, err := s.findEvent(ctx, eventID); err != nil {
		return nil, err
	}
	entries, err := s.ledger.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list event attendance")
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, *FromModel(&entries[i]))
	}
	return dtos, nil
}

func (s *service) record(ctx context.Context, dto CreateEntryDTO) (*EntryDTO, error) {
	// Pre-check gives a friendly error; the unique index catches the race.
	exists, err := s.ledger.HasEntry(ctx, dto.EventID, dto.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check duplicate")
	}
	if exists {
		s.metrics.IncRejected("duplicate")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "already checked in to this event")
	}

	entry, err := s.ledger.RecordAttendance(ctx, dto)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_attendance_event_user") {
			s.metrics.IncRejected("duplicate")
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "already checked in to this event")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record attendance")
	}

	s.metrics.IncRecorded(dto.Method.String())
	return FromModel(entry), nil
}

func (s *service) findEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup event")
	}
	return event, nil
}
