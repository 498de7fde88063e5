package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/config"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo *fakeEventRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:          repo,
		CheckinConfig: config.CheckinConfig{AdmissionWindow: 24 * time.Hour, CodeTTL: 6 * time.Hour},
		NowFunc:       func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestCreateEventNormalizesTags(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), uuid.New(), CreateEventRequest{
		Title:    "Fall GBM",
		Category: "gbm",
		StartsAt: testNow.Add(48 * time.Hour),
		Points:   10,
		Tags:     []string{" Social ", "social", "FOOD"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(dto.Tags) != 2 || dto.Tags[0] != "social" || dto.Tags[1] != "food" {
		t.Fatalf("expected deduped lowercase tags, got %v", dto.Tags)
	}
}

func TestCreateEventCarriesImageURL(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(t, repo)
	image := "https://cdn.example.edu/events/fall-gbm.png"

	dto, err := svc.Create(context.Background(), uuid.New(), CreateEventRequest{
		Title:    "Fall GBM",
		Category: "gbm",
		StartsAt: testNow.Add(48 * time.Hour),
		ImageURL: &image,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ImageURL == nil || *dto.ImageURL != image {
		t.Fatalf("expected image url carried through, got %v", dto.ImageURL)
	}
	if stored := repo.events[dto.ID]; stored.ImageURL == nil || *stored.ImageURL != image {
		t.Fatal("expected image url persisted on event")
	}
}

func TestUpdateEventSetsImageURL(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	svc := newTestService(t, repo)
	image := "https://cdn.example.edu/events/retreat.jpg"

	dto, err := svc.Update(context.Background(), event.ID, UpdateEventRequest{ImageURL: &image})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.ImageURL == nil || *dto.ImageURL != image {
		t.Fatalf("expected image url on updated event, got %v", dto.ImageURL)
	}
}

func TestCreateEventRejectsBadCategory(t *testing.T) {
	svc := newTestService(t, newFakeEventRepo())

	_, err := svc.Create(context.Background(), uuid.New(), CreateEventRequest{
		Title:    "Mystery",
		Category: "party",
		StartsAt: testNow,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateEventRejectsEndBeforeStart(t *testing.T) {
	svc := newTestService(t, newFakeEventRepo())

	ends := testNow.Add(-time.Hour)
	_, err := svc.Create(context.Background(), uuid.New(), CreateEventRequest{
		Title:    "Backwards",
		Category: "general",
		StartsAt: testNow,
		EndsAt:   &ends,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateCodeSetsAbsoluteExpiry(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	svc := newTestService(t, repo)

	dto, err := svc.GenerateCode(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if len(dto.Code) != 6 {
		t.Fatalf("expected 6-char code, got %q", dto.Code)
	}
	want := testNow.Add(6 * time.Hour)
	if !dto.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, dto.ExpiresAt)
	}

	stored := repo.events[event.ID]
	if stored.CheckinCode == nil || *stored.CheckinCode != dto.Code {
		t.Fatal("expected code persisted on event")
	}
}

func TestGenerateCodeOverwritesExisting(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	svc := newTestService(t, repo)

	first, err := svc.GenerateCode(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.GenerateCode(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}

	stored := repo.events[event.ID]
	if *stored.CheckinCode != second.Code {
		t.Fatalf("expected latest code to win, got %q (first %q)", *stored.CheckinCode, first.Code)
	}
}

func TestGenerateCodeAppliesCategoryDefaultPoints(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 0)
	svc := newTestService(t, repo)

	if _, err := svc.GenerateCode(context.Background(), event.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	stored := repo.events[event.ID]
	if stored.Points != enums.EventCategoryGeneral.DefaultPoints() {
		t.Fatalf("expected category default points, got %d", stored.Points)
	}
}

func TestGenerateCodeKeepsExplicitPoints(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 25)
	svc := newTestService(t, repo)

	if _, err := svc.GenerateCode(context.Background(), event.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if repo.events[event.ID].Points != 25 {
		t.Fatalf("expected explicit points untouched, got %d", repo.events[event.ID].Points)
	}
}

func TestExpireCodeSetsExpiryToNow(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	svc := newTestService(t, repo)

	if _, err := svc.GenerateCode(context.Background(), event.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := svc.ExpireCode(context.Background(), event.ID); err != nil {
		t.Fatalf("expire: %v", err)
	}

	stored := repo.events[event.ID]
	if stored.CodeExpiresAt == nil || !stored.CodeExpiresAt.Equal(testNow) {
		t.Fatalf("expected expiry pinned to now, got %v", stored.CodeExpiresAt)
	}
	if stored.CodeActive(testNow) {
		t.Fatal("expected code inactive after expiry")
	}
}

func TestExpireCodeWithoutCodeFails(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	svc := newTestService(t, repo)

	err := svc.ExpireCode(context.Background(), event.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteBlockedWhenAttendanceExists(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	repo.attendance[event.ID] = 3
	svc := newTestService(t, repo)

	err := svc.Delete(context.Background(), event.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if _, ok := repo.events[event.ID]; !ok {
		t.Fatal("event must not be deleted")
	}
}

func TestDeleteSucceedsWithoutAttendance(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	svc := newTestService(t, repo)

	if err := svc.Delete(context.Background(), event.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.events[event.ID]; ok {
		t.Fatal("expected event removed")
	}
}

func TestGetUnknownEventReturnsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeEventRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestPublicDTOHidesCode(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.seed(t, 10)
	svc := newTestService(t, repo)

	if _, err := svc.GenerateCode(context.Background(), event.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	dto, err := svc.Get(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !dto.CodeActive {
		t.Fatal("expected code_active true after generation")
	}

	admin, err := svc.GetAdmin(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if admin.CheckinCode == nil {
		t.Fatal("expected admin dto to carry the code")
	}
}

type fakeEventRepo struct {
	events     map[uuid.UUID]*models.Event
	attendance map[uuid.UUID]int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:     map[uuid.UUID]*models.Event{},
		attendance: map[uuid.UUID]int64{},
	}
}

func (f *fakeEventRepo) seed(t *testing.T, points int) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:        uuid.New(),
		Title:     "Seeded Event",
		Category:  enums.EventCategoryGeneral,
		StartsAt:  testNow.Add(time.Hour),
		Points:    points,
		CreatedBy: uuid.New(),
		CreatedAt: testNow,
	}
	f.events[event.ID] = event
	return event
}

func (f *fakeEventRepo) Create(ctx context.Context, dto CreateEventDTO) (*models.Event, error) {
	event := dto.ToModel()
	event.ID = uuid.New()
	event.CreatedAt = testNow
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if title, ok := updates["title"].(string); ok {
		event.Title = title
	}
	if points, ok := updates["points"].(int); ok {
		event.Points = points
	}
	if image, ok := updates["image_url"].(string); ok {
		event.ImageURL = &image
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) CountAttendance(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return f.attendance[eventID], nil
}

func (f *fakeEventRepo) SetCheckinCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	event, ok := f.events[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	event.CheckinCode = &code
	event.CodeExpiresAt = &expiresAt
	return nil
}

func (f *fakeEventRepo) ExpireCode(ctx context.Context, id uuid.UUID, at time.Time) error {
	event, ok := f.events[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	event.CodeExpiresAt = &at
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Event, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, event := range f.events {
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}
		out = append(out, *event)
	}
	return out, nil
}
