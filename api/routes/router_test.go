package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jalvarado-dev/memberhub-backend/internal/auth"
	"github.com/jalvarado-dev/memberhub-backend/internal/chat"
	"github.com/jalvarado-dev/memberhub-backend/internal/checkin"
	"github.com/jalvarado-dev/memberhub-backend/internal/events"
	"github.com/jalvarado-dev/memberhub-backend/internal/feedback"
	"github.com/jalvarado-dev/memberhub-backend/internal/leaderboard"
	"github.com/jalvarado-dev/memberhub-backend/internal/users"
	pkgAuth "github.com/jalvarado-dev/memberhub-backend/pkg/auth"
	"github.com/jalvarado-dev/memberhub-backend/pkg/auth/session"
	"github.com/jalvarado-dev/memberhub-backend/pkg/config"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"github.com/jalvarado-dev/memberhub-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubUsersService struct{}

func (stubUsersService) Me(ctx context.Context, userID uuid.UUID) (*users.ProfileDTO, error) {
	return &users.ProfileDTO{}, nil
}

func (stubUsersService) UpdateProfile(ctx context.Context, userID uuid.UUID, req users.UpdateProfileRequest) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubUsersService) ListMembers(ctx context.Context, params pagination.Params) ([]users.MemberRow, error) {
	return []users.MemberRow{}, nil
}

func (stubUsersService) UpdateMember(ctx context.Context, actorID, memberID uuid.UUID, req users.UpdateMemberRequest) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

type stubEventsService struct{}

func (stubEventsService) Create(ctx context.Context, actorID uuid.UUID, req events.CreateEventRequest) (*events.AdminEventDTO, error) {
	panic("unimplemented")
}

func (stubEventsService) Update(ctx context.Context, id uuid.UUID, req events.UpdateEventRequest) (*events.AdminEventDTO, error) {
	panic("unimplemented")
}

func (stubEventsService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubEventsService) Get(ctx context.Context, id uuid.UUID) (*events.EventDTO, error) {
	panic("unimplemented")
}

func (stubEventsService) GetAdmin(ctx context.Context, id uuid.UUID) (*events.AdminEventDTO, error) {
	panic("unimplemented")
}

func (stubEventsService) List(ctx context.Context, filter events.ListFilter, params pagination.Params) ([]events.EventDTO, error) {
	return []events.EventDTO{}, nil
}

func (stubEventsService) GenerateCode(ctx context.Context, id uuid.UUID) (*events.CodeDTO, error) {
	panic("unimplemented")
}

func (stubEventsService) ExpireCode(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubCheckinService struct{}

func (stubCheckinService) CheckInWithCode(ctx context.Context, userID, eventID uuid.UUID, req checkin.CheckInRequest) (*checkin.EntryDTO, error) {
	panic("unimplemented")
}

func (stubCheckinService) CheckInManual(ctx context.Context, actorID, eventID uuid.UUID, req checkin.ManualCheckInRequest) (*checkin.EntryDTO, error) {
	panic("unimplemented")
}

func (stubCheckinService) History(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]checkin.HistoryItemDTO, error) {
	return []checkin.HistoryItemDTO{}, nil
}

func (stubCheckinService) EventRoster(ctx context.Context, eventID uuid.UUID) ([]checkin.EntryDTO, error) {
	return []checkin.EntryDTO{}, nil
}

type stubLeaderboardService struct{}

func (stubLeaderboardService) Top(ctx context.Context, sort leaderboard.SortKey, limit int) ([]leaderboard.RankedRow, error) {
	return []leaderboard.RankedRow{}, nil
}

type stubFeedbackService struct{}

func (stubFeedbackService) Create(ctx context.Context, userID uuid.UUID, req feedback.CreateFeedbackRequest) (*feedback.FeedbackDTO, error) {
	return &feedback.FeedbackDTO{}, nil
}

func (stubFeedbackService) List(ctx context.Context, params pagination.Params) ([]feedback.FeedbackDTO, error) {
	return []feedback.FeedbackDTO{}, nil
}

type stubChatService struct{}

func (stubChatService) Respond(ctx context.Context, userID *uuid.UUID, req chat.ChatRequest) (*chat.ChatResponse, error) {
	return &chat.ChatResponse{Message: "hello"}, nil
}

func (stubChatService) RespondPublic(ctx context.Context, req chat.PublicChatRequest) (*chat.ChatResponse, error) {
	return &chat.ChatResponse{Message: "hello"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessionChecker{},
		stubAuthService{},
		stubUsersService{},
		stubEventsService{},
		stubCheckinService{},
		stubLeaderboardService{},
		stubFeedbackService{},
		stubChatService{},
	)
}

func TestMemberGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestMemberGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleMember))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for member leaderboard got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	member := httptest.NewRequest(http.MethodGet, "/api/admin/v1/feedback", nil)
	member.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleMember))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, member)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/feedback", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestAdminEventRoutesRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/events/"+uuid.NewString()+"/attendance", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleMember))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member attendance got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/events/"+uuid.NewString()+"/attendance", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin attendance got %d", resp.Code)
	}
}

func TestPublicChatNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"message":"when is the next meeting?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/public/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public chat got %d", resp.Code)
	}
}

func TestPublicChatRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/public/chat", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, role enums.MemberRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
