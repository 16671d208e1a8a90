package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/authcore/identity-api/internal/core/domain"
	"github.com/authcore/identity-api/internal/core/ports"
	"github.com/authcore/identity-api/internal/core/service"
)

// memoryUserRepo is an in-memory ports.UserRepository for exercising the
// full HTTP surface without a database.
type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*domain.User
	roles  map[uint]string
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:  make(map[uint]*domain.User),
		roles:  make(map[uint]string),
		nextID: 1,
	}
}

func (r *memoryUserRepo) Register(_ context.Context, user *domain.User, role string) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, domain.ErrDuplicateCredential
		}
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	r.roles[user.ID] = role
	return user.ID, nil
}

func (r *memoryUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) GetRole(_ context.Context, userID uint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[userID]
	if !ok {
		return "", domain.ErrRoleNotFound
	}
	return role, nil
}

func (r *memoryUserRepo) DeleteCascade(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, userID)
	delete(r.roles, userID)
	return nil
}

type testServer struct {
	e      *echo.Echo
	repo   *memoryUserRepo
	tokens *service.TokenService
}

func newTestServer() *testServer {
	repo := newMemoryUserRepo()
	tokens := service.NewTokenService("test-secret", time.Hour)
	e := NewRouter(Deps{
		Repo:   repo,
		Hasher: service.NewBcryptHasher(4),
		Tokens: tokens,
		Log:    zerolog.Nop(),
	})
	return &testServer{e: e, repo: repo, tokens: tokens}
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) adminToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := s.tokens.Issue(ports.Claims{UserID: userID, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	return token
}

func TestAPI_SignupLoginFlow(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(http.MethodPost, "/signup",
		`{"username":"alice","email":"a@x.com","password":"pw1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Same username, different email → conflict.
	rec = srv.do(http.MethodPost, "/signup",
		`{"username":"alice","email":"b@x.com","password":"pw2"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", rec.Code)
	}

	// Login works with the username and with the email.
	for _, identifier := range []string{"alice", "a@x.com"} {
		rec = srv.do(http.MethodPost, "/login",
			fmt.Sprintf(`{"identifier":%q,"password":"pw1"}`, identifier), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("login with %q: expected 200, got %d", identifier, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid login response: %v", err)
		}
		if resp["access_token"] == "" {
			t.Fatalf("expected access_token in response")
		}
	}

	rec = srv.do(http.MethodPost, "/login", `{"identifier":"alice","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", rec.Code)
	}
	rec = srv.do(http.MethodPost, "/login", `{"identifier":"ghost","password":"pw1"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown identifier: expected 401, got %d", rec.Code)
	}
}

func TestAPI_RoleEnforcement(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(http.MethodPost, "/signup",
		`{"username":"viewer1","email":"v@x.com","password":"pw1234"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}
	rec = srv.do(http.MethodPost, "/login", `{"identifier":"viewer1","password":"pw1234"}`, "")
	var login map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}
	viewerToken := login["access_token"]

	// A fresh signup always carries the viewer role.
	rec = srv.do(http.MethodGet, "/me", "", viewerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("/me: expected 200, got %d", rec.Code)
	}
	var me map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("invalid /me response: %v", err)
	}
	if me["role"] != domain.RoleViewer {
		t.Fatalf("expected viewer role, got %v", me["role"])
	}

	// Download is open to any authenticated user; admin routes are not.
	if rec = srv.do(http.MethodGet, "/download", "", viewerToken); rec.Code != http.StatusOK {
		t.Fatalf("/download as viewer: expected 200, got %d", rec.Code)
	}
	if rec = srv.do(http.MethodGet, "/admin-area", "", viewerToken); rec.Code != http.StatusForbidden {
		t.Fatalf("/admin-area as viewer: expected 403, got %d", rec.Code)
	}
	if rec = srv.do(http.MethodDelete, "/delete-item/3", "", viewerToken); rec.Code != http.StatusForbidden {
		t.Fatalf("/delete-item as viewer: expected 403, got %d", rec.Code)
	}
	if rec = srv.do(http.MethodPut, "/edit-item/3", "", viewerToken); rec.Code != http.StatusForbidden {
		t.Fatalf("/edit-item as viewer: expected 403, got %d", rec.Code)
	}

	adminToken := srv.adminToken(t, 99)
	if rec = srv.do(http.MethodGet, "/admin-area", "", adminToken); rec.Code != http.StatusOK {
		t.Fatalf("/admin-area as admin: expected 200, got %d", rec.Code)
	}
	if rec = srv.do(http.MethodDelete, "/delete-item/3", "", adminToken); rec.Code != http.StatusOK {
		t.Fatalf("/delete-item as admin: expected 200, got %d", rec.Code)
	}
	if rec = srv.do(http.MethodPut, "/edit-item/3", "", adminToken); rec.Code != http.StatusOK {
		t.Fatalf("/edit-item as admin: expected 200, got %d", rec.Code)
	}
	if rec = srv.do(http.MethodDelete, "/delete-item/abc", "", adminToken); rec.Code != http.StatusBadRequest {
		t.Fatalf("/delete-item with bad id: expected 400, got %d", rec.Code)
	}
}

func TestAPI_UnauthenticatedRequests(t *testing.T) {
	srv := newTestServer()

	for _, path := range []string{"/me", "/download", "/admin-area"} {
		rec := srv.do(http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: expected 401, got %d", path, rec.Code)
		}
	}

	rec := srv.do(http.MethodGet, "/me", "", "garbage-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestAPI_LoginRoleMissing(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(http.MethodPost, "/signup",
		`{"username":"orphan","email":"o@x.com","password":"pw1234"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}

	// Simulate a mis-provisioned account with no role assignment.
	srv.repo.mu.Lock()
	for id := range srv.repo.roles {
		delete(srv.repo.roles, id)
	}
	srv.repo.mu.Unlock()

	rec = srv.do(http.MethodPost, "/login", `{"identifier":"orphan","password":"pw1234"}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("login without role: expected 403, got %d", rec.Code)
	}
}

func TestAPI_DeleteUserCascades(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(http.MethodPost, "/signup",
		`{"username":"target","email":"t@x.com","password":"pw1234"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}
	user, err := srv.repo.FindByIdentifier(context.Background(), "target")
	if err != nil {
		t.Fatalf("find target: %v", err)
	}

	adminToken := srv.adminToken(t, 99)
	rec = srv.do(http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete user: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	if _, err := srv.repo.FindByIdentifier(context.Background(), "target"); err != domain.ErrUserNotFound {
		t.Fatalf("expected user to be gone, got %v", err)
	}
	if _, err := srv.repo.GetRole(context.Background(), user.ID); err != domain.ErrRoleNotFound {
		t.Fatalf("expected no orphan role assignment, got %v", err)
	}

	viewerToken, err := srv.tokens.Issue(ports.Claims{UserID: user.ID, Role: domain.RoleViewer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	// Stateless verification: the deleted user's token stays valid until expiry.
	if rec = srv.do(http.MethodGet, "/me", "", viewerToken); rec.Code != http.StatusOK {
		t.Fatalf("token after deletion: expected 200, got %d", rec.Code)
	}
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/health: expected 200, got %d", rec.Code)
	}
}
