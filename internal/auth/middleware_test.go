package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"truthscope_backend/internal/auth/service"
	"truthscope_backend/internal/auth/transport"
	"truthscope_backend/internal/events"
	userrepo "truthscope_backend/internal/users/repository"
	usersvc "truthscope_backend/internal/users/service"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
)

type fakeVerifier struct {
	infos map[string]transport.Userinfo
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, rawToken string) (transport.Userinfo, error) {
	f.calls++
	info, ok := f.infos[rawToken]
	if !ok {
		return transport.Userinfo{}, apperr.Unauthorized("invalid token")
	}
	return info, nil
}

type fakeUserRepo struct {
	users map[string]userrepo.User
}

func (f *fakeUserRepo) GetOrCreate(_ context.Context, googleID, email string) (userrepo.User, bool, error) {
	if u, ok := f.users[googleID]; ok {
		return u, false, nil
	}
	u := userrepo.User{ID: int64(len(f.users) + 1), GoogleID: googleID, Email: email, Tier: userrepo.TierFree}
	f.users[googleID] = u
	return u, true, nil
}

func (f *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (userrepo.User, error) {
	u, ok := f.users[googleID]
	if !ok {
		return userrepo.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (userrepo.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return userrepo.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserRepo) SetTier(_ context.Context, googleID, tier string) (userrepo.User, error) {
	u, ok := f.users[googleID]
	if !ok {
		return userrepo.User{}, apperr.NotFound("user not found")
	}
	u.Tier = tier
	f.users[googleID] = u
	return u, nil
}

func newTestRouter(t *testing.T, verifier *fakeVerifier, repo *fakeUserRepo, paid bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	users := usersvc.New(repo, events.NewInMemoryBus(log), log)
	svc := service.New(verifier, users, 0, log)

	engine := gin.New()
	group := engine.Group("/", AuthRequired(svc))
	if paid {
		group.Use(PaidTierRequired())
	}
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func doAuthRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingToken(t *testing.T) {
	engine := newTestRouter(t, &fakeVerifier{}, &fakeUserRepo{users: map[string]userrepo.User{}}, false)

	if w := doAuthRequest(engine, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := doAuthRequest(engine, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	engine := newTestRouter(t, &fakeVerifier{infos: map[string]transport.Userinfo{}}, &fakeUserRepo{users: map[string]userrepo.User{}}, false)

	if w := doAuthRequest(engine, "Bearer bogus"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestAuthRequired_CreatesUserOnFirstContact(t *testing.T) {
	verifier := &fakeVerifier{infos: map[string]transport.Userinfo{
		"tok-1": {Sub: "google-123", Email: "reader@example.com"},
	}}
	repo := &fakeUserRepo{users: map[string]userrepo.User{}}
	engine := newTestRouter(t, verifier, repo, false)

	if w := doAuthRequest(engine, "Bearer tok-1"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := repo.users["google-123"]; !ok {
		t.Fatal("expected user row created on first authenticated request")
	}
}

func TestAuthRequired_CachesVerifiedTokens(t *testing.T) {
	verifier := &fakeVerifier{infos: map[string]transport.Userinfo{
		"tok-1": {Sub: "google-123", Email: "reader@example.com"},
	}}
	engine := newTestRouter(t, verifier, &fakeUserRepo{users: map[string]userrepo.User{}}, false)

	doAuthRequest(engine, "Bearer tok-1")
	doAuthRequest(engine, "Bearer tok-1")
	doAuthRequest(engine, "Bearer tok-1")

	if verifier.calls != 1 {
		t.Fatalf("expected one userinfo call for a hot token, got %d", verifier.calls)
	}
}

func TestPaidTierRequired(t *testing.T) {
	verifier := &fakeVerifier{infos: map[string]transport.Userinfo{
		"tok-free": {Sub: "google-free", Email: "free@example.com"},
		"tok-paid": {Sub: "google-paid", Email: "paid@example.com"},
	}}
	repo := &fakeUserRepo{users: map[string]userrepo.User{
		"google-paid": {ID: 7, GoogleID: "google-paid", Email: "paid@example.com", Tier: userrepo.TierPaid},
	}}
	engine := newTestRouter(t, verifier, repo, true)

	if w := doAuthRequest(engine, "Bearer tok-free"); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for free tier, got %d", w.Code)
	}
	if w := doAuthRequest(engine, "Bearer tok-paid"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for paid tier, got %d: %s", w.Code, w.Body.String())
	}
}
