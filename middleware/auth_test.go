package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/config"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
)

type stubUserDB struct {
	users   map[int64]*model.User
	loadErr error
}

func (s *stubUserDB) CreateUser(context.Context, *model.User) (int64, error) { return 0, nil }
func (s *stubUserDB) GetUserById(_ context.Context, id int64) (*model.User, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.users[id], nil
}
func (s *stubUserDB) GetUserByProvider(context.Context, string, string) (*model.User, error) {
	return nil, nil
}
func (s *stubUserDB) UpdateUser(context.Context, int64, *db.UpdateUser) error { return nil }

func authTestServer(t *testing.T, users *stubUserDB, cfg *AuthConfig) (*gin.Engine, *services.Sessions) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := services.NewSessions(&config.Session{Secret: "test-secret", TTL: "1h", Issuer: "test"})
	r := gin.New()
	r.GET("/whoami", Auth(users, sessions, cfg), func(c *gin.Context) {
		user := GetUserMaybe(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.Id})
	})
	return r, sessions
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	r, _ := authTestServer(t, &stubUserDB{}, nil)
	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a header, got %v", w.Code)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	r, sessions := authTestServer(t, &stubUserDB{}, nil)
	token, _ := sessions.Issue(&model.User{Id: 1})
	for _, header := range []string{"Basic abc", "Bearer", "Bearer ", token} {
		if w := get(r, header); w.Code != http.StatusUnauthorized {
			t.Errorf("header %q should be rejected, got %v", header, w.Code)
		}
	}
}

func TestAuthBadToken(t *testing.T) {
	r, _ := authTestServer(t, &stubUserDB{}, nil)
	foreign := services.NewSessions(&config.Session{Secret: "other-secret", TTL: "1h", Issuer: "test"})
	token, _ := foreign.Issue(&model.User{Id: 1})
	if w := get(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign-signed token should be rejected, got %v", w.Code)
	}
}

func TestAuthResolvesUser(t *testing.T) {
	users := &stubUserDB{users: map[int64]*model.User{7: {Id: 7, Username: "g"}}}
	r, sessions := authTestServer(t, users, nil)
	token, _ := sessions.Issue(users.users[7])
	if w := get(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("valid session should pass, got %v: %v", w.Code, w.Body)
	}
}

func TestAuthMissingProfile(t *testing.T) {
	r, sessions := authTestServer(t, &stubUserDB{}, nil)
	token, _ := sessions.Issue(&model.User{Id: 42})
	if w := get(r, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("session without a profile should be 403, got %v", w.Code)
	}
}

func TestAuthProfileLoadFailure(t *testing.T) {
	users := &stubUserDB{loadErr: errors.New("connection refused")}
	r, sessions := authTestServer(t, users, nil)
	token, _ := sessions.Issue(&model.User{Id: 7})
	if w := get(r, "Bearer "+token); w.Code != http.StatusInternalServerError {
		t.Errorf("store failure should be 500, not a profile verdict, got %v", w.Code)
	}
}

func TestOptionalAuthAdmitsAnonymous(t *testing.T) {
	r, _ := authTestServer(t, &stubUserDB{}, OptionalAuth())
	if w := get(r, ""); w.Code != http.StatusOK {
		t.Errorf("optional auth should admit anonymous callers, got %v", w.Code)
	}
}
