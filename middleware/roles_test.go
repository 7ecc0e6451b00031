package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/config"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
)

type stubMemberDB struct {
	member *model.CommunityMember
}

func (s *stubMemberDB) CreateMember(context.Context, *model.CommunityMember) (int64, error) {
	return 0, nil
}
func (s *stubMemberDB) GetMember(_ context.Context, communityId, userId int64) (*model.CommunityMember, error) {
	if s.member != nil && s.member.CommunityId == communityId && s.member.UserId == userId {
		return s.member, nil
	}
	return nil, nil
}
func (s *stubMemberDB) GetMemberById(context.Context, int64) (*model.CommunityMember, error) {
	return nil, nil
}
func (s *stubMemberDB) GetMembers(context.Context, int64, db.OffsetQuery) ([]*model.MemberWithUser, int64, error) {
	return nil, 0, nil
}
func (s *stubMemberDB) CountActiveAdmins(context.Context, int64) (int64, error) { return 0, nil }
func (s *stubMemberDB) UpdateMemberRole(context.Context, int64, model.Role) error {
	return nil
}
func (s *stubMemberDB) DeleteMember(context.Context, int64) error { return nil }

func roleTestServer(t *testing.T, member *model.CommunityMember, required model.Role) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	user := &model.User{Id: 10, Username: "u"}
	users := &stubUserDB{users: map[int64]*model.User{user.Id: user}}
	sessions := services.NewSessions(&config.Session{Secret: "test-secret", TTL: "1h", Issuer: "test"})
	token, err := sessions.Issue(user)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.POST("/communities/:id/action",
		Auth(users, sessions, nil),
		RequireRole(&stubMemberDB{member: member}, required, "id"),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"role": MustGetMembership(c).Role})
		})
	return r, token
}

func post(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleNonMemberForbidden(t *testing.T) {
	r, token := roleTestServer(t, nil, model.RoleMember)
	if w := post(r, "/communities/1/action", token); w.Code != http.StatusForbidden {
		t.Errorf("non-member should be 403, got %v", w.Code)
	}
}

func TestRequireRoleMemberAdmitted(t *testing.T) {
	member := &model.CommunityMember{Id: 1, CommunityId: 1, UserId: 10, Role: model.RoleMember}
	r, token := roleTestServer(t, member, model.RoleMember)
	if w := post(r, "/communities/1/action", token); w.Code != http.StatusOK {
		t.Errorf("member should pass a member gate, got %v", w.Code)
	}
}

func TestRequireRoleMemberBlockedFromAdminGate(t *testing.T) {
	member := &model.CommunityMember{Id: 1, CommunityId: 1, UserId: 10, Role: model.RoleMember}
	r, token := roleTestServer(t, member, model.RoleAdmin)
	if w := post(r, "/communities/1/action", token); w.Code != http.StatusForbidden {
		t.Errorf("plain member should fail an admin gate, got %v", w.Code)
	}
}

func TestRequireRoleOwnerPassesAdminGate(t *testing.T) {
	member := &model.CommunityMember{Id: 1, CommunityId: 1, UserId: 10, Role: model.RoleOwner}
	r, token := roleTestServer(t, member, model.RoleAdmin)
	if w := post(r, "/communities/1/action", token); w.Code != http.StatusOK {
		t.Errorf("owner should pass an admin gate, got %v", w.Code)
	}
}

func TestRequireRoleOtherCommunityForbidden(t *testing.T) {
	member := &model.CommunityMember{Id: 1, CommunityId: 2, UserId: 10, Role: model.RoleOwner}
	r, token := roleTestServer(t, member, model.RoleMember)
	if w := post(r, "/communities/1/action", token); w.Code != http.StatusForbidden {
		t.Errorf("membership elsewhere should not admit, got %v", w.Code)
	}
}

func TestRequireRoleMalformedId(t *testing.T) {
	member := &model.CommunityMember{Id: 1, CommunityId: 1, UserId: 10, Role: model.RoleOwner}
	r, token := roleTestServer(t, member, model.RoleMember)
	if w := post(r, "/communities/abc/action", token); w.Code != http.StatusBadRequest {
		t.Errorf("malformed community id should be 400, got %v", w.Code)
	}
}
