package model

import "time"

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
	RoleOwner  Role = "OWNER"
)

// AdminGrade reports whether the role carries admin capabilities. Owners are
// admin-grade everywhere, including the last-admin check.
func (r Role) AdminGrade() bool {
	return r == RoleAdmin || r == RoleOwner
}

// Admits reports whether a caller holding r satisfies the required role.
func (r Role) Admits(required Role) bool {
	if required == RoleMember {
		return true
	}
	return r.AdminGrade()
}

type CommunityMember struct {
	Id          int64      `db:"id,omitempty" json:"id"`
	CommunityId int64      `db:"community_id" json:"communityId"`
	UserId      int64      `db:"user_id" json:"userId"`
	Role        Role       `db:"role" json:"role"`
	JoinedAt    time.Time  `db:"joined_at" json:"joinedAt"`
	DeletedAt   *time.Time `db:"deleted_at,omitempty" json:"-"`
}

// MemberWithUser is the members-list projection.
type MemberWithUser struct {
	*CommunityMember
	Nickname string `db:"nickname" json:"nickname"`
	ImageUrl string `db:"image_url" json:"imageUrl"`
}
