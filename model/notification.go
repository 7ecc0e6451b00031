package model

import "time"

// Notification is a community announcement. At most one notification per
// community carries IsPinned, enforced by the unpin-then-pin flow rather than
// a storage constraint.
type Notification struct {
	Id          int64      `db:"id,omitempty" json:"id"`
	CommunityId int64      `db:"community_id" json:"communityId"`
	AuthorId    int64      `db:"author_id" json:"authorId"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	IsPinned    bool       `db:"is_pinned" json:"isPinned"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt   *time.Time `db:"deleted_at,omitempty" json:"-"`
}
