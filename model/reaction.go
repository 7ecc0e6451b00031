package model

import "time"

// Reaction is a short text reaction left on a community member's presence.
type Reaction struct {
	Id        int64      `db:"id,omitempty" json:"id"`
	UserId    int64      `db:"user_id" json:"userId"`
	MemberId  int64      `db:"member_id" json:"memberId"`
	Text      string     `db:"text" json:"text"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at,omitempty" json:"-"`
}
