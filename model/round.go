package model

import "time"

// Round is a scheduled meeting occurrence of a community. Attendance can only
// be marked while the clock is inside [StartsAt, EndsAt].
type Round struct {
	Id          int64      `db:"id,omitempty" json:"id"`
	CommunityId int64      `db:"community_id" json:"communityId"`
	SeqNo       int64      `db:"seq_no" json:"seqNo"`
	StartsAt    time.Time  `db:"starts_at" json:"startsAt"`
	EndsAt      time.Time  `db:"ends_at" json:"endsAt"`
	Location    string     `db:"location" json:"location"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt   *time.Time `db:"deleted_at,omitempty" json:"-"`
}

func (r *Round) WindowContains(t time.Time) bool {
	return !t.Before(r.StartsAt) && !t.After(r.EndsAt)
}
