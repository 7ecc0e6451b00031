package model

import (
	"time"

	"github.com/studyclub-io/study-club-be/db/dao"
)

// StudyGoal belongs to its owner and optionally to a community and/or a round.
type StudyGoal struct {
	Id          int64         `db:"id,omitempty" json:"id"`
	OwnerId     int64         `db:"owner_id" json:"ownerId"`
	CommunityId dao.NullInt64 `db:"community_id" json:"communityId"`
	RoundId     dao.NullInt64 `db:"round_id" json:"roundId"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	IsTeam      bool          `db:"is_team" json:"isTeam"`
	IsDone      bool          `db:"is_done" json:"isDone"`
	StartsOn    time.Time     `db:"starts_on" json:"startsOn"`
	EndsOn      time.Time     `db:"ends_on" json:"endsOn"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	DeletedAt   *time.Time    `db:"deleted_at,omitempty" json:"-"`
}
