package model

import "time"

type AttendanceType string

const (
	AttendancePresent AttendanceType = "PRESENT"
	AttendanceAbsent  AttendanceType = "ABSENT"
	AttendanceLate    AttendanceType = "LATE"
	AttendanceExcused AttendanceType = "EXCUSED"
)

func (at AttendanceType) Valid() bool {
	switch at {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// Attendance is unique per (RoundId, UserId) among active rows.
type Attendance struct {
	Id        int64          `db:"id,omitempty" json:"id"`
	RoundId   int64          `db:"round_id" json:"roundId"`
	UserId    int64          `db:"user_id" json:"userId"`
	Type      AttendanceType `db:"type" json:"type"`
	MarkedAt  time.Time      `db:"marked_at" json:"markedAt"`
	DeletedAt *time.Time     `db:"deleted_at,omitempty" json:"-"`
}
