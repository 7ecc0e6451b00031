package mysql

import (
	"context"
	"time"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type AttendanceDB struct {
	sess db.Session
}

func getAttendanceDB(sess db.Session) *AttendanceDB {
	return &AttendanceDB{sess}
}

// CreateAttendance relies on the unique (round_id, user_id) key to reject
// concurrent duplicates; callers classify the duplicate-key error.
func (adb *AttendanceDB) CreateAttendance(ctx context.Context, attendance *model.Attendance) (int64, error) {
	res, err := adb.sess.SQL().
		InsertInto("attendance").
		Columns("round_id", "user_id", "type", "marked_at").
		Values(attendance.RoundId, attendance.UserId, attendance.Type, time.Now()).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (adb *AttendanceDB) GetAttendance(ctx context.Context, roundId, userId int64) (*model.Attendance, error) {
	var attendance model.Attendance
	if err := adb.sess.SQL().
		Select("*").
		From("attendance").
		Where(scope.ReadCond("attendance", appdb.OpFindOne, db.Cond{
			"round_id": roundId,
			"user_id":  userId,
		})).
		IteratorContext(ctx).
		One(&attendance); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &attendance, nil
}

func (adb *AttendanceDB) GetAttendanceForRound(ctx context.Context, roundId int64) ([]*model.Attendance, error) {
	var rows []*model.Attendance
	err := adb.sess.SQL().
		Select("*").
		From("attendance").
		Where(scope.ReadCond("attendance", appdb.OpFindMany, db.Cond{"round_id": roundId})).
		OrderBy("marked_at", "id").
		IteratorContext(ctx).
		All(&rows)
	return rows, err
}
