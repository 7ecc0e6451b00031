package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/util"
)

type AttendanceController struct {
	attendance db.AttendanceDatabase
	now        func() time.Time
}

func NewAttendanceController(attendance db.AttendanceDatabase) *AttendanceController {
	return &AttendanceController{
		attendance: attendance,
		now:        time.Now,
	}
}

// Mark records the user's attendance for a round. The wall clock must fall
// inside the round's window, and a user marks each round at most once.
func (ac *AttendanceController) Mark(c context.Context, round *model.Round, userId int64, attendanceType model.AttendanceType) (int64, *util.HTTPError) {
	if !round.WindowContains(ac.now()) {
		return -1, &util.HTTPError{Status: http.StatusBadRequest, Message: "round is not open for attendance"}
	}
	existing, err := ac.attendance.GetAttendance(c, round.Id, userId)
	if err != nil {
		return -1, util.BuildDbHTTPErr(err)
	}
	if existing != nil {
		return -1, &util.HTTPError{Status: http.StatusConflict, Message: "attendance already marked"}
	}
	attendanceId, err := ac.attendance.CreateAttendance(c, &model.Attendance{
		RoundId: round.Id,
		UserId:  userId,
		Type:    attendanceType,
	})
	if err != nil {
		return -1, util.BuildDbHTTPErr(err)
	}
	return attendanceId, nil
}
