package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/controllers"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/middleware"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
	"github.com/studyclub-io/study-club-be/util"
)

type attendanceRoutes struct {
	db         db.Database
	controller *controllers.AttendanceController
}

func AddAttendanceRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions, controller *controllers.AttendanceController) {
	routes := attendanceRoutes{db: database, controller: controller}
	attendance := group.Group("/rounds/:id/attendance", middleware.Auth(database, sessions, nil))
	attendance.POST("", util.HandlerWrapper(routes.mark, &util.HandlerOpts{CreatedStatus: true}))
	attendance.GET("", util.HandlerWrapper(routes.forRound, &util.HandlerOpts{}))
}

func (ar *attendanceRoutes) resolveRound(c *gin.Context) (*model.Round, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	round, err := ar.db.GetRoundById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if round == nil {
		return nil, util.NotFoundHTTPErr
	}
	if _, httpErr := requireMembership(c, ar.db, round.CommunityId, model.RoleMember); httpErr != nil {
		return nil, httpErr
	}
	return round, nil
}

type markAttendanceReq struct {
	Type model.AttendanceType `json:"type" binding:"required,attendancetype"`
}

func (ar *attendanceRoutes) mark(c *gin.Context) (interface{}, *util.HTTPError) {
	round, httpErr := ar.resolveRound(c)
	if httpErr != nil {
		return nil, httpErr
	}
	var req markAttendanceReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetUser(c)
	attendanceId, httpErr := ar.controller.Mark(c, round, user.Id, req.Type)
	if httpErr != nil {
		return nil, httpErr
	}
	return gin.H{"id": attendanceId}, nil
}

func (ar *attendanceRoutes) forRound(c *gin.Context) (interface{}, *util.HTTPError) {
	round, httpErr := ar.resolveRound(c)
	if httpErr != nil {
		return nil, httpErr
	}
	records, err := ar.db.GetAttendanceForRound(c, round.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return records, nil
}
