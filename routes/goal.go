package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/db/dao"
	"github.com/studyclub-io/study-club-be/middleware"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
	"github.com/studyclub-io/study-club-be/util"
)

type goalRoutes struct {
	db db.Database
}

func AddGoalRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions) {
	routes := goalRoutes{db: database}
	goals := group.Group("/goals", middleware.Auth(database, sessions, nil))
	goals.POST("", util.HandlerWrapper(routes.createGoal, &util.HandlerOpts{CreatedStatus: true}))
	goals.GET("", util.HandlerWrapper(routes.listGoals, &util.HandlerOpts{}))
	goals.GET("/:id", util.HandlerWrapper(routes.getGoalById, &util.HandlerOpts{}))
	goals.PUT("/:id", util.HandlerWrapper(routes.updateGoal, &util.HandlerOpts{}))
	goals.DELETE("/:id", util.HandlerWrapper(routes.deleteGoal, &util.HandlerOpts{}))
	goals.POST("/:id/complete", util.HandlerWrapper(routes.toggleComplete, &util.HandlerOpts{}))
}

type createGoalReq struct {
	CommunityId *int64    `json:"communityId"`
	RoundId     *int64    `json:"roundId"`
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	IsTeam      bool      `json:"isTeam"`
	StartsOn    time.Time `json:"startsOn" binding:"required"`
	EndsOn      time.Time `json:"endsOn" binding:"required"`
}

func (gr *goalRoutes) createGoal(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createGoalReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.EndsOn.Before(req.StartsOn) {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "goal must end on or after its start"}
	}
	user := middleware.MustGetUser(c)
	if req.CommunityId != nil {
		if _, httpErr := requireMembership(c, gr.db, *req.CommunityId, model.RoleMember); httpErr != nil {
			return nil, httpErr
		}
	}
	goal := &model.StudyGoal{
		OwnerId:     user.Id,
		Title:       util.XSSSanitize(req.Title),
		Description: util.XSSSanitize(req.Description),
		IsTeam:      req.IsTeam,
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
	}
	if req.CommunityId != nil {
		goal.CommunityId = dao.Int64(*req.CommunityId)
	}
	if req.RoundId != nil {
		goal.RoundId = dao.Int64(*req.RoundId)
	}
	goalId, err := gr.db.CreateGoal(c, goal)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": goalId}, nil
}

type listGoalsReq struct {
	CommunityId int64 `form:"communityId"`
	RoundId     int64 `form:"roundId"`
	db.PageQuery
}

func (gr *goalRoutes) listGoals(c *gin.Context) (interface{}, *util.HTTPError) {
	var req listGoalsReq
	if err := c.BindQuery(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	req.PageQuery.Normalize()
	user := middleware.MustGetUser(c)
	goals, err := gr.db.GetGoals(c, &db.GoalsListQuery{
		OwnerId:     user.Id,
		CommunityId: req.CommunityId,
		RoundId:     req.RoundId,
		Page:        req.PageQuery,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return db.BuildPage(goals, req.PageQuery, req.PageQuery.Cursor != "",
		func(goal *model.StudyGoal) db.Cursor {
			return db.Cursor{Key: goal.CreatedAt, Id: goal.Id}
		}), nil
}

// resolveOwnGoal loads the goal and rejects callers that do not own it.
func (gr *goalRoutes) resolveOwnGoal(c *gin.Context) (*model.StudyGoal, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	goal, err := gr.db.GetGoalById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if goal == nil {
		return nil, util.NotFoundHTTPErr
	}
	if goal.OwnerId != middleware.MustGetUser(c).Id {
		return nil, util.ForbiddenHTTPErr
	}
	return goal, nil
}

func (gr *goalRoutes) getGoalById(c *gin.Context) (interface{}, *util.HTTPError) {
	goal, httpErr := gr.resolveOwnGoal(c)
	if httpErr != nil {
		return nil, httpErr
	}
	return goal, nil
}

type updateGoalReq struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	StartsOn    *time.Time `json:"startsOn"`
	EndsOn      *time.Time `json:"endsOn"`
}

func (gr *goalRoutes) updateGoal(c *gin.Context) (interface{}, *util.HTTPError) {
	goal, httpErr := gr.resolveOwnGoal(c)
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateGoalReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Title != nil {
		sanitized := util.XSSSanitize(*req.Title)
		req.Title = &sanitized
	}
	if req.Description != nil {
		sanitized := util.XSSSanitize(*req.Description)
		req.Description = &sanitized
	}
	startsOn, endsOn := goal.StartsOn, goal.EndsOn
	if req.StartsOn != nil {
		startsOn = *req.StartsOn
	}
	if req.EndsOn != nil {
		endsOn = *req.EndsOn
	}
	if endsOn.Before(startsOn) {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "goal must end on or after its start"}
	}
	if err := gr.db.UpdateGoal(c, goal.Id, &db.UpdateGoal{
		Title:       req.Title,
		Description: req.Description,
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (gr *goalRoutes) deleteGoal(c *gin.Context) (interface{}, *util.HTTPError) {
	goal, httpErr := gr.resolveOwnGoal(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := gr.db.DeleteGoal(c, goal.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (gr *goalRoutes) toggleComplete(c *gin.Context) (interface{}, *util.HTTPError) {
	goal, httpErr := gr.resolveOwnGoal(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := gr.db.SetGoalDone(c, goal.Id, !goal.IsDone); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"isDone": !goal.IsDone}, nil
}
