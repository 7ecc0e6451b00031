package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/middleware"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
	"github.com/studyclub-io/study-club-be/util"
)

type roundRoutes struct {
	db db.Database
}

func AddRoundRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions) {
	routes := roundRoutes{db: database}

	communityRounds := group.Group("/communities/:id/rounds", middleware.Auth(database, sessions, nil))
	asMember := communityRounds.Group("", middleware.RequireRole(database, model.RoleMember, "id"))
	asMember.GET("", util.HandlerWrapper(routes.listRounds, &util.HandlerOpts{}))
	asAdmin := communityRounds.Group("", middleware.RequireRole(database, model.RoleAdmin, "id"))
	asAdmin.POST("", util.HandlerWrapper(routes.createRound, &util.HandlerOpts{CreatedStatus: true}))

	rounds := group.Group("/rounds", middleware.Auth(database, sessions, nil))
	rounds.GET("/:id", util.HandlerWrapper(routes.getRoundById, &util.HandlerOpts{}))
	rounds.PUT("/:id", util.HandlerWrapper(routes.updateRound, &util.HandlerOpts{}))
	rounds.DELETE("/:id", util.HandlerWrapper(routes.deleteRound, &util.HandlerOpts{}))
}

type createRoundReq struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
	Location string    `json:"location" binding:"max=200"`
}

func (rr *roundRoutes) createRound(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req createRoundReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "round must end after it starts"}
	}
	roundId, err := rr.db.CreateRound(c, &db.CreateRound{
		CommunityId: communityId,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": roundId}, nil
}

func (rr *roundRoutes) listRounds(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var page db.OffsetQuery
	if err := c.BindQuery(&page); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	page.Normalize()
	rounds, total, err := rr.db.GetRounds(c, communityId, page)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"rounds":     rounds,
		"count":      len(rounds),
		"pagination": util.BuildListMeta(page.Page, page.Limit, total),
	}, nil
}

// resolveRound loads the round and gates the caller through its community
// membership.
func (rr *roundRoutes) resolveRound(c *gin.Context, required model.Role) (*model.Round, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	round, err := rr.db.GetRoundById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if round == nil {
		return nil, util.NotFoundHTTPErr
	}
	if _, httpErr := requireMembership(c, rr.db, round.CommunityId, required); httpErr != nil {
		return nil, httpErr
	}
	return round, nil
}

func (rr *roundRoutes) getRoundById(c *gin.Context) (interface{}, *util.HTTPError) {
	round, httpErr := rr.resolveRound(c, model.RoleMember)
	if httpErr != nil {
		return nil, httpErr
	}
	return round, nil
}

type updateRoundReq struct {
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
	Location *string    `json:"location" binding:"omitempty,max=200"`
}

func (rr *roundRoutes) updateRound(c *gin.Context) (interface{}, *util.HTTPError) {
	round, httpErr := rr.resolveRound(c, model.RoleAdmin)
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateRoundReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	startsAt, endsAt := round.StartsAt, round.EndsAt
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		endsAt = *req.EndsAt
	}
	if !endsAt.After(startsAt) {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "round must end after it starts"}
	}
	if err := rr.db.UpdateRound(c, round.Id, &db.UpdateRound{
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (rr *roundRoutes) deleteRound(c *gin.Context) (interface{}, *util.HTTPError) {
	round, httpErr := rr.resolveRound(c, model.RoleAdmin)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := rr.db.DeleteRound(c, round.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
