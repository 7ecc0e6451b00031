package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/middleware"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
	"github.com/studyclub-io/study-club-be/util"
)

type reactionRoutes struct {
	db db.Database
}

func AddReactionRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions) {
	routes := reactionRoutes{db: database}
	memberReactions := group.Group("/members/:memberId/reactions", middleware.Auth(database, sessions, nil))
	memberReactions.POST("", util.HandlerWrapper(routes.createReaction, &util.HandlerOpts{CreatedStatus: true}))
	memberReactions.GET("", util.HandlerWrapper(routes.listReactions, &util.HandlerOpts{}))

	reactions := group.Group("/reactions", middleware.Auth(database, sessions, nil))
	reactions.DELETE("/:id", util.HandlerWrapper(routes.deleteReaction, &util.HandlerOpts{}))
}

// resolveMember loads the target membership and requires the caller to share
// its community.
func (rr *reactionRoutes) resolveMember(c *gin.Context) (*model.CommunityMember, *util.HTTPError) {
	memberId, httpErr := util.ParseId(c.Param("memberId"))
	if httpErr != nil {
		return nil, httpErr
	}
	member, err := rr.db.GetMemberById(c, memberId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if member == nil {
		return nil, util.NotFoundHTTPErr
	}
	if _, httpErr := requireMembership(c, rr.db, member.CommunityId, model.RoleMember); httpErr != nil {
		return nil, httpErr
	}
	return member, nil
}

type createReactionReq struct {
	Text string `json:"text" binding:"required,min=1,max=200"`
}

func (rr *reactionRoutes) createReaction(c *gin.Context) (interface{}, *util.HTTPError) {
	member, httpErr := rr.resolveMember(c)
	if httpErr != nil {
		return nil, httpErr
	}
	var req createReactionReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetUser(c)
	reactionId, err := rr.db.CreateReaction(c, &model.Reaction{
		UserId:   user.Id,
		MemberId: member.Id,
		Text:     util.XSSSanitize(req.Text),
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": reactionId}, nil
}

func (rr *reactionRoutes) listReactions(c *gin.Context) (interface{}, *util.HTTPError) {
	member, httpErr := rr.resolveMember(c)
	if httpErr != nil {
		return nil, httpErr
	}
	reactions, err := rr.db.GetReactionsForMember(c, member.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return reactions, nil
}

func (rr *reactionRoutes) deleteReaction(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	reaction, err := rr.db.GetReactionById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if reaction == nil {
		return nil, util.NotFoundHTTPErr
	}
	if reaction.UserId != middleware.MustGetUser(c).Id {
		return nil, util.ForbiddenHTTPErr
	}
	if err := rr.db.DeleteReaction(c, reaction.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
