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

type memberRoutes struct {
	db         db.Database
	controller *controllers.MembershipController
}

func AddMemberRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions, controller *controllers.MembershipController) {
	routes := memberRoutes{db: database, controller: controller}
	members := group.Group("/communities/:id/members", middleware.Auth(database, sessions, nil))
	members.POST("", util.HandlerWrapper(routes.join, &util.HandlerOpts{CreatedStatus: true}))

	asMember := members.Group("", middleware.RequireRole(database, model.RoleMember, "id"))
	asMember.GET("", util.HandlerWrapper(routes.listMembers, &util.HandlerOpts{}))
	asMember.DELETE("/me", util.HandlerWrapper(routes.leave, &util.HandlerOpts{}))

	asAdmin := members.Group("", middleware.RequireRole(database, model.RoleAdmin, "id"))
	asAdmin.PUT("/:memberId/role", util.HandlerWrapper(routes.changeRole, &util.HandlerOpts{}))
}

func (mr *memberRoutes) join(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	community, err := mr.db.GetCommunityById(c, communityId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if community == nil {
		return nil, util.NotFoundHTTPErr
	}
	user := middleware.MustGetUser(c)
	memberId, httpErr := mr.controller.Join(c, communityId, user.Id)
	if httpErr != nil {
		return nil, httpErr
	}
	return gin.H{"id": memberId}, nil
}

func (mr *memberRoutes) leave(c *gin.Context) (interface{}, *util.HTTPError) {
	return nil, mr.controller.Leave(c, middleware.MustGetMembership(c))
}

func (mr *memberRoutes) listMembers(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var page db.OffsetQuery
	if err := c.BindQuery(&page); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	page.Normalize()
	members, total, err := mr.db.GetMembers(c, communityId, page)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"members":    members,
		"count":      len(members),
		"pagination": util.BuildListMeta(page.Page, page.Limit, total),
	}, nil
}

type changeRoleReq struct {
	Role model.Role `json:"role" binding:"required,memberrole"`
}

func (mr *memberRoutes) changeRole(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	memberId, httpErr := util.ParseId(c.Param("memberId"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req changeRoleReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return nil, mr.controller.ChangeRole(c, communityId, memberId, req.Role)
}
