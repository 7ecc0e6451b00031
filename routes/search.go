package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/controllers"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/util"
)

type searchRoutes struct {
	controller *controllers.CommunityController
}

func AddSearchRoutes(group *gin.RouterGroup, controller *controllers.CommunityController) {
	routes := searchRoutes{controller: controller}
	search := group.Group("/search")
	search.GET("/communities", util.HandlerWrapper(routes.searchCommunities, &util.HandlerOpts{}))
}

type searchCommunitiesReq struct {
	Term   string `form:"q"`
	Region string `form:"region"`
	Tag    string `form:"tag"`
	db.PageQuery
}

func (sr *searchRoutes) searchCommunities(c *gin.Context) (interface{}, *util.HTTPError) {
	var req searchCommunitiesReq
	if err := c.BindQuery(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	req.PageQuery.Normalize()
	communities, httpErr := sr.controller.Search(c, &db.CommunitySearchQuery{
		Term:   req.Term,
		Region: req.Region,
		Tag:    req.Tag,
		Page:   req.PageQuery,
	})
	if httpErr != nil {
		return nil, httpErr
	}
	return db.BuildPage(communities, req.PageQuery, req.PageQuery.Cursor != "",
		func(community *model.CommunityWithMemberCount) db.Cursor {
			return db.Cursor{Key: community.CreatedAt, Id: community.Id}
		}), nil
}
