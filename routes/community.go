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

type communityRoutes struct {
	db         db.Database
	controller *controllers.CommunityController
}

func AddCommunityRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions, controller *controllers.CommunityController) {
	routes := communityRoutes{db: database, controller: controller}
	communities := group.Group("/communities")
	communities.GET("", util.HandlerWrapper(routes.directory, &util.HandlerOpts{}))
	communities.GET("/:id", util.HandlerWrapper(routes.getCommunityById, &util.HandlerOpts{}))

	authed := communities.Group("", middleware.Auth(database, sessions, nil))
	authed.POST("", util.HandlerWrapper(routes.createCommunity, &util.HandlerOpts{CreatedStatus: true}))
	admin := authed.Group("", middleware.RequireRole(database, model.RoleAdmin, "id"))
	admin.PUT("/:id", util.HandlerWrapper(routes.updateCommunity, &util.HandlerOpts{}))
	admin.DELETE("/:id", util.HandlerWrapper(routes.deleteCommunity, &util.HandlerOpts{}))
}

type createCommunityReq struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description" binding:"max=2000"`
	IsPublic    bool     `json:"isPublic"`
	Region      string   `json:"region" binding:"max=100"`
	SubRegion   string   `json:"subRegion" binding:"max=100"`
	Tags        []string `json:"tags" binding:"max=10,dive,min=1,max=30"`
	ImageUrl    string   `json:"imageUrl" binding:"omitempty,url"`
}

func (cr *communityRoutes) createCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createCommunityReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetUser(c)
	communityId, httpErr := cr.controller.CreateCommunity(c, user.Id, &db.CreateCommunity{
		Name:        util.XSSSanitize(req.Name),
		Description: util.XSSSanitize(req.Description),
		IsPublic:    req.IsPublic,
		Region:      req.Region,
		SubRegion:   req.SubRegion,
		Tags:        req.Tags,
		ImageUrl:    req.ImageUrl,
	})
	if httpErr != nil {
		return nil, httpErr
	}
	return gin.H{"id": communityId}, nil
}

func (cr *communityRoutes) directory(c *gin.Context) (interface{}, *util.HTTPError) {
	return cr.controller.Directory(), nil
}

func (cr *communityRoutes) getCommunityById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	return cr.controller.GetCommunityById(c, id)
}

type updateCommunityReq struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	IsPublic    *bool    `json:"isPublic"`
	Region      *string  `json:"region" binding:"omitempty,max=100"`
	SubRegion   *string  `json:"subRegion" binding:"omitempty,max=100"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
	ImageUrl    *string  `json:"imageUrl" binding:"omitempty,url"`
}

func (cr *communityRoutes) updateCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateCommunityReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Name != nil {
		sanitized := util.XSSSanitize(*req.Name)
		req.Name = &sanitized
	}
	if req.Description != nil {
		sanitized := util.XSSSanitize(*req.Description)
		req.Description = &sanitized
	}
	if err := cr.db.UpdateCommunity(c, id, &db.UpdateCommunity{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Region:      req.Region,
		SubRegion:   req.SubRegion,
		Tags:        req.Tags,
		ImageUrl:    req.ImageUrl,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (cr *communityRoutes) deleteCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := cr.db.DeleteCommunity(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
