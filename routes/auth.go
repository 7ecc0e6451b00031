package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studyclub-io/study-club-be/controllers"
	"github.com/studyclub-io/study-club-be/util"
)

type authRoutes struct {
	controller *controllers.AuthController
}

func AddAuthRoutes(group *gin.RouterGroup, controller *controllers.AuthController) {
	routes := authRoutes{controller: controller}
	auth := group.Group("/auth")
	auth.GET("/login-url", util.HandlerWrapper(routes.loginURL, &util.HandlerOpts{}))
	auth.POST("/callback", util.HandlerWrapper(routes.callback, &util.HandlerOpts{}))
}

func (ar *authRoutes) loginURL(c *gin.Context) (interface{}, *util.HTTPError) {
	state := uuid.NewString()
	return gin.H{
		"url":   ar.controller.LoginURL(state),
		"state": state,
	}, nil
}

type callbackReq struct {
	Code string `json:"code" binding:"required"`
}

func (ar *authRoutes) callback(c *gin.Context) (interface{}, *util.HTTPError) {
	var req callbackReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return ar.controller.Callback(c, req.Code)
}
