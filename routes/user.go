package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/controllers"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/middleware"
	"github.com/studyclub-io/study-club-be/services"
	"github.com/studyclub-io/study-club-be/util"
)

type userRoutes struct {
	controller *controllers.AuthController
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions, controller *controllers.AuthController) {
	routes := userRoutes{controller: controller}
	users := group.Group("/users", middleware.Auth(database, sessions, nil))
	users.GET("/me", util.HandlerWrapper(routes.getMe, &util.HandlerOpts{}))
	users.PUT("/me", util.HandlerWrapper(routes.updateMe, &util.HandlerOpts{}))
}

func (ur *userRoutes) getMe(c *gin.Context) (interface{}, *util.HTTPError) {
	return middleware.MustGetUser(c), nil
}

type updateMeReq struct {
	Username *string `json:"username" binding:"omitempty,min=2,max=64"`
	Nickname *string `json:"nickname" binding:"omitempty,min=2,max=64"`
	ImageUrl *string `json:"imageUrl" binding:"omitempty,url"`
}

func (ur *userRoutes) updateMe(c *gin.Context) (interface{}, *util.HTTPError) {
	var req updateMeReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Username == nil && req.Nickname == nil && req.ImageUrl == nil {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "nothing to update"}
	}
	user := middleware.MustGetUser(c)
	return ur.controller.UpdateProfile(c, user.Id, &db.UpdateUser{
		Username: req.Username,
		Nickname: req.Nickname,
		ImageUrl: req.ImageUrl,
	})
}
