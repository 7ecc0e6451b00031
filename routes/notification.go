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

type notificationRoutes struct {
	db         db.Database
	controller *controllers.NotificationController
}

func AddNotificationRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions, controller *controllers.NotificationController) {
	routes := notificationRoutes{db: database, controller: controller}

	communityNotifications := group.Group("/communities/:id/notifications", middleware.Auth(database, sessions, nil))
	asMember := communityNotifications.Group("", middleware.RequireRole(database, model.RoleMember, "id"))
	asMember.GET("", util.HandlerWrapper(routes.listNotifications, &util.HandlerOpts{}))
	asAdmin := communityNotifications.Group("", middleware.RequireRole(database, model.RoleAdmin, "id"))
	asAdmin.POST("", util.HandlerWrapper(routes.createNotification, &util.HandlerOpts{CreatedStatus: true}))

	notifications := group.Group("/notifications", middleware.Auth(database, sessions, nil))
	notifications.PUT("/:id", util.HandlerWrapper(routes.updateNotification, &util.HandlerOpts{}))
	notifications.DELETE("/:id", util.HandlerWrapper(routes.deleteNotification, &util.HandlerOpts{}))
	notifications.POST("/:id/pin", util.HandlerWrapper(routes.pinNotification, &util.HandlerOpts{}))
	notifications.DELETE("/:id/pin", util.HandlerWrapper(routes.unpinNotification, &util.HandlerOpts{}))
}

type createNotificationReq struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,max=5000"`
}

func (nr *notificationRoutes) createNotification(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req createNotificationReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetUser(c)
	notificationId, httpErr := nr.controller.Create(c, &db.CreateNotification{
		CommunityId: communityId,
		AuthorId:    user.Id,
		Title:       req.Title,
		Content:     req.Content,
	})
	if httpErr != nil {
		return nil, httpErr
	}
	return gin.H{"id": notificationId}, nil
}

func (nr *notificationRoutes) listNotifications(c *gin.Context) (interface{}, *util.HTTPError) {
	communityId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var pq db.PageQuery
	if err := c.BindQuery(&pq); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	pq.Normalize()
	notifications, err := nr.db.GetNotifications(c, &db.NotificationsListQuery{
		CommunityId: communityId,
		Page:        pq,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return db.BuildPage(notifications, pq, pq.Cursor != "",
		func(notification *model.Notification) db.Cursor {
			return db.Cursor{Key: notification.CreatedAt, Id: notification.Id}
		}), nil
}

// resolveNotification loads the notification and gates the caller through an
// admin membership of its community.
func (nr *notificationRoutes) resolveNotification(c *gin.Context) (*model.Notification, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	notification, err := nr.db.GetNotificationById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if notification == nil {
		return nil, util.NotFoundHTTPErr
	}
	if _, httpErr := requireMembership(c, nr.db, notification.CommunityId, model.RoleAdmin); httpErr != nil {
		return nil, httpErr
	}
	return notification, nil
}

type updateNotificationReq struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" binding:"omitempty,max=5000"`
}

func (nr *notificationRoutes) updateNotification(c *gin.Context) (interface{}, *util.HTTPError) {
	notification, httpErr := nr.resolveNotification(c)
	if httpErr != nil {
		return nil, httpErr
	}
	var req updateNotificationReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return nil, nr.controller.Update(c, notification.CommunityId, notification.Id, &db.UpdateNotification{
		Title:   req.Title,
		Content: req.Content,
	})
}

func (nr *notificationRoutes) deleteNotification(c *gin.Context) (interface{}, *util.HTTPError) {
	notification, httpErr := nr.resolveNotification(c)
	if httpErr != nil {
		return nil, httpErr
	}
	return nil, nr.controller.Delete(c, notification.CommunityId, notification.Id)
}

func (nr *notificationRoutes) pinNotification(c *gin.Context) (interface{}, *util.HTTPError) {
	notification, httpErr := nr.resolveNotification(c)
	if httpErr != nil {
		return nil, httpErr
	}
	return nil, nr.controller.Pin(c, notification.CommunityId, notification.Id)
}

func (nr *notificationRoutes) unpinNotification(c *gin.Context) (interface{}, *util.HTTPError) {
	notification, httpErr := nr.resolveNotification(c)
	if httpErr != nil {
		return nil, httpErr
	}
	return nil, nr.controller.Unpin(c, notification.CommunityId, notification.Id)
}
