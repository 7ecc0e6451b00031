package controllers

import (
	"context"

	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/util"
)

type NotificationController struct {
	notifications db.NotificationDatabase
}

func NewNotificationController(notifications db.NotificationDatabase) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) Create(c context.Context, req *db.CreateNotification) (int64, *util.HTTPError) {
	req.Title = util.XSSSanitize(req.Title)
	req.Content = util.XSSSanitize(req.Content)
	notificationId, err := nc.notifications.CreateNotification(c, req)
	if err != nil {
		return -1, util.BuildDbHTTPErr(err)
	}
	return notificationId, nil
}

func (nc *NotificationController) Update(c context.Context, communityId, id int64, req *db.UpdateNotification) *util.HTTPError {
	if httpErr := nc.requireInCommunity(c, communityId, id); httpErr != nil {
		return httpErr
	}
	if req.Title != nil {
		sanitized := util.XSSSanitize(*req.Title)
		req.Title = &sanitized
	}
	if req.Content != nil {
		sanitized := util.XSSSanitize(*req.Content)
		req.Content = &sanitized
	}
	if err := nc.notifications.UpdateNotification(c, id, req); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

// Pin makes the notification the community's single pinned one, unpinning the
// current holder first. The two writes are not transactional. Concurrent pins
// can briefly leave two pinned rows, resolved by the next pin.
func (nc *NotificationController) Pin(c context.Context, communityId, id int64) *util.HTTPError {
	if httpErr := nc.requireInCommunity(c, communityId, id); httpErr != nil {
		return httpErr
	}
	current, err := nc.notifications.GetPinnedNotification(c, communityId)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if current != nil {
		if current.Id == id {
			return nil
		}
		if err := nc.notifications.SetNotificationPinned(c, current.Id, false); err != nil {
			return util.BuildDbHTTPErr(err)
		}
	}
	if err := nc.notifications.SetNotificationPinned(c, id, true); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

func (nc *NotificationController) Unpin(c context.Context, communityId, id int64) *util.HTTPError {
	if httpErr := nc.requireInCommunity(c, communityId, id); httpErr != nil {
		return httpErr
	}
	if err := nc.notifications.SetNotificationPinned(c, id, false); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

func (nc *NotificationController) Delete(c context.Context, communityId, id int64) *util.HTTPError {
	if httpErr := nc.requireInCommunity(c, communityId, id); httpErr != nil {
		return httpErr
	}
	if err := nc.notifications.DeleteNotification(c, id); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

func (nc *NotificationController) requireInCommunity(c context.Context, communityId, id int64) *util.HTTPError {
	notification, err := nc.notifications.GetNotificationById(c, id)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if notification == nil || notification.CommunityId != communityId {
		return util.NotFoundHTTPErr
	}
	return nil
}
