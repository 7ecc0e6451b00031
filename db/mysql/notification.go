package mysql

import (
	"context"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type NotificationDB struct {
	sess db.Session
}

func getNotificationDB(sess db.Session) *NotificationDB {
	return &NotificationDB{sess}
}

func (ndb *NotificationDB) CreateNotification(ctx context.Context, req *appdb.CreateNotification) (int64, error) {
	res, err := ndb.sess.SQL().
		InsertInto("notification").
		Columns("community_id", "author_id", "title", "content", "is_pinned").
		Values(req.CommunityId, req.AuthorId, req.Title, req.Content, false).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (ndb *NotificationDB) GetNotificationById(ctx context.Context, id int64) (*model.Notification, error) {
	return ndb.getNotification(ctx, db.Cond{"id": id})
}

func (ndb *NotificationDB) GetPinnedNotification(ctx context.Context, communityId int64) (*model.Notification, error) {
	return ndb.getNotification(ctx, db.Cond{"community_id": communityId, "is_pinned": true})
}

func (ndb *NotificationDB) getNotification(ctx context.Context, cond db.Cond) (*model.Notification, error) {
	var notification model.Notification
	if err := ndb.sess.SQL().
		Select("*").
		From("notification").
		Where(scope.ReadCond("notification", appdb.OpFindOne, cond)).
		IteratorContext(ctx).
		One(&notification); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (ndb *NotificationDB) GetNotifications(ctx context.Context, query *appdb.NotificationsListQuery) ([]*model.Notification, error) {
	cursor, err := appdb.DecodeCursor(query.Page.Cursor)
	if err != nil {
		return nil, err
	}

	sel := ndb.sess.SQL().
		Select("*").
		From("notification").
		Where(scope.ReadCond("notification", appdb.OpFindMany, db.Cond{"community_id": query.CommunityId}))
	if seek := appdb.CursorCond(cursor, query.Page.Direction, "created_at", "id"); seek != nil {
		sel = sel.And(seek)
	}

	var notifications []*model.Notification
	if err := sel.
		OrderBy(query.Page.OrderBy("created_at", "id")...).
		Limit(query.Page.FetchLimit()).
		IteratorContext(ctx).
		All(&notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (ndb *NotificationDB) UpdateNotification(ctx context.Context, id int64, req *appdb.UpdateNotification) error {
	assign := map[string]interface{}{}
	if req.Title != nil {
		assign["title"] = *req.Title
	}
	if req.Content != nil {
		assign["content"] = *req.Content
	}
	if len(assign) == 0 {
		return nil
	}
	res, err := ndb.sess.SQL().
		Update("notification").
		Set(assign).
		Where(scope.ActiveCond("notification", db.Cond{"id": id})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (ndb *NotificationDB) SetNotificationPinned(ctx context.Context, id int64, pinned bool) error {
	res, err := ndb.sess.SQL().
		Update("notification").
		Set(map[string]interface{}{"is_pinned": pinned}).
		Where(scope.ActiveCond("notification", db.Cond{"id": id})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (ndb *NotificationDB) DeleteNotification(ctx context.Context, id int64) error {
	return softDelete(ctx, ndb.sess, "notification", db.Cond{"id": id})
}
