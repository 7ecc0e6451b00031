package mysql

import (
	"context"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	res, err := udb.sess.SQL().
		InsertInto("person").
		Columns("email", "username", "nickname", "provider", "provider_id", "image_url").
		Values(user.Email, user.Username, user.Nickname, user.Provider, user.ProviderId, user.ImageUrl).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (udb *UserDB) GetUserById(ctx context.Context, id int64) (*model.User, error) {
	return udb.getUser(ctx, db.Cond{"id": id})
}

func (udb *UserDB) GetUserByProvider(ctx context.Context, provider, providerId string) (*model.User, error) {
	return udb.getUser(ctx, db.Cond{"provider": provider, "provider_id": providerId})
}

func (udb *UserDB) getUser(ctx context.Context, cond db.Cond) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("person").
		Where(scope.ReadCond("person", appdb.OpFindOne, cond)).
		IteratorContext(ctx).
		One(&user); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (udb *UserDB) UpdateUser(ctx context.Context, id int64, req *appdb.UpdateUser) error {
	assign := map[string]interface{}{}
	if req.Username != nil {
		assign["username"] = *req.Username
	}
	if req.Nickname != nil {
		assign["nickname"] = *req.Nickname
	}
	if req.ImageUrl != nil {
		assign["image_url"] = *req.ImageUrl
	}
	if len(assign) == 0 {
		return nil
	}
	res, err := udb.sess.SQL().
		Update("person").
		Set(assign).
		Where(scope.ActiveCond("person", db.Cond{"id": id})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
