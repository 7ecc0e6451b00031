package mysql

import (
	"context"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type ReactionDB struct {
	sess db.Session
}

func getReactionDB(sess db.Session) *ReactionDB {
	return &ReactionDB{sess}
}

func (rdb *ReactionDB) CreateReaction(ctx context.Context, reaction *model.Reaction) (int64, error) {
	res, err := rdb.sess.SQL().
		InsertInto("reaction").
		Columns("user_id", "member_id", "text").
		Values(reaction.UserId, reaction.MemberId, reaction.Text).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (rdb *ReactionDB) GetReactionById(ctx context.Context, id int64) (*model.Reaction, error) {
	var reaction model.Reaction
	if err := rdb.sess.SQL().
		Select("*").
		From("reaction").
		Where(scope.ReadCond("reaction", appdb.OpFindOne, db.Cond{"id": id})).
		IteratorContext(ctx).
		One(&reaction); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (rdb *ReactionDB) GetReactionsForMember(ctx context.Context, memberId int64) ([]*model.Reaction, error) {
	var reactions []*model.Reaction
	err := rdb.sess.SQL().
		Select("*").
		From("reaction").
		Where(scope.ReadCond("reaction", appdb.OpFindMany, db.Cond{"member_id": memberId})).
		OrderBy("created_at", "id").
		IteratorContext(ctx).
		All(&reactions)
	return reactions, err
}

func (rdb *ReactionDB) DeleteReaction(ctx context.Context, id int64) error {
	return softDelete(ctx, rdb.sess, "reaction", db.Cond{"id": id})
}
