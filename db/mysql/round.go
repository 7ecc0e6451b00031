package mysql

import (
	"context"
	"database/sql"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type RoundDB struct {
	sess db.Session
}

func getRoundDB(sess db.Session) *RoundDB {
	return &RoundDB{sess}
}

// CreateRound assigns seq_no as max+1 within the community inside a
// transaction; the row lock keeps two concurrent creations from sharing a
// sequence number.
func (rdb *RoundDB) CreateRound(ctx context.Context, req *appdb.CreateRound) (int64, error) {
	var roundId int64
	err := rdb.sess.TxContext(ctx, func(sess db.Session) error {
		row, err := sess.SQL().QueryRowContext(ctx, `SELECT COALESCE(MAX(seq_no), 0) FROM round
															WHERE community_id = ? AND deleted_at IS NULL
														FOR UPDATE`,
			req.CommunityId)
		if err != nil {
			return err
		}
		var maxSeq int64
		if err := row.Scan(&maxSeq); err != nil {
			return err
		}

		res, err := sess.SQL().
			InsertInto("round").
			Columns("community_id", "seq_no", "starts_at", "ends_at", "location").
			Values(req.CommunityId, maxSeq+1, req.StartsAt, req.EndsAt, req.Location).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		roundId, err = res.LastInsertId()
		return err
	}, &sql.TxOptions{})
	return roundId, err
}

func (rdb *RoundDB) GetRoundById(ctx context.Context, id int64) (*model.Round, error) {
	var round model.Round
	if err := rdb.sess.SQL().
		Select("*").
		From("round").
		Where(scope.ReadCond("round", appdb.OpFindOne, db.Cond{"id": id})).
		IteratorContext(ctx).
		One(&round); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &round, nil
}

func (rdb *RoundDB) GetRounds(ctx context.Context, communityId int64, page appdb.OffsetQuery) ([]*model.Round, int64, error) {
	cond := scope.ReadCond("round", appdb.OpFindMany, db.Cond{"community_id": communityId})

	var rounds []*model.Round
	if err := rdb.sess.SQL().
		Select("*").
		From("round").
		Where(cond).
		OrderBy("seq_no").
		Limit(page.Limit).
		Offset(page.Offset()).
		IteratorContext(ctx).
		All(&rounds); err != nil {
		return nil, 0, err
	}

	total, err := rdb.sess.Collection("round").
		Find(scope.ReadCond("round", appdb.OpCount, db.Cond{"community_id": communityId})).
		Count()
	if err != nil {
		return nil, 0, err
	}
	return rounds, int64(total), nil
}

func (rdb *RoundDB) UpdateRound(ctx context.Context, id int64, req *appdb.UpdateRound) error {
	assign := map[string]interface{}{}
	if req.StartsAt != nil {
		assign["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		assign["ends_at"] = *req.EndsAt
	}
	if req.Location != nil {
		assign["location"] = *req.Location
	}
	if len(assign) == 0 {
		return nil
	}
	res, err := rdb.sess.SQL().
		Update("round").
		Set(assign).
		Where(scope.ActiveCond("round", db.Cond{"id": id})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (rdb *RoundDB) DeleteRound(ctx context.Context, id int64) error {
	return softDelete(ctx, rdb.sess, "round", db.Cond{"id": id})
}
