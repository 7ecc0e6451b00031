package mysql

import (
	"context"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type GoalDB struct {
	sess db.Session
}

func getGoalDB(sess db.Session) *GoalDB {
	return &GoalDB{sess}
}

func (gdb *GoalDB) CreateGoal(ctx context.Context, goal *model.StudyGoal) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("study_goal").
		Columns("owner_id", "community_id", "round_id", "title", "description",
			"is_team", "is_done", "starts_on", "ends_on").
		Values(goal.OwnerId, goal.CommunityId, goal.RoundId, goal.Title, goal.Description,
			goal.IsTeam, goal.IsDone, goal.StartsOn, goal.EndsOn).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GoalDB) GetGoalById(ctx context.Context, id int64) (*model.StudyGoal, error) {
	var goal model.StudyGoal
	if err := gdb.sess.SQL().
		Select("*").
		From("study_goal").
		Where(scope.ReadCond("study_goal", appdb.OpFindOne, db.Cond{"id": id})).
		IteratorContext(ctx).
		One(&goal); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (gdb *GoalDB) GetGoals(ctx context.Context, query *appdb.GoalsListQuery) ([]*model.StudyGoal, error) {
	cursor, err := appdb.DecodeCursor(query.Page.Cursor)
	if err != nil {
		return nil, err
	}

	cond := db.Cond{"owner_id": query.OwnerId}
	if query.CommunityId != 0 {
		cond["community_id"] = query.CommunityId
	}
	if query.RoundId != 0 {
		cond["round_id"] = query.RoundId
	}

	sel := gdb.sess.SQL().
		Select("*").
		From("study_goal").
		Where(scope.ReadCond("study_goal", appdb.OpFindMany, cond))
	if seek := appdb.CursorCond(cursor, query.Page.Direction, "created_at", "id"); seek != nil {
		sel = sel.And(seek)
	}

	var goals []*model.StudyGoal
	if err := sel.
		OrderBy(query.Page.OrderBy("created_at", "id")...).
		Limit(query.Page.FetchLimit()).
		IteratorContext(ctx).
		All(&goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (gdb *GoalDB) UpdateGoal(ctx context.Context, id int64, req *appdb.UpdateGoal) error {
	assign := map[string]interface{}{}
	if req.Title != nil {
		assign["title"] = *req.Title
	}
	if req.Description != nil {
		assign["description"] = *req.Description
	}
	if req.StartsOn != nil {
		assign["starts_on"] = *req.StartsOn
	}
	if req.EndsOn != nil {
		assign["ends_on"] = *req.EndsOn
	}
	if len(assign) == 0 {
		return nil
	}
	res, err := gdb.sess.SQL().
		Update("study_goal").
		Set(assign).
		Where(scope.ActiveCond("study_goal", db.Cond{"id": id})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (gdb *GoalDB) SetGoalDone(ctx context.Context, id int64, done bool) error {
	res, err := gdb.sess.SQL().
		Update("study_goal").
		Set(map[string]interface{}{"is_done": done}).
		Where(scope.ActiveCond("study_goal", db.Cond{"id": id})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (gdb *GoalDB) DeleteGoal(ctx context.Context, id int64) error {
	return softDelete(ctx, gdb.sess, "study_goal", db.Cond{"id": id})
}
