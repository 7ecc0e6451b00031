package mysql

import (
	"context"
	"time"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type MemberDB struct {
	sess db.Session
}

func getMemberDB(sess db.Session) *MemberDB {
	return &MemberDB{sess}
}

func (mdb *MemberDB) CreateMember(ctx context.Context, member *model.CommunityMember) (int64, error) {
	res, err := mdb.sess.SQL().
		InsertInto("community_member").
		Columns("community_id", "user_id", "role", "joined_at").
		Values(member.CommunityId, member.UserId, member.Role, time.Now()).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (mdb *MemberDB) GetMember(ctx context.Context, communityId, userId int64) (*model.CommunityMember, error) {
	return mdb.getMember(ctx, db.Cond{"community_id": communityId, "user_id": userId})
}

func (mdb *MemberDB) GetMemberById(ctx context.Context, id int64) (*model.CommunityMember, error) {
	return mdb.getMember(ctx, db.Cond{"id": id})
}

func (mdb *MemberDB) getMember(ctx context.Context, cond db.Cond) (*model.CommunityMember, error) {
	var member model.CommunityMember
	if err := mdb.sess.SQL().
		Select("*").
		From("community_member").
		Where(scope.ReadCond("community_member", appdb.OpFindOne, cond)).
		IteratorContext(ctx).
		One(&member); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

type flattenedMember struct {
	Id          int64      `db:"id"`
	CommunityId int64      `db:"community_id"`
	UserId      int64      `db:"user_id"`
	Role        model.Role `db:"role"`
	JoinedAt    time.Time  `db:"joined_at"`
	Nickname    string     `db:"nickname"`
	ImageUrl    string     `db:"image_url"`
}

func (mdb *MemberDB) GetMembers(ctx context.Context, communityId int64, page appdb.OffsetQuery) ([]*model.MemberWithUser, int64, error) {
	cond := db.Cond{"m.community_id": communityId}
	cond = scope.ReadCondAlias("community_member", "m", appdb.OpFindMany, cond)
	cond = scope.ReadCondAlias("person", "p", appdb.OpFindMany, cond)

	var flattened []flattenedMember
	if err := mdb.sess.SQL().
		Select("m.id", "m.community_id", "m.user_id", "m.role", "m.joined_at",
			"p.nickname", "p.image_url").
		From("community_member AS m").
		Join("person AS p").On("m.user_id = p.id").
		Where(cond).
		OrderBy("m.joined_at", "m.id").
		Limit(page.Limit).
		Offset(page.Offset()).
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, 0, err
	}

	total, err := mdb.sess.Collection("community_member").
		Find(scope.ReadCond("community_member", appdb.OpCount, db.Cond{"community_id": communityId})).
		Count()
	if err != nil {
		return nil, 0, err
	}

	members := make([]*model.MemberWithUser, len(flattened))
	for i, row := range flattened {
		members[i] = &model.MemberWithUser{
			CommunityMember: &model.CommunityMember{
				Id:          row.Id,
				CommunityId: row.CommunityId,
				UserId:      row.UserId,
				Role:        row.Role,
				JoinedAt:    row.JoinedAt,
			},
			Nickname: row.Nickname,
			ImageUrl: row.ImageUrl,
		}
	}
	return members, int64(total), nil
}

func (mdb *MemberDB) CountActiveAdmins(ctx context.Context, communityId int64) (int64, error) {
	count, err := mdb.sess.Collection("community_member").
		Find(scope.ReadCond("community_member", appdb.OpCount, db.Cond{
			"community_id": communityId,
			"role":         []model.Role{model.RoleAdmin, model.RoleOwner},
		})).
		Count()
	return int64(count), err
}

func (mdb *MemberDB) UpdateMemberRole(ctx context.Context, memberId int64, role model.Role) error {
	res, err := mdb.sess.SQL().
		Update("community_member").
		Set(map[string]interface{}{"role": role}).
		Where(scope.ActiveCond("community_member", db.Cond{"id": memberId})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (mdb *MemberDB) DeleteMember(ctx context.Context, memberId int64) error {
	return softDelete(ctx, mdb.sess, "community_member", db.Cond{"id": memberId})
}
