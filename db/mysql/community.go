package mysql

import (
	"context"
	"time"

	appdb "github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	db "github.com/upper/db/v4"
)

type CommunityDB struct {
	sess db.Session
}

func getCommunityDB(sess db.Session) *CommunityDB {
	return &CommunityDB{sess}
}

func (cdb *CommunityDB) CreateCommunity(ctx context.Context, req *appdb.CreateCommunity) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("community").
		Columns("name", "description", "is_public", "region", "sub_region", "tags", "image_url").
		Values(req.Name, req.Description, req.IsPublic, req.Region, req.SubRegion,
			model.JoinTags(req.Tags), req.ImageUrl).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (cdb *CommunityDB) GetCommunityById(ctx context.Context, id int64) (*model.Community, error) {
	var community model.Community
	if err := cdb.sess.SQL().
		Select("*").
		From("community").
		Where(scope.ReadCond("community", appdb.OpFindOne, db.Cond{"id": id})).
		IteratorContext(ctx).
		One(&community); err != nil {
		if appdb.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &community, nil
}

func (cdb *CommunityDB) UpdateCommunity(ctx context.Context, id int64, req *appdb.UpdateCommunity) error {
	assign := map[string]interface{}{}
	if req.Name != nil {
		assign["name"] = *req.Name
	}
	if req.Description != nil {
		assign["description"] = *req.Description
	}
	if req.IsPublic != nil {
		assign["is_public"] = *req.IsPublic
	}
	if req.Region != nil {
		assign["region"] = *req.Region
	}
	if req.SubRegion != nil {
		assign["sub_region"] = *req.SubRegion
	}
	if req.Tags != nil {
		assign["tags"] = model.JoinTags(req.Tags)
	}
	if req.ImageUrl != nil {
		assign["image_url"] = *req.ImageUrl
	}
	if len(assign) == 0 {
		return nil
	}
	res, err := cdb.sess.SQL().
		Update("community").
		Set(assign).
		Where(scope.ActiveCond("community", db.Cond{"id": id})).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (cdb *CommunityDB) DeleteCommunity(ctx context.Context, id int64) error {
	return softDelete(ctx, cdb.sess, "community", db.Cond{"id": id})
}

type flattenedCommunity struct {
	Id          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	IsPublic    bool       `db:"is_public"`
	Region      string     `db:"region"`
	SubRegion   string     `db:"sub_region"`
	TagsStr     string     `db:"tags"`
	ImageUrl    string     `db:"image_url"`
	CreatedAt   time.Time  `db:"created_at"`
	MemberCount int64      `db:"member_count"`
}

var communityColumns = []interface{}{
	"c.id",
	"c.name",
	"c.description",
	"c.is_public",
	"c.region",
	"c.sub_region",
	"c.tags",
	"c.image_url",
	"c.created_at",
	db.Raw("COUNT(m.id) AS member_count"),
}

func (cdb *CommunityDB) SearchCommunities(ctx context.Context, query *appdb.CommunitySearchQuery) ([]*model.CommunityWithMemberCount, error) {
	cursor, err := appdb.DecodeCursor(query.Page.Cursor)
	if err != nil {
		return nil, err
	}

	cond := scope.ReadCondAlias("community", "c", appdb.OpFindMany, db.Cond{"c.is_public": true})
	sel := cdb.sess.SQL().
		Select(communityColumns...).
		From("community AS c").
		LeftJoin("community_member AS m").On("m.community_id = c.id AND m.deleted_at IS NULL").
		Where(cond)
	if query.Term != "" {
		sel = sel.And("c.name LIKE ?", "%"+query.Term+"%")
	}
	if query.Region != "" {
		sel = sel.And("c.region = ?", query.Region)
	}
	if query.Tag != "" {
		sel = sel.And("FIND_IN_SET(?, c.tags) > 0", query.Tag)
	}
	if seek := appdb.CursorCond(cursor, query.Page.Direction, "c.created_at", "c.id"); seek != nil {
		sel = sel.And(seek)
	}

	var flattened []flattenedCommunity
	if err := sel.
		GroupBy("c.id").
		OrderBy(query.Page.OrderBy("c.created_at", "c.id")...).
		Limit(query.Page.FetchLimit()).
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	return buildCommunitiesFromFlattened(flattened), nil
}

// GetPublicCommunities returns every active public community; the directory
// cache refreshes from it.
func (cdb *CommunityDB) GetPublicCommunities(ctx context.Context) ([]*model.CommunityWithMemberCount, error) {
	var flattened []flattenedCommunity
	if err := cdb.sess.SQL().
		Select(communityColumns...).
		From("community AS c").
		LeftJoin("community_member AS m").On("m.community_id = c.id AND m.deleted_at IS NULL").
		Where(scope.ReadCondAlias("community", "c", appdb.OpFindMany, db.Cond{"c.is_public": true})).
		GroupBy("c.id").
		OrderBy("c.created_at", "c.id").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	return buildCommunitiesFromFlattened(flattened), nil
}

func buildCommunitiesFromFlattened(flattened []flattenedCommunity) []*model.CommunityWithMemberCount {
	communities := make([]*model.CommunityWithMemberCount, len(flattened))
	for i, row := range flattened {
		communities[i] = &model.CommunityWithMemberCount{
			Community: &model.Community{
				Id:          row.Id,
				Name:        row.Name,
				Description: row.Description,
				IsPublic:    row.IsPublic,
				Region:      row.Region,
				SubRegion:   row.SubRegion,
				TagsStr:     row.TagsStr,
				ImageUrl:    row.ImageUrl,
				CreatedAt:   row.CreatedAt,
			},
			MemberCount: row.MemberCount,
		}
	}
	return communities
}
