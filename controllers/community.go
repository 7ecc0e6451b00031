package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/util"
)

const DirectoryUpdateInterval = time.Minute * 20

// CommunityController owns community creation and the cached public
// directory. The snapshot is the only shared in-process state; it refreshes
// on a ticker and after every creation.
type CommunityController struct {
	db              db.CommunityDatabase
	members         db.MemberDatabase
	cachedDirectory []*model.CommunityWithMemberCount
	cacheLock       sync.Mutex
	updateTicker    *time.Ticker
}

func NewCommunityController(c context.Context, database db.CommunityDatabase, members db.MemberDatabase) (*CommunityController, error) {
	controller := &CommunityController{
		db:      database,
		members: members,
	}
	if err := controller.updateCachedDirectory(c); err != nil {
		return nil, err
	}

	updateTicker := time.NewTicker(DirectoryUpdateInterval)
	controller.updateTicker = updateTicker
	go func() {
		for range updateTicker.C {
			controller.refreshDirectoryOnce(c)
		}
	}()

	return controller, nil
}

// CreateCommunity creates the community and makes the creator its owner.
func (cc *CommunityController) CreateCommunity(c context.Context, userId int64, req *db.CreateCommunity) (int64, *util.HTTPError) {
	communityId, err := cc.db.CreateCommunity(c, req)
	if err != nil {
		return -1, util.BuildDbHTTPErr(err)
	}
	if _, err := cc.members.CreateMember(c, &model.CommunityMember{
		CommunityId: communityId,
		UserId:      userId,
		Role:        model.RoleOwner,
	}); err != nil {
		return -1, util.BuildDbHTTPErr(err)
	}
	go cc.attemptToUpdateCachedDirectory(c)

	return communityId, nil
}

func (cc *CommunityController) GetCommunityById(c context.Context, id int64) (*model.Community, *util.HTTPError) {
	community, err := cc.db.GetCommunityById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if community == nil {
		return nil, util.NotFoundHTTPErr
	}
	return community, nil
}

// Directory returns the cached public-community snapshot.
func (cc *CommunityController) Directory() []*model.CommunityWithMemberCount {
	cc.cacheLock.Lock()
	defer cc.cacheLock.Unlock()
	directory := make([]*model.CommunityWithMemberCount, len(cc.cachedDirectory))
	copy(directory, cc.cachedDirectory)
	return directory
}

func (cc *CommunityController) Search(c context.Context, query *db.CommunitySearchQuery) ([]*model.CommunityWithMemberCount, *util.HTTPError) {
	communities, err := cc.db.SearchCommunities(c, query)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return communities, nil
}

// refreshDirectoryOnce confines a panic to the tick that raised it so the
// refresher keeps running.
func (cc *CommunityController) refreshDirectoryOnce(c context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered while updating the community directory")
		}
	}()
	cc.attemptToUpdateCachedDirectory(c)
}

func (cc *CommunityController) attemptToUpdateCachedDirectory(c context.Context) {
	if err := cc.updateCachedDirectory(c); err != nil {
		log.Error().Err(err).Msg("an error occurred while updating the community directory")
	}
}

func (cc *CommunityController) updateCachedDirectory(c context.Context) error {
	communities, err := cc.db.GetPublicCommunities(c)
	if err != nil {
		return err
	}

	cc.cacheLock.Lock()
	defer cc.cacheLock.Unlock()
	cc.cachedDirectory = communities
	return nil
}
