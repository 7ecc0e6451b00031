package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/middleware"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/util"
)

// requireMembership mirrors middleware.RequireRole for routes whose path
// carries an entity id instead of a community id. The caller resolves the
// community first, then gates through here.
func requireMembership(c *gin.Context, members db.MemberDatabase, communityId int64, required model.Role) (*model.CommunityMember, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	member, err := members.GetMember(c, communityId, user.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if member == nil || !member.Role.Admits(required) {
		return nil, util.ForbiddenHTTPErr
	}
	return member, nil
}
