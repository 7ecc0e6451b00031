package controllers

import (
	"context"
	"net/http"

	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/util"
)

type MembershipController struct {
	members db.MemberDatabase
}

func NewMembershipController(members db.MemberDatabase) *MembershipController {
	return &MembershipController{members: members}
}

// Join adds the user to the community as a plain member. Re-joining while an
// active membership exists conflicts.
func (mc *MembershipController) Join(c context.Context, communityId, userId int64) (int64, *util.HTTPError) {
	existing, err := mc.members.GetMember(c, communityId, userId)
	if err != nil {
		return -1, util.BuildDbHTTPErr(err)
	}
	if existing != nil {
		return -1, &util.HTTPError{Status: http.StatusConflict, Message: "already a member"}
	}
	memberId, err := mc.members.CreateMember(c, &model.CommunityMember{
		CommunityId: communityId,
		UserId:      userId,
		Role:        model.RoleMember,
	})
	if err != nil {
		return -1, util.BuildDbHTTPErr(err)
	}
	return memberId, nil
}

// Leave soft-deletes the caller's membership. The last admin-grade member of a
// community cannot leave until another admin exists.
func (mc *MembershipController) Leave(c context.Context, membership *model.CommunityMember) *util.HTTPError {
	if membership.Role.AdminGrade() {
		admins, err := mc.members.CountActiveAdmins(c, membership.CommunityId)
		if err != nil {
			return util.BuildDbHTTPErr(err)
		}
		if admins <= 1 {
			return &util.HTTPError{Status: http.StatusConflict, Message: "cannot leave as the last admin"}
		}
	}
	if err := mc.members.DeleteMember(c, membership.Id); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

// ChangeRole sets a member's role. Demoting the last admin-grade member is
// blocked for the same reason leaving is.
func (mc *MembershipController) ChangeRole(c context.Context, communityId, memberId int64, role model.Role) *util.HTTPError {
	target, err := mc.members.GetMemberById(c, memberId)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if target == nil || target.CommunityId != communityId {
		return util.NotFoundHTTPErr
	}
	if target.Role == role {
		return nil
	}
	if target.Role.AdminGrade() && !role.AdminGrade() {
		admins, err := mc.members.CountActiveAdmins(c, communityId)
		if err != nil {
			return util.BuildDbHTTPErr(err)
		}
		if admins <= 1 {
			return &util.HTTPError{Status: http.StatusConflict, Message: "cannot demote the last admin"}
		}
	}
	if err := mc.members.UpdateMemberRole(c, memberId, role); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}
