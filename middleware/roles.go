package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
)

const MEMBER_KEY = "membership"

// RequireRole is the single capability check every community-scoped mutating
// route goes through: it loads the caller's active membership for the
// community in the path and compares it against the required role. One policy,
// applied uniformly, instead of per-handler re-derivation.
func RequireRole(memberDB db.MemberDatabase, required model.Role, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		communityId, err := strconv.ParseInt(c.Param(idParam), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "id malformed",
			})
			c.Abort()
			return
		}
		user := MustGetUser(c)
		member, err := memberDB.GetMember(c, communityId, user.Id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if member == nil || !member.Role.Admits(required) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient role",
			})
			c.Abort()
			return
		}
		c.Set(MEMBER_KEY, member)
	}
}

// MustGetMembership returns the caller's membership; only valid behind
// RequireRole.
func MustGetMembership(c *gin.Context) *model.CommunityMember {
	member, _ := c.Get(MEMBER_KEY)
	return member.(*model.CommunityMember)
}
