package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
)

const (
	CLAIMS_KEY = "sessionClaims"
	USER_KEY   = "user"
)

type AuthConfig struct {
	sessionNotRequired bool
	profileNotRequired bool
}

// OptionalAuth admits unauthenticated requests but still resolves the user
// when a valid session is presented.
func OptionalAuth() *AuthConfig {
	return &AuthConfig{sessionNotRequired: true, profileNotRequired: true}
}

// Auth resolves the current user from the session token and loads the active
// local profile. A soft-deleted account is absent here like everywhere else.
func Auth(userDB db.UserDatabase, sessions *services.Sessions, config *AuthConfig) gin.HandlerFunc {
	if config == nil {
		config = &AuthConfig{}
	}
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			if config.sessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		claims, err := sessions.Verify(authorizationHeader[0][7:])
		if err != nil {
			if config.sessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}
		c.Set(CLAIMS_KEY, claims)

		userId, err := claims.UserId()
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}
		user, err := userDB.GetUserById(c, userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "could not load the user profile",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.profileNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

func GetClaims(c *gin.Context) *services.SessionClaims {
	claims, _ := c.Get(CLAIMS_KEY)
	return claims.(*services.SessionClaims)
}

// MustGetUser returns the resolved user; only valid behind a required Auth.
func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}

// GetUserMaybe returns the resolved user or nil behind an OptionalAuth.
func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}
