package controllers

import (
	"context"
	"net/http"

	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
	"github.com/studyclub-io/study-club-be/services"
	"github.com/studyclub-io/study-club-be/util"
)

type AuthController struct {
	users    db.UserDatabase
	oauth    *services.OAuthClient
	sessions *services.Sessions
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func NewAuthController(users db.UserDatabase, oauth *services.OAuthClient, sessions *services.Sessions) *AuthController {
	return &AuthController{
		users:    users,
		oauth:    oauth,
		sessions: sessions,
	}
}

func (ac *AuthController) LoginURL(state string) string {
	return ac.oauth.AuthCodeURL(state)
}

// Callback exchanges the provider code, provisions a local account on first
// login, and issues a session token.
func (ac *AuthController) Callback(c context.Context, code string) (*LoginResult, *util.HTTPError) {
	profile, err := ac.oauth.Exchange(c, code)
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusUnauthorized,
			Message: "could not verify the login with the provider",
			Cause:   err,
		}
	}

	user, err := ac.users.GetUserByProvider(c, ac.oauth.Provider(), profile.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		user, err = ac.provisionUser(c, profile)
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
		if user == nil {
			return nil, util.BuildDbHTTPErr(db.ErrNotFound)
		}
	}

	token, err := ac.sessions.Issue(user)
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "could not issue a session",
			Cause:   err,
		}
	}
	return &LoginResult{Token: token, User: user}, nil
}

// UpdateProfile applies the edit and re-issues the token so the session
// claims track the profile.
func (ac *AuthController) UpdateProfile(c context.Context, userId int64, req *db.UpdateUser) (*LoginResult, *util.HTTPError) {
	if req.Nickname != nil {
		sanitized := util.XSSSanitize(*req.Nickname)
		req.Nickname = &sanitized
	}
	if err := ac.users.UpdateUser(c, userId, req); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	user, err := ac.users.GetUserById(c, userId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return nil, util.NotFoundHTTPErr
	}
	token, err := ac.sessions.Issue(user)
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "could not issue a session",
			Cause:   err,
		}
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (ac *AuthController) provisionUser(c context.Context, profile *services.Profile) (*model.User, error) {
	nickname := profile.Nickname
	if nickname == "" {
		nickname = util.GenerateNickname()
	}
	imageUrl := profile.ImageUrl
	if imageUrl == "" {
		imageUrl = util.Avatar(profile.Id)
	}
	user := &model.User{
		Email:      profile.Email,
		Username:   nickname,
		Nickname:   nickname,
		Provider:   ac.oauth.Provider(),
		ProviderId: profile.Id,
		ImageUrl:   imageUrl,
	}
	userId, err := ac.users.CreateUser(c, user)
	if err != nil {
		// A concurrent first login can win the insert. Re-read the winner.
		if db.IsDupKeyErr(err) {
			return ac.users.GetUserByProvider(c, ac.oauth.Provider(), profile.Id)
		}
		return nil, err
	}
	user.Id = userId
	return user, nil
}
