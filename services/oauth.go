package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/studyclub-io/study-club-be/config"
	"golang.org/x/oauth2"
)

// Profile is the slice of the provider profile the application consumes.
type Profile struct {
	Id       string
	Email    string
	Nickname string
	ImageUrl string
}

// OAuthClient exchanges an authorization code for the provider profile: one
// POST for the token, one GET for the profile.
type OAuthClient struct {
	provider   string
	profileURL string
	conf       *oauth2.Config
	httpClient *http.Client
}

func NewOAuthClient(cfg *config.OAuth) *OAuthClient {
	return &OAuthClient{
		provider:   cfg.Provider,
		profileURL: cfg.ProfileURL,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientId,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (oc *OAuthClient) Provider() string {
	return oc.provider
}

func (oc *OAuthClient) AuthCodeURL(state string) string {
	return oc.conf.AuthCodeURL(state)
}

// rawProfile tolerates providers that send the id as a number or a string.
type rawProfile struct {
	Id       json.Number `json:"id"`
	Email    string      `json:"email"`
	Nickname string      `json:"nickname"`
	ImageUrl string      `json:"imageUrl"`
}

func (oc *OAuthClient) Exchange(ctx context.Context, code string) (*Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, oc.httpClient)
	token, err := oc.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return oc.fetchProfile(ctx, token)
}

func (oc *OAuthClient) fetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oc.profileURL, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	res, err := oc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch failed: status %v", res.StatusCode)
	}

	var raw rawProfile
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("profile decode failed: %w", err)
	}
	if raw.Id.String() == "" {
		return nil, fmt.Errorf("provider profile missing id")
	}
	return &Profile{
		Id:       raw.Id.String(),
		Email:    raw.Email,
		Nickname: raw.Nickname,
		ImageUrl: raw.ImageUrl,
	}, nil
}
