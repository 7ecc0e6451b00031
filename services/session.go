package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/studyclub-io/study-club-be/config"
	"github.com/studyclub-io/study-club-be/model"
)

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims is the signed session payload. The subject is the local user
// id; username and nickname ride along so the UI can render without a
// profile fetch.
type SessionClaims struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

func (sc *SessionClaims) UserId() (int64, error) {
	return strconv.ParseInt(sc.Subject, 10, 64)
}

// Sessions issues and verifies the HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewSessions(cfg *config.Session) *Sessions {
	return &Sessions{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTLDuration(),
		issuer: cfg.Issuer,
	}
}

func (s *Sessions) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Username: user.Username,
		Nickname: user.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.Id, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Sessions) Verify(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
