package services

import (
	"strings"
	"testing"
	"time"

	"github.com/studyclub-io/study-club-be/config"
	"github.com/studyclub-io/study-club-be/model"
)

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions(&config.Session{Secret: "s3cret", TTL: "1h", Issuer: "studyclub"})
	user := &model.User{Id: 17, Username: "kim", Nickname: "Kim"}

	token, err := sessions.Issue(user)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := sessions.Verify(token)
	if err != nil {
		t.Fatalf("own token failed to verify: %v", err)
	}
	userId, err := claims.UserId()
	if err != nil || userId != 17 {
		t.Errorf("subject round trip: %v, %v", userId, err)
	}
	if claims.Nickname != "Kim" || claims.Username != "kim" {
		t.Errorf("profile claims lost: %+v", claims)
	}
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	sessions := NewSessions(&config.Session{Secret: "s3cret", TTL: "1h", Issuer: "studyclub"})
	token, err := sessions.Issue(&model.User{Id: 17})
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := sessions.Verify(tampered); err == nil {
		t.Error("tampered signature accepted")
	}
}

func TestSessionRejectsForeignIssuer(t *testing.T) {
	ours := NewSessions(&config.Session{Secret: "s3cret", TTL: "1h", Issuer: "studyclub"})
	theirs := NewSessions(&config.Session{Secret: "s3cret", TTL: "1h", Issuer: "someone-else"})

	token, err := theirs.Issue(&model.User{Id: 17})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ours.Verify(token); err == nil {
		t.Error("token from another issuer accepted")
	}
}

func TestSessionExpiry(t *testing.T) {
	sessions := NewSessions(&config.Session{Secret: "s3cret", TTL: "1h", Issuer: "studyclub"})
	sessions.ttl = -time.Minute

	token, err := sessions.Issue(&model.User{Id: 17})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sessions.Verify(token); err == nil {
		t.Error("expired token accepted")
	}
}
