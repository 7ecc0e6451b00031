package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/studyclub-io/study-club-be/db"
)

func TestBuildDbHTTPErrTaxonomy(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{db.ErrBadCursor, http.StatusBadRequest},
		{fmt.Errorf("listing goals: %w", db.ErrBadCursor), http.StatusBadRequest},
		{db.ErrNotFound, http.StatusNotFound},
		{&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, http.StatusConflict},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if httpErr := BuildDbHTTPErr(tt.err); httpErr.Status != tt.status {
			t.Errorf("BuildDbHTTPErr(%v) = %v, want %v", tt.err, httpErr.Status, tt.status)
		}
	}
}

func TestBuildDbHTTPErrKeepsCauseForLogging(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	httpErr := BuildDbHTTPErr(cause)
	if httpErr.Cause != cause {
		t.Error("original error lost")
	}
	if httpErr.Message != "database error" {
		t.Errorf("client-facing message should be opaque, got %q", httpErr.Message)
	}
}

func TestParseId(t *testing.T) {
	id, httpErr := ParseId("42")
	if httpErr != nil || id != 42 {
		t.Errorf("ParseId(42) = %v, %v", id, httpErr)
	}
	for _, raw := range []string{"", "abc", "4.2"} {
		if _, httpErr := ParseId(raw); httpErr == nil || httpErr.Status != http.StatusBadRequest {
			t.Errorf("ParseId(%q) should be 400, got %v", raw, httpErr)
		}
	}
}

func TestXSSSanitize(t *testing.T) {
	if got := XSSSanitize(`hi <script>alert("x")</script>`); got != "hi " {
		t.Errorf("script not stripped: %q", got)
	}
	if got := XSSSanitize("plain & simple"); got != "plain & simple" {
		t.Errorf("plain text mangled: %q", got)
	}
}
