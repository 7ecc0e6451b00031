package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	db "github.com/upper/db/v4"
)

func TestIsDupKeyErr(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-10' for key 'membership'"}
	if !IsDupKeyErr(dup) {
		t.Error("duplicate-entry error not recognized")
	}
	if !IsDupKeyErr(fmt.Errorf("creating member: %w", dup)) {
		t.Error("wrapped duplicate-entry error not recognized")
	}
	if IsDupKeyErr(&mysql.MySQLError{Number: 1451}) {
		t.Error("unrelated mysql error treated as duplicate")
	}
	if IsDupKeyErr(errors.New("duplicate")) {
		t.Error("plain error treated as duplicate")
	}
}

func TestGetDupKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-10' for key 'membership'"}
	if key := GetDupKey(dup); key != "membership" {
		t.Errorf("expected key name, got %q", key)
	}
	if key := GetDupKey(errors.New("no key here")); key != "" {
		t.Errorf("expected empty key, got %q", key)
	}
}

func TestIsNoRows(t *testing.T) {
	for _, err := range []error{db.ErrNoMoreRows, sql.ErrNoRows, fmt.Errorf("loading: %w", db.ErrNoMoreRows)} {
		if !IsNoRows(err) {
			t.Errorf("%v should read as no rows", err)
		}
	}
	if IsNoRows(errors.New("boom")) {
		t.Error("arbitrary error treated as no rows")
	}
}
