package db

import (
	"database/sql"
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
	db "github.com/upper/db/v4"
)

// ErrNotFound is returned by stores when a targeted read or write matched no
// active row; soft-deleted rows are absent for this purpose.
var ErrNotFound = errors.New("record not found")

const mysqlDupEntry = 1062

// IsDupKeyErr reports whether err is a unique-constraint violation.
func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDupEntry
}

var dupKeyPattern = regexp.MustCompile(`(for key ')((.)+)(')`)

func GetDupKey(err error) string {
	match := dupKeyPattern.FindStringSubmatch(err.Error())
	if match == nil {
		return ""
	}
	return match[2]
}

// IsNoRows reports whether err means the query matched nothing; stores map it
// to a nil row so routes can answer 404.
func IsNoRows(err error) bool {
	return errors.Is(err, db.ErrNoMoreRows) || errors.Is(err, sql.ErrNoRows)
}
