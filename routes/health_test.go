package routes

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
)

// pingDriver hands out connections whose ping outcome is fixed at
// registration.
type pingDriver struct {
	err error
}

func (d *pingDriver) Open(string) (driver.Conn, error) {
	return &pingConn{err: d.err}, nil
}

type pingConn struct {
	err error
}

func (c *pingConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *pingConn) Close() error                        { return nil }
func (c *pingConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }
func (c *pingConn) Ping(context.Context) error          { return c.err }

var registerPingDrivers sync.Once

func openPingDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	registerPingDrivers.Do(func() {
		sql.Register("ping-ok", &pingDriver{})
		sql.Register("ping-down", &pingDriver{err: errors.New("connection refused")})
	})
	sqlDB, err := sql.Open(name, "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

// healthStubDB satisfies only the piece of the store the health check uses.
type healthStubDB struct {
	db.Database
	sqlDB *sql.DB
}

func (s *healthStubDB) GetSQLDB() *sql.DB { return s.sqlDB }

func healthRequest(t *testing.T, driverName string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	AddHealthRoutes(r.Group("/api"), &healthStubDB{sqlDB: openPingDB(t, driverName)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	return w
}

func TestHealthCheckUp(t *testing.T) {
	if w := healthRequest(t, "ping-ok"); w.Code != http.StatusOK {
		t.Errorf("reachable database should report 200, got %v: %v", w.Code, w.Body)
	}
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	if w := healthRequest(t, "ping-down"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("unreachable database should report 503, got %v: %v", w.Code, w.Body)
	}
}
