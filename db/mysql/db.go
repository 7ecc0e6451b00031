package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/studyclub-io/study-club-be/config"
	appdb "github.com/studyclub-io/study-club-be/db"
	db "github.com/upper/db/v4"
	upmysql "github.com/upper/db/v4/adapter/mysql"
)

// scope registers every soft-deletable table once for the whole store. All
// reads and deletes below route their criteria through it.
var scope = appdb.NewScope(
	"person",
	"community",
	"community_member",
	"round",
	"study_goal",
	"attendance",
	"notification",
	"reaction",
)

type MySQLDB struct {
	*UserDB
	*CommunityDB
	*MemberDB
	*RoundDB
	*GoalDB
	*AttendanceDB
	*NotificationDB
	*ReactionDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Database) (appdb.Database, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := upmysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		UserDB:         getUserDB(sess),
		CommunityDB:    getCommunityDB(sess),
		MemberDB:       getMemberDB(sess),
		RoundDB:        getRoundDB(sess),
		GoalDB:         getGoalDB(sess),
		AttendanceDB:   getAttendanceDB(sess),
		NotificationDB: getNotificationDB(sess),
		ReactionDB:     getReactionDB(sess),
		sess:           sess,
		sqlDB:          sqlDB,
	}, nil
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}

// softDelete converts a delete on a registered table into a timestamped
// update preserving the original filter; unregistered tables are removed
// physically.
func softDelete(ctx context.Context, sess db.Session, table string, cond db.Cond) error {
	assign, rewritten := scope.Deletion(table)
	if !rewritten {
		_, err := sess.SQL().
			DeleteFrom(table).
			Where(cond).
			ExecContext(ctx)
		return err
	}
	res, err := sess.SQL().
		Update(table).
		Set(assign).
		Where(scope.ActiveCond(table, cond)).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected maps a targeted write that matched nothing onto ErrNotFound.
// The DSN sets clientFoundRows, so RowsAffected counts matched rows and a
// no-op update against an existing row still passes.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appdb.ErrNotFound
	}
	return nil
}
