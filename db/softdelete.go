package db

import (
	"fmt"
	"strings"
	"time"

	db "github.com/upper/db/v4"
)

// Op is the kind of data-access invocation being rewritten.
type Op int

const (
	OpFindOne Op = iota
	OpFindFirst
	OpFindMany
	OpCount
	OpAggregate
	OpDelete
	OpDeleteMany
)

func (op Op) read() bool {
	switch op {
	case OpFindOne, OpFindFirst, OpFindMany, OpCount, OpAggregate:
		return true
	}
	return false
}

// DeletedAtColumn is the soft-delete marker column on every registered table.
const DeletedAtColumn = "deleted_at"

// Scope makes logically-deleted rows invisible to ordinary reads and converts
// deletes on registered tables into timestamped updates. It performs no I/O of
// its own: stores pass their criteria through it before delegating to the
// session, and a failure from the underlying store propagates unchanged.
type Scope struct {
	tables map[string]struct{}
	now    func() time.Time
}

func NewScope(tables ...string) *Scope {
	s := &Scope{
		tables: make(map[string]struct{}, len(tables)),
		now:    time.Now,
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}
	return s
}

func (s *Scope) Registered(table string) bool {
	_, ok := s.tables[table]
	return ok
}

// ReadCond merges the active-row marker into the caller's criteria for read
// operations on a registered table. A nil or empty caller filter produces a
// criteria containing only the marker. The marker always wins: any caller
// condition on the deleted-at column, however phrased, is discarded first.
// Unregistered tables and non-read operations pass through unchanged.
func (s *Scope) ReadCond(table string, op Op, cond db.Cond) db.Cond {
	if !s.Registered(table) || !op.read() {
		return cond
	}
	return mergeActiveMarker(cond, DeletedAtColumn)
}

// ReadCondAlias is ReadCond for joined queries where the registered table is
// referenced through an alias.
func (s *Scope) ReadCondAlias(table, alias string, op Op, cond db.Cond) db.Cond {
	if !s.Registered(table) || !op.read() {
		return cond
	}
	return mergeActiveMarker(cond, alias+"."+DeletedAtColumn)
}

// ActiveCond restricts a write (update) to active rows of a registered table.
// Updates are not rewritten by the scope; stores opt in with this helper so a
// targeted update cannot resurrect or mutate a deleted row.
func (s *Scope) ActiveCond(table string, cond db.Cond) db.Cond {
	if !s.Registered(table) {
		return cond
	}
	return mergeActiveMarker(cond, DeletedAtColumn)
}

// Unscoped returns the caller's criteria untouched. This is the explicit
// bypass for callers that genuinely want deleted rows; the original system
// silently overrode such filters instead.
func (s *Scope) Unscoped(cond db.Cond) db.Cond {
	return cond
}

// Deletion rewrites a delete or delete-many on a registered table into an
// update assignment setting the deleted-at timestamp to now. The original
// filter is preserved by the caller. rewritten=false means the table is not
// registered and the physical delete should proceed.
func (s *Scope) Deletion(table string) (assign map[string]interface{}, rewritten bool) {
	if !s.Registered(table) {
		return nil, false
	}
	return map[string]interface{}{DeletedAtColumn: s.now()}, true
}

func mergeActiveMarker(cond db.Cond, column string) db.Cond {
	merged := db.Cond{}
	for k, v := range cond {
		if condKeyTargets(k, column) {
			continue
		}
		merged[k] = v
	}
	merged[column] = nil
	return merged
}

// condKeyTargets reports whether a criteria key refers to the given column,
// covering the operator-suffixed forms upper/db accepts ("deleted_at IS NOT",
// "deleted_at !=", ...).
func condKeyTargets(key interface{}, column string) bool {
	str, ok := key.(string)
	if !ok {
		str = fmt.Sprintf("%v", key)
	}
	str = strings.TrimSpace(str)
	return str == column || strings.HasPrefix(str, column+" ")
}
