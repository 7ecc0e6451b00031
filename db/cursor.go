package db

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	db "github.com/upper/db/v4"
)

type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

var ErrBadCursor = errors.New("malformed cursor")

// Cursor is the compound paging key: the sort-field value plus the row id as
// a deterministic tie-break. Encoded it is opaque to clients.
type Cursor struct {
	Key time.Time `json:"k"`
	Id  int64     `json:"id"`
}

func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor decodes an opaque cursor. An empty string means "first page"
// and yields a nil cursor; anything else that fails to decode is ErrBadCursor.
func DecodeCursor(raw string) (*Cursor, error) {
	if raw == "" {
		return nil, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, ErrBadCursor
	}
	var c Cursor
	if err := json.Unmarshal(decoded, &c); err != nil || c.Key.IsZero() {
		return nil, ErrBadCursor
	}
	return &c, nil
}

// PageQuery is the client-facing page request.
type PageQuery struct {
	Cursor    string    `form:"cursor" json:"cursor"`
	Limit     int       `form:"limit" json:"limit"`
	Direction Direction `form:"direction" json:"direction"`
}

// Normalize applies the default limit, clamps it to [1, MaxPageLimit] and
// defaults the direction to forward.
func (pq *PageQuery) Normalize() {
	if pq.Limit == 0 {
		pq.Limit = DefaultPageLimit
	}
	if pq.Limit < 1 {
		pq.Limit = 1
	}
	if pq.Limit > MaxPageLimit {
		pq.Limit = MaxPageLimit
	}
	if pq.Direction != DirectionBackward {
		pq.Direction = DirectionForward
	}
}

// FetchLimit is the row count actually requested: one extra row probes for a
// further page without a separate count query.
func (pq PageQuery) FetchLimit() int {
	return pq.Limit + 1
}

// OrderBy returns the order-by terms for the direction: sort key then id,
// ascending for forward and descending for backward, so the key pair totally
// orders rows even when the sort field has duplicates.
func (pq PageQuery) OrderBy(keyCol, idCol string) []interface{} {
	if pq.Direction == DirectionBackward {
		return []interface{}{"-" + keyCol, "-" + idCol}
	}
	return []interface{}{keyCol, idCol}
}

// CursorCond builds the seek condition for a supplied cursor. A nil cursor
// returns nil and the caller skips the clause.
func CursorCond(cur *Cursor, dir Direction, keyCol, idCol string) *db.RawExpr {
	if cur == nil {
		return nil
	}
	if dir == DirectionBackward {
		return db.Raw("("+keyCol+" < ? OR ("+keyCol+" = ? AND "+idCol+" < ?))",
			cur.Key, cur.Key, cur.Id)
	}
	return db.Raw("("+keyCol+" > ? OR ("+keyCol+" = ? AND "+idCol+" > ?))",
		cur.Key, cur.Key, cur.Id)
}

// Page is a bounded window over a collection, always in ascending sort-key
// order regardless of the direction requested.
type Page[T any] struct {
	Data        []T    `json:"data"`
	NextCursor  string `json:"nextCursor,omitempty"`
	PrevCursor  string `json:"prevCursor,omitempty"`
	HasMore     bool   `json:"hasMore"`
	HasPrevious bool   `json:"hasPrevious"`
}

// BuildPage post-processes a fetch of up to FetchLimit rows: the probe row is
// dropped, backward results are reversed back into ascending order, and the
// edge cursors are taken from the page boundaries.
func BuildPage[T any](items []T, pq PageQuery, hadCursor bool, key func(T) Cursor) *Page[T] {
	extra := len(items) > pq.Limit
	if extra {
		items = items[:pq.Limit]
	}
	if pq.Direction == DirectionBackward {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	page := &Page[T]{
		Data:    items,
		HasMore: extra,
	}
	if pq.Direction == DirectionBackward {
		page.HasPrevious = extra
		if extra && len(items) > 0 {
			page.PrevCursor = key(items[0]).Encode()
		}
	} else {
		page.HasPrevious = hadCursor
		if extra && len(items) > 0 {
			page.NextCursor = key(items[len(items)-1]).Encode()
		}
	}
	return page
}
