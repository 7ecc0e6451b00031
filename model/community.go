package model

import (
	"encoding/json"
	"strings"
	"time"
)

type Community struct {
	Id          int64      `db:"id,omitempty" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	IsPublic    bool       `db:"is_public" json:"isPublic"`
	Region      string     `db:"region" json:"region"`
	SubRegion   string     `db:"sub_region" json:"subRegion"`
	TagsStr     string     `db:"tags" json:"-"`
	ImageUrl    string     `db:"image_url" json:"imageUrl"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt   *time.Time `db:"deleted_at,omitempty" json:"-"`
}

// Tags splits the stored comma-joined tag set. Empty storage yields an empty
// slice, never nil, so the JSON stays an array.
func (c *Community) Tags() []string {
	if c.TagsStr == "" {
		return []string{}
	}
	return strings.Split(c.TagsStr, ",")
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// MarshalJSON serializes the tag set as an array while the storage column
// stays comma-joined.
func (c *Community) MarshalJSON() ([]byte, error) {
	type alias Community
	return json.Marshal(&struct {
		*alias
		Tags []string `json:"tags"`
	}{alias: (*alias)(c), Tags: c.Tags()})
}

// CommunityWithMemberCount is the search/browse projection.
type CommunityWithMemberCount struct {
	*Community
	MemberCount int64 `db:"member_count" json:"memberCount"`
}

// MarshalJSON is needed because the embedded community marshaler would
// otherwise drop the count.
func (c *CommunityWithMemberCount) MarshalJSON() ([]byte, error) {
	type alias Community
	return json.Marshal(&struct {
		*alias
		Tags        []string `json:"tags"`
		MemberCount int64    `json:"memberCount"`
	}{alias: (*alias)(c.Community), Tags: c.Tags(), MemberCount: c.MemberCount})
}
