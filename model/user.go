package model

import "time"

// User holds the local profile for an account provisioned through the OAuth
// provider. The (Provider, ProviderId) pair is the external identity key.
type User struct {
	Id         int64      `db:"id,omitempty" json:"id"`
	Email      string     `db:"email" json:"email"`
	Username   string     `db:"username" json:"username"`
	Nickname   string     `db:"nickname" json:"nickname"`
	Provider   string     `db:"provider" json:"-"`
	ProviderId string     `db:"provider_id" json:"-"`
	ImageUrl   string     `db:"image_url" json:"imageUrl"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt  *time.Time `db:"deleted_at,omitempty" json:"-"`
}
