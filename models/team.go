package models

import "time"

type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatorID   int       `json:"creator_id" db:"creator_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Creator *User  `json:"creator,omitempty" db:"-"`
	Members []User `json:"members,omitempty" db:"-"`

	// Filled by listing queries only.
	CreatorName string `json:"creator_name,omitempty" db:"-"`
	MemberCount int    `json:"member_count" db:"-"`
}
