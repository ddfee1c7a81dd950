package models

import "time"

// Allowed values for the optional demographic attributes. They mirror the
// CHECK constraints on the users table.
var (
	Genders   = []string{"Male", "Female", "Other"}
	AgeGroups = []string{"18-25", "26-35", "36-45", "46-55", "56+"}
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Gender       *string   `json:"gender,omitempty" db:"gender"`
	AgeGroup     *string   `json:"age_group,omitempty" db:"age_group"`
	Location     *string   `json:"location,omitempty" db:"location"`
	TeamID       *int      `json:"team_id,omitempty" db:"team_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func ValidGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

func ValidAgeGroup(a string) bool {
	for _, v := range AgeGroups {
		if v == a {
			return true
		}
	}
	return false
}
