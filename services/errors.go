package services

import "errors"

// Shared error taxonomy, mapped to HTTP statuses in a single place in the
// handlers package.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed  = errors.New("validation failed")
	ErrUsernameRequired  = errors.New("username is required")
	ErrFullNameRequired  = errors.New("full name is required")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrInvalidEmail      = errors.New("email address is malformed")
	ErrInvalidGender     = errors.New("gender must be one of Male, Female, Other")
	ErrInvalidAgeGroup   = errors.New("age group must be one of 18-25, 26-35, 36-45, 46-55, 56+")
	ErrInvalidDate       = errors.New("date must be a valid calendar date in YYYY-MM-DD format")
	ErrNegativeValue     = errors.New("performance value must not be negative")
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrUserNotInTeam     = errors.New("user is not a member of any team")
	ErrInvalidDimension  = errors.New("dimension must be one of gender, age_group, location")
	ErrInvalidScope      = errors.New("scope must be either global or team")
	ErrTeamScopeRequired = errors.New("team_id is required for team scope")

	// Conflicts
	ErrUsernameTaken = errors.New("username is already in use")
	ErrEmailTaken    = errors.New("email address is already in use")
	ErrTeamNameTaken = errors.New("team name is already in use")

	// Authentication. Deliberately generic: the caller must not learn which
	// part of the credential pair was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Entity lookups
	ErrUserNotFound        = errors.New("user not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrSportNotFound       = errors.New("sport not found")
	ErrPerformanceNotFound = errors.New("performance not found")

	// Infrastructure
	ErrUploadsDisabled = errors.New("file uploads are not configured on this server")
)
