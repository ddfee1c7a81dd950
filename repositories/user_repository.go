package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserUsernameConflict = errors.New("username conflict")
	ErrUserEmailConflict    = errors.New("user email conflict")
	ErrUserTeamInvalid      = errors.New("user team reference invalid")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateAvatarKey(ctx context.Context, id int, key *string) error
	SetTeam(ctx context.Context, userID int, teamID *int) error
	ListByTeamID(ctx context.Context, teamID int) ([]models.User, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, full_name, email, gender, age_group, location, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Email,
		user.Gender,
		user.AgeGroup,
		user.Location,
		user.TeamID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return mapUserError(err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT
			u.id, u.username, u.password_hash, u.full_name, u.email,
			u.gender, u.age_group, u.location, u.team_id, u.avatar_key,
			u.created_at, u.updated_at,
			t.id, t.name, t.description, t.creator_id, t.created_at
		FROM users u
		LEFT JOIN teams t ON u.team_id = t.id
		WHERE u.id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	var user models.User
	var teamID sql.NullInt64
	var teamName, teamDescription sql.NullString
	var teamCreatorID sql.NullInt64
	var teamCreatedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Email,
		&user.Gender,
		&user.AgeGroup,
		&user.Location,
		&user.TeamID,
		&user.AvatarKey,
		&user.CreatedAt,
		&user.UpdatedAt,
		&teamID,
		&teamName,
		&teamDescription,
		&teamCreatorID,
		&teamCreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user with team: %w", err)
	}

	if teamID.Valid {
		user.Team = &models.Team{
			ID:          int(teamID.Int64),
			Name:        teamName.String,
			Description: teamDescription.String,
			CreatorID:   int(teamCreatorID.Int64),
			CreatedAt:   teamCreatedAt.Time,
		}
	}

	return &user, nil
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, email,
		       gender, age_group, location, team_id, avatar_key, created_at, updated_at
		FROM users
		WHERE username = $1`
	return r.scanUser(ctx, query, username)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			full_name = $1,
			email = $2,
			gender = $3,
			age_group = $4,
			location = $5,
			updated_at = now()
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		user.FullName,
		user.Email,
		user.Gender,
		user.AgeGroup,
		user.Location,
		user.ID,
	)
	if err != nil {
		return mapUserError(err)
	}

	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateAvatarKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE users SET avatar_key = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// SetTeam reassigns team membership in a single statement: joining while
// already on a team atomically overwrites the previous membership, and a nil
// teamID leaves the current team.
func (r *postgresUserRepository) SetTeam(ctx context.Context, userID int, teamID *int) error {
	query := `UPDATE users SET team_id = $1, updated_at = now() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return mapUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, email,
		       gender, age_group, location, team_id, avatar_key, created_at, updated_at
		FROM users
		WHERE team_id = $1
		ORDER BY username ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if scanErr := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.FullName,
			&user.Email,
			&user.Gender,
			&user.AgeGroup,
			&user.Location,
			&user.TeamID,
			&user.AvatarKey,
			&user.CreatedAt,
			&user.UpdatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Email,
		&user.Gender,
		&user.AgeGroup,
		&user.Location,
		&user.TeamID,
		&user.AvatarKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func mapUserError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			switch pqErr.Constraint {
			case "users_username_key":
				return ErrUserUsernameConflict
			case "users_email_key":
				return ErrUserEmailConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "users_team_id_fkey" {
				return ErrUserTeamInvalid
			}
		}
	}
	return err
}
