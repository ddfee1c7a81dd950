package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/lib/pq"
)

var (
	ErrSportNotFound     = errors.New("sport not found")
	ErrSportNameConflict = errors.New("sport name conflict")
)

// SportRepository is read-mostly: the catalogue is seeded at startup and
// mutated out of band by operators, never through the HTTP surface.
type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	query := `
		INSERT INTO sports (name, unit, points_per_unit, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		sport.Name, sport.Unit, sport.PointsPerUnit, sport.Description,
	).Scan(&sport.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "sports_name_key" {
			return ErrSportNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	query := `SELECT id, name, unit, points_per_unit, description FROM sports WHERE id = $1`

	var sport models.Sport
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sport.ID, &sport.Name, &sport.Unit, &sport.PointsPerUnit, &sport.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *postgresSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	query := `SELECT id, name, unit, points_per_unit, description FROM sports ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		if scanErr := rows.Scan(
			&sport.ID, &sport.Name, &sport.Unit, &sport.PointsPerUnit, &sport.Description,
		); scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, sport)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sports, nil
}

func (r *postgresSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	query := `
		UPDATE sports SET name = $1, unit = $2, points_per_unit = $3, description = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		sport.Name, sport.Unit, sport.PointsPerUnit, sport.Description, sport.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "sports_name_key" {
			return ErrSportNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}
