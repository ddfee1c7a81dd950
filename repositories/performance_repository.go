package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/lib/pq"
)

var (
	ErrPerformanceNotFound     = errors.New("performance not found")
	ErrPerformanceUserInvalid  = errors.New("performance user reference invalid")
	ErrPerformanceSportInvalid = errors.New("performance sport reference invalid")
)

type PerformanceRepository interface {
	Create(ctx context.Context, perf *models.Performance) error
	GetByID(ctx context.Context, id int) (*models.Performance, error)
	ListByUserID(ctx context.Context, userID, limit, offset int) ([]models.Performance, error)
}

type postgresPerformanceRepository struct {
	db *sql.DB
}

func NewPostgresPerformanceRepository(db *sql.DB) PerformanceRepository {
	return &postgresPerformanceRepository{db: db}
}

func (r *postgresPerformanceRepository) Create(ctx context.Context, perf *models.Performance) error {
	query := `
		INSERT INTO performances (user_id, sport_id, value, points, date_recorded, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		perf.UserID,
		perf.SportID,
		perf.Value,
		perf.Points,
		perf.DateRecorded,
		perf.Notes,
	).Scan(&perf.ID, &perf.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "performances_user_id_fkey":
				return ErrPerformanceUserInvalid
			case "performances_sport_id_fkey":
				return ErrPerformanceSportInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresPerformanceRepository) GetByID(ctx context.Context, id int) (*models.Performance, error) {
	query := `
		SELECT p.id, p.user_id, p.sport_id, p.value, p.points, p.date_recorded, p.notes, p.created_at,
		       s.name, s.unit
		FROM performances p
		JOIN sports s ON p.sport_id = s.id
		WHERE p.id = $1`

	var perf models.Performance
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&perf.ID,
		&perf.UserID,
		&perf.SportID,
		&perf.Value,
		&perf.Points,
		&perf.DateRecorded,
		&perf.Notes,
		&perf.CreatedAt,
		&perf.SportName,
		&perf.SportUnit,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return &perf, nil
}

// ListByUserID pages through a user's history, newest date first. The id
// tie-break keeps the order stable when several entries share a date, so a
// restarted listing never skips or repeats rows.
func (r *postgresPerformanceRepository) ListByUserID(ctx context.Context, userID, limit, offset int) ([]models.Performance, error) {
	query := `
		SELECT p.id, p.user_id, p.sport_id, p.value, p.points, p.date_recorded, p.notes, p.created_at,
		       s.name, s.unit
		FROM performances p
		JOIN sports s ON p.sport_id = s.id
		WHERE p.user_id = $1
		ORDER BY p.date_recorded DESC, p.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perfs := make([]models.Performance, 0)
	for rows.Next() {
		var perf models.Performance
		if scanErr := rows.Scan(
			&perf.ID,
			&perf.UserID,
			&perf.SportID,
			&perf.Value,
			&perf.Points,
			&perf.DateRecorded,
			&perf.Notes,
			&perf.CreatedAt,
			&perf.SportName,
			&perf.SportUnit,
		); scanErr != nil {
			return nil, scanErr
		}
		perfs = append(perfs, perf)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return perfs, nil
}
