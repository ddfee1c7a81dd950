package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/fitness-challenge/models"
)

var ErrInvalidDimension = errors.New("invalid demographic dimension")

// demographicColumns whitelists the columns a breakdown may group by. The
// dimension is interpolated into SQL, so anything outside this map is refused.
var demographicColumns = map[string]string{
	"gender":    "gender",
	"age_group": "age_group",
	"location":  "location",
}

// AnalyticsRepository holds the read-only aggregation queries. Everything is
// computed on demand against the live tables; there is no materialized state
// to invalidate.
type AnalyticsRepository interface {
	UserTotalPoints(ctx context.Context, userID int, from, to *time.Time) (float64, error)
	UserStats(ctx context.Context, userID int) (*models.UserStats, error)
	UserRank(ctx context.Context, userID int) (*models.UserRank, error)
	Leaderboard(ctx context.Context, teamID *int, limit int) ([]models.LeaderboardRow, error)
	TeamTotalPoints(ctx context.Context, teamID int) (float64, error)
	TeamLeaderboard(ctx context.Context, limit int) ([]models.TeamLeaderboardRow, error)
	SportLeaderboard(ctx context.Context, sportID, limit int) ([]models.SportLeaderboardRow, error)
	DemographicBreakdown(ctx context.Context, dimension string) ([]models.DemographicBucket, error)
	WeeklyProgress(ctx context.Context, userID, weeks int) ([]models.WeeklyProgressRow, error)
	SportBreakdown(ctx context.Context, userID int) ([]models.SportBreakdownRow, error)
}

type postgresAnalyticsRepository struct {
	db *sql.DB
}

func NewPostgresAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &postgresAnalyticsRepository{db: db}
}

// UserTotalPoints sums the frozen points of a user's performances, optionally
// bounded to an inclusive date interval.
func (r *postgresAnalyticsRepository) UserTotalPoints(ctx context.Context, userID int, from, to *time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(points), 0)
		FROM performances
		WHERE user_id = $1
		  AND ($2::date IS NULL OR date_recorded >= $2)
		  AND ($3::date IS NULL OR date_recorded <= $3)`

	var total float64
	err := r.db.QueryRowContext(ctx, query, userID, nullableDate(from), nullableDate(to)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postgresAnalyticsRepository) UserStats(ctx context.Context, userID int) (*models.UserStats, error) {
	query := `
		SELECT COALESCE(SUM(points), 0),
		       COUNT(*),
		       COUNT(DISTINCT date_recorded),
		       MIN(date_recorded),
		       MAX(date_recorded)
		FROM performances
		WHERE user_id = $1`

	var stats models.UserStats
	var first, last sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.Points,
		&stats.Activities,
		&stats.ActiveDays,
		&first,
		&last,
	)
	if err != nil {
		return nil, err
	}

	if stats.Activities > 0 {
		stats.AvgPerActivity = stats.Points / float64(stats.Activities)
	}
	if first.Valid {
		s := first.Time.Format("2006-01-02")
		stats.FirstActivityOn = &s
	}
	if last.Valid {
		s := last.Time.Format("2006-01-02")
		stats.LastActivityOn = &s
	}

	return &stats, nil
}

// UserRank positions the user among all registered users by total points,
// with ties going to the earlier-registered user.
func (r *postgresAnalyticsRepository) UserRank(ctx context.Context, userID int) (*models.UserRank, error) {
	query := `
		SELECT rank, total_users FROM (
			SELECT u.id,
			       ROW_NUMBER() OVER (
			           ORDER BY COALESCE(SUM(p.points), 0) DESC, u.created_at ASC, u.id ASC
			       ) AS rank,
			       COUNT(*) OVER () AS total_users
			FROM users u
			LEFT JOIN performances p ON p.user_id = u.id
			GROUP BY u.id, u.created_at
		) ranked
		WHERE id = $1`

	var rank models.UserRank
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&rank.Rank, &rank.TotalUsers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &rank, nil
}

// Leaderboard ranks users by total points. A nil teamID means global scope;
// otherwise only current members of the team are ranked. Ties are broken by
// registration time ascending, then id.
func (r *postgresAnalyticsRepository) Leaderboard(ctx context.Context, teamID *int, limit int) ([]models.LeaderboardRow, error) {
	query := `
		SELECT u.id, u.username, u.full_name, t.name,
		       COUNT(p.id),
		       COALESCE(SUM(p.points), 0) AS total_points
		FROM users u
		LEFT JOIN teams t ON u.team_id = t.id
		LEFT JOIN performances p ON p.user_id = u.id
		WHERE $1::int IS NULL OR u.team_id = $1
		GROUP BY u.id, u.username, u.full_name, u.created_at, t.name
		ORDER BY total_points DESC, u.created_at ASC, u.id ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, nullableInt(teamID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.LeaderboardRow, 0)
	for rows.Next() {
		var row models.LeaderboardRow
		var teamName sql.NullString
		if scanErr := rows.Scan(
			&row.UserID,
			&row.Username,
			&row.FullName,
			&teamName,
			&row.Activities,
			&row.TotalPoints,
		); scanErr != nil {
			return nil, scanErr
		}
		if teamName.Valid {
			row.TeamName = &teamName.String
		}
		row.Rank = len(result) + 1
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// TeamTotalPoints sums over the team's *current* members. A user who leaves
// stops contributing to the old team's total, including for performances
// recorded while still a member. That is deliberate, documented behavior.
func (r *postgresAnalyticsRepository) TeamTotalPoints(ctx context.Context, teamID int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.points), 0)
		FROM performances p
		JOIN users u ON p.user_id = u.id
		WHERE u.team_id = $1`

	var total float64
	if err := r.db.QueryRowContext(ctx, query, teamID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postgresAnalyticsRepository) TeamLeaderboard(ctx context.Context, limit int) ([]models.TeamLeaderboardRow, error) {
	query := `
		SELECT t.id, t.name,
		       COUNT(DISTINCT u.id) AS member_count,
		       COALESCE(SUM(p.points), 0) AS total_points
		FROM teams t
		LEFT JOIN users u ON u.team_id = t.id
		LEFT JOIN performances p ON p.user_id = u.id
		GROUP BY t.id, t.name, t.created_at
		ORDER BY total_points DESC, t.created_at ASC, t.id ASC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.TeamLeaderboardRow, 0)
	for rows.Next() {
		var row models.TeamLeaderboardRow
		if scanErr := rows.Scan(
			&row.TeamID,
			&row.TeamName,
			&row.MemberCount,
			&row.TotalPoints,
		); scanErr != nil {
			return nil, scanErr
		}
		if row.MemberCount > 0 {
			row.AvgPerMember = row.TotalPoints / float64(row.MemberCount)
		}
		row.Rank = len(result) + 1
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postgresAnalyticsRepository) SportLeaderboard(ctx context.Context, sportID, limit int) ([]models.SportLeaderboardRow, error) {
	query := `
		SELECT u.id, u.username, u.full_name,
		       COUNT(p.id),
		       COALESCE(SUM(p.value), 0),
		       COALESCE(MAX(p.value), 0),
		       COALESCE(AVG(p.value), 0),
		       COALESCE(SUM(p.points), 0) AS total_points
		FROM performances p
		JOIN users u ON p.user_id = u.id
		WHERE p.sport_id = $1
		GROUP BY u.id, u.username, u.full_name, u.created_at
		ORDER BY total_points DESC, u.created_at ASC, u.id ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, sportID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.SportLeaderboardRow, 0)
	for rows.Next() {
		var row models.SportLeaderboardRow
		if scanErr := rows.Scan(
			&row.UserID,
			&row.Username,
			&row.FullName,
			&row.Activities,
			&row.TotalValue,
			&row.BestValue,
			&row.AvgValue,
			&row.Points,
		); scanErr != nil {
			return nil, scanErr
		}
		row.Rank = len(result) + 1
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// DemographicBreakdown groups total points by an optional user attribute.
// Users without the attribute land in the "unspecified" bucket so that bucket
// totals still reconcile against the grand total.
func (r *postgresAnalyticsRepository) DemographicBreakdown(ctx context.Context, dimension string) ([]models.DemographicBucket, error) {
	column, ok := demographicColumns[dimension]
	if !ok {
		return nil, ErrInvalidDimension
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(u.%s, '%s') AS bucket,
		       COUNT(DISTINCT u.id),
		       COUNT(p.id),
		       COALESCE(SUM(p.points), 0) AS total_points
		FROM users u
		LEFT JOIN performances p ON p.user_id = u.id
		GROUP BY bucket
		ORDER BY total_points DESC, bucket ASC`,
		column, models.DemographicUnspecified)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.DemographicBucket, 0)
	for rows.Next() {
		var bucket models.DemographicBucket
		if scanErr := rows.Scan(
			&bucket.Bucket,
			&bucket.Users,
			&bucket.Activities,
			&bucket.TotalPoints,
		); scanErr != nil {
			return nil, scanErr
		}
		result = append(result, bucket)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postgresAnalyticsRepository) WeeklyProgress(ctx context.Context, userID, weeks int) ([]models.WeeklyProgressRow, error) {
	query := `
		SELECT to_char(date_trunc('week', date_recorded), 'YYYY-MM-DD') AS week_start,
		       COUNT(*),
		       COALESCE(SUM(points), 0)
		FROM performances
		WHERE user_id = $1
		  AND date_recorded >= CURRENT_DATE - ($2 * INTERVAL '1 week')
		GROUP BY date_trunc('week', date_recorded)
		ORDER BY date_trunc('week', date_recorded) ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, weeks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.WeeklyProgressRow, 0)
	for rows.Next() {
		var row models.WeeklyProgressRow
		if scanErr := rows.Scan(&row.WeekStart, &row.Activities, &row.Points); scanErr != nil {
			return nil, scanErr
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postgresAnalyticsRepository) SportBreakdown(ctx context.Context, userID int) ([]models.SportBreakdownRow, error) {
	query := `
		SELECT s.id, s.name, s.unit,
		       COUNT(p.id),
		       COALESCE(SUM(p.value), 0),
		       COALESCE(SUM(p.points), 0) AS total_points
		FROM performances p
		JOIN sports s ON p.sport_id = s.id
		WHERE p.user_id = $1
		GROUP BY s.id, s.name, s.unit
		ORDER BY total_points DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.SportBreakdownRow, 0)
	for rows.Next() {
		var row models.SportBreakdownRow
		if scanErr := rows.Scan(
			&row.SportID,
			&row.SportName,
			&row.Unit,
			&row.Activities,
			&row.TotalValue,
			&row.TotalPoints,
		); scanErr != nil {
			return nil, scanErr
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func nullableDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullableInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
