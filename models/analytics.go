package models

// DemographicUnspecified is the bucket label for users that have not set the
// attribute a breakdown groups by. Keeping them in a separate bucket lets the
// buckets reconcile against the grand total.
const DemographicUnspecified = "unspecified"

type LeaderboardRow struct {
	Rank        int     `json:"rank"`
	UserID      int     `json:"user_id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	TeamName    *string `json:"team_name,omitempty"`
	Activities  int     `json:"activities"`
	TotalPoints float64 `json:"total_points"`
}

type TeamLeaderboardRow struct {
	Rank         int     `json:"rank"`
	TeamID       int     `json:"team_id"`
	TeamName     string  `json:"team_name"`
	MemberCount  int     `json:"member_count"`
	TotalPoints  float64 `json:"total_points"`
	AvgPerMember float64 `json:"avg_points_per_member"`
}

type SportLeaderboardRow struct {
	Rank       int     `json:"rank"`
	UserID     int     `json:"user_id"`
	Username   string  `json:"username"`
	FullName   string  `json:"full_name"`
	Activities int     `json:"activities"`
	TotalValue float64 `json:"total_value"`
	BestValue  float64 `json:"best_value"`
	AvgValue   float64 `json:"avg_value"`
	Points     float64 `json:"total_points"`
}

type DemographicBucket struct {
	Bucket      string  `json:"bucket"`
	Users       int     `json:"users"`
	Activities  int     `json:"activities"`
	TotalPoints float64 `json:"total_points"`
}

type WeeklyProgressRow struct {
	WeekStart  string  `json:"week_start"`
	Activities int     `json:"activities"`
	Points     float64 `json:"points"`
}

type SportBreakdownRow struct {
	SportID     int     `json:"sport_id"`
	SportName   string  `json:"sport_name"`
	Unit        string  `json:"unit"`
	Activities  int     `json:"activities"`
	TotalValue  float64 `json:"total_value"`
	TotalPoints float64 `json:"total_points"`
}

type UserStats struct {
	Points          float64 `json:"total_points"`
	Activities      int     `json:"activities"`
	ActiveDays      int     `json:"active_days"`
	AvgPerActivity  float64 `json:"avg_points_per_activity"`
	FirstActivityOn *string `json:"first_activity_on,omitempty"`
	LastActivityOn  *string `json:"last_activity_on,omitempty"`
}

type UserRank struct {
	Rank       int `json:"rank"`
	TotalUsers int `json:"total_users"`
}

// Dashboard is the self view: everything the landing page needs in one
// response.
type Dashboard struct {
	Stats          UserStats           `json:"stats"`
	Rank           UserRank            `json:"rank"`
	SportBreakdown []SportBreakdownRow `json:"sport_breakdown"`
	Recent         []Performance       `json:"recent_activity"`
}
