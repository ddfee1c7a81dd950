package models

// Sport is a named activity with a display unit and a fixed unit-to-points
// conversion rate.
type Sport struct {
	ID            int     `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Unit          string  `json:"unit" db:"unit"`
	PointsPerUnit float64 `json:"points_per_unit" db:"points_per_unit"`
	Description   string  `json:"description" db:"description"`
}
