package models

// DashboardStats is a fleet-wide snapshot computed on demand from the
// provider and review catalogs. Never persisted.
type DashboardStats struct {
	TotalInspectors int     `json:"total_inspectors"`
	TotalHauliers   int     `json:"total_hauliers"`
	AverageRating   float64 `json:"average_rating"` // 0 when no reviews exist.
	PendingReviews  int     `json:"pending_reviews"`
}
