package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse carries the headline counts for the dashboard
type DashboardResponse struct {
	AnimalsInCare    int64     `json:"animals_in_care"`
	AnimalsFostered  int64     `json:"animals_fostered"`
	AnimalsOnHold    int64     `json:"animals_on_hold"`
	OpenApplications int64     `json:"open_applications"`
	OverdueTasks     int64     `json:"overdue_tasks"`
	TasksDueToday    int64     `json:"tasks_due_today"`
	ActiveFosters    int64     `json:"active_fosters"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// SpeciesCount is one species bucket in the distribution
type SpeciesCount struct {
	Species string `json:"species"`
	Count   int64  `json:"count"`
}

// MonthlyCount is one calendar-month bucket in a trend
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// StageCount is one pipeline stage bucket
type StageCount struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

// RateResponse reports a ratio with its inputs, so callers can render both
// the percentage and the underlying counts
type RateResponse struct {
	Numerator   int64           `json:"numerator"`
	Denominator int64           `json:"denominator"`
	Rate        decimal.Decimal `json:"rate"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
}
