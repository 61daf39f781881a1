package repository

import (
	"time"

	"orphanage-service/internal/model"

	"gorm.io/gorm"
)

// AnalyticsRepository derives summary statistics from donation records on
// demand. Nothing is precomputed or cached; every call scans the stored
// donation set.
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates an analytics repository over the given handle
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// OrphanageStats is the per-orphanage analytics view
type OrphanageStats struct {
	TotalDonations  float64            `json:"total_donations"`
	ThisMonth       float64            `json:"this_month"`
	ThisYear        float64            `json:"this_year"`
	CategoryTotals  map[string]float64 `json:"category_totals"`
	TotalDonors     int                `json:"total_donors"`
	RecentDonations []model.Donation   `json:"recent_donations"`
}

// PlatformStats is the platform-wide analytics view
type PlatformStats struct {
	TotalOrphanages    int64   `json:"total_orphanages"`
	VerifiedOrphanages int64   `json:"verified_orphanages"`
	PendingOrphanages  int64   `json:"pending_orphanages"`
	TotalDonations     float64 `json:"total_donations"`
	TotalDonors        int     `json:"total_donors"`
	TotalTransactions  int     `json:"total_transactions"`
}

// OrphanageStats aggregates an orphanage's donations. total_donations comes
// from the stored counter on the orphanage record, not recomputed from rows.
// "This month" matches the donation's calendar month against now's month,
// "this year" its calendar year, both on the stored creation timestamp.
func (r *AnalyticsRepository) OrphanageStats(orphanage *model.Orphanage, now time.Time) (*OrphanageStats, error) {
	var donations []model.Donation
	if err := r.db.Where("orphanage_id = ?", orphanage.ID).Order("created_at").Find(&donations).Error; err != nil {
		return nil, err
	}

	stats := &OrphanageStats{
		TotalDonations:  orphanage.TotalDonations,
		CategoryTotals:  map[string]float64{},
		RecentDonations: []model.Donation{},
	}

	donors := map[string]struct{}{}
	for _, d := range donations {
		donors[d.DonorID] = struct{}{}
		for category, amount := range d.Breakdown {
			stats.CategoryTotals[category] += amount
		}
		if d.CreatedAt.Month() == now.Month() {
			stats.ThisMonth += d.Amount
		}
		if d.CreatedAt.Year() == now.Year() {
			stats.ThisYear += d.Amount
		}
	}
	stats.TotalDonors = len(donors)

	// The 10 most recent donations, still in insertion order.
	if n := len(donations); n > 10 {
		stats.RecentDonations = donations[n-10:]
	} else if n > 0 {
		stats.RecentDonations = donations
	}

	return stats, nil
}

// PlatformStats aggregates across every orphanage and donation record
func (r *AnalyticsRepository) PlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	if err := r.db.Model(&model.Orphanage{}).Count(&stats.TotalOrphanages).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Orphanage{}).
		Where("verification_status = ?", model.VerificationVerified).
		Count(&stats.VerifiedOrphanages).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Orphanage{}).
		Where("verification_status = ?", model.VerificationPending).
		Count(&stats.PendingOrphanages).Error; err != nil {
		return nil, err
	}

	var donations []model.Donation
	if err := r.db.Find(&donations).Error; err != nil {
		return nil, err
	}

	donors := map[string]struct{}{}
	for _, d := range donations {
		stats.TotalDonations += d.Amount
		donors[d.DonorID] = struct{}{}
	}
	stats.TotalDonors = len(donors)
	stats.TotalTransactions = len(donations)

	return stats, nil
}
