package services

import (
	"time"

	"golang.org/x/exp/slices"

	"reelstore/internal/models"
	"reelstore/internal/repositories"
)

// StatsService aggregates the redemption ledger. Everything is recomputed on
// each call; the dataset is bounded by business volume.
type StatsService struct {
	Redemptions *repositories.RedemptionRepo
}

func (s *StatsService) Stats(now time.Time) models.StatsResponse {
	records := s.Redemptions.All()

	resp := models.StatsResponse{
		Packages: make(map[string]models.PackageStats),
	}

	// Preallocated so the bucket pointers stay valid across appends.
	resp.Last7Days = make([]models.DayBucket, 0, 7)
	days := make(map[string]*models.DayBucket, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		resp.Last7Days = append(resp.Last7Days, models.DayBucket{Day: day})
		days[day] = &resp.Last7Days[len(resp.Last7Days)-1]
	}

	for _, rec := range records {
		resp.TotalCount++
		resp.TotalRevenue += rec.Amount

		ps := resp.Packages[rec.PackageID]
		ps.Count++
		ps.Revenue += rec.Amount
		resp.Packages[rec.PackageID] = ps

		if bucket, ok := days[rec.CompletedAt.Format("2006-01-02")]; ok {
			bucket.Count++
			bucket.Revenue += rec.Amount
		}
	}

	slices.SortFunc(records, func(a, b models.RedemptionRecord) int {
		return b.CompletedAt.Compare(a.CompletedAt)
	})
	if len(records) > 10 {
		records = records[:10]
	}
	resp.Recent = records

	return resp
}

func (s *StatsService) PaymentCount() int {
	return s.Redemptions.Count()
}
