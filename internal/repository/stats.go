package repository

import "feedback-desk/internal/models"

// computeStats expects all sorted newest first. Values outside the known
// categories, statuses or rating range count toward Total and AvgRating but
// get no bucket, so the bucket keys never change.
func computeStats(all []models.Feedback) *models.Stats {
	stats := models.NewStats()
	stats.Total = len(all)

	sum := 0
	for _, f := range all {
		sum += f.Rating
		if _, ok := stats.ByCategory[f.Category]; ok {
			stats.ByCategory[f.Category]++
		}
		if _, ok := stats.ByRating[f.Rating]; ok {
			stats.ByRating[f.Rating]++
		}
		if _, ok := stats.ByStatus[f.Status]; ok {
			stats.ByStatus[f.Status]++
		}
	}
	if stats.Total > 0 {
		stats.AvgRating = float64(sum) / float64(stats.Total)
	}

	n := min(len(all), models.RecentLimit)
	stats.Recent = append(stats.Recent, all[:n]...)
	return stats
}
