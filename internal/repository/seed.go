package repository

import (
	"time"

	"feedback-desk/internal/models"
)

const day = 24 * time.Hour

// SeedData is the collection written on first access when storage is empty.
// Timestamps are relative to now, from now back to five days ago.
func SeedData(now time.Time) []models.Feedback {
	now = now.UTC()
	return []models.Feedback{
		{ID: "1", CustomerName: "Alice Johnson", Email: "alice@example.com", Rating: 5, Category: models.CategoryProduct,
			Comments: "Absolutely love the new dashboard redesign! It's so much easier to navigate.",
			Status:   models.StatusResolved, CreatedAt: now.Add(-2 * day)},
		{ID: "2", CustomerName: "Bob Smith", Email: "bob@example.com", Rating: 4, Category: models.CategoryService,
			Comments: "Great customer service experience, the team was very helpful and responsive.",
			Status:   models.StatusRead, CreatedAt: now.Add(-1 * day)},
		{ID: "3", CustomerName: "Carol Williams", Email: "carol@example.com", Rating: 2, Category: models.CategorySupport,
			Comments: "Had to wait too long for a response on my support ticket. Please improve response times.",
			Status:   models.StatusNew, CreatedAt: now.Add(-3 * day)},
		{ID: "4", CustomerName: "David Lee", Email: "david@example.com", Rating: 5, Category: models.CategoryProduct,
			Comments: "The mobile app works flawlessly. Very impressed with the performance.",
			Status:   models.StatusRead, CreatedAt: now.Add(-5 * time.Hour)},
		{ID: "5", CustomerName: "Eva Martinez", Email: "eva@example.com", Rating: 3, Category: models.CategoryService,
			Comments: "Service was okay, but the onboarding process could be more streamlined.",
			Status:   models.StatusNew, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "6", CustomerName: "Frank Chen", Email: "frank@example.com", Rating: 1, Category: models.CategorySupport,
			Comments: "Very disappointed with the billing issue resolution. It took over a week.",
			Status:   models.StatusNew, CreatedAt: now},
		{ID: "7", CustomerName: "Grace Kim", Email: "grace@example.com", Rating: 4, Category: models.CategoryProduct,
			Comments: "Good product overall, but some features are hard to discover.",
			Status:   models.StatusResolved, CreatedAt: now.Add(-5 * day)},
		{ID: "8", CustomerName: "Henry Brown", Email: "henry@example.com", Rating: 5, Category: models.CategoryService,
			Comments: "Exceptional service! The team went above and beyond to help me.",
			Status:   models.StatusResolved, CreatedAt: now.Add(-4 * day)},
	}
}
