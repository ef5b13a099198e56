package notifier

import (
	"context"
	"fmt"
	"strings"

	"feedback-desk/internal/models"
)

// Notifier publishes a message to whoever triages feedback.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// FormatNewFeedback renders the alert sent when a submission arrives.
func FormatNewFeedback(f *models.Feedback) string {
	rating := max(0, min(f.Rating, models.MaxRating))
	return "New feedback received\n" +
		fmt.Sprintf("From: %s <%s>\n", f.CustomerName, f.Email) +
		fmt.Sprintf("Category: %s\n", f.Category) +
		fmt.Sprintf("Rating: %s (%d/%d)\n", strings.Repeat("★", rating), f.Rating, models.MaxRating) +
		"Comments: " + f.Comments
}
