package notifier

import (
	"context"

	"feedback-desk/internal/logger"
)

// Log writes messages to the application log. Used when no email
// provider is configured.
type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Publish(ctx context.Context, message string) error {
	logger.Info().Str("notifier", "log").Str("message", message).Msg("notification published")
	return nil
}
