package main

import (
	"context"
	"fmt"

	"feedback-desk/internal/config"
	"feedback-desk/internal/database"
	"feedback-desk/internal/logger"
	"feedback-desk/internal/notifier"
	"feedback-desk/internal/storage"
)

// openStorage builds the backend named by cfg.StorageDriver. The returned
// close func releases its connection.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory storage; feedback is lost on restart")
		return storage.NewMemory(), noop, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("using sqlite storage")
		return storage.NewSQLite(db, cfg.StorageKey), func() error { return database.CloseSQLite(db) }, nil

	case config.DriverRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, cfg.StorageKey), client.Close, nil

	case config.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewMongo(db, cfg.StorageKey), func() error { return client.Disconnect(context.Background()) }, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

func newNotifier(cfg *config.Config) notifier.Notifier {
	if cfg.EmailEnabled() {
		logger.Info().Str("to", cfg.NotifyEmail).Msg("new feedback alerts go out by email")
		return notifier.NewEmail(cfg.ResendAPIKey, cfg.FromEmail, cfg.NotifyEmail)
	}
	logger.Warn().Msg("RESEND_API_KEY, FROM_EMAIL or NOTIFY_EMAIL not set; new feedback alerts are only logged")
	return notifier.NewLog()
}
