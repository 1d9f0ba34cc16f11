package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

// Migrate brings the job queue schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), &rivermigrate.Config{Logger: log})
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	for _, v := range res.Versions {
		log.InfoContext(ctx, "migration applied",
			slog.Int("version", v.Version),
			slog.Duration("duration", v.Duration),
		)
	}
	if len(res.Versions) == 0 {
		log.InfoContext(ctx, "schema up to date")
	}
	return nil
}
