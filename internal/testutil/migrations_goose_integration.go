//go:build integration

package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/Gunvolt24/order_queue/internal/repo/postgres"
)

// ApplyMigrationsGoose - применяет встроенные миграции (migrations.FS) к базе по DSN.
// Тот же путь, что использует сервис при ORDER_POSTGRES_MIGRATE_ON_START=true.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	defer pool.Close()

	return pgrepo.Migrate(ctx, pool)
}
