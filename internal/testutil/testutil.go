package testutil

import (
	"context"
	"fmt"

	"runway-tickets/config"
	"runway-tickets/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables 整合測試每次清空的資料表，保留 schema
const Tables = "tickets, ticket_types, videos, shows, users"

// SetupDatabase 連上測試資料庫並套用 migration；連不上時回傳錯誤，由呼叫端決定是否跳過
func SetupDatabase() (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig()

	migrator, err := database.NewMigrator(cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open test database: %w", err)
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return pool, pool.Close, nil
}

func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE "+Tables+" CASCADE")
	return err
}
