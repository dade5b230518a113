package database

import (
	"context"
	"fmt"
	"time"

	"wedding-gateway/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDatabase connects to the backend's Postgres. A full DATABASE_URL wins over the discrete fields.
func InitDatabase(config *config.DatabaseConfig) (*pgxpool.Pool, error) {
	dsn := config.URL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=%s",
			config.Host,
			config.Port,
			config.User,
			config.Password,
			config.DBName,
			config.SSLMode,
			"UTC",
		)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
