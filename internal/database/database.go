package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/maheshrc27/autopost/internal/models"
)

//go:embed schema.sql
var schema string

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database is unreachable: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SeedPlatforms inserts the fixed platform reference rows with their well
// known ids and moves the sequence past them.
func SeedPlatforms(ctx context.Context, db *sql.DB) error {
	query := `INSERT INTO social_platforms (id, name, display_name) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`

	for id := models.PlatformFacebook; id <= models.PlatformBlogger; id++ {
		if _, err := db.ExecContext(ctx, query, id, models.PlatformNames[id], models.PlatformDisplayNames[id]); err != nil {
			slog.Info(err.Error())
			return fmt.Errorf("seed platform %d: %w", id, err)
		}
	}

	_, err := db.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('social_platforms', 'id'), (SELECT MAX(id) FROM social_platforms))`)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("advance platform sequence: %w", err)
	}
	return nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
