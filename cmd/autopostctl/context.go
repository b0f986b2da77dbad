package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/bootstrap"
	"github.com/maheshrc27/autopost/internal/database"
	"github.com/maheshrc27/autopost/internal/logger"
)

type commandContext struct {
	envFile *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(envFile *string) *commandContext {
	return &commandContext{envFile: envFile}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if path := strings.TrimSpace(*c.envFile); path != "" {
			if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				c.configErr = err
				return
			}
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			c.configErr = err
			return
		}
		if _, err := logger.New(cfg.Log.Level, "text"); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withDB opens the database for the duration of fn.
func (c *commandContext) withDB(ctx context.Context, fn func(*config.Config, *sql.DB) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("close database", "err", err)
		}
	}()

	return fn(cfg, db)
}

// withServices wires the services without a publish queue; on-demand
// publishing is the server's job.
func (c *commandContext) withServices(ctx context.Context, fn func(api.Services) error) error {
	return c.withDB(ctx, func(cfg *config.Config, db *sql.DB) error {
		repos := bootstrap.NewRepositories(db)
		generator := bootstrap.Generator(ctx, *cfg)
		return fn(bootstrap.Services(*cfg, repos, generator, bootstrap.Publisher(*cfg, repos), nil))
	})
}
