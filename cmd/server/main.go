package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/bootstrap"
	"github.com/maheshrc27/autopost/internal/database"
	job "github.com/maheshrc27/autopost/internal/jobs"
	"github.com/maheshrc27/autopost/internal/logger"
	"github.com/maheshrc27/autopost/internal/queue"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if _, err := logger.New(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedPlatforms(ctx, db); err != nil {
		log.Fatalf("Failed to seed platforms: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.Redis.Addr}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	repos := bootstrap.NewRepositories(db)
	generator := bootstrap.Generator(ctx, *cfg)
	publisher := bootstrap.Publisher(*cfg, repos)
	services := bootstrap.Services(*cfg, repos, generator, publisher, queue.NewClient(client))

	app := api.NewApp(*cfg, false)
	api.Register(app, *cfg, services)

	runner := job.NewRunner()
	mustSchedule(runner.Every(cfg.Scheduler.Interval, job.NewSchedulerJob(services.Scheduler)))
	mustSchedule(runner.Every(cfg.Scheduler.TokenRefreshInterval, job.NewTokenRefreshJob(repos.Accounts, bootstrap.TokenOAuth(*cfg), cfg.SecretKey)))
	if cfg.Review.TargetURL != "" {
		mustSchedule(runner.Every(cfg.Scheduler.ReviewInterval, job.NewReviewJob(services.Reviews)))
	}

	worker := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})
	mux := asynq.NewServeMux()
	queue.NewQueue(repos.Contents, publisher).Register(mux)

	slog.Info("starting the asynq server")
	if err := worker.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server is running", "port", cfg.Server.Port)
		return app.Listen(":" + cfg.Server.Port)
	})
	g.Go(func() error {
		runner.Start(gctx)
		<-gctx.Done()
		runner.Stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		gracefulShutdown(app, worker, db)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func mustSchedule(err error) {
	if err != nil {
		log.Fatalf("Failed to schedule job: %v", err)
	}
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := database.Close(db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, worker *asynq.Server, db *sql.DB) {
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	worker.Shutdown()

	closeDB(db)
	log.Println("Server shutdown complete.")
}
