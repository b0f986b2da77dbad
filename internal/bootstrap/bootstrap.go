// Package bootstrap builds the repositories and services shared by the
// server and the operator CLI.
package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/ai"
	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/platform"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/review"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/storage"
	"golang.org/x/oauth2"
	blogger "google.golang.org/api/blogger/v3"
)

const businessManageScope = "https://www.googleapis.com/auth/business.manage"

type Repositories struct {
	Users         repository.UserRepository
	Platforms     repository.PlatformRepository
	Accounts      repository.ConnectedAccountRepository
	Settings      repository.ContentSettingRepository
	Schedules     repository.ScheduleRepository
	Contents      repository.GeneratedContentRepository
	Posts         repository.PostRepository
	Notifications repository.NotificationRepository
	Team          repository.TeamRepository
	Campaigns     repository.CampaignRepository
	Reviews       repository.ReviewRepository
	Analytics     repository.AnalyticsRepository
}

func NewRepositories(db *sql.DB) Repositories {
	return Repositories{
		Users:         repository.NewUserRepository(db),
		Platforms:     repository.NewPlatformRepository(db),
		Accounts:      repository.NewConnectedAccountRepository(db),
		Settings:      repository.NewContentSettingRepository(db),
		Schedules:     repository.NewScheduleRepository(db),
		Contents:      repository.NewGeneratedContentRepository(db),
		Posts:         repository.NewPostRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		Team:          repository.NewTeamRepository(db),
		Campaigns:     repository.NewCampaignRepository(db),
		Reviews:       repository.NewReviewRepository(db),
		Analytics:     repository.NewAnalyticsRepository(db),
	}
}

// Generator builds the content generator. A missing model or blob store
// only disables that stage; generation falls back as it would on failure.
func Generator(ctx context.Context, cfg config.Config) service.ContentGenerator {
	var text service.TextModel
	if cfg.LLM.APIKey != "" {
		llm, err := ai.NewChatModel(cfg.LLM)
		if err != nil {
			slog.Warn("text generation disabled", "err", err)
		} else {
			text = llm
		}
	}

	var images service.ImageGenerator
	if cfg.LLM.APIKey != "" && cfg.LLM.ImageURL != "" {
		images = ai.NewImageClient(cfg.LLM.ImageURL, cfg.LLM.APIKey, cfg.LLM.ImageModel)
	}

	blobs, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Warn("image storage disabled", "driver", cfg.Storage.Driver, "err", err)
		blobs = nil
	}

	return service.NewContentGenerator(text, images, blobs, cfg.LLM.MaxConcurrency)
}

// Publisher builds the fan-out publisher shared by the scheduler and the
// queue worker.
func Publisher(cfg config.Config, repos Repositories) service.PublisherService {
	return service.NewPublisherService(repos.Accounts, repos.Posts, repos.Notifications, repos.Contents,
		repos.Team, repos.Users, platform.NewRegistry(cfg.Platforms), cfg.SecretKey)
}

// Services wires every service. queue may be nil when the caller never
// publishes content on demand.
func Services(
	cfg config.Config,
	repos Repositories,
	generator service.ContentGenerator,
	publisher service.PublisherService,
	queue service.PublishEnqueuer) api.Services {
	return api.Services{
		Auth:          service.NewAuthService(cfg, repos.Users),
		Users:         service.NewUserService(repos.Users),
		Accounts:      service.NewAccountService(repos.Platforms, repos.Accounts, repos.Notifications, repos.Team, repos.Users, platform.NewRegistry(cfg.Platforms), cfg.SecretKey),
		Settings:      service.NewSettingsService(repos.Settings),
		Schedules:     service.NewScheduleService(repos.Schedules, repos.Settings, repos.Team, repos.Users),
		Contents:      service.NewContentService(repos.Contents, repos.Posts, repos.Settings, generator, queue),
		Campaigns:     service.NewCampaignService(repos.Campaigns, repos.Team, repos.Users),
		Notifications: service.NewNotificationService(repos.Notifications),
		Analytics:     service.NewAnalyticsService(repos.Analytics, repos.Contents, repos.Posts),
		Team:          service.NewTeamService(repos.Team, repos.Users),
		Scheduler: service.NewSchedulerService(repos.Schedules, repos.Settings, repos.Contents, repos.Notifications,
			generator, publisher, nil),
		Reviews: service.NewReviewService(review.New(), repos.Reviews, repos.Users, repos.Notifications, cfg.Review.TargetURL),
	}
}

// TokenOAuth is the Google client used to refresh Blogger and Business
// Profile tokens.
func TokenOAuth(cfg config.Config) *oauth2.Config {
	return service.GoogleOAuthConfig(cfg.Google, blogger.BloggerScope, businessManageScope)
}
