package api

import (
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/api/handlers"
	"github.com/maheshrc27/autopost/internal/api/middleware"
	"github.com/maheshrc27/autopost/internal/service"
)

type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Accounts      service.AccountService
	Settings      service.SettingsService
	Schedules     service.ScheduleService
	Contents      service.ContentService
	Campaigns     service.CampaignService
	Notifications service.NotificationService
	Analytics     service.AnalyticsService
	Team          service.TeamService
	Scheduler     service.SchedulerService
	Reviews       service.ReviewService
}

// NewApp builds the fiber app with the shared middleware stack. Access logs
// are skipped when quiet is set.
func NewApp(cfg config.Config, quiet bool) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    4 * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			slog.Error("unhandled error", "path", c.Path(), "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	if !quiet {
		app.Use(logger.New())
	}

	corsCfg := cors.Config{
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}
	if cfg.Server.FrontendURL != "" {
		corsCfg.AllowOrigins = cfg.Server.FrontendURL
		corsCfg.AllowCredentials = true
	}
	app.Use(cors.New(corsCfg))

	return app
}

func Register(app *fiber.App, cfg config.Config, s Services) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := handlers.NewAuthHandler(cfg, s.Auth)
	v1.Get("/auth/google", auth.Login)
	v1.Get("/auth/google/callback", auth.LoginCallbackHandler)
	v1.Post("/auth/logout", auth.Logout)

	authMiddleware := middleware.NewAuthMiddleware(cfg, s.Users)
	api := v1.Group("", authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(s.Users)
	api.Get("/users/me", user.GetUserInfo)

	platform := handlers.NewPlatformHandler(s.Accounts)
	api.Get("/platforms", platform.ListPlatforms)
	api.Get("/accounts", platform.ListSocialAccounts)
	api.Post("/accounts", platform.ConnectSocialAccount)
	api.Delete("/accounts/:id", platform.DeleteSocialAccount)
	api.Patch("/accounts/:id/status", platform.UpdateAccountStatus)
	api.Post("/accounts/:id/test", platform.TestConnection)

	settings := handlers.NewSettingsHandler(s.Settings)
	api.Get("/settings", settings.ListSettings)
	api.Post("/settings", settings.CreateSettings)
	api.Get("/settings/:id", settings.GetSettingsInfo)
	api.Put("/settings/:id", settings.UpdateSettings)
	api.Delete("/settings/:id", settings.DeleteSettings)

	schedules := handlers.NewScheduleHandler(s.Schedules)
	api.Get("/schedules", schedules.ListSchedules)
	api.Post("/schedules", schedules.CreateSchedule)
	api.Patch("/schedules/:id", schedules.UpdateSchedule)
	api.Delete("/schedules/:id", schedules.DeleteSchedule)

	post := handlers.NewPostHandler(s.Contents)
	api.Get("/content", post.ListContent)
	api.Post("/content", post.CreateContent)
	api.Post("/content/preview", post.Preview)
	api.Patch("/content/:id/status", post.UpdateContentStatus)
	api.Post("/content/:id/publish", post.PublishContent)
	api.Post("/content/:id/enhance", post.EnhanceContent)
	api.Get("/posts", post.ListPosts)

	campaigns := handlers.NewCampaignHandler(s.Campaigns)
	api.Get("/campaigns", campaigns.ListCampaigns)
	api.Post("/campaigns", campaigns.CreateCampaign)
	api.Get("/campaigns/:id", campaigns.GetCampaign)
	api.Put("/campaigns/:id", campaigns.UpdateCampaign)
	api.Delete("/campaigns/:id", campaigns.DeleteCampaign)

	notifications := handlers.NewNotificationHandler(s.Notifications)
	api.Get("/notifications", notifications.ListNotifications)
	api.Patch("/notifications/:id/read", notifications.MarkRead)
	api.Delete("/notifications/:id", notifications.DeleteNotification)

	analytics := handlers.NewAnalyticsHandler(s.Analytics)
	api.Get("/analytics/overview", analytics.Overview)
	api.Get("/analytics/platforms", analytics.Platforms)
	api.Get("/analytics/performance", analytics.Performance)
	api.Get("/analytics/content/:id", analytics.Content)

	team := handlers.NewTeamHandler(s.Team)
	api.Get("/team/members", team.ListMembers)
	api.Get("/team/activity", team.Activity)
	api.Post("/team/invite", team.Invite)
	api.Patch("/team/members/:id", team.UpdateRole)
	api.Delete("/team/members/:id", team.RemoveMember)

	admin := handlers.NewAdminHandler(s.Scheduler, s.Reviews)
	adminGroup := api.Group("/admin", authMiddleware.RequireAdmin())
	adminGroup.Post("/scheduler/tick", admin.Tick)
	adminGroup.Post("/review", admin.RunReview)
	adminGroup.Get("/review/latest", admin.LatestReview)
}
