package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/taskreel/taskreel-api/internal/config"
	"github.com/taskreel/taskreel-api/internal/db"
	"github.com/taskreel/taskreel-api/internal/handlers"
	"github.com/taskreel/taskreel-api/internal/middleware"
	"github.com/taskreel/taskreel-api/internal/models"
	"github.com/taskreel/taskreel-api/internal/realtime"
	"github.com/taskreel/taskreel-api/internal/services/marketplace"
	"github.com/taskreel/taskreel-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	hub := realtime.NewHub()
	go hub.Run()
	go realtime.SubscribeNotifications(context.Background(), rdb, hub)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Application{},
		&models.Notification{},
	); err != nil {
		log.Fatal(err)
	}

	st := store.NewGormStore(gdb)
	notifier := marketplace.NewNotifyService(st, &realtime.Publisher{RDB: rdb})
	taskSvc := marketplace.NewTaskService(st, notifier)
	appSvc := marketplace.NewApplicationService(st, notifier)

	authH := &handlers.AuthHandler{
		DB:        gdb,
		RDB:       rdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	taskH := handlers.NewTaskHandler(taskSvc)
	appH := handlers.NewApplicationHandler(appSvc)
	notifH := handlers.NewNotificationHandler(st, hub)
	profileH := handlers.NewProfileHandler(gdb, cfg.AppBaseURL, cfg.UploadDir)
	adminH := handlers.NewAdminHandler(st)
	categoryH := handlers.NewCategoryHandler()

	app := fiber.New(fiber.Config{
		BodyLimit: handlers.MaxReelSize + (1 << 20),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Post("/auth/forgot-password", authH.ForgotPassword)
	api.Post("/auth/reset-password", authH.ResetPassword)
	api.Get("/auth/google", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	api.Get("/categories", categoryH.GetCategories)
	api.Get("/tasks", taskH.ListTasks)
	api.Get("/tasks/:id", taskH.GetTask)

	// authenticated
	protected := app.Group("/api",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/auth/me", authH.Me)

	protected.Post("/tasks",
		middleware.RequireRoles("business_owner"),
		taskH.CreateTask,
	)
	protected.Get("/tasks/mine/list",
		middleware.RequireRoles("business_owner"),
		taskH.ListMine,
	)
	protected.Patch("/tasks/:id/status", taskH.UpdateTaskStatus)

	protected.Get("/tasks/:id/applications", appH.ListForTask)
	protected.Post("/tasks/:id/applications",
		middleware.RequireRoles("freelancer"),
		appH.Apply,
	)
	protected.Get("/applications/mine",
		middleware.RequireRoles("freelancer"),
		appH.ListMine,
	)
	protected.Post("/applications/:id/accept", appH.Accept)
	protected.Post("/applications/:id/reject", appH.Reject)

	protected.Get("/notifications", notifH.List)
	protected.Get("/notifications/unread-count", notifH.UnreadCount)
	protected.Patch("/notifications/read-all", notifH.MarkAllRead)
	protected.Patch("/notifications/:id/read", notifH.MarkRead)

	protected.Get("/profile", profileH.GetProfile)
	protected.Patch("/profile", profileH.UpdateProfile)
	protected.Post("/profile/reels",
		middleware.RequireRoles("freelancer"),
		profileH.UploadReel,
	)
	protected.Delete("/profile/reels",
		middleware.RequireRoles("freelancer"),
		profileH.DeleteReel,
	)

	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/stats", adminH.Stats)
	admin.Get("/users", adminH.ListUsers)
	admin.Get("/tasks", adminH.ListTasks)
	admin.Get("/applications", adminH.ListApplications)

	// websocket endpoint, authenticated via query param
	app.Get("/ws/notifications", websocket.New(notifH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
