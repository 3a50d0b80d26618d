// Package api wires the HTTP surface: CORS, authentication middleware and
// the route tree.
package api

import (
	"strings"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/api/handlers"
	"github.com/AvirupSahaAug/Role-Juggler/internal/api/middleware"
	"github.com/AvirupSahaAug/Role-Juggler/internal/config"
	"github.com/AvirupSahaAug/Role-Juggler/internal/functions"
	"github.com/AvirupSahaAug/Role-Juggler/internal/functions/ai"
	"github.com/AvirupSahaAug/Role-Juggler/internal/mailbox"
	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter initializes and returns the Gin router with all routes configured
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *middleware.AuthManager, error) {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authManager, err := middleware.NewAuthManager(cfg.DataDir, cfg.JWTSecret, middleware.DefaultTokenExpiry)
	if err != nil {
		return nil, nil, err
	}

	logService := services.NewLogServiceWithLevel(db, cfg.LogLevel)
	userService := services.NewUserService(db, cfg.GetEncryptionKey())
	jobService := services.NewJobService(db)
	taskService := services.NewTaskService(db)
	noteService := services.NewNoteService(db)
	meetingService := services.NewMeetingService(db)
	updateService := services.NewUpdateService(db)

	classifier := functions.NewEmailClassifier(ai.NewClient(ai.Options{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIAPIKey,
		Model:    cfg.AIModel,
		BaseURL:  cfg.AIBaseURL,
	}))
	dialer := mailbox.NewIMAPDialer(cfg.IMAPHost, cfg.IMAPPort)
	ingestionService := services.NewIngestionService(db, userService, jobService, dialer, classifier, logService)

	authHandler := handlers.NewAuthHandler(userService, authManager.JWTManager, logService)
	profileHandler := handlers.NewProfileHandler(userService, logService)
	jobHandler := handlers.NewJobHandler(jobService)
	taskHandler := handlers.NewTaskHandler(taskService)
	noteHandler := handlers.NewNoteHandler(noteService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	updateHandler := handlers.NewUpdateHandler(updateService)
	ingestHandler := handlers.NewIngestHandler(ingestionService)

	// Health check endpoint (no auth required)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.Use(middleware.APIKeyMiddleware(authManager.APIKeyManager))

		// Auth routes (API key required, but no JWT required)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes (API key + JWT required)
		protected := api.Group("")
		protected.Use(middleware.JWTMiddleware(authManager.JWTManager))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.GetCurrentUser)

			userGroup := protected.Group("/user")
			{
				userGroup.GET("/profile", profileHandler.GetProfile)
				userGroup.PUT("/profile", profileHandler.UpdateProfile)
				userGroup.PUT("/password", profileHandler.ChangePassword)
			}

			jobs := protected.Group("/jobs")
			{
				jobs.GET("", jobHandler.ListJobs)
				jobs.POST("", jobHandler.CreateJob)
				jobs.GET("/:id", jobHandler.GetJob)
				jobs.PUT("/:id", jobHandler.UpdateJob)
				jobs.DELETE("/:id", jobHandler.DeleteJob)
			}

			tasks := protected.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", taskHandler.CreateTask)
				tasks.GET("/:id", taskHandler.GetTask)
				tasks.PUT("/:id", taskHandler.UpdateTask)
				tasks.DELETE("/:id", taskHandler.DeleteTask)
			}

			notes := protected.Group("/sticky-notes")
			{
				notes.GET("", noteHandler.ListNotes)
				notes.POST("", noteHandler.CreateNote)
				notes.GET("/:id", noteHandler.GetNote)
				notes.PUT("/:id", noteHandler.UpdateNote)
				notes.DELETE("/:id", noteHandler.DeleteNote)
			}

			meetings := protected.Group("/meetings")
			{
				meetings.GET("", meetingHandler.ListMeetings)
				meetings.POST("", meetingHandler.CreateMeeting)
				meetings.GET("/:id", meetingHandler.GetMeeting)
				meetings.PUT("/:id", meetingHandler.UpdateMeeting)
				meetings.DELETE("/:id", meetingHandler.DeleteMeeting)
			}

			updates := protected.Group("/updates")
			{
				updates.GET("", updateHandler.ListUpdates)
				updates.DELETE("/:id", updateHandler.DeleteUpdate)
			}

			emails := protected.Group("/emails")
			{
				emails.POST("/fetch-today", ingestHandler.FetchToday)
			}
		}
	}

	return router, authManager, nil
}
