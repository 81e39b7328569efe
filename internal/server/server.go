package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/config"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/database"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/handlers"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/middleware"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

type Server struct {
	db      database.Service
	cfg     *config.Config
	log     zerolog.Logger
	handler *handlers.Handler
}

// New builds the HTTP server around an already-connected database.
func New(cfg *config.Config, db database.Service, svc *service.Services, log zerolog.Logger) *http.Server {
	s := &Server{
		db:      db,
		cfg:     cfg,
		log:     log,
		handler: handlers.NewHandler(db.DB(), svc, cfg, log),
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// RegisterRoutes sets up all application routes.
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(s.log))

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health(c.Request.Context()))
	})

	authRequired := middleware.AuthRequired(s.db.DB(), []byte(s.cfg.Auth.JWTSecret))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)

		// Question routes (public reads)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)

		// Answer routes (public reads)
		api.GET("/questions/:id/answers", s.handler.Answer.GetAnswers)
		api.GET("/answers/:id", s.handler.Answer.GetAnswer)

		// Comment routes (public reads)
		api.GET("/answers/:id/comments", s.handler.Comment.GetComments)

		// Tag routes (public reads)
		api.GET("/tags", s.handler.Tag.GetTags)
		api.GET("/tags/:name", s.handler.Tag.GetTag)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(authRequired)
		{
			protected.GET("/auth/me", s.handler.Auth.GetMe)

			// Question protected routes
			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.PUT("/questions/:id", s.handler.Question.UpdateQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)
			protected.POST("/questions/:id/vote", s.handler.Question.VoteQuestion)
			protected.DELETE("/questions/:id/vote", s.handler.Question.RetractQuestionVote)
			protected.GET("/questions/:id/vote", s.handler.Question.GetQuestionVote)
			protected.POST("/questions/:id/accept", s.handler.Question.AcceptAnswer)

			// Answer protected routes
			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.PUT("/answers/:id", s.handler.Answer.UpdateAnswer)
			protected.DELETE("/answers/:id", s.handler.Answer.DeleteAnswer)
			protected.POST("/answers/:id/vote", s.handler.Answer.VoteAnswer)
			protected.DELETE("/answers/:id/vote", s.handler.Answer.RetractAnswerVote)
			protected.GET("/answers/:id/vote", s.handler.Answer.GetAnswerVote)

			// Comment protected routes
			protected.POST("/answers/:id/comments", s.handler.Comment.CreateComment)
			protected.DELETE("/comments/:id", s.handler.Comment.DeleteComment)
			protected.POST("/comments/:id/vote", s.handler.Comment.VoteComment)

			// Notification routes
			protected.GET("/notifications", s.handler.Notification.GetNotifications)
			protected.GET("/notifications/unread-count", s.handler.Notification.GetUnreadCount)
			protected.PUT("/notifications/:id/read", s.handler.Notification.MarkRead)
			protected.PUT("/notifications/read-all", s.handler.Notification.MarkAllRead)
			protected.DELETE("/notifications/:id", s.handler.Notification.DeleteNotification)

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("/dashboard", s.handler.Admin.GetDashboard)
				admin.GET("/users", s.handler.Admin.GetUsers)
				admin.PUT("/users/:id/ban", s.handler.Admin.ToggleBan)
				admin.PUT("/questions/:id/moderate", s.handler.Admin.ModerateQuestion)
				admin.PUT("/answers/:id/moderate", s.handler.Admin.ModerateAnswer)
				admin.PUT("/tags/:id/moderate", s.handler.Admin.ModerateTag)
				admin.POST("/alerts", s.handler.Admin.SendAlert)
				admin.GET("/moderation-queue", s.handler.Admin.GetModerationQueue)
			}
		}
	}

	return r
}
