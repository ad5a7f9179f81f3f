package server

import (
	"net/http"

	"moodtracker/internal/config"
	"moodtracker/internal/handler"
	"moodtracker/internal/middleware"
	"moodtracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router      *gin.Engine
	cfg         *config.Config
	authService service.AuthService
	moodService service.MoodService
	logger      *zap.Logger
	log         *logrus.Logger
}

func NewServer(cfg *config.Config, authService service.AuthService, moodService service.MoodService, logger *zap.Logger, log *logrus.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:      router,
		cfg:         cfg,
		authService: authService,
		moodService: moodService,
		logger:      logger,
		log:         log,
	}

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	authHandler := handler.NewAuthHandler(s.authService, s.log)
	moodHandler := handler.NewMoodHandler(s.moodService, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware([]byte(s.cfg.Auth.JWTSecret), s.logger))
	{
		authRequired.POST("/mood/predict", moodHandler.Predict)
		authRequired.GET("/mood/weekly-summary", moodHandler.WeeklySummary)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
