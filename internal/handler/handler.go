package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"popularvideogames/backend/internal/auth"
	"popularvideogames/backend/internal/hub"
	"popularvideogames/backend/internal/ingest"
	"popularvideogames/backend/internal/logger"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// Options carries the settings handlers need from the configuration.
type Options struct {
	JWTSecret    []byte
	AdminKeyHash string
	TokenTTL     time.Duration
	Layout       ingest.Layout
}

// Handler serves the HTTP API.
type Handler struct {
	db       *gorm.DB
	log      *logger.Logger
	ingester *ingest.Ingester
	hub      *hub.Hub
	opts     Options
}

func New(db *gorm.DB, ingester *ingest.Ingester, events *hub.Hub, baseLog *logger.Logger, opts Options) *Handler {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	if opts.Layout.Name == "" {
		opts.Layout = ingest.DefaultLayout
	}
	return &Handler{
		db:       db,
		log:      baseLog.With("component", "Handler"),
		ingester: ingester,
		hub:      events,
		opts:     opts,
	}
}

// Register mounts every route on router.
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/auth/token", h.IssueToken)

		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", h.GetGames)
			gameRoutes.GET("/:id", h.GetGameByID)
			gameRoutes.GET("/:id/reviews", h.GetGameReviews)
		}

		reportRoutes := apiV1.Group("/reports")
		{
			reportRoutes.GET("", h.ListReports)
			reportRoutes.GET("/:category/:report", h.RunReport)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(h.opts.JWTSecret), auth.AdminMiddleware())
		{
			adminRoutes.POST("/ingest", h.Ingest)
			adminRoutes.GET("/ingest/events", h.IngestEvents)
			adminRoutes.GET("/ingest/runs", h.GetIngestionRuns)
		}
	}
}

// pageParams reads page and limit query parameters with the API defaults.
func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	return page, limit
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return 0, false
	}
	return id, true
}
