package handlers

import (
	"net/http"
	"time"

	_ "acme_reviews/docs"
	"acme_reviews/internal/logger"
	"acme_reviews/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     options
}

type options struct {
	allowedOrigins []string
	authPerMinute  int
	trustedProxies []string
}

// Option tunes the router built by InitRoutes.
type Option func(*options)

// WithCORS enables CORS for the given origins; "*" allows any origin.
func WithCORS(origins []string) Option {
	return func(o *options) { o.allowedOrigins = origins }
}

// WithAuthRateLimit caps requests per client IP per minute on /api/auth. Zero disables it.
func WithAuthRateLimit(perMinute int) Option {
	return func(o *options) { o.authPerMinute = perMinute }
}

// WithTrustedProxies sets the proxies whose X-Forwarded-For decides the client
// IP. Without it the remote address is used as is.
func WithTrustedProxies(proxies []string) Option {
	return func(o *options) { o.trustedProxies = proxies }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(&h.opts)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	// gin trusts every proxy by default, which lets clients pick their own IP
	if err := router.SetTrustedProxies(h.opts.trustedProxies); err != nil {
		if h.log != nil {
			h.log.Errorw("trusted_proxies_invalid", "proxies", h.opts.trustedProxies, "err", err)
		}
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	if h.log != nil {
		router.Use(requestLogger(h.log))
	}
	if len(h.opts.allowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(h.opts.allowedOrigins)))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		h.registerAuthRoutes(api)
		h.registerItemRoutes(api)
		h.registerUserRoutes(api)

		api.GET("/reviews/me", h.authenticated(h.listMyReviews))
		api.GET("/comments/me", h.authenticated(h.listMyComments))
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	if h.opts.authPerMinute > 0 {
		auth.Use(newIPRateLimiter(h.opts.authPerMinute).middleware())
	}
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/me", h.authenticated(h.me))
	}
}

func (h *Handler) registerItemRoutes(api *gin.RouterGroup) {
	items := api.Group("/items")
	{
		items.GET("", h.listItems)
		items.POST("", h.authenticated(h.createItem))
		items.GET("/:itemId", h.getItem)

		items.GET("/:itemId/reviews", h.listReviews)
		items.POST("/:itemId/reviews", h.authenticated(h.createReview))
		items.GET("/:itemId/reviews/:reviewId", h.getReview)

		items.GET("/:itemId/reviews/:reviewId/comments", h.listComments)
		items.POST("/:itemId/reviews/:reviewId/comments", h.authenticated(h.createComment))
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("", h.listUsers)

		users.PUT("/:userId/reviews/:id", h.authenticated(h.updateReview))
		users.DELETE("/:userId/reviews/:id", h.authenticated(h.deleteReview))
		users.PUT("/:userId/comments/:id", h.authenticated(h.updateComment))
		users.DELETE("/:userId/comments/:id", h.authenticated(h.deleteComment))
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
