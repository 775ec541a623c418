package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/booking"
	bookingHttp "github.com/Justinkingbella/namibia-service-connect-sub002/internal/booking/http"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/dispute"
	disputeHttp "github.com/Justinkingbella/namibia-service-connect-sub002/internal/dispute/http"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/file"
	fileHttp "github.com/Justinkingbella/namibia-service-connect-sub002/internal/file/http"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/listing"
	listingHttp "github.com/Justinkingbella/namibia-service-connect-sub002/internal/listing/http"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/user"
	userHttp "github.com/Justinkingbella/namibia-service-connect-sub002/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	ListingService listing.Service
	BookingService booking.Service
	DisputeService dispute.Service
	FileService    file.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, logging, recovery) and registers routes
// for each module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	// Configure CORS. Dev allows localhost clients; prod uses the configured
	// origin list.
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := auth.RequireRole(auth.RoleAdmin)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	listingHandler := listingHttp.NewHandler(cfg.ListingService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	disputeHandler := disputeHttp.NewHandler(cfg.DisputeService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		listingHttp.RegisterRoutes(v1, listingHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		disputeHttp.RegisterRoutes(v1, disputeHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
	}

	return r
}
