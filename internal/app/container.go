package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/api"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/booking"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/dispute"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/file"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/listing"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/storage"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/realtime"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Feed         *realtime.Feed
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	localStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init upload storage: %w", err)
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Listing module
	listingRepo := listing.NewPgxRepository(cfg.DBPool)
	listingService := listing.NewService(listingRepo, cfg.Feed)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, listingService, cfg.Feed)

	// Dispute module
	disputeRepo := dispute.NewPgxRepository(cfg.DBPool)
	disputeService := dispute.NewService(disputeRepo, bookingService, cfg.Feed)

	// File module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, localStorage)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ListingService: listingService,
		BookingService: bookingService,
		DisputeService: disputeService,
		FileService:    fileService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
