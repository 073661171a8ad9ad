package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"aaamo-store/internal/config"
	"aaamo-store/internal/database"
	"aaamo-store/internal/events"
	custommiddleware "aaamo-store/internal/middleware"
	"aaamo-store/internal/repository"
	"aaamo-store/internal/seed"
	"aaamo-store/internal/service"
	"aaamo-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const eventBufferSize = 256

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
	kafka  *events.KafkaPublisher
	hub    *events.Hub
}

type repositories struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	offers     repository.OfferRepository
	messages   repository.MessageRepository
	settings   repository.SettingsRepository
	carts      repository.CartRepository
}

// newRepositories picks postgres when db is set and seeded in-memory stores otherwise.
// Carts live in Redis whenever a client is given.
func newRepositories(cfg *config.Config, db *sql.DB, rdb *redis.Client) repositories {
	var repos repositories
	if db != nil {
		repos = repositories{
			products:   repository.NewProductRepository(db),
			categories: repository.NewCategoryRepository(db),
			orders:     repository.NewOrderRepository(db),
			offers:     repository.NewOfferRepository(db),
			messages:   repository.NewMessageRepository(db),
			settings:   repository.NewSettingsRepository(db),
		}
	} else {
		now := time.Now()
		repos = repositories{
			products:   repository.NewInMemoryProductRepository(seed.Products(now)),
			categories: repository.NewInMemoryCategoryRepository(seed.Categories()),
			orders:     repository.NewInMemoryOrderRepository(seed.Orders(now)),
			offers:     repository.NewInMemoryOfferRepository(seed.Offers(now)),
			messages:   repository.NewInMemoryMessageRepository(seed.Messages(now)),
			settings:   repository.NewInMemorySettingsRepository(seed.SiteSettings()),
		}
	}

	if rdb != nil {
		repos.carts = repository.NewRedisCartRepository(rdb, cfg.Redis.CartTTL)
	} else {
		repos.carts = repository.NewInMemoryCartRepository()
	}
	return repos
}

// NewServer wires repositories, services and handlers. db and rdb are optional.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, rdb *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  rdb,
		hub:    events.NewHub(logger),
	}

	// Order events go to the admin live feed plus Kafka, or the log when Kafka is off
	publishers := events.MultiPublisher{s.hub}
	if cfg.Kafka.Enabled() {
		s.kafka = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, eventBufferSize, logger)
		publishers = append(publishers, s.kafka)
	} else {
		publishers = append(publishers, events.NewLogPublisher(logger))
	}

	router.Get("/health", s.health)

	// Initialize repositories
	repos := newRepositories(cfg, db, rdb)

	// Initialize services
	catalogService := service.NewCatalogService(repos.products, repos.categories)
	offerService := service.NewOfferService(repos.offers, nil)
	orderService := service.NewOrderService(repos.products, repos.orders, publishers, logger,
		service.WithEnforcedTransitions(cfg.Orders.EnforceTransitions))
	cartService := service.NewCartService(repos.carts, repos.products)
	messageService := service.NewMessageService(repos.messages, logger)
	settingsService := service.NewSettingsService(repos.settings, *seed.SiteSettings())
	statsService := service.NewStatsService(repos.products, repos.orders, repos.messages, nil)
	authService := service.NewAuthService(cfg.Admin.Emails, cfg.Admin.PasswordHash, cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessExpiry)*time.Minute)

	// Rate limiting needs the shared counter in Redis
	var formLimiter, loginLimiter func(http.Handler) http.Handler
	if rdb != nil {
		formLimiter = custommiddleware.RateLimitMiddleware(rdb, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "forms",
		}, logger)
		loginLimiter = custommiddleware.RateLimitMiddleware(rdb, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "login",
		}, logger)
	}

	// Initialize handlers and register routes
	transport.NewStoreHandler(catalogService, offerService, orderService, cartService, messageService, settingsService, logger).
		RegisterRoutes(router, formLimiter)
	transport.NewCartHandler(cartService, logger).RegisterRoutes(router)
	transport.NewAuthHandler(authService, logger).RegisterRoutes(router, loginLimiter)
	transport.NewAdminHandler(catalogService, offerService, orderService, messageService, settingsService, statsService, s.hub, logger).
		RegisterRoutes(router,
			custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger),
			custommiddleware.RequireAdmin(logger),
		)

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("Server configured",
		zap.String("storage", storageName(db)),
		zap.Bool("redis", rdb != nil),
		zap.Bool("kafka", cfg.Kafka.Enabled()),
		zap.Bool("enforce_transitions", cfg.Orders.EnforceTransitions),
	)
	return s
}

func storageName(db *sql.DB) string {
	if db != nil {
		return config.StoragePostgres
	}
	return config.StorageMemory
}

// HealthStatus is the /health payload
type HealthStatus struct {
	Status      string            `json:"status"`
	Storage     string            `json:"storage"`
	Checks      map[string]string `json:"checks"`
	LiveClients int               `json:"liveClients"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:      "ok",
		Storage:     storageName(s.db),
		Checks:      map[string]string{},
		LiveClients: s.hub.ClientCount(),
	}

	if s.db != nil {
		status.Checks["database"] = "ok"
		if err := database.Health(r.Context(), s.db); err != nil {
			s.logger.Warn("Database health check failed", zap.Error(err))
			status.Checks["database"] = "down"
			status.Status = "degraded"
		}
	}
	if s.redis != nil {
		status.Checks["redis"] = "ok"
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.logger.Warn("Redis health check failed", zap.Error(err))
			status.Checks["redis"] = "down"
			status.Status = "degraded"
		}
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	custommiddleware.RespondWithJSON(w, code, custommiddleware.Response{
		Success: code == http.StatusOK,
		Message: status.Status,
		Data:    status,
	})
}

// Close releases every external resource the server opened or was given
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.hub.Close()

	if s.kafka != nil {
		if err := s.kafka.Close(); err != nil {
			s.logger.Error("Failed to close Kafka publisher", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
