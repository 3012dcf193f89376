package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/pawmarket/pawmarket/internal/config"
	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
	"github.com/pawmarket/pawmarket/internal/module/animal"
	"github.com/pawmarket/pawmarket/internal/module/auth"
	"github.com/pawmarket/pawmarket/internal/module/chat"
	"github.com/pawmarket/pawmarket/internal/module/city"
	"github.com/pawmarket/pawmarket/internal/module/favorite"
	"github.com/pawmarket/pawmarket/internal/module/notification"
	"github.com/pawmarket/pawmarket/internal/module/user"
	"github.com/pawmarket/pawmarket/internal/platform/mailer"
	"github.com/pawmarket/pawmarket/internal/platform/objstore"
	"github.com/pawmarket/pawmarket/internal/platform/queue"
	"github.com/pawmarket/pawmarket/internal/platform/token"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine    *gin.Engine
	db        *gorm.DB
	logger    *logger.Logger
	cfg       *config.Config
	publisher *queue.NATSPublisher
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, database, the token issuer, optional object storage,
// queue and mail backends, domain repositories, services, handlers,
// middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database (includes connection pool configuration).
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// 3. AutoMigrate in debug mode only.
	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.City{},
			&domain.Animal{},
			&domain.AnimalImage{},
			&domain.Favorite{},
			&domain.Chat{},
			&domain.Message{},
			&domain.Notification{},
		); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Token issuer. Expiries are validated by config.Load.
	accessExpiry, err := time.ParseDuration(cfg.Auth.AccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse auth.access_expiry: %w", err)
	}
	refreshExpiry, err := time.ParseDuration(cfg.Auth.RefreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse auth.refresh_expiry: %w", err)
	}
	issuer := token.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, accessExpiry, refreshExpiry)

	// 5. Optional backends: object storage, queue, mail.
	var store objstore.Store
	if cfg.Storage.Enabled {
		minioStore, err := objstore.NewMinioStore(
			cfg.Storage.Endpoint,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.Bucket,
			cfg.Storage.UseSSL,
			log.Logger,
		)
		if err != nil {
			return nil, fmt.Errorf("setup object storage: %w", err)
		}
		store = minioStore
	}

	var publisher *queue.NATSPublisher
	var pub queue.Publisher
	if cfg.Queue.Enabled {
		publisher, err = queue.NewNATSPublisher(cfg.Queue.URL)
		if err != nil {
			return nil, fmt.Errorf("setup queue: %w", err)
		}
		pub = publisher
	}
	defer func() {
		if success || publisher == nil {
			return
		}
		publisher.Close()
	}()

	var mail mailer.Mailer
	if cfg.Mail.Enabled {
		mail = mailer.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.From, cfg.Mail.Password)
	}

	// 6. Manual dependency injection: repository → service → handler.
	userRepo := user.NewUserRepository(db)
	cityRepo := city.NewCityRepository(db)
	animalRepo := animal.NewAnimalRepository(db)
	favoriteRepo := favorite.NewFavoriteRepository(db)
	chatRepo := chat.NewChatRepository(db)
	notificationRepo := notification.NewNotificationRepository(db)

	notificationSvc := notification.NewService(notificationRepo, favoriteRepo, userRepo, pub, mail, log.Logger)
	authSvc := auth.NewService(issuer, userRepo, cityRepo, mail, log.Logger)
	userSvc := user.NewUserService(userRepo, cityRepo, store, log.Logger)
	animalSvc := animal.NewService(animalRepo, userRepo, cityRepo, store, notificationSvc, log.Logger)
	favoriteSvc := favorite.NewFavoriteService(favoriteRepo, animalRepo)
	chatSvc := chat.NewService(chatRepo, animalRepo, notificationSvc, log.Logger)

	authHandler := auth.NewHandler(authSvc, auth.CookieConfig{
		Domain: cfg.Auth.CookieDomain,
		Secure: cfg.Auth.CookieSecure,
	})
	userHandler := user.NewUserHandler(userSvc, store)
	cityHandler := city.NewCityHandler(cityRepo)
	animalHandler := animal.NewAnimalHandler(animalSvc)
	favoriteHandler := favorite.NewFavoriteHandler(favoriteSvc)
	chatHandler := chat.NewChatHandler(chatSvc)
	notificationHandler := notification.NewNotificationHandler(notificationSvc)

	authMW := middleware.Auth(issuer)

	// 7. Create Gin engine with custom middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// Build CORS config from application settings.
	// In release mode, when no allowlist is configured, default to deny cross-origin requests.
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	// 8. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{
			auth.NewModule(authHandler),
			user.NewModule(userHandler, authMW),
			city.NewModule(cityHandler, authMW),
			animal.NewModule(animalHandler, authMW),
			favorite.NewModule(favoriteHandler, authMW),
			chat.NewModule(chatHandler, authMW),
			notification.NewModule(notificationHandler, authMW),
		},
		DB: db,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:    engine,
		db:        db,
		logger:    log,
		cfg:       cfg,
		publisher: publisher,
	}, nil
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and closes the
// database connection and queue producer.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		if a.logger != nil {
			a.logger.Info("server started", slog.String("addr", addr))
		} else {
			slog.Info("server started", slog.String("addr", addr))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		if a.logger != nil {
			a.logger.Info("shutdown signal received")
		} else {
			slog.Info("shutdown signal received")
		}
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		// Graceful shutdown with 5-second deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if a.logger != nil {
				a.logger.Error("server shutdown error", slog.Any("error", err))
			} else {
				slog.Error("server shutdown error", slog.Any("error", err))
			}
		}
	}

	// Close the queue producer before the database.
	if a.publisher != nil {
		a.publisher.Close()
	}

	// Close database connection.
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				if a.logger != nil {
					a.logger.Error("database close error", slog.Any("error", err))
				} else {
					slog.Error("database close error", slog.Any("error", err))
				}
			} else {
				if a.logger != nil {
					a.logger.Info("database connection closed")
				} else {
					slog.Info("database connection closed")
				}
			}
		}
	}

	if a.logger != nil {
		a.logger.Info("server stopped")
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	} else {
		slog.Info("server stopped")
	}

	if runErr != nil {
		return runErr
	}

	return nil
}
