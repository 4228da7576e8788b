package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/admitdesk/admitdesk/internal/config"
	"github.com/admitdesk/admitdesk/internal/domain/admission"
	"github.com/admitdesk/admitdesk/internal/domain/assistant"
	"github.com/admitdesk/admitdesk/internal/domain/booking"
	"github.com/admitdesk/admitdesk/internal/domain/catalog"
	"github.com/admitdesk/admitdesk/internal/domain/identity"
	"github.com/admitdesk/admitdesk/internal/domain/notification"
	"github.com/admitdesk/admitdesk/internal/domain/settings"
	"github.com/admitdesk/admitdesk/internal/platform/auth"
	"github.com/admitdesk/admitdesk/internal/platform/kvstore"
	"github.com/admitdesk/admitdesk/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "admitdesk-server",
		Short: "Admissions & counselling record API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(adminCmd())
	rootCmd.AddCommand(storeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			kv, err := kvstore.NewFileStore(afero.NewOsFs(), cfg.DataDir)
			if err != nil {
				return err
			}
			users := identity.NewStore(kv)
			if err := users.Load(); err != nil {
				return err
			}

			svc := identity.NewService(users, jwtConfig(cfg))
			u, err := svc.CreateAdmin(identity.SignupInput{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created admin %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	createCmd.Flags().String("name", "", "display name")
	createCmd.Flags().String("email", "", "login email")
	createCmd.Flags().String("password", "", "login password")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("email")
	createCmd.MarkFlagRequired("password")

	cmd.AddCommand(createCmd)
	return cmd
}

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the record store",
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all stored records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			kv, err := kvstore.NewFileStore(afero.NewOsFs(), cfg.DataDir)
			if err != nil {
				return err
			}
			for _, key := range []string{"appointments", "admissions", "settings", "user", "users"} {
				if err := kv.Remove(key); err != nil {
					return fmt.Errorf("remove %s: %w", key, err)
				}
			}
			fmt.Println("record store reset")
			return nil
		},
	}

	cmd.AddCommand(resetCmd)
	return cmd
}

func jwtConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		Secret:   cfg.AuthSecret,
		TokenTTL: time.Duration(cfg.TokenTTLMins) * time.Minute,
	}
}

// loadOrReset rehydrates a store, degrading to an empty collection when the
// stored payload is unreadable.
func loadOrReset(logger zerolog.Logger, name string, load func() error, reset func() error, corrupt error) error {
	err := load()
	if err == nil {
		return nil
	}
	if errors.Is(err, corrupt) {
		logger.Warn().Err(err).Str("collection", name).Msg("stored data unreadable, resetting to empty")
		return reset()
	}
	return err
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Record store
	kv, err := kvstore.NewFileStore(afero.NewOsFs(), cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open data directory")
	}
	logger.Info().Str("dir", cfg.DataDir).Msg("record store opened")

	appointments := booking.NewStore(kv)
	admissions := admission.NewStore(kv)
	users := identity.NewStore(kv)
	prefs := settings.NewStore(kv)

	loads := []struct {
		name    string
		load    func() error
		reset   func() error
		corrupt error
	}{
		{"appointments", appointments.Load, appointments.Reset, booking.ErrCorruptData},
		{"admissions", admissions.Load, admissions.Reset, admission.ErrCorruptData},
		{"users", users.Load, users.Reset, identity.ErrCorruptData},
		{"settings", prefs.Load, prefs.Reset, settings.ErrCorruptData},
	}
	for _, l := range loads {
		if err := loadOrReset(logger, l.name, l.load, l.reset, l.corrupt); err != nil {
			logger.Fatal().Err(err).Str("collection", l.name).Msg("failed to load record store")
		}
	}

	// Services
	jwtCfg := jwtConfig(cfg)
	bookingSvc := booking.NewService(appointments)
	admissionSvc := admission.NewService(admissions)
	identitySvc := identity.NewService(users, jwtCfg)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	// Public endpoints: registration, login, the catalog and the assistant.
	public := e.Group("/api/v1", middleware.RateLimit(rateLimitCfg))
	identity.NewHandler(identitySvc).RegisterPublicRoutes(public)
	catalog.NewHandler().RegisterRoutes(public)
	assistant.NewHandler().RegisterRoutes(public)

	// Token-protected endpoints.
	apiV1 := e.Group("/api/v1",
		middleware.RateLimit(rateLimitCfg),
		auth.JWTMiddleware(jwtCfg),
	)
	identity.NewHandler(identitySvc).RegisterRoutes(apiV1)
	booking.NewHandler(bookingSvc).RegisterRoutes(apiV1)
	admission.NewHandler(admissionSvc).RegisterRoutes(apiV1)
	notification.NewHandler(bookingSvc).RegisterRoutes(apiV1)
	settings.NewHandler(prefs).RegisterRoutes(apiV1)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
