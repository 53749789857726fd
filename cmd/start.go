package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"cellular/core/config"
	"cellular/core/loader"
	"cellular/core/logger"
	"cellular/core/middleware/auth"
	"cellular/core/middleware/rayid"
	"cellular/core/resource"
	"cellular/feature/plane"
	"cellular/feature/uirouter"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "cellular/docs/swagger"
)

// @title Cellular API
// @version 1.0
// @description Cellular plane configuration and resource inspection.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the cellular server",
	Long:  `Loads the plane configuration, then starts the HTTP server with the plane and UI router features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if !cfg.Server.IsValidPort() {
			log.Fatalf("Invalid server port %q", cfg.Server.Port)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Build the resource search path and loader
		ctx := cmd.Context()
		chain, err := newSearchPath(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to prepare resources", zap.Error(err))
		}
		resLoader := resource.NewLoader(chain, logg)

		// 4. Load the plane configuration; a malformed configuration stops startup
		planeSvc, err := plane.NewService(ctx, resLoader, cfg.Plane, logg)
		if err != nil {
			logg.Fatal("Failed to start plane", zap.Error(err))
		}
		logg = logg.With(zap.String("plane", planeSvc.Settings().Name))

		// 5. Register Features
		mgr := loader.NewManager()
		mgr.Register(plane.NewFeature(planeSvc))
		mgr.Register(uirouter.NewFeature(chain, planeSvc.Settings().UIEnabled, logg))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray ID
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (the UI assets stay public)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/ui"}}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.Strings("features", mgr.Features()),
			)
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
