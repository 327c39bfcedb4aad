package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"item-catalog/core/config"
	"item-catalog/core/database"
	"item-catalog/core/loader"
	"item-catalog/core/logger"
	"item-catalog/core/middleware/auth"
	"item-catalog/core/middleware/rayid"
	"item-catalog/core/storage"

	"item-catalog/feature/items"
	"item-catalog/feature/suggestions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "item-catalog/docs/swagger"
)

// @title Item Catalog API
// @version 1.0
// @description Ingestion and consolidation of community identify dumps.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the item catalog server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to catalog database", zap.Error(err))
		}
		logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (dump archive, optional)
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		if client != nil {
			if err := storage.EnsureBucket(context.Background(), client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				logg.Fatal("Failed to prepare dump archive bucket", zap.Error(err))
			}
			logg.Info("Dump archive enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()

		itemsFeature := items.NewFeature(db, client, cfg.Storage, cfg.Server, cfg.Catalog, logg)
		mgr.Register(itemsFeature)
		mgr.Register(suggestions.NewFeature(db, itemsFeature.Store(), cfg.Server, logg))

		// RayID first so everything after it is traced.
		app.Use(rayid.New())
		app.Use(cors.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", mgr.Enabled()))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
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
