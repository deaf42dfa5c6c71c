package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"content-relations/core/loader"
	"content-relations/core/logger"
	"content-relations/core/middleware/auth"
	"content-relations/core/middleware/rayid"
	"content-relations/core/notification"
	"content-relations/core/storage"
	"content-relations/feature/integrity"
	"content-relations/feature/relations"
	"content-relations/feature/relations/editors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "content-relations/docs/swagger"
)

// @title Content Relations API
// @version 1.0
// @description API for tracking and reconciling references between content nodes.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the content relations server",
	Long:  `Starts the HTTP server, the notification consumer and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 1. Configuration and logger
		cfg, logg, err := loadRuntime()
		if err != nil {
			log.Fatal(err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Database (optional: relation endpoints stay disabled without it)
		var db *gorm.DB
		if conn, err := openDatabase(ctx, cfg.Database, logg); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
		}

		// 3. Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 4. Features
		registry := editors.Default()
		relationsFeature := relations.NewFeature(db, registry, store, cfg.Storage, cfg.Relations, logg)

		mgr := loader.NewManager(logg)
		mgr.Register(relationsFeature)
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, logg, db, editors.AutomaticAliases))

		// 5. Notifications
		bus := notification.NewBus()
		relationsFeature.Service().Subscribe(bus)

		var consumer *notification.Consumer
		if cfg.Kafka.Enabled && db != nil {
			consumer, err = notification.NewConsumer(cfg.Kafka, bus, logg)
			if err != nil {
				logg.Fatal("Failed to create notification consumer", zap.Error(err))
			}
			consumer.Start(ctx)
		} else if cfg.Kafka.Enabled {
			logg.Warn("Notification consumer disabled: no database connection")
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// Middleware order matters: the ray id must exist before anything logs.
		app.Use(rayid.New())

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

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Public: []string{"/metrics"}}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		if consumer != nil {
			if err := consumer.Stop(); err != nil {
				logg.Warn("Failed to stop notification consumer", zap.Error(err))
			}
		}
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
