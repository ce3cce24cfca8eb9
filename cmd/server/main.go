package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strings"

	"github.com/mytheresa/shop-admin/app/config"
	"github.com/mytheresa/shop-admin/app/database"
	"github.com/mytheresa/shop-admin/app/events"
	"github.com/mytheresa/shop-admin/app/identity"
	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/metrics"
	"github.com/mytheresa/shop-admin/app/seed"
	"github.com/mytheresa/shop-admin/app/server"
	"github.com/mytheresa/shop-admin/app/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	if err := run(context.Background(), *configPath); err != nil {
		log.Fatal(err)
	}
}

// run wires the service and blocks until the server stops. Deferred cleanup
// runs on every return path.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		return err
	}

	db, err := database.Open(ctx, database.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logging.Error(ctx, "failed to close database", "error", err)
		}
	}()

	if cfg.Seed.Enabled {
		seed.NewSeeder(seed.NewGormStore(db), seed.Config{
			AdminEmail:    cfg.Seed.AdminEmail,
			AdminPassword: cfg.Seed.AdminPassword,
		}).SeedDefaultData(ctx)
	} else if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logging.Error(ctx, "failed to close kafka publisher", "error", err)
			}
		}()
		publisher = kafkaPublisher
	}

	m := metrics.New(strings.ReplaceAll(cfg.ServiceName, "-", "_"))
	tokens := identity.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	images := storage.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.MaxImageBytes)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	router := server.NewRouter(server.RouterConfig{
		Handlers:  server.NewHandlers(db, m, publisher, tokens, images),
		Metrics:   m,
		Tokens:    tokens,
		Health:    sqlDB,
		ImagesDir: cfg.Storage.UploadDir,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logging.Info(ctx, "starting service", "service", cfg.ServiceName, "environment", cfg.Environment)
	return server.Run(ctx, srv)
}
