package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/affinity/internal/collect"
	"github.com/aevon-lab/affinity/internal/ingestion"
	"github.com/aevon-lab/affinity/internal/profile"
	"github.com/aevon-lab/affinity/internal/reconcile"
	"github.com/aevon-lab/affinity/internal/retention"
	"github.com/aevon-lab/affinity/internal/server"
	"github.com/aevon-lab/affinity/internal/transport/codec"
	"github.com/aevon-lab/affinity/internal/transport/kafkasource"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the configured background consumers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

func serve(cmd *cobra.Command) error {
	slog.Info("Loaded config",
		"driver", cfg.Database.Driver,
		"timezone", cfg.Ingestion.Timezone,
		"topic_threshold", cfg.Ingestion.TopicThreshold,
		"kafka", cfg.Kafka.Enabled,
		"retention", cfg.Retention.Enabled,
	)

	// 1. Storage + migrations
	store, err := openStore(cmd, true)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	loc, err := cfg.Ingestion.Location()
	if err != nil {
		return err
	}

	// 2. Services. Live ingestion and backfill share one sequence cache.
	cache := collect.NewSequenceCache()

	ingestionSvc := ingestion.NewService(store, cache, ingestion.Options{
		TopicThreshold: cfg.Ingestion.TopicThresholdDuration(),
		Location:       loc,
		MaxBodySizeMB:  cfg.Server.MaxBodySizeMB,
	})
	reconcileSvc := reconcile.NewService(store, cache, reconcile.Options{
		TopicThreshold: cfg.Ingestion.TopicThresholdDuration(),
		Location:       loc,
		MaxPoolSize:    cfg.Backfill.MaxPoolSize,
	})
	profileSvc := profile.NewService(store, store, profile.Options{
		Cooldown:    cfg.Profile.CooldownDuration(),
		MinMessages: cfg.Profile.MinMessages,
		Location:    loc,
	})

	// 3. HTTP server
	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), store.DB(), string(store.Dialect()), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	reconcileSvc.RegisterRoutes(srv.Engine)
	profileSvc.RegisterRoutes(srv.Engine)

	// 4. Background workers share the command context; the first failure
	// stops the rest.
	g, ctx := errgroup.WithContext(cmd.Context())

	if cfg.Kafka.Enabled {
		c, err := codec.New(ctx, cfg.Kafka.Format)
		if err != nil {
			return err
		}
		consumer, err := kafkasource.NewConsumer(kafkasource.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}, c, ingestionSvc)
		if err != nil {
			return err
		}
		g.Go(func() error { return consumer.Run(ctx) })
	} else {
		slog.Info("Kafka source disabled by config")
	}

	if cfg.Retention.Enabled {
		sweeper := retention.NewSweeper(store, cfg.Retention.Schedule, cfg.Retention.KeepDays, loc)
		g.Go(func() error { return sweeper.Start(ctx) })
	} else {
		slog.Info("Retention sweeper disabled by config")
	}

	// HTTP server blocks until ctx is cancelled.
	g.Go(func() error { return srv.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Server stopped with error", "error", err)
		return err
	}

	slog.Info("Shutdown complete")
	return nil
}
