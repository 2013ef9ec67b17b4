package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communiteq/time-registration/internal/infrastructure/config"
	mongodb "github.com/communiteq/time-registration/internal/infrastructure/db/mongo"
	"github.com/communiteq/time-registration/pkg/logger"
)

func newEnsureIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the MongoDB indexes used by the service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "time-registration"})

			client, db, err := connectMongo(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			if err := mongodb.EnsureIndexes(cmd.Context(), db); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}
			log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
			return nil
		},
	}
}
