package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stakelabs-io/staking-ledger/internal/api"
	"github.com/stakelabs-io/staking-ledger/internal/clients/guard"
	"github.com/stakelabs-io/staking-ledger/internal/clients/tokenledger"
	"github.com/stakelabs-io/staking-ledger/internal/clock"
	"github.com/stakelabs-io/staking-ledger/internal/config"
	"github.com/stakelabs-io/staking-ledger/internal/db"
	dbmodel "github.com/stakelabs-io/staking-ledger/internal/db/model"
	"github.com/stakelabs-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/staking-ledger/internal/observability/tracing"
	"github.com/stakelabs-io/staking-ledger/internal/queue"
	"github.com/stakelabs-io/staking-ledger/internal/services"
	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		//nolint:errcheck
		zapLogger.Sync()
	}()

	publisher, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize event publisher")
	}
	defer publisher.Shutdown()

	bank := tokenledger.NewInMemoryBank()
	var ledger tokenledger.Ledger = bank.Get(cfg.Staking.Token)
	ledger = tokenledger.NewLedgerWithMetrics(ledger)

	clk := clock.System()
	pool, err := staking.NewPool(cfg.Staking.PoolParams(), clk, ledger)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating staking pool")
	}

	gate := guard.NewStaticGate(cfg.Staking.Owner)
	service := services.NewService(cfg, pool, dbClient, clk, bank, gate, publisher)

	if err := service.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while restoring pool from snapshot")
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	server := api.New(&cfg.Api, service)

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := server.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("api server exited")
		}
	})
	wg.Go(func() {
		service.RunSnapshotPoller(ctx)
	})
	wg.Wait()

	return nil
}
