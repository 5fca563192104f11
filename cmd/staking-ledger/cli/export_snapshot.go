package cli

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakelabs-io/staking-ledger/internal/config"
	"github.com/stakelabs-io/staking-ledger/internal/db"
	"github.com/stakelabs-io/staking-ledger/internal/db/model"
)

func ExportSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-snapshot",
		Short: "Prints the persisted pool state and stake records as JSON",
		Args:  cobra.ExactArgs(0),
		Run:   exportSnapshot,
	}

	return cmd
}

func exportSnapshot(cmd *cobra.Command, args []string) {
	if err := exportSnapshotE(cmd, args); err != nil {
		log.Err(err).Msg("Failed to export snapshot")
		os.Exit(1)
	}
}

type snapshotDump struct {
	PoolState    *model.PoolStateDocument    `json:"pool_state"`
	StakeRecords []model.StakeRecordDocument `json:"stake_records"`
}

func exportSnapshotE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}
	defer func() {
		//nolint:errcheck
		dbClient.Close(ctx)
	}()

	dump := snapshotDump{}

	dump.PoolState, err = dbClient.GetPoolState(ctx)
	if err != nil && !db.IsNotFoundError(err) {
		return err
	}

	dump.StakeRecords, err = dbClient.GetAllStakeRecords(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}
