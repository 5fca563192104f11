package config

import (
	"errors"
	"time"
)

const defaultSnapshotInterval = 1 * time.Minute

type PollerConfig struct {
	// SnapshotPollingInterval controls how often the in-memory pool is
	// flushed to the database and the stake gauges refreshed.
	SnapshotPollingInterval time.Duration `mapstructure:"snapshot-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.SnapshotPollingInterval == 0 {
		cfg.SnapshotPollingInterval = defaultSnapshotInterval
	}
	if cfg.SnapshotPollingInterval < 0 {
		return errors.New("snapshot-polling-interval must be positive")
	}

	return nil
}
