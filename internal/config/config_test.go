package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Staking: StakingConfig{
			Token:              "STK",
			RewardRate:         100,
			LockPeriod:         7 * 24 * time.Hour,
			MinStake:           10,
			PenaltyBeneficiary: "treasury",
			Owner:              "admin-key",
		},
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Queue: QueueConfig{
			Url:            "amqp://localhost:5672",
			User:           "test",
			Password:       "test",
			Exchange:       "staking.events",
			PublishTimeout: 5 * time.Second,
		},
		Api: ApiConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
		Poller: PollerConfig{
			SnapshotPollingInterval: 30 * time.Second,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing staking token", func(t *testing.T) {
		cfg := validConfig()
		cfg.Staking.Token = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "staking token is required")
	})

	t.Run("negative reward rate", func(t *testing.T) {
		cfg := validConfig()
		cfg.Staking.RewardRate = -1
		require.Error(t, cfg.Validate())
	})

	t.Run("zero lock period", func(t *testing.T) {
		cfg := validConfig()
		cfg.Staking.LockPeriod = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lock-period must be positive")
	})

	t.Run("zero min stake", func(t *testing.T) {
		cfg := validConfig()
		cfg.Staking.MinStake = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("missing penalty beneficiary", func(t *testing.T) {
		cfg := validConfig()
		cfg.Staking.PenaltyBeneficiary = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("missing db address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Db.Address = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("missing queue exchange", func(t *testing.T) {
		cfg := validConfig()
		cfg.Queue.Exchange = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("publish timeout defaults when unset", func(t *testing.T) {
		cfg := validConfig()
		cfg.Queue.PublishTimeout = 0
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultPublishTimeout, cfg.Queue.PublishTimeout)
	})

	t.Run("metrics port defaults when unset", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Port = 0
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultMetricsPort, cfg.Metrics.Port)
	})

	t.Run("snapshot interval defaults when unset", func(t *testing.T) {
		cfg := validConfig()
		cfg.Poller.SnapshotPollingInterval = 0
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultSnapshotInterval, cfg.Poller.SnapshotPollingInterval)
	})

	t.Run("invalid api port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Api.Port = 0
		require.Error(t, cfg.Validate())
	})
}

func TestStakingConfig_PoolParams(t *testing.T) {
	cfg := validConfig()
	params := cfg.Staking.PoolParams()

	assert.Equal(t, int64(100), params.RewardRate.Int64())
	assert.Equal(t, int64(7*24*3600), params.LockPeriodSeconds)
	assert.Equal(t, int64(10), params.MinStake.Int64())
	assert.Equal(t, "treasury", params.PenaltyBeneficiary)
	require.NoError(t, params.Validate())
}

func TestNew_LoadsYamlFile(t *testing.T) {
	content := `
staking:
  token: STK
  reward-rate: 100
  lock-period: 168h
  min-stake: 10
  penalty-beneficiary: treasury
  owner: admin-key
db:
  username: user
  password: password
  address: mongodb://localhost:27017
  db-name: staking-ledger
queue:
  url: amqp://localhost:5672
  user: user
  password: password
  exchange: staking.events
api:
  host: 127.0.0.1
  port: 8080
metrics:
  host: 0.0.0.0
  port: 2112
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "STK", cfg.Staking.Token)
	assert.Equal(t, 7*24*time.Hour, cfg.Staking.LockPeriod)
	assert.Equal(t, "staking-ledger", cfg.Db.DbName)
	assert.Equal(t, defaultSnapshotInterval, cfg.Poller.SnapshotPollingInterval)
	assert.Equal(t, defaultPublishTimeout, cfg.Queue.PublishTimeout)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
