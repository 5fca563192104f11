package config

import (
	"fmt"
)

const (
	defaultMetricsPort = 2112
	maxPort            = 65535
)

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port == 0 {
		cfg.Port = defaultMetricsPort
	}
	if cfg.Port < 0 || cfg.Port > maxPort {
		return fmt.Errorf("metrics port must be in range [0, %d]", maxPort)
	}

	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
