package config

import (
	"errors"
	"fmt"
	"time"
)

type ApiConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

const (
	defaultApiReadTimeout  = 10 * time.Second
	defaultApiWriteTimeout = 10 * time.Second
)

func (cfg *ApiConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > maxPort {
		return errors.New("api port must be a valid port number")
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultApiReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultApiWriteTimeout
	}

	return nil
}

func (cfg *ApiConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
