package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/steambooster/internal/adapters/console"
	"github.com/bnema/steambooster/internal/adapters/repo/jsonfile"
	"github.com/bnema/steambooster/internal/ports"
)

type app struct {
	accounts ports.AccountRepository
	log      *console.Logger
	settings settings
}

type settings struct {
	accountsPath  string
	reconnectWait time.Duration
	httpTimeout   time.Duration
	debugLog      bool
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetConfigName("sb")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(".")
	cfg.SetEnvPrefix("SB")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault("accounts.path", "accounts.json")
	cfg.SetDefault("reconnect.cooldown", "10m")
	cfg.SetDefault("http.timeout", "45s")
	cfg.SetDefault("log.debug", false)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	s := settings{
		accountsPath:  cfg.GetString("accounts.path"),
		reconnectWait: cfg.GetDuration("reconnect.cooldown"),
		httpTimeout:   cfg.GetDuration("http.timeout"),
		debugLog:      cfg.GetBool("log.debug"),
	}
	if s.accountsPath == "" {
		return nil, errors.New("accounts path is empty")
	}

	log := console.New(os.Stdout, s.debugLog)

	return &app{
		accounts: jsonfile.NewRepository(s.accountsPath, log),
		log:      log,
		settings: s,
	}, nil
}
