package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

const applicationName = "eventmanagement"

var (
	ErrApplicationConfigNotFound = errors.New("application config not found")
	ErrInvalidApplicationConfig  = errors.New("invalid application config")
)

const (
	storeMemory   = "memory"
	storeSQLite   = "sqlite"
	storePostgres = "postgres"

	adapterPGX  = "pgx"
	adapterSQL  = "sql"
	adapterSQLX = "sqlx"
)

// Application is the merged configuration of defaults, config file, environment and flags.
type Application struct {
	ConfigPath    string        `mapstructure:"-"`
	Store         string        `mapstructure:"store"`
	SQLite        sqliteConfig  `mapstructure:"sqlite"`
	Postgres      postgresStore `mapstructure:"postgres"`
	Log           logging       `mapstructure:"log"`
	Observability observability `mapstructure:"observability"`
	Currency      string        `mapstructure:"currency"`
	Timezone      string        `mapstructure:"timezone"`
	Color         bool          `mapstructure:"color"`

	currencyUnit currency.Unit
	location     *time.Location
}

type sqliteConfig struct {
	Path string `mapstructure:"path"`
}

// postgresStore selects the adapter, connection and pool settings come from EVENTMANAGEMENT_PG_* variables.
type postgresStore struct {
	Adapter      string `mapstructure:"adapter"`
	CreateSchema bool   `mapstructure:"create-schema"`
}

type logging struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	Structured bool   `mapstructure:"structured"`

	level slog.Level
}

type observability struct {
	Enabled        bool   `mapstructure:"enabled"`
	TraceEndpoint  string `mapstructure:"trace-endpoint"`
	MetricEndpoint string `mapstructure:"metric-endpoint"`
}

func loadDefaultValues(v *viper.Viper) {
	v.SetDefault("store", storeSQLite)
	v.SetDefault("sqlite.path", "")
	v.SetDefault("postgres.adapter", adapterPGX)
	v.SetDefault("postgres.create-schema", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.structured", false)
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.trace-endpoint", "localhost:4317")
	v.SetDefault("observability.metric-endpoint", "localhost:4317")
	v.SetDefault("currency", domain.DefaultCurrency.String())
	v.SetDefault("timezone", "Local")
	v.SetDefault("color", false)
}

// LoadApplicationConfig reads configPath, or searches the usual locations when it is empty.
// A missing config file is fine, defaults, environment and flags still apply.
func LoadApplicationConfig(v *viper.Viper, configPath string) (*Application, error) {
	loadDefaultValues(v)

	if err := readConfig(v, configPath); err != nil && !errors.Is(err, ErrApplicationConfigNotFound) {
		return nil, err
	}

	cfg := &Application{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.parseConfigValues(); err != nil {
		return nil, errors.Join(ErrInvalidApplicationConfig, err)
	}

	return cfg, nil
}

func (cfg *Application) parseConfigValues() error {
	switch cfg.Store {
	case storeMemory, storeSQLite, storePostgres:
	default:
		return fmt.Errorf("unknown store %q (available=[memory, sqlite, postgres])", cfg.Store)
	}

	switch cfg.Postgres.Adapter {
	case adapterPGX, adapterSQL, adapterSQLX:
	default:
		return fmt.Errorf("unknown postgres adapter %q (available=[pgx, sql, sqlx])", cfg.Postgres.Adapter)
	}

	unit, err := domain.ParseCurrency(cfg.Currency)
	if err != nil {
		return fmt.Errorf("currency %q: %w", cfg.Currency, err)
	}

	cfg.currencyUnit = unit

	if cfg.location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}

	if err = cfg.Log.level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}

	if cfg.SQLite.Path != "" {
		if cfg.SQLite.Path, err = homedir.Expand(cfg.SQLite.Path); err != nil {
			return err
		}
	}

	if cfg.Log.File != "" {
		if cfg.Log.File, err = homedir.Expand(cfg.Log.File); err != nil {
			return err
		}
	}

	return nil
}

// sqlitePath falls back to events.db in the XDG data directory, creating the directory if needed.
func (cfg *Application) sqlitePath() (string, error) {
	if cfg.SQLite.Path != "" {
		return cfg.SQLite.Path, nil
	}

	return xdg.DataFile(path.Join(applicationName, "events.db"))
}

func readConfig(v *viper.Viper, configPath string) error {
	var err error
	v.AutomaticEnv()
	v.SetEnvPrefix(applicationName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configPath != "" {
		if configPath, err = homedir.Expand(configPath); err != nil {
			return err
		}

		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read application config=%q : %w", configPath, err)
		}

		return nil
	}

	// 1. .eventmanagement.yaml in the current directory
	v.AddConfigPath(".")
	v.SetConfigName("." + applicationName)
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	// 2. ~/.eventmanagement.yaml
	if home, homeErr := homedir.Dir(); homeErr == nil {
		v.AddConfigPath(home)
		v.SetConfigName("." + applicationName)
		if err = v.ReadInConfig(); err == nil {
			return nil
		} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
		}
	}

	// 3. eventmanagement/config.yaml in the XDG config directories
	v.AddConfigPath(path.Join(xdg.ConfigHome, applicationName))
	for _, dir := range xdg.ConfigDirs {
		v.AddConfigPath(path.Join(dir, applicationName))
	}
	v.SetConfigName("config")
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	return ErrApplicationConfigNotFound
}
