package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ttdialect/internal/dialect"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// resolveDBConfig prefers --dsn/--driver over the active config entry.
func resolveDBConfig() (*DBConfig, error) {
	if flagDSN := viper.GetString("database.dsn"); flagDSN != "" {
		return &DBConfig{
			Name:   "CLI Wrapper",
			Driver: viper.GetString("database.driver"),
			DSN:    flagDSN,
			Active: true,
		}, nil
	}
	return GetActiveDBConfig()
}

// connect opens and pings the configured database once per process.
func connect(ctx context.Context) (*sql.DB, error) {
	if DB != nil {
		return DB, nil
	}
	config, err := resolveDBConfig()
	if err != nil {
		return nil, err
	}
	if config.Driver == "" {
		return nil, fmt.Errorf("could not determine driver for %s: set driver in config or use --driver", config.Name)
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	DB = db
	DriverName = config.Driver
	log.Printf("Connected to %s (%s)", config.Name, config.Driver)
	return DB, nil
}

// currentDialect builds the dialect named by settings.dialect.
func currentDialect() (dialect.Dialect, error) {
	version, err := dialect.ParseVersion(viper.GetString("settings.version"))
	if err != nil {
		return nil, err
	}
	return dialect.GetDialect(viper.GetString("settings.dialect"), version)
}

// dialectProperties merges dialect.properties from the config over the
// dialect's defaults.
func dialectProperties(d dialect.Dialect) dialect.Properties {
	return d.DefaultProperties().Merge(viper.GetStringMapString("dialect.properties"))
}
