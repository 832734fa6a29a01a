package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn        string
	DB         *sql.DB
	cfgFile    string
	DriverName string // "oracle" (go-ora) or "godror"
)

var RootCmd = &cobra.Command{
	Use:   "ttdialect",
	Short: "Oracle TimesTen SQL dialect toolkit",
	Long: `
  _____ _____   ____  ___    _    _     _____ ____ _____
 |_   _|_   _| |  _ \|_ _|  / \  | |   | ____/ ___|_   _|
   | |   | |   | | | || |  / _ \ | |   |  _|| |     | |
   | |   | |   | |_| || | / ___ \| |___| |__| |___  | |
   |_|   |_|   |____/|___/_/   \_\_____|_____\____| |_|

TT DIALECT - TimesTen SQL rendering, sequences & TPTBM benchmark
`,
	SilenceUsage: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if DB != nil {
			return DB.Close()
		}
		return nil
	},
}

func Execute() {
	// Ctrl-C cancels a running benchmark between transactions.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ttdialect.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN), overrides the active database")
	RootCmd.PersistentFlags().String("driver", "", "database/sql driver for --dsn (oracle or godror)")
	RootCmd.PersistentFlags().String("dialect", "", "dialect name (timesten, timesten22, tt, timesten1122, tt1122)")
	RootCmd.PersistentFlags().String("tt-version", "", "TimesTen release for the 22.1+ dialect (e.g. 22.1, 25.1)")

	// Bind flags to viper
	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))
	viper.BindPFlag("settings.dialect", RootCmd.PersistentFlags().Lookup("dialect"))
	viper.BindPFlag("settings.version", RootCmd.PersistentFlags().Lookup("tt-version"))

	// Set default for Viper (fallback if no config/flag)
	viper.SetDefault("database.driver", "oracle")
	viper.SetDefault("settings.dialect", "timesten")
	viper.SetDefault("settings.version", "22.1")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("ttdialect")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TTDIALECT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
