package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/helpdeck/helpdeck/app"
	"github.com/helpdeck/helpdeck/config"
	sentrypkg "github.com/helpdeck/helpdeck/internal/sentry"
	"github.com/helpdeck/helpdeck/log"
	"github.com/helpdeck/helpdeck/store"
)

var (
	version = "0.1.0"
	dbFlag  string
	rootCmd = &cobra.Command{
		Use:   "helpdeck",
		Short: "helpdeck - A terminal inbox for customer support conversations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize()
			defer log.Close()

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			return app.Run(ctx, cfg, st)
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Fill the conversation store with demo conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Seed(); err != nil {
				return fmt.Errorf("failed to seed store: %w", err)
			}
			fmt.Println("Demo conversations added")
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete the conversation store and saved view state",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			dbPath, err := cfg.DatabasePath()
			if err != nil {
				return fmt.Errorf("failed to resolve database path: %w", err)
			}
			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove database: %w", err)
			}
			configDir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			if err := os.Remove(filepath.Join(configDir, config.StateFileName)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove state: %w", err)
			}
			fmt.Println("Store and state have been reset")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			dbPath, err := cfg.DatabasePath()
			if err != nil {
				return err
			}
			fmt.Printf("Database: %s\n", dbPath)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of helpdeck",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("helpdeck version %s\n", version)
		},
	}
)

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath := dbFlag
	if dbPath == "" {
		var err error
		dbPath, err = cfg.DatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}
	return st, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "",
		"Path to the conversation database (overrides config)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
