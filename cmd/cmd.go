package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/adminboard/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "adminboard",
	Short: "Adminboard",
	Long:  `Session-authenticated admin backend: users, features, permissions, table introspection and seeders.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// Containerized deployments mount no config file
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyConfigDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

func applyConfigDefaults(cfg *internal.Config) {
	if cfg.Security.BCryptCost == 0 {
		cfg.Security.BCryptCost = internal.DefaultBCryptCost
	}
	if cfg.Security.SessionValidity == 0 {
		cfg.Security.SessionValidity = internal.DefaultSessionValidity
	}
	if cfg.Security.SnapshotTTL == 0 {
		cfg.Security.SnapshotTTL = internal.DefaultSnapshotTTL
	}
	if cfg.Assets.Dir == "" {
		cfg.Assets.Dir = "./assets"
	}
}

func init() {
	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
