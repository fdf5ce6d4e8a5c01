// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the uindex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/uindex/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, otherwise the secret value
// for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd computes the U-index for the named author.
var rootCmd = &cobra.Command{
	Use:   "uindex [author name]",
	Short: "Compute a researcher's U-index from PubMed and OpenAlex",
	Long: `uindex computes the U-index for a researcher: the largest U such that U of
their first- or last-authored papers have at least U citations each.

Publications come from PubMed (NCBI E-utilities); citation counts come from
OpenAlex, joined by DOI. Results are cached locally for a week; use --refresh
to recompute or --no-cache to bypass the cache entirely.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.RunE = runIndex

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./uindex.yaml or ~/.config/uindex/config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache directory (default: ~/.cache/uindex)")

	rootCmd.Flags().Bool("no-cache", false, "skip the cache entirely, fetch fresh data")
	rootCmd.Flags().Bool("refresh", false, "force refresh: recompute and overwrite the cached result")
	rootCmd.Flags().Bool("json", false, "output the report as JSON (shorthand for --format json)")
	rootCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	rootCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	rootCmd.Flags().Duration("ttl", 0, "cache time-to-live (default 168h)")
	rootCmd.Flags().Int("max-results", 0, "maximum publications to fetch per author (default 1000)")
	rootCmd.Flags().String("email", "", "contact email sent to OpenAlex (mailto parameter)")
	rootCmd.Flags().String("api-key", "", "NCBI API key for higher PubMed rate limits")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("uindex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "uindex"))
		}
	}

	viper.SetEnvPrefix("UINDEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultCacheDir resolves the cache directory: flag, then config file,
// then ~/.cache/uindex.
func defaultCacheDir() string {
	if dir, _ := rootCmd.PersistentFlags().GetString("cache-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("cache.dir"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".uindex-cache")
	}
	return filepath.Join(home, ".cache", "uindex")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
