// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/uindex/internal/cache"
	"github.com/pdiddy/uindex/internal/openalex"
	"github.com/pdiddy/uindex/internal/pipeline"
	"github.com/pdiddy/uindex/internal/pubmed"
	"github.com/pdiddy/uindex/internal/report"
	"github.com/pdiddy/uindex/pkg/types"
)

const defaultTimeout = 30 * time.Second

// buildConfig resolves configuration from flags, the config file, and
// loaded secrets, in that order of precedence.
func buildConfig(cmd *cobra.Command) types.Config {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = viper.GetDuration("http.timeout")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpCfg := types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: "uindex/" + version,
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("pubmed.max_results")
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("pubmed.api_key")
	}
	apiKey = secretDefault("ncbi-api-key", apiKey)

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = viper.GetString("openalex.email")
	}
	email = secretDefault("openalex-email", email)

	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		ttl = viper.GetDuration("cache.ttl")
	}

	return types.Config{
		PubMed: types.PubMedConfig{
			HTTPConfig: httpCfg,
			MaxResults: maxResults,
			APIKey:     apiKey,
		},
		OpenAlex: types.OpenAlexConfig{
			HTTPConfig: httpCfg,
			Email:      email,
		},
		Cache: types.CacheConfig{
			Dir: defaultCacheDir(),
			TTL: ttl,
		},
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	author := args[0]
	cfg := buildConfig(cmd)

	noCache, _ := cmd.Flags().GetBool("no-cache")
	refresh, _ := cmd.Flags().GetBool("refresh")

	format, _ := cmd.Flags().GetString("format")
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		format = "json"
	}
	switch format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}

	var store pipeline.Store
	if !noCache {
		c, err := cache.Open(cfg.Cache.Dir, cfg.Cache.TTL)
		if err != nil {
			return err
		}
		defer c.Close()
		store = c
	}

	httpClient := &http.Client{Timeout: cfg.PubMed.Timeout}
	pubs := pubmed.NewClient(httpClient, cfg.PubMed)
	cits := openalex.NewClient(httpClient, cfg.OpenAlex)

	opts := pipeline.Options{SkipCache: noCache, Refresh: refresh}
	r, _, err := pipeline.Run(cmd.Context(), author, pubs, cits, store, opts, os.Stderr)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return report.FormatJSON(r, os.Stdout)
	case "yaml":
		return report.FormatYAML(r, os.Stdout)
	default:
		report.FormatText(r, os.Stdout)
		return nil
	}
}
