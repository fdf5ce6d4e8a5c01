// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/uindex/internal/cache"
	"github.com/pdiddy/uindex/internal/pipeline"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [author name]",
	Short: "Remove cached results (all, or one author's)",
	Long: `Clear removes cached results. With an author name it removes that author's
entry only; without one it empties the cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl := viper.GetDuration("cache.ttl")
		c, err := cache.Open(defaultCacheDir(), ttl)
		if err != nil {
			return err
		}
		defer c.Close()

		if len(args) == 1 {
			if err := c.Delete(pipeline.CacheKey(args[0])); err != nil {
				return err
			}
			fmt.Printf("Removed cached result for %q\n", args[0])
			return nil
		}

		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache database path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(filepath.Join(defaultCacheDir(), "cache.db"))
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePathCmd)
	rootCmd.AddCommand(cacheCmd)
}
