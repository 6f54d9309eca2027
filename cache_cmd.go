package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgnsrekt/flash/internal/cache"
)

// openCache builds the audio cache the same way a voice session does.
func openCache() (*cache.DiskCache, error) {
	envCfg, err := env.ParseAs[environment]()
	if err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	return cache.New(cache.Config{
		Root:             resolveCacheRoot(envCfg),
		CompressionLevel: viper.GetInt("cache.compression"),
	})
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show the audio cache",
	Long:  paragraph("\nShow the synthesized-audio cache: where it lives, how many clips it holds and how much disk they use. Entries are keyed by text, voice and language, and are kept until cleared."),
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}

		stats := c.Stats()
		fmt.Println("Directory:", c.Root())
		fmt.Println("Entries:  ", stats.Entries)
		fmt.Println("Size:     ", humanize.Bytes(uint64(stats.Size))) //nolint:gosec
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached audio",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}

		before := c.Stats()
		if err := c.Clear(); err != nil {
			return err
		}

		fmt.Printf("Removed %d entries (%s).\n",
			before.Entries, humanize.Bytes(uint64(before.Size))) //nolint:gosec
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
