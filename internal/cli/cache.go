package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache store operations",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the entire offline cache",
	Run:   runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) {
	layer, _ := setup()
	defer func() {
		_ = layer.Stop()
	}()

	if err := layer.ClearCache(context.Background()); err != nil {
		slog.Error("Failed to clear cache", "error", err)
		os.Exit(1)
	}
	fmt.Println("cache cleared")
}
