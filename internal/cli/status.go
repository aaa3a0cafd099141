package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current connectivity verdict",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	layer, cfg := setup()
	defer func() {
		_ = layer.Stop()
	}()

	ctx := context.Background()
	layer.Start(ctx)

	// Let the probe run once before reporting.
	if cfg.Network.Probe.URL != "" {
		time.Sleep(cfg.Network.Probe.Timeout.Std() + time.Second)
	}

	state := layer.Network().State()
	fmt.Printf("online:    %v\n", state.Online())
	fmt.Printf("connected: %v\n", state.Connected)
	fmt.Printf("kind:      %s\n", state.Kind)
}
