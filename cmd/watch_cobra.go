package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/madstone-tech/appstream-go/internal/ui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	GroupID: "live",
	Short:   "Load the pool, enable monitoring, and print a line each time it reloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput().WithVerbose(Verbose)

		p, err := buildPoolWithMonitor(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.Load(cmd.Context()); err != nil {
			out.ErrorWithDetails("initial load failed", err.Error())
			return err
		}
		out.Success(fmt.Sprintf("loaded %d components, watching for changes", len(p.All())))

		changed, cancel := p.Subscribe()
		defer cancel()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		for {
			select {
			case <-changed:
				out.Info(fmt.Sprintf("pool reloaded: %d components", len(p.All())))
			case <-sig:
				out.Subtitle("stopping")
				return nil
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
