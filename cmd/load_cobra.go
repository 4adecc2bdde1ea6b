package cmd

import (
	"fmt"

	"github.com/madstone-tech/appstream-go/internal/ui"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:     "load",
	GroupID: "inspect",
	Short:   "Load every configured location and report how many components were indexed",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput().WithVerbose(Verbose)

		p, err := buildPool(cmd.Context())
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.Load(cmd.Context()); err != nil {
			out.ErrorWithDetails("load failed", err.Error())
			return err
		}

		out.Success(fmt.Sprintf("loaded %d components", len(p.All())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
