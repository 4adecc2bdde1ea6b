package cmd

import (
	"fmt"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/ui"
	"github.com/spf13/cobra"
)

var providesCmd = &cobra.Command{
	Use:     "provides <kind> <value>",
	GroupID: "inspect",
	Short:   "List components that provide a capability, e.g. \"provides binary gnome-calculator\"",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput().WithVerbose(Verbose)

		kind, ok := entities.ParseProvidedKind(strings.ToLower(args[0]))
		if !ok {
			return fmt.Errorf("unknown provided-item kind %q", args[0])
		}

		p, err := buildPool(cmd.Context())
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.Load(cmd.Context()); err != nil {
			return err
		}

		matches := p.ByProvided(kind, args[1])
		if len(matches) == 0 {
			out.Warning(fmt.Sprintf("no component provides %s %q", kind, args[1]))
			return nil
		}

		ids := make([]string, len(matches))
		for i, c := range matches {
			ids[i] = fmt.Sprintf("%s (priority %d, %s)", c.ID, c.Priority, c.Origin)
		}
		out.List(ids)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providesCmd)
}
