package cmd

import (
	"fmt"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/ui"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:     "get <component-id>",
	GroupID: "inspect",
	Short:   "Print every component registered under an ID, or matching a glob pattern (e.g. \"org.gnome.*\")",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput().WithVerbose(Verbose)

		p, err := buildPool(cmd.Context())
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.Load(cmd.Context()); err != nil {
			return err
		}

		var matches []*entities.Component
		if strings.ContainsAny(args[0], "*?") {
			matches = p.ByIDGlob(args[0])
		} else {
			matches = p.ByID(args[0])
		}
		if len(matches) == 0 {
			out.Warning(fmt.Sprintf("no component registered under %q", args[0]))
			return nil
		}

		for i, c := range matches {
			name, _ := c.Name.Get("C")
			summary, _ := c.Summary.Get("C")
			out.Title(fmt.Sprintf("%s (%s)", c.ID, c.Kind))
			out.KeyValue("name", name)
			out.KeyValue("summary", summary)
			out.KeyValue("origin", c.Origin)
			out.KeyValue("priority", fmt.Sprintf("%d", c.Priority))
			out.KeyValue("scope", c.Scope.String())
			if len(c.Categories) > 0 {
				out.KeyValue("categories", fmt.Sprintf("%v", c.Categories))
			}
			if i < len(matches)-1 {
				out.Divider()
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
