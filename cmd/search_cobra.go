package cmd

import (
	"fmt"

	"github.com/madstone-tech/appstream-go/internal/core/search"
	"github.com/madstone-tech/appstream-go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	searchLocale        string
	searchUseAllLocales bool
	searchStem          bool
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	GroupID: "inspect",
	Short:   "Search the pool, ranking matches by id/keyword/name/summary/category/provides weight",
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

		locale := searchLocale
		if locale == "" {
			locale = "C"
		}

		engine := search.NewEngine()
		results := engine.Query(p.All(), args[0], locale, searchUseAllLocales, searchStem)
		if len(results) == 0 {
			out.Warning("no matches")
			return nil
		}

		rows := make([][]string, 0, len(results))
		for _, r := range results {
			name, _ := r.Component.Name.Get(locale)
			rows = append(rows, []string{r.Component.ID, fmt.Sprintf("%d", r.Score), name})
		}
		out.Table([]string{"ID", "SCORE", "NAME"}, rows)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchLocale, "locale", "C", "locale to search against")
	searchCmd.Flags().BoolVar(&searchUseAllLocales, "all-locales", false, "match against every stored translation, not just --locale")
	searchCmd.Flags().BoolVar(&searchStem, "stem", false, "apply locale-aware stemming before matching")
	rootCmd.AddCommand(searchCmd)
}
