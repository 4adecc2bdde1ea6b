// Package cmd implements the appstreamctl CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/adapters/config"
	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time version information, set via SetVersionInfo from main.go.
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// Persistent flag values accessible to all subcommands.
var (
	cfgFile     string
	ProjectRoot string
	Verbose     bool
	locationFlags []string
)

// extraLocations parses each --location path[:kind] flag into a
// DataLocation, defaulting to the XML format when kind is omitted.
var extraLocations []entities.DataLocation

// parseLocationFlags converts locationFlags into extraLocations; called
// once from PersistentPreRunE so every subcommand sees the result.
func parseLocationFlags() error {
	extraLocations = nil
	for _, raw := range locationFlags {
		path := raw
		kind := entities.FormatKindXML
		if idx := strings.LastIndex(raw, ":"); idx > 0 {
			switch raw[idx+1:] {
			case "xml":
				path, kind = raw[:idx], entities.FormatKindXML
			case "yaml":
				path, kind = raw[:idx], entities.FormatKindYAML
			case "desktop-entry", "desktop":
				path, kind = raw[:idx], entities.FormatKindDesktopEntry
			}
		}
		extraLocations = append(extraLocations, entities.DataLocation{Path: path, Kind: kind})
	}
	return nil
}

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "appstreamctl",
	Short: "Query and inspect AppStream metadata pools",
	Long: `appstreamctl loads AppStream collection, metainfo, and desktop-entry
metadata from configured locations into a Pool, then lets you load, search,
inspect, and watch it from the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd.Root()); err != nil {
			return err
		}
		return parseLocationFlags()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (env: APPSTREAM_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&ProjectRoot, "project", "p", ".", "project root directory (searched for appstream.toml)")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "enable verbose output (env: APPSTREAM_VERBOSE)")
	rootCmd.PersistentFlags().StringArrayVarP(&locationFlags, "location", "l", nil, "extra metadata location to scan, as path[:xml|yaml|desktop-entry] (repeatable)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "inspect", Title: "Inspecting"},
		&cobra.Group{ID: "live", Title: "Live"},
	)
}

// Execute runs the root command. This is the main entry point called from main.go.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets build-time version information from ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("appstreamctl %s (commit: %s, built: %s)\n", version, commit, date),
	)
}

// initConfig sets up Viper configuration with the full hierarchy:
// CLI flags > APPSTREAM_* env vars > project appstream.toml > global XDG
// config.toml > defaults.
func initConfig(root *cobra.Command) error {
	viper.SetConfigType("toml")

	if cfgFile == "" {
		cfgFile = os.Getenv("APPSTREAM_CONFIG")
	}
	if !Verbose {
		if v, err := strconv.ParseBool(os.Getenv("APPSTREAM_VERBOSE")); err == nil {
			Verbose = v
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		paths := config.NewXDGPathResolver()
		viper.SetConfigFile(paths.ConfigFile())
		_ = viper.ReadInConfig() // Silent fail if not found.
	}

	viper.SetConfigFile(strings.TrimSuffix(ProjectRoot, "/") + "/appstream.toml")
	_ = viper.MergeInConfig() // Silent fail if not found.

	viper.SetEnvPrefix("APPSTREAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return nil
}
