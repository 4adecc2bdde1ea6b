// Command appstreamctl inspects and queries AppStream metadata pools from
// the command line.
package main

import (
	"fmt"
	"os"

	"github.com/madstone-tech/appstream-go/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
