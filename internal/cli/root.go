// Package cli provides the command-line interface for wikisync.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/um-tesoreria/wikisync/internal/app"
)

// NewRootCommand creates the root command for wikisync.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "wikisync",
		Short: "Mirror the issue tracker into the project wiki and docs",
		Long: `wikisync mirrors the project's issues and milestones into two
publication targets: the GitHub project wiki and a static documentation
page.

It works from local snapshot files (data/issues.json and
data/milestones.json); use 'wikisync fetch' to refresh them from the
GitHub API. Remote commands read GITHUB_TOKEN and GITHUB_REPOSITORY
from the environment.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddCommand(
		newSyncCommand(c),
		newDocsCommand(c),
		newFetchCommand(c),
	)

	return root
}
