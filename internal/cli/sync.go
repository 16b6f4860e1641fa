package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/um-tesoreria/wikisync/internal/app"
	"github.com/um-tesoreria/wikisync/internal/domain"
	"github.com/um-tesoreria/wikisync/internal/usecase"
)

// newSyncCommand creates the sync command.
func newSyncCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the wiki with the local tracker snapshot",
		Long: `Synchronize the project wiki with the local tracker snapshot.

The run verifies repository access first (enabling the wiki when the
token has admin rights), clones the wiki store or initializes it when
it has never been written to, renders the pages, and commits and pushes
only when the content actually changed. Rerunning against an unchanged
snapshot is always safe and reports "already up to date".

Outcomes:
- initialized: the wiki store did not exist and was created
- updated:     a new commit was pushed to the default branch
- no change:   the rendered content matched the remote store`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.SyncWikiUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.SyncWikiInput{})
			if err != nil {
				return err
			}

			switch out.Result {
			case domain.ResultInitialized:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wiki initialized on branch %s\n", out.Branch)
			case domain.ResultUpdated:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wiki updated on branch %s\n", out.Branch)
			default:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wiki already up to date")
			}
			return nil
		},
	}
}
