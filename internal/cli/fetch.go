package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/um-tesoreria/wikisync/internal/app"
	"github.com/um-tesoreria/wikisync/internal/usecase"
)

// newFetchCommand creates the fetch command.
func newFetchCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Snapshot issues and milestones from the tracker API",
		Long: `Fetch all issues and milestones (open and closed) from the GitHub
API and write them as the local snapshot files consumed by 'sync' and
'docs'. Pull requests are excluded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.FetchDataUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.FetchDataInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d issues and %d milestones\n",
				out.Issues, out.Milestones)
			return nil
		},
	}
}
