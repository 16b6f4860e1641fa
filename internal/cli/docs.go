package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/um-tesoreria/wikisync/internal/app"
	"github.com/um-tesoreria/wikisync/internal/usecase"
)

// newDocsCommand creates the docs command.
func newDocsCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate the static documentation page",
		Long: `Generate the static documentation page from the local tracker
snapshot. The page is written into the repository's own docs tree; no
credentials and no git operations are involved.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := output
			if path == "" {
				path = c.Config.Docs.Output
			}

			uc := c.GenerateDocsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.GenerateDocsInput{OutputPath: path})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Documentation written to %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default from config)")
	return cmd
}
