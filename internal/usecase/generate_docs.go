package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// GenerateDocsInput contains the parameters for generating the
// documentation page.
type GenerateDocsInput struct {
	OutputPath string // where to write the generated page
}

// GenerateDocsOutput contains the result of the generation.
type GenerateDocsOutput struct {
	Path string // path of the written page
}

// GenerateDocs renders the static documentation page from the record
// snapshots. No git interaction: the page lands in the repository's own
// docs tree.
type GenerateDocs struct {
	source   domain.RecordSource
	renderer domain.DocsRenderer
	clock    domain.Clock
	logger   *slog.Logger
}

// NewGenerateDocs creates a new GenerateDocs use case.
func NewGenerateDocs(source domain.RecordSource, renderer domain.DocsRenderer, clock domain.Clock, logger *slog.Logger) *GenerateDocs {
	return &GenerateDocs{source: source, renderer: renderer, clock: clock, logger: logger}
}

// Execute loads the snapshots, renders the page with the current clock
// value, and writes it to the configured path.
func (uc *GenerateDocs) Execute(_ context.Context, in GenerateDocsInput) (*GenerateDocsOutput, error) {
	issues, milestones, err := uc.source.Load()
	if err != nil {
		return nil, err
	}

	page := uc.renderer.RenderDocs(issues, milestones, uc.clock.Now())

	if dir := filepath.Dir(in.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create docs directory: %w", err)
		}
	}
	if err := os.WriteFile(in.OutputPath, []byte(page.Content), 0o640); err != nil { //nolint:gosec // docs are public content
		return nil, fmt.Errorf("write %s: %w", in.OutputPath, err)
	}

	uc.logger.Info("documentation page generated", "path", in.OutputPath)
	return &GenerateDocsOutput{Path: in.OutputPath}, nil
}
