// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// Commit messages for the two publish paths.
const (
	initialCommitMessage = "Initial wiki content"
	updateCommitMessage  = "Update wiki content"
)

// SyncWikiInput contains the parameters for a synchronization run.
// The run is fully driven by configuration; there are none yet.
type SyncWikiInput struct{}

// SyncWikiOutput contains the result of a synchronization run.
type SyncWikiOutput struct {
	Branch string               // default branch the run published to
	Result domain.PublishResult // terminal outcome
}

// SyncWiki reconciles the locally staged records against the remote
// wiki store. It is a one-shot run: verify access, acquire a working
// tree, render content, and publish only when the tree actually
// changed. Every exit path passes through workspace release and
// credential teardown.
type SyncWiki struct {
	guard     domain.RepositoryGuard
	source    domain.RecordSource
	workspace domain.Workspace
	renderer  domain.WikiRenderer
	creds     domain.CredentialCache
	clock     domain.Clock
	logger    *slog.Logger
}

// NewSyncWiki creates a new SyncWiki use case.
func NewSyncWiki(
	guard domain.RepositoryGuard,
	source domain.RecordSource,
	workspace domain.Workspace,
	renderer domain.WikiRenderer,
	creds domain.CredentialCache,
	clock domain.Clock,
	logger *slog.Logger,
) *SyncWiki {
	return &SyncWiki{
		guard:     guard,
		source:    source,
		workspace: workspace,
		renderer:  renderer,
		creds:     creds,
		clock:     clock,
		logger:    logger,
	}
}

// Execute runs the synchronization.
//
// Sequence:
//  1. Access guard: existence, read/write capability, wiki enabled.
//     Any failure ends the run before a workspace is touched.
//  2. Load the record snapshots (immutable for the run).
//  3. Acquire a working tree: clone when the store exists, initialize
//     fresh when it does not.
//  4. Existing stores only: checkout the default branch and pull.
//  5. Render and write the pages; an empty render is a legitimate
//     nothing-to-publish outcome.
//  6. Stage everything and inspect dirty-status; commit and push only
//     when the tree changed.
//
// Reruns are idempotent: content is recomputed from source data and a
// commit happens only when the tree differs.
func (uc *SyncWiki) Execute(ctx context.Context, _ SyncWikiInput) (*SyncWikiOutput, error) {
	// Credential teardown runs on every exit path. Errors are logged,
	// never escalated, so cleanup cannot mask the primary failure.
	defer func() {
		if err := uc.creds.Purge(); err != nil {
			uc.logger.Warn("failed to purge credential cache", "error", err)
		}
	}()

	caps, err := uc.guard.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("repository access verified",
		"write", caps.CanWrite, "admin", caps.CanAdmin)

	issues, milestones, err := uc.source.Load()
	if err != nil {
		return nil, err
	}

	tree, err := uc.workspace.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer uc.workspace.Release(tree)

	if !tree.IsNew {
		if err := uc.workspace.CheckoutAndPull(ctx, tree); err != nil {
			return nil, err
		}
	}

	pages := uc.renderer.RenderWiki(issues, milestones)
	if len(pages) == 0 {
		uc.logger.Info("no data to publish")
		return &SyncWikiOutput{Result: domain.ResultNoChange, Branch: tree.Branch}, nil
	}

	for _, page := range pages {
		path := filepath.Join(tree.Path, page.Name)
		if err := os.WriteFile(path, []byte(page.Content), 0o640); err != nil { //nolint:gosec // wiki pages are public content
			return nil, fmt.Errorf("write %s: %w", page.Name, err)
		}
	}

	if err := uc.workspace.StageAll(tree); err != nil {
		return nil, err
	}
	dirty, err := uc.workspace.HasChanges(tree)
	if err != nil {
		return nil, err
	}
	if !dirty {
		uc.logger.Info("wiki already up to date", "branch", tree.Branch)
		return &SyncWikiOutput{Result: domain.ResultNoChange, Branch: tree.Branch}, nil
	}

	message := updateCommitMessage
	if tree.IsNew {
		message = initialCommitMessage
	}
	if err := uc.workspace.Commit(tree, message, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.workspace.Publish(ctx, tree); err != nil {
		return nil, err
	}

	result := domain.ResultUpdated
	if tree.IsNew {
		result = domain.ResultInitialized
	}
	uc.logger.Info("wiki published", "result", result.String(), "branch", tree.Branch)
	return &SyncWikiOutput{Result: result, Branch: tree.Branch}, nil
}
