// Package gitwiki manages the local working tree of the wiki store and
// the git operations performed on it, via go-git.
package gitwiki

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// DefaultRemoteName is the remote name registered for the wiki store.
const DefaultRemoteName = "origin"

// Options configures the workspace client.
type Options struct {
	// RemoteURL is the (credential-embedded) URL of the wiki store.
	RemoteURL string

	// BranchFallback is used when the remote HEAD cannot be resolved,
	// typically because the store has never been initialized.
	BranchFallback string

	// CommitterName and CommitterEmail identify the commits this run
	// creates.
	CommitterName  string
	CommitterEmail string

	// ScratchDir is the parent directory for scratch working trees.
	// Empty means the system temp directory.
	ScratchDir string
}

// Client implements domain.Workspace.
type Client struct {
	logger *slog.Logger
	opts   Options
}

// Ensure Client implements domain.Workspace.
var _ domain.Workspace = (*Client)(nil)

// New creates a workspace client.
func New(opts Options, logger *slog.Logger) *Client {
	if opts.BranchFallback == "" {
		opts.BranchFallback = domain.DefaultBranchFallback
	}
	return &Client{opts: opts, logger: logger}
}

// Acquire obtains a working tree for the wiki store. When the remote
// has content it is cloned; when it is empty or absent a fresh tree is
// initialized with the remote registered, which is the expected state
// of a wiki that was never written to. The scratch directory is created
// fresh and is never reused across runs.
func (c *Client) Acquire(ctx context.Context) (*domain.WorkingTree, error) {
	branch := c.resolveDefaultBranch(ctx)

	dir, err := os.MkdirTemp(c.opts.ScratchDir, "wikisync-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	tree := &domain.WorkingTree{Path: dir, Branch: branch}

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:        c.opts.RemoteURL,
		RemoteName: DefaultRemoteName,
	})
	switch {
	case err == nil:
		c.logger.Debug("cloned wiki store", "branch", branch)
		return tree, nil

	case errors.Is(err, transport.ErrEmptyRemoteRepository) || errors.Is(err, transport.ErrRepositoryNotFound):
		// Wiki never initialized. Not an error: start a fresh tree.
		if initErr := c.initNewStore(dir, branch); initErr != nil {
			c.Release(tree)
			return nil, initErr
		}
		tree.IsNew = true
		c.logger.Info("wiki store not initialized yet, starting fresh", "branch", branch)
		return tree, nil

	default:
		c.Release(tree)
		return nil, mapTransportError(domain.StageClone, err)
	}
}

// initNewStore initializes an empty versioned tree with HEAD on the
// default branch and the wiki remote registered as origin.
func (c *Client) initNewStore(dir, branch string) error {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return domain.NewGitError(domain.StageInit, err)
	}

	// A fresh tree has no branch yet; point HEAD where the first commit
	// should land.
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	if err := repo.Storer.SetReference(head); err != nil {
		return domain.NewGitError(domain.StageInit, err)
	}

	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: DefaultRemoteName,
		URLs: []string{c.opts.RemoteURL},
	}); err != nil {
		return domain.NewGitError(domain.StageInit, err)
	}
	return nil
}

// Release removes the scratch directory. Removal errors are logged and
// swallowed: cleanup must not mask the run's primary error.
func (c *Client) Release(tree *domain.WorkingTree) {
	if tree == nil || tree.Path == "" {
		return
	}
	if err := os.RemoveAll(tree.Path); err != nil {
		c.logger.Warn("failed to remove scratch directory", "path", tree.Path, "error", err)
	}
}

// CheckoutAndPull checks out the resolved default branch and pulls the
// latest remote state. Publishing on top of an unknown or divergent
// tree risks silently discarding remote history, so both failures are
// fatal for the run.
func (c *Client) CheckoutAndPull(ctx context.Context, tree *domain.WorkingTree) error {
	wt, err := c.worktree(tree)
	if err != nil {
		return domain.NewGitError(domain.StageCheckout, err)
	}

	ref := plumbing.NewBranchReferenceName(tree.Branch)
	if err := wt.Checkout(&git.CheckoutOptions{Branch: ref}); err != nil {
		return domain.NewGitError(domain.StageCheckout, err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    DefaultRemoteName,
		ReferenceName: ref,
		SingleBranch:  true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return mapTransportError(domain.StagePull, err)
	}
	return nil
}

// StageAll stages every change in the working tree.
func (c *Client) StageAll(tree *domain.WorkingTree) error {
	wt, err := c.worktree(tree)
	if err != nil {
		return domain.NewGitError(domain.StageStage, err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return domain.NewGitError(domain.StageStage, err)
	}
	return nil
}

// HasChanges reports whether the working tree differs from its last
// committed state.
func (c *Client) HasChanges(tree *domain.WorkingTree) (bool, error) {
	wt, err := c.worktree(tree)
	if err != nil {
		return false, domain.NewGitError(domain.StageStatus, err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, domain.NewGitError(domain.StageStatus, err)
	}
	return !status.IsClean(), nil
}

// Commit records the staged changes. Author and committer identity come
// from the options; the timestamp is injected by the caller.
func (c *Client) Commit(tree *domain.WorkingTree, message string, when time.Time) error {
	wt, err := c.worktree(tree)
	if err != nil {
		return domain.NewGitError(domain.StageCommit, err)
	}
	sig := &object.Signature{
		Name:  c.opts.CommitterName,
		Email: c.opts.CommitterEmail,
		When:  when,
	}
	if _, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		return domain.NewGitError(domain.StageCommit, err)
	}
	return nil
}

// Publish pushes the default branch to the remote store. A new store
// pushes with force, matching the first-initialization behavior; an
// existing store relies on the remote's fast-forward check as the only
// safety net against concurrent writers.
func (c *Client) Publish(ctx context.Context, tree *domain.WorkingTree) error {
	repo, err := git.PlainOpen(tree.Path)
	if err != nil {
		return domain.NewGitError(domain.StagePush, err)
	}

	refspec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", tree.Branch, tree.Branch))
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: DefaultRemoteName,
		RefSpecs:   []config.RefSpec{refspec},
		Force:      tree.IsNew,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return mapTransportError(domain.StagePush, err)
	}
	return nil
}

// resolveDefaultBranch probes the remote HEAD symref to learn the
// default branch. On ambiguity or failure it falls back to the
// configured conventional name; any real connectivity problem will
// resurface at clone time with proper error mapping.
func (c *Client) resolveDefaultBranch(ctx context.Context) string {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: DefaultRemoteName,
		URLs: []string{c.opts.RemoteURL},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		c.logger.Debug("could not resolve remote HEAD", "error", err)
		return c.opts.BranchFallback
	}
	for _, ref := range refs {
		if ref.Name() == plumbing.HEAD && ref.Type() == plumbing.SymbolicReference {
			return ref.Target().Short()
		}
	}
	return c.opts.BranchFallback
}

func (c *Client) worktree(tree *domain.WorkingTree) (*git.Worktree, error) {
	repo, err := git.PlainOpen(tree.Path)
	if err != nil {
		return nil, err
	}
	return repo.Worktree()
}

// mapTransportError translates go-git transport failures into the
// domain error taxonomy, keeping the stage for everything else.
func mapTransportError(stage string, err error) error {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired):
		return fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	case errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return domain.NewGitError(stage, err)
}
