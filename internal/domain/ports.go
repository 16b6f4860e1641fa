package domain

import (
	"context"
	"time"
)

// Capabilities summarizes what the configured token may do against the
// remote repository.
type Capabilities struct {
	CanRead     bool
	CanWrite    bool
	CanAdmin    bool
	WikiEnabled bool
}

// RepositoryGuard verifies access to the remote repository before any
// workspace is touched.
type RepositoryGuard interface {
	// Ensure verifies the repository exists, the token can read and
	// write, and the wiki is enabled. When the wiki is disabled and the
	// token has admin rights, Ensure enables it; a failed enable call is
	// reported as ErrForbidden.
	Ensure(ctx context.Context) (Capabilities, error)
}

// RecordSource supplies the issue and milestone snapshots for a run.
// Records are loaded once at run start and are immutable afterwards.
type RecordSource interface {
	Load() (issues []Issue, milestones []Milestone, err error)
}

// RecordSink persists fetched records as snapshot files.
type RecordSink interface {
	Write(issues []Issue, milestones []Milestone) error
}

// TrackerClient fetches records from the issue tracker API.
type TrackerClient interface {
	// FetchIssues returns all issues (open and closed), excluding pull
	// requests, in the order the tracker reports them.
	FetchIssues(ctx context.Context) ([]Issue, error)

	// FetchMilestones returns all milestones (open and closed).
	FetchMilestones(ctx context.Context) ([]Milestone, error)
}

// Page is a named text document produced by a renderer.
type Page struct {
	Name    string
	Content string
}

// WikiRenderer turns record snapshots into wiki pages. Rendering is
// pure: identical inputs produce byte-identical pages. An empty page
// list means there is nothing to publish; it is not an error.
type WikiRenderer interface {
	RenderWiki(issues []Issue, milestones []Milestone) []Page
}

// DocsRenderer renders the static documentation page. The current time
// is passed explicitly so rendering stays deterministic under test.
type DocsRenderer interface {
	RenderDocs(issues []Issue, milestones []Milestone, now time.Time) Page
}

// WorkingTree is the local, exclusively owned checkout used to stage
// changes before publishing. The path is created fresh for each run and
// removed when the run ends, whatever the outcome.
type WorkingTree struct {
	Path   string // scratch directory holding the checkout
	Branch string // resolved default branch of the remote store
	IsNew  bool   // true when the remote store had no content yet
}

// Workspace owns the scratch working tree and the git operations
// performed on it.
type Workspace interface {
	// Acquire resolves the remote default branch and obtains a working
	// tree: a clone when the remote store exists, a freshly initialized
	// tree with the remote registered when it does not.
	Acquire(ctx context.Context) (*WorkingTree, error)

	// Release removes the scratch directory. It is safe to call after a
	// partial acquisition and never fails; removal errors are logged and
	// swallowed so cleanup cannot mask the run's primary error.
	Release(tree *WorkingTree)

	// CheckoutAndPull checks out the resolved default branch and pulls
	// the latest remote state. Only valid for existing stores.
	CheckoutAndPull(ctx context.Context, tree *WorkingTree) error

	// StageAll stages every change in the working tree.
	StageAll(tree *WorkingTree) error

	// HasChanges reports whether the working tree differs from its last
	// committed state.
	HasChanges(tree *WorkingTree) (bool, error)

	// Commit records the staged changes with the given message and
	// timestamp.
	Commit(tree *WorkingTree, message string, when time.Time) error

	// Publish pushes the default branch to the remote store. For new
	// stores the branch is created on the remote as part of the push.
	Publish(ctx context.Context, tree *WorkingTree) error
}

// CredentialCache removes credentials the host may have persisted
// during the run. Purge runs in the finalizer on every exit path.
type CredentialCache interface {
	Purge() error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
