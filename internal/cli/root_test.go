package cli

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/um-tesoreria/wikisync/internal/app"
	"github.com/um-tesoreria/wikisync/internal/domain"
	"github.com/um-tesoreria/wikisync/internal/testutil"
)

// newTestContainer builds a container backed entirely by mocks, wired
// the same way a sync run would see them.
func newTestContainer(t *testing.T) (*app.Container, *testutil.MockWorkspace) {
	t.Helper()

	cfg := domain.NewDefaultConfig()
	cfg.Repository = "owner/repo"
	cfg.Token = "tok"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := app.NewWithDeps(cfg, logger)

	workspace := &testutil.MockWorkspace{
		Tree:          &domain.WorkingTree{Path: t.TempDir(), Branch: "main"},
		HasChangesVal: true,
	}
	c.Guard = &testutil.MockGuard{Caps: domain.Capabilities{CanRead: true, CanWrite: true, WikiEnabled: true}}
	c.Source = &testutil.MockRecordSource{Issues: []domain.Issue{{Number: 1, Title: "Timeout"}}}
	c.Sink = &testutil.MockRecordSink{}
	c.Tracker = &testutil.MockTracker{Issues: []domain.Issue{{Number: 1}}}
	c.Workspace = workspace
	c.WikiRenderer = &testutil.MockRenderer{Pages: []domain.Page{{Name: "Home.md", Content: "# Wiki\n"}}}
	c.DocsRenderer = &testutil.MockRenderer{DocsPage: domain.Page{Name: "project-documentation.md", Content: "# Docs\n"}}
	c.Creds = &testutil.MockCredentialCache{}

	return c, workspace
}

func execute(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	c, _ := newTestContainer(t)
	root := NewRootCommand(c, "1.2.3")

	out, err := execute(t, root, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}

func TestSyncCommand_ReportsUpdate(t *testing.T) {
	c, workspace := newTestContainer(t)
	root := NewRootCommand(c, "dev")

	out, err := execute(t, root, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Wiki updated on branch main")
	assert.True(t, workspace.PublishCalled)
}

func TestSyncCommand_ReportsInitialization(t *testing.T) {
	c, workspace := newTestContainer(t)
	workspace.Tree.IsNew = true
	root := NewRootCommand(c, "dev")

	out, err := execute(t, root, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Wiki initialized on branch main")
}

func TestSyncCommand_ReportsNoChange(t *testing.T) {
	c, workspace := newTestContainer(t)
	workspace.HasChangesVal = false
	root := NewRootCommand(c, "dev")

	out, err := execute(t, root, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Wiki already up to date")
	assert.False(t, workspace.PublishCalled)
}

func TestSyncCommand_GuardFailure(t *testing.T) {
	c, _ := newTestContainer(t)
	c.Guard = &testutil.MockGuard{Err: domain.ErrForbidden}
	root := NewRootCommand(c, "dev")

	_, err := execute(t, root, "sync")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDocsCommand_WritesToFlagPath(t *testing.T) {
	c, _ := newTestContainer(t)
	root := NewRootCommand(c, "dev")

	path := filepath.Join(t.TempDir(), "out.md")
	out, err := execute(t, root, "docs", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Documentation written to "+path)
	assert.FileExists(t, path)
}

func TestFetchCommand_ReportsCounts(t *testing.T) {
	c, _ := newTestContainer(t)
	root := NewRootCommand(c, "dev")

	out, err := execute(t, root, "fetch")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetched 1 issues and 0 milestones")
}
