package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/um-tesoreria/wikisync/internal/domain"
	"github.com/um-tesoreria/wikisync/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type syncFixture struct {
	guard     *testutil.MockGuard
	source    *testutil.MockRecordSource
	workspace *testutil.MockWorkspace
	renderer  *testutil.MockRenderer
	creds     *testutil.MockCredentialCache
	clock     *testutil.MockClock
	uc        *SyncWiki
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	f := &syncFixture{
		guard: &testutil.MockGuard{
			Caps: domain.Capabilities{CanRead: true, CanWrite: true, WikiEnabled: true},
		},
		source: &testutil.MockRecordSource{
			Issues: []domain.Issue{{Number: 1, Title: "Timeout", State: domain.IssueOpen}},
		},
		workspace: &testutil.MockWorkspace{
			Tree:          &domain.WorkingTree{Path: t.TempDir(), Branch: "main"},
			HasChangesVal: true,
		},
		renderer: &testutil.MockRenderer{
			Pages: []domain.Page{{Name: "Home.md", Content: "# Wiki\n"}},
		},
		creds: &testutil.MockCredentialCache{},
		clock: &testutil.MockClock{NowTime: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
	}
	f.uc = NewSyncWiki(f.guard, f.source, f.workspace, f.renderer, f.creds, f.clock, testLogger())
	return f
}

func TestSyncWiki_Execute_UpdatesExistingStore(t *testing.T) {
	f := newSyncFixture(t)

	out, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.ResultUpdated, out.Result)
	assert.Equal(t, "main", out.Branch)
	assert.True(t, f.workspace.CheckoutCalled)
	assert.Equal(t, "Update wiki content", f.workspace.CommitMessage)
	assert.Equal(t, f.clock.NowTime, f.workspace.CommitWhen)
	assert.True(t, f.workspace.PublishCalled)
	assert.True(t, f.workspace.Released)
	assert.True(t, f.creds.Purged)

	// Pages were written into the working tree.
	assert.FileExists(t, filepath.Join(f.workspace.Tree.Path, "Home.md"))
}

func TestSyncWiki_Execute_InitializesNewStore(t *testing.T) {
	f := newSyncFixture(t)
	f.workspace.Tree.IsNew = true

	out, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.ResultInitialized, out.Result)
	// A fresh tree has no branch to pull from.
	assert.False(t, f.workspace.CheckoutCalled)
	assert.Equal(t, "Initial wiki content", f.workspace.CommitMessage)
	assert.True(t, f.workspace.PublishCalled)
}

func TestSyncWiki_Execute_GuardFailureStopsBeforeWorkspace(t *testing.T) {
	f := newSyncFixture(t)
	f.guard.Err = domain.ErrForbidden

	_, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.False(t, f.workspace.Acquired)
	// Credential teardown still runs.
	assert.True(t, f.creds.Purged)
}

func TestSyncWiki_Execute_MalformedSnapshotStopsBeforeWorkspace(t *testing.T) {
	f := newSyncFixture(t)
	f.source.Err = domain.ErrMalformedInput

	_, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.False(t, f.workspace.Acquired)
}

func TestSyncWiki_Execute_AcquireFailure(t *testing.T) {
	f := newSyncFixture(t)
	f.workspace.AcquireErr = domain.ErrUnauthenticated

	_, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.True(t, f.creds.Purged)
}

func TestSyncWiki_Execute_PullFailureIsFatal(t *testing.T) {
	f := newSyncFixture(t)
	f.workspace.CheckoutErr = domain.NewGitError(domain.StagePull, errors.New("diverged"))

	_, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	require.Error(t, err)

	var gitErr *domain.GitError
	assert.ErrorAs(t, err, &gitErr)
	// The tree is released even on failure.
	assert.True(t, f.workspace.Released)
	assert.False(t, f.workspace.CommitCalled)
}

func TestSyncWiki_Execute_EmptyRenderIsNoChange(t *testing.T) {
	f := newSyncFixture(t)
	f.renderer.Pages = nil

	out, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.ResultNoChange, out.Result)
	assert.False(t, f.workspace.StageCalled)
	assert.False(t, f.workspace.CommitCalled)
	assert.True(t, f.workspace.Released)
}

func TestSyncWiki_Execute_CleanTreeIsNoChange(t *testing.T) {
	f := newSyncFixture(t)
	f.workspace.HasChangesVal = false

	out, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.ResultNoChange, out.Result)
	assert.True(t, f.workspace.StageCalled)
	assert.False(t, f.workspace.CommitCalled)
	assert.False(t, f.workspace.PublishCalled)
}

func TestSyncWiki_Execute_PublishFailure(t *testing.T) {
	f := newSyncFixture(t)
	f.workspace.PublishErr = domain.ErrForbidden

	_, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.True(t, f.workspace.CommitCalled)
	assert.True(t, f.workspace.Released)
	assert.True(t, f.creds.Purged)
}

func TestSyncWiki_Execute_PurgeFailureDoesNotMaskResult(t *testing.T) {
	f := newSyncFixture(t)
	f.creds.PurgeErr = os.ErrPermission

	out, err := f.uc.Execute(context.Background(), SyncWikiInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultUpdated, out.Result)
	assert.True(t, f.creds.Purged)
}
