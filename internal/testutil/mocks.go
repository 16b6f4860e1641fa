// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockGuard is a test double for domain.RepositoryGuard.
type MockGuard struct {
	Caps   domain.Capabilities
	Err    error
	Called bool
}

// Ensure returns the configured capabilities or error.
func (m *MockGuard) Ensure(_ context.Context) (domain.Capabilities, error) {
	m.Called = true
	if m.Err != nil {
		return domain.Capabilities{}, m.Err
	}
	return m.Caps, nil
}

// MockRecordSource is a test double for domain.RecordSource.
type MockRecordSource struct {
	Issues     []domain.Issue
	Milestones []domain.Milestone
	Err        error
}

// Load returns the configured records or error.
func (m *MockRecordSource) Load() ([]domain.Issue, []domain.Milestone, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Issues, m.Milestones, nil
}

// MockRecordSink is a test double for domain.RecordSink.
type MockRecordSink struct {
	Issues     []domain.Issue
	Milestones []domain.Milestone
	Err        error
	Called     bool
}

// Write records the arguments or returns the configured error.
func (m *MockRecordSink) Write(issues []domain.Issue, milestones []domain.Milestone) error {
	m.Called = true
	if m.Err != nil {
		return m.Err
	}
	m.Issues = issues
	m.Milestones = milestones
	return nil
}

// MockTracker is a test double for domain.TrackerClient.
type MockTracker struct {
	Issues        []domain.Issue
	Milestones    []domain.Milestone
	IssuesErr     error
	MilestonesErr error
}

// FetchIssues returns the configured issues or error.
func (m *MockTracker) FetchIssues(_ context.Context) ([]domain.Issue, error) {
	if m.IssuesErr != nil {
		return nil, m.IssuesErr
	}
	return m.Issues, nil
}

// FetchMilestones returns the configured milestones or error.
func (m *MockTracker) FetchMilestones(_ context.Context) ([]domain.Milestone, error) {
	if m.MilestonesErr != nil {
		return nil, m.MilestonesErr
	}
	return m.Milestones, nil
}

// MockRenderer is a test double for the renderer ports.
type MockRenderer struct {
	Pages    []domain.Page
	DocsPage domain.Page
	DocsNow  time.Time
}

// RenderWiki returns the configured pages.
func (m *MockRenderer) RenderWiki(_ []domain.Issue, _ []domain.Milestone) []domain.Page {
	return m.Pages
}

// RenderDocs returns the configured docs page and records the clock value.
func (m *MockRenderer) RenderDocs(_ []domain.Issue, _ []domain.Milestone, now time.Time) domain.Page {
	m.DocsNow = now
	return m.DocsPage
}

// MockWorkspace is a test double for domain.Workspace.
// Fields are ordered to minimize memory padding.
type MockWorkspace struct {
	Tree *domain.WorkingTree

	AcquireErr  error
	CheckoutErr error
	StageErr    error
	ChangesErr  error
	CommitErr   error
	PublishErr  error

	CommitMessage string
	CommitWhen    time.Time

	HasChangesVal  bool
	Acquired       bool
	Released       bool
	CheckoutCalled bool
	StageCalled    bool
	CommitCalled   bool
	PublishCalled  bool
}

// Acquire returns the configured tree or error.
func (m *MockWorkspace) Acquire(_ context.Context) (*domain.WorkingTree, error) {
	m.Acquired = true
	if m.AcquireErr != nil {
		return nil, m.AcquireErr
	}
	return m.Tree, nil
}

// Release records that the tree was released.
func (m *MockWorkspace) Release(_ *domain.WorkingTree) {
	m.Released = true
}

// CheckoutAndPull returns the configured error.
func (m *MockWorkspace) CheckoutAndPull(_ context.Context, _ *domain.WorkingTree) error {
	m.CheckoutCalled = true
	return m.CheckoutErr
}

// StageAll returns the configured error.
func (m *MockWorkspace) StageAll(_ *domain.WorkingTree) error {
	m.StageCalled = true
	return m.StageErr
}

// HasChanges returns the configured dirty-status.
func (m *MockWorkspace) HasChanges(_ *domain.WorkingTree) (bool, error) {
	if m.ChangesErr != nil {
		return false, m.ChangesErr
	}
	return m.HasChangesVal, nil
}

// Commit records the message and timestamp.
func (m *MockWorkspace) Commit(_ *domain.WorkingTree, message string, when time.Time) error {
	m.CommitCalled = true
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.CommitMessage = message
	m.CommitWhen = when
	return nil
}

// Publish returns the configured error.
func (m *MockWorkspace) Publish(_ context.Context, _ *domain.WorkingTree) error {
	m.PublishCalled = true
	return m.PublishErr
}

// MockCredentialCache is a test double for domain.CredentialCache.
type MockCredentialCache struct {
	PurgeErr error
	Purged   bool
}

// Purge records the call and returns the configured error.
func (m *MockCredentialCache) Purge() error {
	m.Purged = true
	return m.PurgeErr
}
