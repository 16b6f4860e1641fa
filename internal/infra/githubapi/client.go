// Package githubapi talks to the GitHub REST API. It implements the
// repository access guard and the issue/milestone fetcher.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v72/github"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// Client wraps go-github for a single repository.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
	owner  string
	name   string
}

// Ensure Client implements the domain ports.
var (
	_ domain.RepositoryGuard = (*Client)(nil)
	_ domain.TrackerClient   = (*Client)(nil)
)

// New creates a Client authenticated with the given token.
func New(owner, name, token string, logger *slog.Logger) *Client {
	return &Client{
		gh:     github.NewClient(nil).WithAuthToken(token),
		owner:  owner,
		name:   name,
		logger: logger,
	}
}

// NewWithClient creates a Client on an existing go-github client.
// Useful for tests that point the client at a local HTTP server.
func NewWithClient(gh *github.Client, owner, name string, logger *slog.Logger) *Client {
	return &Client{gh: gh, owner: owner, name: name, logger: logger}
}

// Ensure verifies the repository exists and the token can read and
// write it, and that the wiki is enabled. When the wiki is disabled and
// the token has admin rights, the wiki is enabled in place; a failed
// enable call is reported as ErrForbidden, the same as lacking the
// right entirely.
func (c *Client) Ensure(ctx context.Context) (domain.Capabilities, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, c.owner, c.name)
	if err != nil {
		return domain.Capabilities{}, mapAPIError(err)
	}

	perms := repo.GetPermissions()
	caps := domain.Capabilities{
		CanRead:     perms["pull"],
		CanWrite:    perms["push"],
		CanAdmin:    perms["admin"],
		WikiEnabled: repo.GetHasWiki(),
	}

	if !caps.CanRead {
		return caps, fmt.Errorf("%w: token has no read access", domain.ErrForbidden)
	}
	if !caps.CanWrite {
		return caps, fmt.Errorf("%w: token has no write access", domain.ErrForbidden)
	}
	if !caps.WikiEnabled {
		if !caps.CanAdmin {
			return caps, fmt.Errorf("%w: wiki is disabled and token cannot enable it", domain.ErrForbidden)
		}
		c.logger.Info("wiki disabled, enabling it", "repository", c.owner+"/"+c.name)
		if _, _, err := c.gh.Repositories.Edit(ctx, c.owner, c.name, &github.Repository{
			HasWiki: github.Ptr(true),
		}); err != nil {
			return caps, fmt.Errorf("%w: enable wiki: %v", domain.ErrForbidden, err)
		}
		caps.WikiEnabled = true
	}

	return caps, nil
}

// FetchIssues returns all issues of the repository, open and closed,
// in the order the API reports them. Pull requests share the issues
// endpoint and are filtered out.
func (c *Client) FetchIssues(ctx context.Context) ([]domain.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []domain.Issue
	for {
		issues, resp, err := c.gh.Issues.ListByRepo(ctx, c.owner, c.name, opts)
		if err != nil {
			return nil, mapAPIError(err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			out = append(out, convertIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	return out, nil
}

// FetchMilestones returns all milestones of the repository.
func (c *Client) FetchMilestones(ctx context.Context) ([]domain.Milestone, error) {
	opts := &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []domain.Milestone
	for {
		milestones, resp, err := c.gh.Issues.ListMilestones(ctx, c.owner, c.name, opts)
		if err != nil {
			return nil, mapAPIError(err)
		}
		for _, ms := range milestones {
			out = append(out, convertMilestone(ms))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func convertIssue(issue *github.Issue) domain.Issue {
	labels := make(domain.LabelSet, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		if name := label.GetName(); name != "" {
			labels = append(labels, name)
		}
	}

	out := domain.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     domain.IssueState(issue.GetState()),
		Body:      issue.GetBody(),
		Labels:    labels,
		CreatedAt: convertTime(issue.CreatedAt),
		ClosedAt:  convertTime(issue.ClosedAt),
	}
	if ms := issue.GetMilestone(); ms != nil {
		out.Milestone = domain.MilestoneRef{Title: ms.GetTitle(), Valid: true}
	}
	return out
}

func convertMilestone(ms *github.Milestone) domain.Milestone {
	return domain.Milestone{
		Title:       ms.GetTitle(),
		Description: ms.GetDescription(),
		State:       domain.IssueState(ms.GetState()),
		CreatedAt:   convertTime(ms.CreatedAt),
		DueOn:       convertTime(ms.DueOn),
	}
}

func convertTime(ts *github.Timestamp) domain.Timestamp {
	if ts == nil || ts.Time.IsZero() {
		return domain.Timestamp{}
	}
	return domain.Timestamp{Time: ts.Time.UTC()}
}

// mapAPIError translates API failures into the domain error taxonomy.
func mapAPIError(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", domain.ErrForbidden, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
	}
	return fmt.Errorf("github api: %w", err)
}
