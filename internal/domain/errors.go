package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrUnauthenticated   = errors.New("authentication failed: invalid or expired token")
	ErrForbidden         = errors.New("insufficient permissions for repository")
	ErrNotFound          = errors.New("repository not found")
	ErrMalformedInput    = errors.New("malformed input data")
	ErrMissingToken      = errors.New("access token not configured (set GITHUB_TOKEN)")
	ErrMissingRepository = errors.New("repository not configured (set GITHUB_REPOSITORY or the repository config key)")
)

// Git operation stages, used to report where a run failed.
const (
	StageResolve  = "resolve"
	StageClone    = "clone"
	StageInit     = "init"
	StageCheckout = "checkout"
	StagePull     = "pull"
	StageStage    = "stage"
	StageStatus   = "status"
	StageCommit   = "commit"
	StagePush     = "push"
)

// GitError is a failed git operation together with the stage it failed
// in. The underlying error is preserved for errors.Is/As checks.
type GitError struct {
	Err   error
	Stage string
}

// NewGitError wraps err with the stage it occurred in.
func NewGitError(stage string, err error) *GitError {
	return &GitError{Stage: stage, Err: err}
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s failed: %v", e.Stage, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}
