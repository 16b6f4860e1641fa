package domain

import (
	"fmt"
	"strings"
)

// Default configuration values.
const (
	DefaultDataDir        = "data"
	DefaultBranchFallback = "main"
	DefaultDocsOutput     = "docs/project-documentation.md"
	DefaultCommitterName  = "github-actions[bot]"
	DefaultCommitterEmail = "github-actions[bot]@users.noreply.github.com"

	// ConfigFileName is the repository configuration file.
	ConfigFileName = "wikisync.toml"
)

// Config is the application configuration. The access token and the
// repository slug may come from the environment, but they are resolved
// exactly once at startup and threaded through as plain values.
// Fields are ordered to minimize memory padding.
type Config struct {
	Repository string     `toml:"repository"` // "owner/name" slug
	Token      string     `toml:"-"`          // never persisted to disk
	Data       DataConfig `toml:"data"`
	Wiki       WikiConfig `toml:"wiki"`
	Docs       DocsConfig `toml:"docs"`
	Log        LogConfig  `toml:"log"`
}

// DataConfig holds settings for the snapshot files from [data].
type DataConfig struct {
	Dir string `toml:"dir,omitempty"` // directory holding issues.json and milestones.json
}

// WikiConfig holds settings for the wiki store from [wiki].
type WikiConfig struct {
	BranchFallback string `toml:"branch_fallback,omitempty"` // used when the remote HEAD cannot be resolved
	CommitterName  string `toml:"committer_name,omitempty"`
	CommitterEmail string `toml:"committer_email,omitempty"`
}

// DocsConfig holds settings for the docs page from [docs].
type DocsConfig struct {
	Output string `toml:"output,omitempty"` // path of the generated documentation page
}

// LogConfig holds logging settings from [log].
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// NewDefaultConfig returns a Config with all defaults applied.
func NewDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{Dir: DefaultDataDir},
		Wiki: WikiConfig{
			BranchFallback: DefaultBranchFallback,
			CommitterName:  DefaultCommitterName,
			CommitterEmail: DefaultCommitterEmail,
		},
		Docs: DocsConfig{Output: DefaultDocsOutput},
		Log:  LogConfig{Level: "info"},
	}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Token == "" || strings.TrimSpace(c.Token) == "" {
		return ErrMissingToken
	}
	if c.Repository == "" {
		return ErrMissingRepository
	}
	if _, _, err := c.OwnerName(); err != nil {
		return err
	}
	return nil
}

// OwnerName splits the repository slug into owner and name.
func (c *Config) OwnerName() (owner, name string, err error) {
	owner, name, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("%w: invalid repository %q, want owner/name", ErrMalformedInput, c.Repository)
	}
	return owner, name, nil
}

// WikiRemoteURL returns the authenticated URL of the wiki store. The
// token travels only in this value; it is never written to disk.
func (c *Config) WikiRemoteURL() string {
	return fmt.Sprintf("https://x-access-token:%s@github.com/%s.wiki.git", c.Token, c.Repository)
}
