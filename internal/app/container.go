// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"os"

	"github.com/um-tesoreria/wikisync/internal/domain"
	"github.com/um-tesoreria/wikisync/internal/infra/config"
	"github.com/um-tesoreria/wikisync/internal/infra/credential"
	"github.com/um-tesoreria/wikisync/internal/infra/datafile"
	"github.com/um-tesoreria/wikisync/internal/infra/githubapi"
	"github.com/um-tesoreria/wikisync/internal/infra/gitwiki"
	"github.com/um-tesoreria/wikisync/internal/infra/logging"
	"github.com/um-tesoreria/wikisync/internal/infra/render"
	"github.com/um-tesoreria/wikisync/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for
// use cases. Remote-facing ports (guard, tracker, workspace) are built
// lazily because the docs command runs without credentials.
type Container struct {
	Guard        domain.RepositoryGuard
	Tracker      domain.TrackerClient
	Source       domain.RecordSource
	Sink         domain.RecordSink
	Workspace    domain.Workspace
	WikiRenderer domain.WikiRenderer
	DocsRenderer domain.DocsRenderer
	Creds        domain.CredentialCache
	Clock        domain.Clock

	Logger *slog.Logger
	Config *domain.Config
}

// New creates a Container from the configuration file at configPath.
// The environment (GITHUB_TOKEN, GITHUB_REPOSITORY) is consulted here
// exactly once; afterwards the values travel as plain configuration.
func New(configPath string) (*Container, error) {
	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return nil, err
	}

	if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
		cfg.Repository = repo
	}
	cfg.Token = os.Getenv("GITHUB_TOKEN")

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level))
	renderer := render.New()
	source := datafile.New(cfg.Data.Dir)

	return &Container{
		Source:       source,
		Sink:         source,
		WikiRenderer: renderer,
		DocsRenderer: renderer,
		Creds:        credential.New(),
		Clock:        domain.RealClock{},
		Logger:       logger,
		Config:       cfg,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, logger *slog.Logger) *Container {
	return &Container{
		Clock:  domain.RealClock{},
		Logger: logger,
		Config: cfg,
	}
}

// ensureRemote validates the remote configuration and builds the
// remote-facing ports on first use.
func (c *Container) ensureRemote() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	owner, name, err := c.Config.OwnerName()
	if err != nil {
		return err
	}

	if c.Guard == nil || c.Tracker == nil {
		gh := githubapi.New(owner, name, c.Config.Token, c.Logger)
		if c.Guard == nil {
			c.Guard = gh
		}
		if c.Tracker == nil {
			c.Tracker = gh
		}
	}
	if c.Workspace == nil {
		c.Workspace = gitwiki.New(gitwiki.Options{
			RemoteURL:      c.Config.WikiRemoteURL(),
			BranchFallback: c.Config.Wiki.BranchFallback,
			CommitterName:  c.Config.Wiki.CommitterName,
			CommitterEmail: c.Config.Wiki.CommitterEmail,
		}, c.Logger)
	}
	return nil
}

// UseCase factory methods

// SyncWikiUseCase returns a new SyncWiki use case.
func (c *Container) SyncWikiUseCase() (*usecase.SyncWiki, error) {
	if err := c.ensureRemote(); err != nil {
		return nil, err
	}
	return usecase.NewSyncWiki(c.Guard, c.Source, c.Workspace, c.WikiRenderer, c.Creds, c.Clock, c.Logger), nil
}

// GenerateDocsUseCase returns a new GenerateDocs use case.
func (c *Container) GenerateDocsUseCase() *usecase.GenerateDocs {
	return usecase.NewGenerateDocs(c.Source, c.DocsRenderer, c.Clock, c.Logger)
}

// FetchDataUseCase returns a new FetchData use case.
func (c *Container) FetchDataUseCase() (*usecase.FetchData, error) {
	if err := c.ensureRemote(); err != nil {
		return nil, err
	}
	return usecase.NewFetchData(c.Tracker, c.Sink, c.Logger), nil
}
