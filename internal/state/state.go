package state

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/Paintersrp/modular/internal/config"
	"github.com/Paintersrp/modular/internal/feed"
	"github.com/Paintersrp/modular/internal/graph"
	"github.com/Paintersrp/modular/internal/logger"
	"github.com/Paintersrp/modular/internal/publish"
	"github.com/Paintersrp/modular/internal/strapi"
)

// State is what every command runs against: the loaded config, a CMS
// client built from it and the id tagging this run's log lines.
type State struct {
	Config *config.Config
	Client *strapi.Client
	RunID  string
	Home   string
}

// NewState loads the .env file and the config at configPath (the default
// location when empty) and builds the CMS client.
func NewState(configPath string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home, configPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger.Logger = logger.Logger.With(logger.FieldRunID, runID)

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &State{
		Config: cfg,
		Client: client,
		RunID:  runID,
		Home:   home,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	return home, nil
}

// LoadConfig resolves the config path and loads it.
func LoadConfig(home, configPath string) (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = config.GetConfigPath(home)
	}
	return config.Load(configPath)
}

func NewClient(cfg *config.Config) (*strapi.Client, error) {
	return strapi.New(strapi.Options{
		BaseURL:           cfg.Strapi.URL,
		Token:             cfg.Strapi.Token,
		PageSize:          cfg.Strapi.PageSize,
		Timeout:           cfg.Strapi.Timeout,
		RequestsPerSecond: cfg.Strapi.RequestsPerSecond,
		CacheSize:         cfg.Strapi.CacheSize,
	})
}

// Site maps the site section onto feed metadata.
func (s *State) Site() feed.Site {
	return feed.Site{
		URL:         s.Config.Site.URL,
		Title:       s.Config.Site.Title,
		Description: s.Config.Site.Description,
		Author:      s.Config.Site.Author,
		Language:    s.Config.Site.Language,
	}
}

func (s *State) GraphOptions() graph.Options {
	return graph.Options{
		MaxNodes:       s.Config.Graph.MaxNodes,
		ResolveForward: s.Config.Graph.ResolveForward,
		Locale:         s.Config.Locale,
	}
}

func (s *State) CollectOptions() feed.CollectOptions {
	return feed.CollectOptions{
		Locale:       s.Config.Locale,
		Projects:     s.Config.ContentTypes.Projects,
		Docs:         s.Config.ContentTypes.Docs,
		PostsPerPage: s.Config.PostsPerPage,
	}
}

func (s *State) PublishConfig() publish.Config {
	p := s.Config.Publish
	return publish.Config{
		Target:    p.Target,
		Bucket:    p.Bucket,
		Prefix:    p.Prefix,
		Region:    p.Region,
		Endpoint:  p.Endpoint,
		AccessKey: p.AccessKey,
		SecretKey: p.SecretKey,
		UseSSL:    p.UseSSL,
	}
}

// Now is the clock every command stamps its output with.
func (s *State) Now() time.Time {
	return time.Now().UTC()
}

// Close flushes the logger.
func (s *State) Close() error {
	logger.Cleanup()
	return nil
}
