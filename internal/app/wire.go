package app

import (
	"context"
	"io"
	"time"

	"github.com/rojanmagar2001/gitcopy/internal/classify"
	"github.com/rojanmagar2001/gitcopy/internal/infra/httpclient"
	"github.com/rojanmagar2001/gitcopy/internal/infra/store"
	"github.com/rojanmagar2001/gitcopy/internal/listing"
	"github.com/rojanmagar2001/gitcopy/internal/logging"
	"github.com/rojanmagar2001/gitcopy/internal/mirror"
	"github.com/rojanmagar2001/gitcopy/internal/ports"
	"github.com/rojanmagar2001/gitcopy/internal/rebuild"
	"github.com/rojanmagar2001/gitcopy/internal/usecase"
)

type Config struct {
	RemoteURL string `yaml:"remote_url"`
	LocalDir  string `yaml:"local_dir"`

	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	MaxDepth    int           `yaml:"max_depth"`
	UserAgent   string        `yaml:"user_agent"`

	Classifier string `yaml:"classifier"`
	Rebuilder  string `yaml:"rebuilder"`
	NoRebuild  bool   `yaml:"no_rebuild"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func DefaultConfig() Config {
	return Config{
		Timeout:     httpclient.DefaultTimeout,
		Concurrency: usecase.DefaultConcurrency,
		UserAgent:   httpclient.DefaultUserAgent,
		Classifier:  classify.StrategyContentType,
		Rebuilder:   rebuild.BackendGit,
		LogLevel:    "info",
		LogFormat:   logging.FormatText,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.Concurrency == 0 {
		c.Concurrency = d.Concurrency
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.Classifier == "" {
		c.Classifier = d.Classifier
	}
	if c.Rebuilder == "" {
		c.Rebuilder = d.Rebuilder
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
}

// Run copies the remote metadata directory into cfg.LocalDir and rebuilds
// the source tree there. Logs go to stderr, the summary to stdout.
func Run(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	cfg.applyDefaults()
	if err := Validate(cfg); err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}

	httpc := httpclient.New(cfg.Timeout, cfg.UserAgent)
	cls, err := classify.New(cfg.Classifier, httpc)
	if err != nil {
		return err
	}

	var rb *usecase.RebuildService
	if !cfg.NoRebuild {
		r, err := rebuild.New(cfg.Rebuilder)
		if err != nil {
			return err
		}
		rb = usecase.NewRebuildService(r, log)
	}

	crawler := usecase.NewCrawler(httpc, listing.New(), cls, log, cfg.Concurrency, cfg.MaxDepth)
	mir := usecase.NewMirror(httpc, mirror.NewFS(), log, cfg.Concurrency)
	newStore := func() ports.Store { return store.NewMemory() }

	orch := usecase.NewOrchestrator(crawler, mir, rb, newStore, log)
	return orch.Run(ctx, usecase.Target{
		RootURL:  cfg.RemoteURL,
		WorkTree: cfg.LocalDir,
		MetaDir:  MetadataDir(cfg),
	}, stdout)
}
