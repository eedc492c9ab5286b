package common

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/bjulian5/goaltools/internal/cache"
	"github.com/bjulian5/goaltools/internal/config"
	"github.com/bjulian5/goaltools/internal/gerrit"
	"github.com/bjulian5/goaltools/internal/governance"
	"github.com/bjulian5/goaltools/internal/logging"
	"github.com/bjulian5/goaltools/internal/remote"
)

// GlobalOptions holds the root command's persistent flags
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	CacheDir   string
	ReviewURL  string
}

// Options is filled in by the root command's flags
var Options GlobalOptions

var logger = zap.NewNop()

// InitLogger builds the process logger from the global options
func InitLogger() error {
	l, err := logging.New(Options.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// Logger returns the process logger
func Logger() *zap.Logger {
	return logger
}

// SyncLogger flushes buffered log entries
func SyncLogger() {
	_ = logger.Sync()
}

// LoadConfig reads the settings file and applies the flag overrides
func LoadConfig() (*config.Config, error) {
	path := Options.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if Options.CacheDir != "" {
		cfg.CacheDir = Options.CacheDir
	}
	if Options.ReviewURL != "" {
		cfg.ReviewURL = Options.ReviewURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger.Debug("loaded settings", zap.String("path", path), zap.String("cache_dir", cfg.CacheDir))
	return cfg, nil
}

// NewRequester creates the shared HTTP requester
func NewRequester(cfg *config.Config) *remote.Requester {
	return remote.NewRequester(
		remote.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		remote.WithRateLimit(cfg.RequestsPerSecond),
		remote.WithLogger(logger.Named("remote")),
	)
}

// InitReviewFactory opens the review cache and creates a review factory
// reading from the configured review service. The caller closes the cache.
func InitReviewFactory(cfg *config.Config) (*gerrit.Factory, *cache.Cache, error) {
	store, err := cache.Open(cfg.CacheDir, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("cache initialization failed: %w", err)
	}
	client := gerrit.NewClient(cfg.ReviewURL, NewRequester(cfg))
	return gerrit.NewFactory(client, store, logger.Named("gerrit")), store, nil
}

// LoadGovernance fetches the governance documents
func LoadGovernance(ctx context.Context, cfg *config.Config) (*governance.Index, error) {
	logger.Debug("loading governance data", zap.String("projects", cfg.Governance.ProjectsURL))
	idx, err := governance.Load(ctx, NewRequester(cfg), cfg.Governance.URLs())
	if err != nil {
		return nil, fmt.Errorf("failed to load governance data: %w", err)
	}
	return idx, nil
}
