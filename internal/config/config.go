// Package config loads the goal-tools settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/bjulian5/goaltools/internal/gerrit"
	"github.com/bjulian5/goaltools/internal/governance"
)

// AppName names the settings and cache directories
const AppName = "goal-tools"

// Config is the goal-tools settings file
type Config struct {
	ReviewURL         string           `yaml:"review_url" validate:"required,url"`
	Governance        GovernanceConfig `yaml:"governance"`
	Jobs              JobsConfig       `yaml:"jobs"`
	CacheDir          string           `yaml:"cache_dir" validate:"required"`
	RequestsPerSecond float64          `yaml:"requests_per_second" validate:"gte=0"`
	Timeout           time.Duration    `yaml:"timeout" validate:"gt=0"`
}

// GovernanceConfig holds the locations of the governance documents
type GovernanceConfig struct {
	ProjectsURL string `yaml:"projects_url" validate:"required,url"`
	TCURL       string `yaml:"tc_url" validate:"required,url"`
	SIGsURL     string `yaml:"sigs_url" validate:"required,url"`
}

// JobsConfig holds the checkouts the CI settings are read from
type JobsConfig struct {
	ProjectConfigDir string `yaml:"project_config_dir" validate:"required"`
	ZuulJobsDir      string `yaml:"zuul_jobs_dir" validate:"required"`
}

// URLs returns the governance document locations
func (g GovernanceConfig) URLs() governance.URLs {
	return governance.URLs{
		Projects: g.ProjectsURL,
		TCRepos:  g.TCURL,
		SIGs:     g.SIGsURL,
	}
}

// Default returns the settings used when there is no settings file
func Default() *Config {
	urls := governance.DefaultURLs()
	return &Config{
		ReviewURL: gerrit.DefaultURL,
		Governance: GovernanceConfig{
			ProjectsURL: urls.Projects,
			TCURL:       urls.TCRepos,
			SIGsURL:     urls.SIGs,
		},
		Jobs: JobsConfig{
			ProjectConfigDir: "../project-config",
			ZuulJobsDir:      "../openstack-zuul-jobs",
		},
		CacheDir:          defaultCacheDir(),
		RequestsPerSecond: 5,
		Timeout:           30 * time.Second,
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName)
}

// DefaultPath returns the settings file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// Load reads the settings file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings values
func (c *Config) Validate() error {
	return validate.Struct(c)
}
