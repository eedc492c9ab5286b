package zuul

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Central locates the central CI configuration: the repository holding the
// project settings and the repository holding the shared templates and jobs.
type Central struct {
	ProjectConfigDir string
	ZuulJobsDir      string
}

// ProjectsFile is the file holding every project's settings
func (c Central) ProjectsFile() string {
	return filepath.Join(c.ProjectConfigDir, "zuul.d", "projects.yaml")
}

// TemplatesFile is the file defining the shared project templates
func (c Central) TemplatesFile() string {
	return filepath.Join(c.ZuulJobsDir, "zuul.d", "project-templates.yaml")
}

// JobsFile is the file defining the shared jobs
func (c Central) JobsFile() string {
	return filepath.Join(c.ZuulJobsDir, "zuul.d", "jobs.yaml")
}

// Load reads the settings of repo and the definitions they refer to
func (c Central) Load(repo string, logger *zap.Logger) (*Project, *Definitions, error) {
	logger = nopIfNil(logger)

	logger.Debug("loading project settings", zap.String("file", c.ProjectsFile()))
	settings, err := LoadSettings(c.ProjectsFile())
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("loading templates and jobs",
		zap.String("templates", c.TemplatesFile()),
		zap.String("jobs", c.JobsFile()))
	defs, err := LoadDefinitions(c.TemplatesFile(), c.JobsFile())
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("looking for settings", zap.String("repo", repo))
	project, err := settings.Project(repo)
	if err != nil {
		return nil, nil, err
	}
	return project, defs, nil
}
