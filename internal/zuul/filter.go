package zuul

import (
	"slices"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SystemRequired is the template every project in the central
// configuration carries.
const SystemRequired = "system-required"

// KeepTemplates are the templates that always stay in the central
// configuration.
var KeepTemplates = []string{
	SystemRequired,
	"translation-jobs",
	"translation-jobs-queens",
	"periodic-jobs-with-oslo-master",
	"api-ref-jobs",
	"release-openstack-server",
	"publish-to-pypi",
	"publish-to-pypi-quietly",
	"publish-to-pypi-horizon",
	"publish-to-pypi-neutron",
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// FilterJobsOnBranch returns a copy of the project holding only the jobs
// that apply to branch. Kept jobs lose their branch filter, and a job left
// without parameters becomes a bare name. Entries without a branch filter
// are kept as they are.
func FilterJobsOnBranch(p *Project, branch string, logger *zap.Logger) (*Project, error) {
	logger = nopIfNil(logger)
	logger.Debug("filtering on branch", zap.String("branch", branch))

	return p.mapQueues(func(queue string, items []*yaml.Node) ([]*yaml.Node, error) {
		logger.Debug("filtering queue", zap.String("queue", queue))

		var keep []*yaml.Node
		for _, item := range items {
			ref, ok := ParseJobRef(item)
			if !ok || !ref.Inline() || !HasBranchFilter(ref.Params) {
				keep = append(keep, item)
				continue
			}

			matched, err := BranchesForJob(BranchPatterns(ref.Params))
			if err != nil {
				return nil, err
			}
			if len(matched) == 0 {
				logger.Debug("job matches no branches", zap.String("job", ref.Name))
				continue
			}
			logger.Debug("job applies to branches",
				zap.String("job", ref.Name), zap.Strings("branches", matched))

			if !wantOnBranch(matched, branch) {
				logger.Debug("ignoring job", zap.String("job", ref.Name))
				continue
			}
			logger.Debug("keeping job", zap.String("job", ref.Name))

			params := cloneNode(ref.Params)
			mapDelete(params, "branches")
			if len(params.Content) == 0 {
				keep = append(keep, scalarNode(ref.Name))
				continue
			}
			keep = append(keep, JobRef{Name: ref.Name, Params: params, key: ref.key}.Node())
		}
		return keep, nil
	})
}

// TemplatesOnlyOnMaster returns the templates used by the project that
// hold at least one job running only on master. Jobs named without
// parameters are looked up in defs. Templates and jobs without a
// definition are skipped.
func TemplatesOnlyOnMaster(p *Project, defs *Definitions, logger *zap.Logger) ([]string, error) {
	logger = nopIfNil(logger)

	var found []string
	for _, name := range p.Templates() {
		if slices.Contains(found, name) {
			continue
		}
		logger.Debug("looking at template", zap.String("template", name))

		template, ok := defs.Templates[name]
		if !ok {
			logger.Debug("did not find template definition", zap.String("template", name))
			continue
		}

		master, err := templateHasMasterOnlyJob(template, defs, logger)
		if err != nil {
			return nil, err
		}
		if master {
			found = append(found, name)
		}
	}
	return found, nil
}

func templateHasMasterOnlyJob(template *yaml.Node, defs *Definitions, logger *zap.Logger) (bool, error) {
	template = resolve(template)
	for i := 0; i+1 < len(template.Content); i += 2 {
		queue := template.Content[i+1]
		if !isMapping(queue) {
			continue
		}
		for _, item := range jobItems(queue) {
			ref, ok := ParseJobRef(item)
			if !ok {
				continue
			}
			params := ref.Params
			if !ref.Inline() {
				if params, ok = defs.Jobs[ref.Name]; !ok {
					logger.Debug("could not find job definition", zap.String("job", ref.Name))
					continue
				}
			}

			matched, err := BranchesForJob(BranchPatterns(params))
			if err != nil {
				return false, err
			}
			logger.Debug("looking at job", zap.String("job", ref.Name), zap.Strings("branches", matched))
			if onlyOnMaster(matched) {
				logger.Debug("job only runs on master", zap.String("job", ref.Name))
				return true, nil
			}
		}
	}
	return false, nil
}

// templatesToStay returns the templates of the project that belong in the
// central configuration
func templatesToStay(p *Project, defs *Definitions, logger *zap.Logger) (map[string]bool, error) {
	master, err := TemplatesOnlyOnMaster(p, defs, logger)
	if err != nil {
		return nil, err
	}
	stay := make(map[string]bool, len(KeepTemplates)+len(master))
	for _, name := range slices.Concat(KeepTemplates, master) {
		stay[name] = true
	}
	return stay, nil
}

// ExtractTemplates returns a copy of the project whose template list only
// holds the templates that can move in-tree. The list is removed when
// nothing is left.
func ExtractTemplates(p *Project, defs *Definitions, logger *zap.Logger) (*Project, error) {
	stay, err := templatesToStay(p, defs, logger)
	if err != nil {
		return nil, err
	}
	var extract []string
	for _, name := range p.Templates() {
		if !stay[name] {
			extract = append(extract, name)
		}
	}
	return p.withTemplates(extract), nil
}

// RetainTemplates returns a copy of the project whose template list only
// holds the templates that stay in the central configuration. The list
// always includes SystemRequired, added first when missing.
func RetainTemplates(p *Project, defs *Definitions, logger *zap.Logger) (*Project, error) {
	stay, err := templatesToStay(p, defs, logger)
	if err != nil {
		return nil, err
	}
	var retain []string
	for _, name := range p.Templates() {
		if stay[name] {
			retain = append(retain, name)
		}
	}
	if !slices.Contains(retain, SystemRequired) {
		retain = slices.Insert(retain, 0, SystemRequired)
	}
	return p.withTemplates(retain), nil
}

// RetainJobs returns a copy of the project holding only the jobs whose
// branch filter matches master alone. Bare job names and jobs without a
// branch filter are dropped.
func RetainJobs(p *Project, logger *zap.Logger) (*Project, error) {
	logger = nopIfNil(logger)

	return p.mapQueues(func(queue string, items []*yaml.Node) ([]*yaml.Node, error) {
		logger.Debug("filtering queue", zap.String("queue", queue))

		var keep []*yaml.Node
		for _, item := range items {
			ref, ok := ParseJobRef(item)
			if !ok || !ref.Inline() || !HasBranchFilter(ref.Params) {
				continue
			}

			matched, err := BranchesForJob(BranchPatterns(ref.Params))
			if err != nil {
				return nil, err
			}
			if len(matched) == 0 {
				logger.Debug("job matches no branches", zap.String("job", ref.Name))
				continue
			}
			if !onlyOnMaster(matched) {
				logger.Debug("ignoring job", zap.String("job", ref.Name), zap.Strings("branches", matched))
				continue
			}
			logger.Debug("keeping job", zap.String("job", ref.Name))
			keep = append(keep, item)
		}
		return keep, nil
	})
}
