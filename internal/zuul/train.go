package zuul

import "slices"

// Python 3 Train templates
const (
	TrainJobs           = "openstack-python3-train-jobs"
	TrainJobsHorizon    = "openstack-python3-train-jobs-horizon"
	TrainJobsNeutron    = "openstack-python3-train-jobs-neutron"
	TrainJobsCeilometer = "openstack-python3-train-jobs-ceilometer"
)

// TrainTemplates lists every Python 3 Train template
var TrainTemplates = []string{
	TrainJobs,
	TrainJobsHorizon,
	TrainJobsNeutron,
	TrainJobsCeilometer,
}

// trainReplacements maps the per-version templates to the Train template
// that replaces them, in the order they are tried.
var trainReplacements = [][2]string{
	{"openstack-python37-jobs", TrainJobs},
	{"openstack-python36-jobs", TrainJobs},
	{"openstack-python35-jobs", TrainJobs},
	{"openstack-python37-jobs-horizon", TrainJobsHorizon},
	{"openstack-python36-jobs-horizon", TrainJobsHorizon},
	{"openstack-python35-jobs-horizon", TrainJobsHorizon},
	{"openstack-python37-jobs-neutron", TrainJobsNeutron},
	{"openstack-python36-jobs-neutron", TrainJobsNeutron},
	{"openstack-python35-jobs-neutron", TrainJobsNeutron},
	{"openstack-python37-jobs-ceilometer", TrainJobsCeilometer},
	{"openstack-python36-jobs-ceilometer", TrainJobsCeilometer},
	{"openstack-python35-jobs-ceilometer", TrainJobsCeilometer},
}

// obsoleteTemplates are dropped once the Train templates are in place
var obsoleteTemplates = []string{
	"openstack-python37-jobs",
	"openstack-python36-jobs",
	"openstack-python35-jobs",
	"openstack-python37-jobs-horizon",
	"openstack-python36-jobs-horizon",
	"openstack-python35-jobs-horizon",
	"openstack-python37-jobs-neutron",
	"openstack-python36-jobs-neutron",
	"openstack-python35-jobs-neutron",
	"openstack-python37-jobs-ceilometer",
	"openstack-python36-jobs-ceilometer",
	"openstack-python35-jobs-ceilometer",
	"openstack-python37-jobs-nonvoting",
	"openstack-python36-jobs-nonvoting",
	"openstack-python35-jobs-nonvoting",
}

// AddTemplateAfter inserts adding right after seeking in the template
// list, if seeking is used and adding is not. The second result reports
// whether anything changed.
func AddTemplateAfter(p *Project, seeking, adding string) (*Project, bool) {
	templates := p.Templates()
	idx := slices.Index(templates, seeking)
	if idx < 0 || slices.Contains(templates, adding) {
		return p, false
	}
	return p.withTemplates(slices.Insert(templates, idx+1, adding)), true
}

// RemoveTemplate drops the first use of name from the template list
func RemoveTemplate(p *Project, name string) (*Project, bool) {
	templates := p.Templates()
	idx := slices.Index(templates, name)
	if idx < 0 {
		return p, false
	}
	templates = slices.Delete(templates, idx, idx+1)
	if len(templates) == 0 {
		// keep an empty list rather than dropping the key
		out := p.clone()
		mapSet(out.node, templatesKey, replaceItems(mapGet(out.node, templatesKey), nil))
		return out, true
	}
	return p.withTemplates(templates), true
}

// HasTrainTemplate reports whether the project already uses a Train
// template
func HasTrainTemplate(p *Project) bool {
	return p.HasTemplate(TrainTemplates...)
}

// MigrateToTrain replaces the per-version Python 3 templates with the Train
// templates. The second result reports whether the template list changed.
func MigrateToTrain(p *Project) (*Project, bool) {
	changed := false
	for _, r := range trainReplacements {
		var added bool
		if p, added = AddTemplateAfter(p, r[0], r[1]); added {
			changed = true
		}
	}
	for _, name := range obsoleteTemplates {
		var removed bool
		if p, removed = RemoveTemplate(p, name); removed {
			changed = true
		}
	}
	return p, changed
}
