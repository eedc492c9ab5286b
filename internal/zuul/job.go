package zuul

import (
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

// Master is the development branch
const Master = "master"

// Branches are the branches a job's branch filter is evaluated against, in
// report order.
var Branches = []string{
	"stable/ocata",
	"stable/pike",
	"stable/queens",
	"stable/rocky",
	Master,
}

// JobRef is an entry in a queue's job list: either a bare job name, or a
// job name with parameters. Params is nil for a bare name.
type JobRef struct {
	Name   string
	Params *yaml.Node

	key *yaml.Node
}

// ParseJobRef interprets a job list entry. The second result is false for
// entries that are neither a string nor a single-key mapping.
func ParseJobRef(n *yaml.Node) (JobRef, bool) {
	n = resolve(n)
	switch {
	case n == nil:
		return JobRef{}, false
	case n.Kind == yaml.ScalarNode && !isNull(n):
		return JobRef{Name: n.Value}, true
	case n.Kind == yaml.MappingNode && len(n.Content) == 2:
		params := resolve(n.Content[1])
		if isNull(params) {
			params = mappingNode()
		}
		if params.Kind != yaml.MappingNode {
			return JobRef{}, false
		}
		return JobRef{Name: n.Content[0].Value, Params: params, key: n.Content[0]}, true
	}
	return JobRef{}, false
}

// Inline reports whether the job carries parameters
func (j JobRef) Inline() bool {
	return j.Params != nil
}

// Node returns the YAML form of the job entry
func (j JobRef) Node() *yaml.Node {
	if !j.Inline() {
		return scalarNode(j.Name)
	}
	key := j.key
	if key == nil {
		key = scalarNode(j.Name)
	}
	return mappingNode(key, j.Params)
}

// HasBranchFilter reports whether the job parameters include "branches"
func HasBranchFilter(params *yaml.Node) bool {
	return mapHas(params, "branches")
}

// BranchPatterns returns the branch filter of a job. A single pattern may
// be written as a string instead of a list.
func BranchPatterns(params *yaml.Node) []string {
	return stringValues(mapGet(params, "branches"))
}

// BranchesForJob returns every known branch matched by each pattern, in
// Branches order per pattern. A branch matched by two patterns is listed
// twice. Patterns are searched for, not anchored, and may use lookaround
// assertions such as ^(?!stable/ocata).*$.
func BranchesForJob(patterns []string) ([]string, error) {
	var matched []string
	for _, pattern := range patterns {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("invalid branch pattern %q: %w", pattern, err)
		}
		for _, branch := range Branches {
			ok, err := re.MatchString(branch)
			if err != nil {
				return nil, fmt.Errorf("failed to match branch pattern %q: %w", pattern, err)
			}
			if ok {
				matched = append(matched, branch)
			}
		}
	}
	return matched, nil
}

// onlyOnMaster reports whether a job applies to the master branch alone
func onlyOnMaster(matched []string) bool {
	return slices.Equal(matched, []string{Master})
}

// wantOnBranch decides whether a job whose filter matched the given
// branches belongs in the settings for branch. A job that only runs on
// master stays in the central configuration.
func wantOnBranch(matched []string, branch string) bool {
	if !slices.Contains(matched, branch) {
		return false
	}
	if len(matched) > 1 {
		return true
	}
	return branch != Master
}
