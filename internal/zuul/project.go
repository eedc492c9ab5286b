package zuul

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

const templatesKey = "templates"

// Project is the body of a "project" record: queues holding job lists,
// plus a template list and other settings. Methods never modify the
// receiver; edits return a new Project.
type Project struct {
	node *yaml.Node
}

// NewProject wraps a project body mapping node
func NewProject(node *yaml.Node) (*Project, error) {
	node = resolve(node)
	if isNull(node) {
		node = mappingNode()
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("project settings at line %d are not a mapping", node.Line)
	}
	return &Project{node: node}, nil
}

// Node returns the project body
func (p *Project) Node() *yaml.Node {
	return p.node
}

// Name returns the repository name the settings apply to
func (p *Project) Name() string {
	if n := mapGet(p.node, "name"); n != nil {
		return n.Value
	}
	return ""
}

// Templates returns the names of the project templates in use
func (p *Project) Templates() []string {
	return stringValues(mapGet(p.node, templatesKey))
}

// HasTemplate reports whether any of names is in the template list
func (p *Project) HasTemplate(names ...string) bool {
	for _, name := range p.Templates() {
		if slices.Contains(names, name) {
			return true
		}
	}
	return false
}

// Queues returns the names of the pipelines holding a job list
func (p *Project) Queues() []string {
	var queues []string
	for i := 0; i+1 < len(p.node.Content); i += 2 {
		name, value := p.node.Content[i].Value, p.node.Content[i+1]
		if name == templatesKey || !isMapping(value) || !mapHas(value, "jobs") {
			continue
		}
		queues = append(queues, name)
	}
	return queues
}

// Jobs returns the parsable entries of a queue's job list
func (p *Project) Jobs(queue string) []JobRef {
	var jobs []JobRef
	for _, item := range jobItems(mapGet(p.node, queue)) {
		if ref, ok := ParseJobRef(item); ok {
			jobs = append(jobs, ref)
		}
	}
	return jobs
}

// Without returns a copy of the project without key
func (p *Project) Without(key string) *Project {
	out := p.clone()
	mapDelete(out.node, key)
	return out
}

func (p *Project) clone() *Project {
	return &Project{node: cloneNode(p.node)}
}

// withTemplates returns a copy with the template list set to names.
// Existing item nodes are reused so their comments are kept. An empty list
// removes the key.
func (p *Project) withTemplates(names []string) *Project {
	out := p.clone()
	if len(names) == 0 {
		mapDelete(out.node, templatesKey)
		return out
	}

	existing := make(map[string]*yaml.Node)
	if seq := mapGet(out.node, templatesKey); seq != nil && seq.Kind == yaml.SequenceNode {
		for _, item := range seq.Content {
			if _, seen := existing[item.Value]; !seen {
				existing[item.Value] = item
			}
		}
	}

	items := make([]*yaml.Node, 0, len(names))
	for _, name := range names {
		if item, ok := existing[name]; ok {
			items = append(items, item)
			continue
		}
		items = append(items, scalarNode(name))
	}

	mapSet(out.node, templatesKey, replaceItems(mapGet(out.node, templatesKey), items))
	return out
}

// mapQueues returns a copy of the project in which every queue job list
// has been passed through keep. Queues left without jobs lose the "jobs"
// key, and queues left empty are removed.
func (p *Project) mapQueues(keep func(queue string, jobs []*yaml.Node) ([]*yaml.Node, error)) (*Project, error) {
	out := p.clone()
	content := make([]*yaml.Node, 0, len(out.node.Content))
	for i := 0; i+1 < len(out.node.Content); i += 2 {
		key, value := out.node.Content[i], out.node.Content[i+1]
		if key.Value == templatesKey || !isMapping(value) || !mapHas(value, "jobs") {
			content = append(content, key, value)
			continue
		}
		if value.Kind == yaml.AliasNode {
			value = cloneNode(resolve(value))
		}

		kept, err := keep(key.Value, jobItems(value))
		if err != nil {
			return nil, fmt.Errorf("queue %s: %w", key.Value, err)
		}

		if len(kept) > 0 {
			mapSet(value, "jobs", replaceItems(mapGet(value, "jobs"), kept))
		} else {
			mapDelete(value, "jobs")
			if len(value.Content) == 0 {
				continue
			}
		}
		content = append(content, key, value)
	}
	out.node.Content = content
	return out, nil
}

func jobItems(queue *yaml.Node) []*yaml.Node {
	jobs := mapGet(queue, "jobs")
	if jobs == nil || jobs.Kind != yaml.SequenceNode {
		return nil
	}
	return jobs.Content
}

// replaceItems returns a sequence node like old, which may be nil, holding
// items. old itself is not modified.
func replaceItems(old *yaml.Node, items []*yaml.Node) *yaml.Node {
	if old == nil || old.Kind != yaml.SequenceNode {
		return sequenceNode(items...)
	}
	seq := *old
	seq.Content = items
	return &seq
}
