// Package zuul reads and rewrites CI configuration files and decides which
// project settings belong to which configuration tier.
//
// Files are sequences of single-key records such as {"project": {...}},
// {"project-template": {...}} and {"job": {...}}. They are handled as
// yaml.v3 node trees so a rewritten file keeps its comments and key order.
package zuul

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Record kinds
const (
	KindProject         = "project"
	KindProjectTemplate = "project-template"
	KindJob             = "job"
)

// ProjectNotFoundError is returned when a settings file has no project
// record for a repository
type ProjectNotFoundError struct {
	Name string
	File string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s in %s", e.Name, e.File)
}

// Settings is a parsed CI configuration file
type Settings struct {
	path string
	doc  *yaml.Node
}

// LoadSettings reads and parses a configuration file
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// ParseSettings parses configuration file contents. An empty document is
// an empty record list.
func ParseSettings(data []byte) (*Settings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{sequenceNode()}}
	}
	if len(doc.Content) != 1 || resolve(doc.Content[0]).Kind != yaml.SequenceNode {
		return nil, errors.New("expected a list of records")
	}
	return &Settings{doc: &doc}, nil
}

// Path returns the file the settings were loaded from
func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) records() []*yaml.Node {
	return resolve(s.doc.Content[0]).Content
}

// Bodies returns the bodies of every record of the given kind
func (s *Settings) Bodies(kind string) []*yaml.Node {
	var bodies []*yaml.Node
	for _, record := range s.records() {
		if body := mapGet(record, kind); body != nil {
			bodies = append(bodies, body)
		}
	}
	return bodies
}

// Named indexes the bodies of the records of a kind by their "name"
func (s *Settings) Named(kind string) map[string]*yaml.Node {
	named := make(map[string]*yaml.Node)
	for _, body := range s.Bodies(kind) {
		if name := mapGet(body, "name"); name != nil {
			named[name.Value] = body
		}
	}
	return named
}

// projectIndex returns the position of the first project record accepted
// by match
func (s *Settings) projectIndex(match func(*Project) bool) (int, *Project, error) {
	for i, record := range s.records() {
		body := mapGet(record, KindProject)
		if body == nil {
			continue
		}
		p, err := NewProject(body)
		if err != nil {
			return -1, nil, err
		}
		if match(p) {
			return i, p, nil
		}
	}
	return -1, nil, nil
}

// Project returns the settings of the named repository
func (s *Settings) Project(name string) (*Project, error) {
	_, p, err := s.projectIndex(func(p *Project) bool { return p.Name() == name })
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ProjectNotFoundError{Name: name, File: s.path}
	}
	return p, nil
}

// FirstProject returns the first project record, as found in in-tree
// configuration files. The second result is false if there is none.
func (s *Settings) FirstProject() (*Project, bool, error) {
	_, p, err := s.projectIndex(func(*Project) bool { return true })
	return p, p != nil, err
}

// WithFirstProject returns a copy of the settings in which the first
// project record body is replaced with p.
func (s *Settings) WithFirstProject(p *Project) (*Settings, error) {
	i, _, err := s.projectIndex(func(*Project) bool { return true })
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, errors.New("no project record to replace")
	}

	out := &Settings{path: s.path, doc: cloneNode(s.doc)}
	record := resolve(out.records()[i])
	mapSet(record, KindProject, p.node)
	return out, nil
}

// Encode writes the settings as YAML
func (s *Settings) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.doc); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the settings to path, preserving comments and order
func (s *Settings) Save(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// EncodeProjects writes projects as a list of project records
func EncodeProjects(w io.Writer, projects ...*Project) error {
	seq := sequenceNode()
	for _, p := range projects {
		seq.Content = append(seq.Content, mappingNode(scalarNode(KindProject), p.node))
	}
	s := &Settings{doc: &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{seq}}}
	return s.Encode(w)
}

// Definitions holds the shared templates and jobs a project may refer to
type Definitions struct {
	Templates map[string]*yaml.Node
	Jobs      map[string]*yaml.Node
}

// LoadDefinitions reads the project template and job definition files
func LoadDefinitions(templatesPath, jobsPath string) (*Definitions, error) {
	templates, err := LoadSettings(templatesPath)
	if err != nil {
		return nil, err
	}
	jobs, err := LoadSettings(jobsPath)
	if err != nil {
		return nil, err
	}
	return &Definitions{
		Templates: templates.Named(KindProjectTemplate),
		Jobs:      jobs.Named(KindJob),
	}, nil
}

// ErrNoInTreeSettings is returned when a repository has no in-tree project
// settings
var ErrNoInTreeSettings = errors.New("no in-tree project settings found")

// inTreeCandidates are searched in order for in-tree project settings
var inTreeCandidates = []string{
	".zuul.yaml",
	"zuul.yaml",
	".zuul.d/*.yaml",
	"zuul.d/*.yaml",
}

// FindInTreeSettings returns the first configuration file in repoDir that
// holds a project record
func FindInTreeSettings(repoDir string) (*Settings, error) {
	for _, base := range inTreeCandidates {
		matches, err := filepath.Glob(filepath.Join(repoDir, base))
		if err != nil {
			return nil, err
		}
		for _, candidate := range matches {
			s, err := LoadSettings(candidate)
			if err != nil {
				return nil, err
			}
			if _, ok, err := s.FirstProject(); err != nil {
				return nil, err
			} else if ok {
				return s, nil
			}
		}
	}
	return nil, ErrNoInTreeSettings
}
