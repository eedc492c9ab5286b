// Package governance reads the foundation governance documents and answers
// questions about which team owns which repository.
package governance

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bjulian5/goaltools/internal/remote"
)

// Default locations of the governance reference documents
const (
	ProjectsURL = "http://git.openstack.org/cgit/openstack/governance/plain/reference/projects.yaml"
	TCReposURL  = "http://git.openstack.org/cgit/openstack/governance/plain/reference/technical-committee-repos.yaml"
	SIGsURL     = "http://git.openstack.org/cgit/openstack/governance/plain/reference/sigs-repos.yaml"
)

// Names of the teams synthesized on top of the projects document
const (
	TechnicalCommittee = "Technical Committee"
	SIGs               = "SIGs"
	InteropWG          = "InteropWG"
	UserCommittee      = "User Committee"
)

// URLs holds the locations of the three governance documents
type URLs struct {
	Projects string
	TCRepos  string
	SIGs     string
}

// DefaultURLs returns the upstream document locations
func DefaultURLs() URLs {
	return URLs{Projects: ProjectsURL, TCRepos: TCReposURL, SIGs: SIGsURL}
}

// Deliverable is a unit of ownership within a team
type Deliverable struct {
	Repos []string `yaml:"repos"`
	Tags  []string `yaml:"tags,omitempty"`
}

// Team is one entry of the projects document
type Team struct {
	Deliverables map[string]Deliverable `yaml:"deliverables"`
	Tags         []string               `yaml:"tags,omitempty"`
}

// RepoRef is an item in the technical committee and SIG repository lists
type RepoRef struct {
	Repo string `yaml:"repo"`
}

// RepoInfo records where a repository sits in the governance structure
type RepoInfo struct {
	Team            string
	TeamInfo        Team
	Deliverable     string
	DeliverableInfo Deliverable
}

// TeamNotFoundError is returned when a team name cannot be resolved
type TeamNotFoundError struct {
	Name string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("no data for team %q", e.Name)
}

// Index is the merged governance data plus a repository reverse index.
// Owner and tag lookups are memoized per Index.
type Index struct {
	teams  map[string]Team
	byRepo map[string]RepoInfo

	mu     sync.RWMutex
	owners map[string]string
	tags   map[string][]string
}

// Load fetches the three governance documents and builds an Index
func Load(ctx context.Context, getter remote.Getter, urls URLs) (*Index, error) {
	fetch := func(u string) ([]byte, error) {
		body, err := getter.Get(ctx, u, nil, "")
		if err != nil {
			return nil, fmt.Errorf("failed to fetch governance data: %w", err)
		}
		return body, nil
	}

	projects, err := fetch(urls.Projects)
	if err != nil {
		return nil, err
	}
	tc, err := fetch(urls.TCRepos)
	if err != nil {
		return nil, err
	}
	sigs, err := fetch(urls.SIGs)
	if err != nil {
		return nil, err
	}
	return Parse(projects, tc, sigs)
}

// Parse builds an Index from the raw YAML documents
func Parse(projectsYAML, tcYAML, sigsYAML []byte) (*Index, error) {
	var teams map[string]Team
	if err := yaml.Unmarshal(projectsYAML, &teams); err != nil {
		return nil, fmt.Errorf("failed to parse projects data: %w", err)
	}
	var tc map[string][]RepoRef
	if err := yaml.Unmarshal(tcYAML, &tc); err != nil {
		return nil, fmt.Errorf("failed to parse technical committee repos: %w", err)
	}
	var sigs map[string][]RepoRef
	if err := yaml.Unmarshal(sigsYAML, &sigs); err != nil {
		return nil, fmt.Errorf("failed to parse SIG repos: %w", err)
	}
	return NewIndex(teams, tc[TechnicalCommittee], sigs), nil
}

// NewIndex merges the pseudo-teams into teams and builds the reverse index.
// The teams map is copied, not modified.
func NewIndex(teams map[string]Team, tcRepos []RepoRef, sigs map[string][]RepoRef) *Index {
	merged := make(map[string]Team, len(teams)+4)
	for name, team := range teams {
		merged[name] = team
	}
	for name, team := range pseudoTeams(tcRepos, sigs) {
		merged[name] = team
	}

	idx := &Index{
		teams:  merged,
		byRepo: make(map[string]RepoInfo),
		owners: make(map[string]string),
		tags:   make(map[string][]string),
	}

	// Teams are visited in name order so a repository listed by more than
	// one team always resolves to the same owner: the last team by name.
	for _, name := range sortedKeys(merged) {
		team := merged[name]
		for _, dname := range sortedKeys(team.Deliverables) {
			deliv := team.Deliverables[dname]
			for _, repo := range deliv.Repos {
				idx.byRepo[repo] = RepoInfo{
					Team:            name,
					TeamInfo:        team,
					Deliverable:     dname,
					DeliverableInfo: deliv,
				}
			}
		}
	}
	return idx
}

// lookupTeam resolves a team by exact name, then by lower-cased name
func (idx *Index) lookupTeam(name string) (Team, error) {
	if team, ok := idx.teams[name]; ok {
		return team, nil
	}
	if team, ok := idx.teams[strings.ToLower(name)]; ok {
		return team, nil
	}
	return Team{}, &TeamNotFoundError{Name: name}
}

// Team returns the governance data of a team, resolved like ReposForTeam
func (idx *Index) Team(name string) (Team, error) {
	return idx.lookupTeam(name)
}

// ReposForTeam returns the repositories of every deliverable of a team
func (idx *Index) ReposForTeam(name string) (iter.Seq[string], error) {
	team, err := idx.lookupTeam(name)
	if err != nil {
		return nil, err
	}
	return teamRepos(team), nil
}

// Repos returns every repository of every team
func (idx *Index) Repos() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range sortedKeys(idx.teams) {
			for repo := range teamRepos(idx.teams[name]) {
				if !yield(repo) {
					return
				}
			}
		}
	}
}

// Teams returns the sorted team names, skipping internal names that start
// with an underscore
func (idx *Index) Teams() []string {
	var names []string
	for _, name := range sortedKeys(idx.teams) {
		if strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	return names
}

// RepoInfo returns the governance location of a repository
func (idx *Index) RepoInfo(repo string) (RepoInfo, bool) {
	info, ok := idx.byRepo[repo]
	return info, ok
}

// RepoOwner returns the name of the team owning repo, or "" if unknown
func (idx *Index) RepoOwner(repo string) string {
	idx.mu.RLock()
	owner, ok := idx.owners[repo]
	idx.mu.RUnlock()
	if ok {
		return owner
	}

	owner = idx.byRepo[repo].Team

	idx.mu.Lock()
	idx.owners[repo] = owner
	idx.mu.Unlock()
	return owner
}

// RepoTags returns the sorted union of the deliverable and team tags of
// repo. Unknown repositories have no tags.
func (idx *Index) RepoTags(repo string) []string {
	idx.mu.RLock()
	tags, ok := idx.tags[repo]
	idx.mu.RUnlock()
	if ok {
		return tags
	}

	tags = []string{}
	if info, found := idx.byRepo[repo]; found {
		set := make(map[string]bool)
		for _, tag := range info.DeliverableInfo.Tags {
			set[tag] = true
		}
		for _, tag := range info.TeamInfo.Tags {
			set[tag] = true
		}
		tags = sortedKeys(set)
	}

	idx.mu.Lock()
	idx.tags[repo] = tags
	idx.mu.Unlock()
	return tags
}

func teamRepos(team Team) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, dname := range sortedKeys(team.Deliverables) {
			for _, repo := range team.Deliverables[dname].Repos {
				if !yield(repo) {
					return
				}
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
