package governance

import "strings"

// pseudoTeams returns the groups that own repositories but are not project
// teams: the technical committee, the SIGs (treated as one team), and the
// board and user committee working groups, which are not published in a
// reference document.
func pseudoTeams(tcRepos []RepoRef, sigs map[string][]RepoRef) map[string]Team {
	tc := Team{Deliverables: make(map[string]Deliverable)}
	for _, ref := range tcRepos {
		_, name, _ := strings.Cut(ref.Repo, "/")
		tc.Deliverables[name] = Deliverable{Repos: []string{ref.Repo}}
	}

	sigTeam := Team{Deliverables: make(map[string]Deliverable)}
	for name, refs := range sigs {
		repos := make([]string, 0, len(refs))
		for _, ref := range refs {
			repos = append(repos, ref.Repo)
		}
		sigTeam.Deliverables[name] = Deliverable{Repos: repos}
	}

	return map[string]Team{
		TechnicalCommittee: tc,
		SIGs:               sigTeam,
		InteropWG: {
			Deliverables: map[string]Deliverable{
				"interop": {Repos: []string{
					"openstack/interop",
					"openstack/refstack-client",
					"openstack/refstack",
					"openstack/python-tempestconf",
				}},
			},
		},
		UserCommittee: {
			Deliverables: map[string]Deliverable{
				"Enterprise Working Group": {Repos: []string{
					"openstack/enterprise-wg",
					"openstack/workload-ref-archs",
				}},
				"Ops Tags Team": {Repos: []string{
					"openstack/ops-tags-team",
				}},
				"Product Working Group": {Repos: []string{
					"openstack/development-proposals",
				}},
				"Public Cloud Working Group": {Repos: []string{
					"openstack/publiccloud-wg",
				}},
				"Scientific Working Group": {Repos: []string{
					"openstack/scientific-wg",
				}},
				"User Committee": {Repos: []string{
					"openstack/governance-uc",
					"openstack/uc-recognition",
				}},
			},
		},
	}
}
