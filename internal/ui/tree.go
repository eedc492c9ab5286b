package ui

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjulian5/goaltools/internal/governance"
)

// RenderTeamTree renders a team with its deliverables and their
// repositories
// Example output:
//
//	Oslo
//	├─ oslo.config
//	│  ╰─ openstack/oslo.config
//	╰─ oslo.log [stable:follows-policy]
//	   ╰─ openstack/oslo.log
func RenderTeamTree(name string, team governance.Team) string {
	root := tree.Root(TreeRootStyle.Render(name))
	if len(team.Deliverables) == 0 {
		return root.String() + "\n" + Dim("  No deliverables")
	}

	for _, dname := range slices.Sorted(maps.Keys(team.Deliverables)) {
		deliverable := team.Deliverables[dname]
		label := TreeBranchStyle.Render(dname)
		if len(deliverable.Tags) > 0 {
			label += " " + Dim("["+strings.Join(deliverable.Tags, ", ")+"]")
		}

		node := tree.Root(label)
		for _, repo := range deliverable.Repos {
			node.Child(repo)
		}
		root.Child(node)
	}

	root.Enumerator(getEnumerator()).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(RenderTreeIndenter())

	return root.String()
}

func getEnumerator() tree.Enumerator {
	if Display.TreeEnumerator == TreeDefault {
		return getDefaultEnumerator()
	}
	return getRoundedEnumerator()
}

// getRoundedEnumerator returns a custom rounded enumerator for trees
func getRoundedEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}

		if i == children.Length()-1 {
			return "╰─ "
		}
		return "├─ "
	}
}

// getDefaultEnumerator returns the default tree enumerator
func getDefaultEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}

		if i == children.Length()-1 {
			return "└─ "
		}
		return "├─ "
	}
}

// RenderTreeIndenter returns an indenter function for trees
func RenderTreeIndenter() tree.Indenter {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}

		if i == children.Length()-1 {
			return "   " // No vertical line after last child
		}
		return "│  "
	}
}
