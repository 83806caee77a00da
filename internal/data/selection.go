package data

import "sort"

// SelectionMap records explicit user selections: primary ID to the
// named groups it belongs to. Only true entries are meaningful;
// false or absent means "not in group".
type SelectionMap map[string]map[string]bool

// Add marks a protein as belonging to a named group.
func (m SelectionMap) Add(primaryID, group string) {
	groups, ok := m[primaryID]
	if !ok {
		groups = map[string]bool{}
		m[primaryID] = groups
	}
	groups[group] = true
}

// Remove clears a protein's membership in a group. Empty group sets
// are dropped so that absence and false stay equivalent.
func (m SelectionMap) Remove(primaryID, group string) {
	groups, ok := m[primaryID]
	if !ok {
		return
	}
	delete(groups, group)
	if len(groups) == 0 {
		delete(m, primaryID)
	}
}

// GroupsFor returns the groups a protein belongs to, sorted by name.
// Sorted order makes classification output deterministic across runs.
func (m SelectionMap) GroupsFor(primaryID string) []string {
	groups := m[primaryID]
	if len(groups) == 0 {
		return nil
	}
	out := make([]string, 0, len(groups))
	for g, in := range groups {
		if in {
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// AllGroups returns every group name referenced by any selection,
// sorted by name.
func (m SelectionMap) AllGroups() []string {
	seen := map[string]bool{}
	for _, groups := range m {
		for g, in := range groups {
			if in {
				seen[g] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
