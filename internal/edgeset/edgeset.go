// Package edgeset holds the pure operations on a channel's identifier lists.
// Add and Remove report whether they changed anything so callers can tell an
// already-applied edge apart from a fresh one.
package edgeset

import "slices"

// Add appends id to list. It returns the list unchanged and false when id is
// already present.
func Add(id string, list []string) ([]string, bool) {
	if Contains(id, list) {
		return list, false
	}
	out := make([]string, len(list), len(list)+1)
	copy(out, list)
	return append(out, id), true
}

// Remove drops every occurrence of id from list. It returns the list unchanged
// and false when id is absent.
func Remove(id string, list []string) ([]string, bool) {
	if !Contains(id, list) {
		return list, false
	}
	out := make([]string, 0, len(list)-1)
	for _, existing := range list {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out, true
}

// Contains reports whether id is in list
func Contains(id string, list []string) bool {
	return slices.Contains(list, id)
}

// Dedupe returns list without repeated IDs, keeping first occurrences, and
// whether anything was dropped
func Dedupe(list []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, id := range list {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, len(out) != len(list)
}
