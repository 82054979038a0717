package planner

import "strings"

// Labels for merged module/group selections. When several selections
// are combined into one exam, the session carries a single concatenated
// label. This is a display convention only and stays out of the
// allocation and detection logic.

// CombineCodes joins module codes into one combined code label.
func CombineCodes(codes []string) string {
	return strings.Join(compact(codes), "+")
}

// CombineNames joins module display names into one combined name label.
func CombineNames(names []string) string {
	return strings.Join(compact(names), " / ")
}

// CombineGroups joins group names into one combined group label. The
// wildcard selection is rendered as "toutes sections".
func CombineGroups(groups []string) string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if g == "" || g == "*" {
			g = "toutes sections"
		}
		out = append(out, g)
	}
	return strings.Join(dedupe(out), "+")
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
