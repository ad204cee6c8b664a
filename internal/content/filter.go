package content

// FilterProjects returns the projects sharing at least one category with
// selected, in their original order. An empty selection returns all unchanged.
// No match is an empty, non-nil slice.
func FilterProjects(all []Project, selected []string) []Project {
	if len(selected) == 0 {
		return all
	}

	out := make([]Project, 0, len(all))
	for _, p := range all {
		if p.HasAnyCategory(selected) {
			out = append(out, p)
		}
	}
	return out
}

// CountByCategory returns how many projects carry each category.
func CountByCategory(all []Project) map[string]int {
	counts := make(map[string]int)
	for _, p := range all {
		for _, c := range p.Categories {
			counts[c]++
		}
	}
	return counts
}
