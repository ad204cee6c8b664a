// Package view holds the navigation state of the portfolio and the pure
// transitions between states. Transports render whatever Route returns and
// turn user actions into Events.
package view

import (
	"slices"
)

// Tab is one of the top-level sections of the main page.
type Tab string

const (
	TabAbout    Tab = "about"
	TabProjects Tab = "projects"
	TabResume   Tab = "resume"
	TabThesis   Tab = "thesis"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAbout, TabProjects, TabResume, TabThesis}

var tabLabels = map[Tab]string{
	TabAbout:    "About",
	TabProjects: "Projects/Experience",
	TabResume:   "Resume",
	TabThesis:   "Thesis",
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	_, ok := tabLabels[t]
	return ok
}

// Label is the tab's display name.
func (t Tab) Label() string {
	return tabLabels[t]
}

// DetailKind says which detail view, if any, is open.
type DetailKind string

const (
	DetailNone       DetailKind = ""
	DetailProject    DetailKind = "project"
	DetailExperience DetailKind = "experience"
)

// Detail identifies the open detail view. The zero value means none.
type Detail struct {
	Kind DetailKind
	ID   int
}

// State is the complete navigation state. Because there is a single Detail,
// at most one detail view can be open. Categories is sorted and free of
// duplicates; use the constructors and Apply to keep it that way.
type State struct {
	Tab        Tab
	Detail     Detail
	Categories []string
}

// Initial is the state on first load: the About tab with no filter.
func Initial() State {
	return State{Tab: TabAbout}
}

// Main returns the main page on tab with the given category filter.
func Main(tab Tab, categories ...string) State {
	return State{Tab: tab, Categories: normalizeCategories(categories)}
}

// InMain reports whether no detail view is open.
func (s State) InMain() bool {
	return s.Detail.Kind == DetailNone
}

// Selected reports whether cat is part of the active filter.
func (s State) Selected(cat string) bool {
	_, found := slices.BinarySearch(s.Categories, cat)
	return found
}

// Equal reports whether two states are identical.
func (s State) Equal(o State) bool {
	return s.Tab == o.Tab && s.Detail == o.Detail && slices.Equal(s.Categories, o.Categories)
}

// RetainCategories drops every selected category for which keep returns false.
func (s State) RetainCategories(keep func(string) bool) State {
	out := s.clone()
	out.Categories = slices.DeleteFunc(out.Categories, func(c string) bool { return !keep(c) })
	if len(out.Categories) == 0 {
		out.Categories = nil
	}
	return out
}

func (s State) clone() State {
	s.Categories = slices.Clone(s.Categories)
	return s
}

func normalizeCategories(cats []string) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}
