package view

import "slices"

// Event is a user action. The set of events is closed to this package.
type Event interface {
	isEvent()
}

// OpenProject opens the detail view of a project.
type OpenProject struct{ ID int }

// CloseProject leaves a project detail view for the Projects tab.
type CloseProject struct{}

// OpenExperience opens the detail view of an experience.
type OpenExperience struct{ ID int }

// CloseExperience leaves an experience detail view for the tab underneath.
type CloseExperience struct{}

// ToggleCategory adds or removes a category from the project filter.
type ToggleCategory struct{ Category string }

// SetTab switches the main page to another tab.
type SetTab struct{ Tab Tab }

func (OpenProject) isEvent() {}
func (CloseProject) isEvent() {}
func (OpenExperience) isEvent() {}
func (CloseExperience) isEvent() {}
func (ToggleCategory) isEvent() {}
func (SetTab) isEvent() {}

// Apply returns the state that follows s after e. It never modifies s.
// Events that are not valid in s leave the state unchanged.
func Apply(s State, e Event) State {
	next := s.clone()

	switch e := e.(type) {
	case OpenProject:
		if s.Detail.Kind == DetailProject {
			return next
		}
		// Opened from an experience's links, the project replaces the experience.
		next.Detail = Detail{Kind: DetailProject, ID: e.ID}

	case CloseProject:
		if s.Detail.Kind != DetailProject {
			return next
		}
		next.Detail = Detail{}
		next.Tab = TabProjects

	case OpenExperience:
		next.Detail = Detail{Kind: DetailExperience, ID: e.ID}

	case CloseExperience:
		if s.Detail.Kind != DetailExperience {
			return next
		}
		next.Detail = Detail{}

	case ToggleCategory:
		if e.Category == "" || !s.InMain() || s.Tab != TabProjects {
			return next
		}
		if i, found := slices.BinarySearch(next.Categories, e.Category); found {
			next.Categories = slices.Delete(next.Categories, i, i+1)
		} else {
			next.Categories = slices.Insert(next.Categories, i, e.Category)
		}
		if len(next.Categories) == 0 {
			next.Categories = nil
		}

	case SetTab:
		if !s.InMain() || !e.Tab.Valid() {
			return next
		}
		next.Tab = e.Tab
	}

	return next
}
