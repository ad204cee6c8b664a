package view

// ScreenKind is the kind of view a transport should show.
type ScreenKind int

const (
	ScreenMain ScreenKind = iota
	ScreenProject
	ScreenExperience
)

func (k ScreenKind) String() string {
	switch k {
	case ScreenProject:
		return "project"
	case ScreenExperience:
		return "experience"
	default:
		return "main"
	}
}

// Screen is what Route derives from a State. ID is set for detail screens;
// Tab is the main page tab, or the tab underneath a detail view.
type Screen struct {
	Kind ScreenKind
	Tab  Tab
	ID   int
}

// Route decides which view is visible. An open detail takes precedence over
// the main page; an invalid tab shows About.
func Route(s State) Screen {
	tab := s.Tab
	if !tab.Valid() {
		tab = TabAbout
	}

	switch s.Detail.Kind {
	case DetailProject:
		return Screen{Kind: ScreenProject, Tab: tab, ID: s.Detail.ID}
	case DetailExperience:
		return Screen{Kind: ScreenExperience, Tab: tab, ID: s.Detail.ID}
	default:
		return Screen{Kind: ScreenMain, Tab: tab}
	}
}
