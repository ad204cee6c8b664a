package export

import (
	"fmt"

	"github.com/anoonan/folio/internal/view"
)

// FileLinker maps navigation states to the files an export writes.
// Prefix is prepended to every href so pages in subdirectories can link
// back to the root ("../").
type FileLinker struct {
	Prefix string
}

// Href implements view.Linker. Filtered main views are not exported and
// report no address.
func (l FileLinker) Href(s view.State) (string, bool) {
	path, ok := pagePath(s)
	if !ok {
		return "", false
	}
	return l.Prefix + path, true
}

// pagePath returns the slash-separated output path for s.
func pagePath(s view.State) (string, bool) {
	switch s.Detail.Kind {
	case view.DetailProject:
		return fmt.Sprintf("projects/%d.html", s.Detail.ID), true
	case view.DetailExperience:
		return fmt.Sprintf("experiences/%d.html", s.Detail.ID), true
	}

	if len(s.Categories) > 0 {
		return "", false
	}
	switch s.Tab {
	case view.TabProjects, view.TabResume, view.TabThesis:
		return string(s.Tab) + ".html", true
	default:
		return "index.html", true
	}
}
