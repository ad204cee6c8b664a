package view

import (
	"net/url"
	"strconv"
)

// Query parameter names.
const (
	ParamTab        = "tab"
	ParamProject    = "project"
	ParamExperience = "experience"
	ParamCategory   = "category"
)

// Query encodes s as URL query values. Default parts (About tab, no detail,
// no filter) are omitted, so Initial encodes to an empty query.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Tab != TabAbout && s.Tab.Valid() {
		q.Set(ParamTab, string(s.Tab))
	}
	switch s.Detail.Kind {
	case DetailProject:
		q.Set(ParamProject, strconv.Itoa(s.Detail.ID))
	case DetailExperience:
		q.Set(ParamExperience, strconv.Itoa(s.Detail.ID))
	}
	for _, c := range s.Categories {
		q.Add(ParamCategory, c)
	}
	return q
}

// ParseQuery decodes a State from query values. It never fails: malformed
// parts are ignored and fall back to the initial state. When both a project
// and an experience are given, the project wins.
func ParseQuery(q url.Values) State {
	s := Initial()

	if tab := Tab(q.Get(ParamTab)); tab.Valid() {
		s.Tab = tab
	}

	if id, ok := parseID(q.Get(ParamProject)); ok {
		s.Detail = Detail{Kind: DetailProject, ID: id}
	} else if id, ok := parseID(q.Get(ParamExperience)); ok {
		s.Detail = Detail{Kind: DetailExperience, ID: id}
	}

	s.Categories = normalizeCategories(q[ParamCategory])
	return s
}

func parseID(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	id, err := strconv.Atoi(v)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// Linker turns a state into a link target. It returns false when the state
// has no address, in which case the transport renders the action without a link.
type Linker interface {
	Href(s State) (string, bool)
}

// QueryLinker addresses every state as Base plus its query string.
type QueryLinker struct {
	Base string
}

// Href implements Linker.
func (l QueryLinker) Href(s State) (string, bool) {
	base := l.Base
	if base == "" {
		base = "/"
	}
	q := s.Query()
	if len(q) == 0 {
		return base, true
	}
	return base + "?" + q.Encode(), true
}
