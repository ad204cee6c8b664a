package view

import (
	"net/url"
	"testing"
)

func TestQuery_RoundTrip(t *testing.T) {
	states := []State{
		Initial(),
		Main(TabProjects),
		Main(TabProjects, "Rocketry", "C/C++"),
		Main(TabThesis),
		Apply(Main(TabProjects, "MATLAB"), OpenProject{ID: 9}),
		Apply(Main(TabResume), OpenExperience{ID: 0}),
		Apply(Initial(), OpenProject{ID: 0}),
	}
	for _, s := range states {
		got := ParseQuery(s.Query())
		if !got.Equal(s) {
			t.Errorf("ParseQuery(%q) = %+v, want %+v", s.Query().Encode(), got, s)
		}
	}
}

func TestQuery_InitialIsEmpty(t *testing.T) {
	if q := Initial().Query(); len(q) != 0 {
		t.Errorf("Initial().Query() = %v, want empty", q)
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  State
	}{
		{"empty", "", Initial()},
		{"bad tab", "tab=blog", Initial()},
		{"bad project id", "tab=projects&project=abc", Main(TabProjects)},
		{"negative id", "project=-1", Initial()},
		{"project wins", "project=3&experience=1", State{Tab: TabAbout, Detail: Detail{Kind: DetailProject, ID: 3}}},
		{"bad project falls back to experience", "project=x&experience=1", State{Tab: TabAbout, Detail: Detail{Kind: DetailExperience, ID: 1}}},
		{"categories sorted and deduplicated", "tab=projects&category=Rocketry&category=MATLAB&category=Rocketry&category=", Main(TabProjects, "MATLAB", "Rocketry")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := ParseQuery(q); !got.Equal(tt.want) {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestQueryLinker(t *testing.T) {
	l := QueryLinker{}

	href, ok := l.Href(Initial())
	if !ok || href != "/" {
		t.Errorf("Href(Initial()) = %q, %v", href, ok)
	}

	href, _ = l.Href(Main(TabProjects, "C/C++"))
	if href != "/?category=C%2FC%2B%2B&tab=projects" {
		t.Errorf("Href = %q", href)
	}

	href, _ = QueryLinker{Base: "/site"}.Href(Apply(Initial(), OpenProject{ID: 9}))
	if href != "/site?project=9" {
		t.Errorf("Href = %q", href)
	}
}
