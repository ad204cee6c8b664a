// Package tui is a terminal browser for the portfolio built on bubbletea.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/render"
	"github.com/anoonan/folio/internal/view"
)

// entry is one selectable row on the Projects/Experience tab.
type entry struct {
	kind  view.DetailKind
	id    int
	title string
	meta  string
}

type Model struct {
	cat        *content.Catalog
	state      view.State
	cursor     int // selected entry on the Projects/Experience tab
	catCursor  int // highlighted category chip
	linkCursor int // highlighted project link on an experience
	offset     int // scroll offset for text screens
	width      int
	height     int
	quitting   bool
}

func NewModel(cat *content.Catalog) Model {
	return Model{
		cat:    cat,
		state:  view.Initial(),
		width:  100,
		height: 30,
	}
}

// Run starts the terminal UI on the alternate screen.
func Run(cat *content.Catalog) error {
	_, err := tea.NewProgram(NewModel(cat), tea.WithAltScreen()).Run()
	return err
}

// State returns the current navigation state.
func (m Model) State() view.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := view.Route(m.state)
	onList := screen.Kind == view.ScreenMain && screen.Tab == view.TabProjects

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "1", "2", "3", "4":
		m.apply(view.SetTab{Tab: view.Tabs[int(key[0]-'1')]})

	case "tab":
		if screen.Kind == view.ScreenMain {
			m.apply(view.SetTab{Tab: nextTab(screen.Tab)})
		}

	case "up", "k":
		if onList {
			if m.cursor > 0 {
				m.cursor--
			}
		} else if m.offset > 0 {
			m.offset--
		}

	case "down", "j":
		if onList {
			if m.cursor < len(m.entries())-1 {
				m.cursor++
			}
		} else if m.offset < m.maxOffset() {
			m.offset++
		}

	case "enter":
		switch screen.Kind {
		case view.ScreenMain:
			entries := m.entries()
			if onList && len(entries) > 0 {
				e := entries[m.cursor]
				if e.kind == view.DetailProject {
					m.apply(view.OpenProject{ID: e.id})
				} else {
					m.apply(view.OpenExperience{ID: e.id})
				}
			}
		case view.ScreenExperience:
			exp, _ := m.cat.Experience(screen.ID)
			if m.linkCursor < len(exp.ProjectLinks) {
				m.apply(view.OpenProject{ID: exp.ProjectLinks[m.linkCursor].ID})
			}
		}

	case "esc", "b":
		switch screen.Kind {
		case view.ScreenProject:
			m.apply(view.CloseProject{})
		case view.ScreenExperience:
			m.apply(view.CloseExperience{})
		}

	case "[", "]":
		delta := 1
		if key == "[" {
			delta = -1
		}
		switch {
		case onList:
			m.catCursor = cycle(m.catCursor+delta, len(m.cat.Categories()))
		case screen.Kind == view.ScreenExperience:
			exp, _ := m.cat.Experience(screen.ID)
			m.linkCursor = cycle(m.linkCursor+delta, len(exp.ProjectLinks))
		}

	case " ", "space":
		if onList {
			cats := m.cat.Categories()
			if m.catCursor < len(cats) {
				m.apply(view.ToggleCategory{Category: cats[m.catCursor]})
			}
		}
	}

	return m, nil
}

// apply moves to the next state and resets per-screen cursors when the
// screen changes.
func (m *Model) apply(e view.Event) {
	next := view.Apply(m.state, e)
	if next.Equal(m.state) {
		return
	}
	before := view.Route(m.state)
	m.state = next
	if view.Route(next) != before {
		m.offset = 0
		m.linkCursor = 0
	}
	if n := len(m.entries()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// entries lists the filtered projects followed by the experiences.
func (m Model) entries() []entry {
	var out []entry
	for _, p := range content.FilterProjects(m.cat.Projects(), m.state.Categories) {
		meta := strings.Join(p.Categories, ", ")
		if p.Ongoing {
			meta = "ongoing · " + meta
		}
		out = append(out, entry{kind: view.DetailProject, id: p.ID, title: p.Title, meta: meta})
	}
	for _, e := range m.cat.Experiences() {
		out = append(out, entry{kind: view.DetailExperience, id: e.ID, title: e.Title, meta: e.Company + " · " + e.Period})
	}
	return out
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	screen := view.Route(m.state)
	switch screen.Kind {
	case view.ScreenProject:
		return m.viewText(m.projectLines(screen.ID), "j/k: scroll  esc: back  q: quit")
	case view.ScreenExperience:
		return m.viewText(m.experienceLines(screen.ID), "j/k: scroll  [/]: pick project  enter: open  esc: back  q: quit")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderTabs(screen.Tab) + "\n\n")

	switch screen.Tab {
	case view.TabProjects:
		b.WriteString(m.renderChips() + "\n\n")
		b.WriteString(m.renderEntries())
		b.WriteString("\n" + helpStyle.Render("  1-4/tab: tabs  j/k: move  enter: open  [/]: category  space: toggle  q: quit"))
		return b.String()
	case view.TabResume, view.TabThesis:
		b.WriteString(strings.Join(m.documentLines(string(screen.Tab)), "\n"))
	default:
		lines := m.blockLines(m.cat.About())
		b.WriteString(strings.Join(m.window(lines, m.height-6), "\n"))
	}
	b.WriteString("\n\n" + helpStyle.Render("  1-4/tab: tabs  j/k: scroll  q: quit"))
	return b.String()
}

func (m Model) renderHeader() string {
	p := m.cat.Profile()
	return titleStyle.Render(p.Name) + subtitleStyle.Render(p.Subtitle) + "\n"
}

func (m Model) renderTabs(active view.Tab) string {
	parts := make([]string, len(view.Tabs))
	for i, t := range view.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label())
		if t == active {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderChips() string {
	counts := content.CountByCategory(m.cat.Projects())
	cats := m.cat.Categories()
	parts := make([]string, len(cats))
	for i, c := range cats {
		label := fmt.Sprintf("%s (%d)", c, counts[c])
		style := chipStyle
		if m.state.Selected(c) {
			style = selectedChipStyle
		}
		if i == m.catCursor {
			style = style.Inherit(chipCursorStyle)
		}
		parts[i] = style.Render(label)
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderEntries() string {
	var b strings.Builder
	entries := m.entries()
	projects := 0
	for _, e := range entries {
		if e.kind == view.DetailProject {
			projects++
		}
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("Projects (%d)", projects)) + "\n")
	if projects == 0 {
		b.WriteString(dimStyle.Render("  No projects match the selected categories.") + "\n")
	}
	for i, e := range entries {
		if i == projects {
			b.WriteString("\n" + headerStyle.Render("Experience") + "\n")
		}
		row := fmt.Sprintf("  %s  %s", e.title, dimStyle.Render(e.meta))
		if i == m.cursor {
			row = selectedStyle.Render(fmt.Sprintf("> %s  %s", e.title, e.meta))
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}

func (m Model) viewText(lines []string, help string) string {
	var b strings.Builder
	b.WriteString(strings.Join(m.window(lines, m.height-2), "\n"))
	b.WriteString("\n\n" + helpStyle.Render("  "+help))
	return b.String()
}

func (m Model) projectLines(id int) []string {
	p, ok := m.cat.Project(id)
	if !ok {
		return []string{fmt.Sprintf("project not found: %d", id)}
	}
	title := p.Title
	if p.Ongoing {
		title += " " + ongoingTag.Render("[ongoing]")
	}
	lines := []string{detailTitleStyle.Render(title), dimStyle.Render(strings.Join(p.Categories, ", "))}
	if p.GitHub != "" {
		lines = append(lines, dimStyle.Render(p.GitHub))
	}
	lines = append(lines, "")
	return append(lines, m.blockLines(p.Content)...)
}

func (m Model) experienceLines(id int) []string {
	e, ok := m.cat.Experience(id)
	if !ok {
		return []string{fmt.Sprintf("experience not found: %d", id)}
	}
	lines := []string{
		detailTitleStyle.Render(e.Title),
		dimStyle.Render(e.Company + " · " + e.Period),
		"",
	}
	lines = append(lines, m.wrap(e.Description)...)
	if len(e.Achievements) > 0 {
		lines = append(lines, "", headerStyle.Render("Key Achievements"))
		for _, a := range e.Achievements {
			lines = append(lines, m.wrap("• "+a)...)
		}
	}
	if len(e.ProjectLinks) > 0 {
		lines = append(lines, "")
		for i, l := range e.ProjectLinks {
			if i == m.linkCursor {
				lines = append(lines, selectedStyle.Render("> "+l.Label))
			} else {
				lines = append(lines, "  "+l.Label)
			}
		}
	}
	return lines
}

func (m Model) documentLines(key string) []string {
	d, ok := m.cat.Document(key)
	if !ok {
		return []string{dimStyle.Render("This document is not available.")}
	}
	lines := []string{headerStyle.Render(d.Title)}
	if d.Note != "" {
		lines = append(lines, dimStyle.Render(d.Note))
	}
	return append(lines, "", "File: "+d.Path, dimStyle.Render("Open the web site or an export to view the PDF."))
}

// blockLines renders blocks as wrapped plain text, one blank line between blocks.
func (m Model) blockLines(blocks content.Blocks) []string {
	var lines []string
	for _, blk := range blocks {
		text := render.PlainText(blk)
		if len(text) == 0 {
			continue
		}
		for _, t := range text {
			lines = append(lines, m.wrap(t)...)
		}
		lines = append(lines, "")
	}
	return lines
}

func (m Model) wrap(s string) []string {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return strings.Split(lipgloss.NewStyle().Width(w).Render(s), "\n")
}

// window returns the visible slice of lines at the current scroll offset.
func (m Model) window(lines []string, rows int) []string {
	if rows < 1 {
		rows = 1
	}
	start := min(m.offset, max(0, len(lines)-1))
	end := min(start+rows, len(lines))
	return lines[start:end]
}

// maxOffset bounds scrolling on text screens.
func (m Model) maxOffset() int {
	var lines []string
	screen := view.Route(m.state)
	switch screen.Kind {
	case view.ScreenProject:
		lines = m.projectLines(screen.ID)
	case view.ScreenExperience:
		lines = m.experienceLines(screen.ID)
	default:
		if screen.Tab == view.TabAbout {
			lines = m.blockLines(m.cat.About())
		}
	}
	return max(0, len(lines)-1)
}

func nextTab(t view.Tab) view.Tab {
	for i, tab := range view.Tabs {
		if tab == t {
			return view.Tabs[(i+1)%len(view.Tabs)]
		}
	}
	return view.TabAbout
}

func cycle(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}
