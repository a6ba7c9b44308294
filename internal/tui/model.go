// Package tui is the terminal catalog browser: a filtered list of packs and
// MCP servers with a markdown detail overlay.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/search"
	"github.com/ziadkadry99/packdocs/internal/site"
)

type entryKind int

const (
	packEntry entryKind = iota
	serverEntry
)

type entry struct {
	kind   entryKind
	pack   catalog.Pack
	server catalog.MCPServer
}

// header and footer lines around the list.
const chromeLines = 5

// Options configures the browser.
type Options struct {
	Installer *site.Installer
	// GlamourStyle is a glamour standard style; "notty" renders plain text.
	GlamourStyle string
	// LoadErr, when set, is shown in place of the list.
	LoadErr error
}

// Model is the bubbletea model of the browser.
type Model struct {
	cat   *catalog.Catalog
	index *catalog.Index
	opts  Options

	input     textinput.Model
	searching bool
	result    search.Result
	entries   []entry

	cursor, offset int
	width, height  int

	detail      *viewport.Model
	detailTitle string
	// list position when the overlay opened
	savedCursor, savedOffset int
}

// New creates a browser over cat showing everything.
func New(cat *catalog.Catalog, opts Options) Model {
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "dark"
	}
	in := textinput.New()
	in.Placeholder = "Search packs, skills, agents, MCP servers..."
	in.Prompt = "/ "
	in.CharLimit = 200

	m := Model{
		cat:    cat,
		index:  catalog.NewIndex(cat),
		opts:   opts,
		input:  in,
		width:  80,
		height: 24,
	}
	m.refilter()
	return m
}

// Run starts the browser on the terminal and blocks until it quits.
func Run(cat *catalog.Catalog, opts Options) error {
	_, err := tea.NewProgram(New(cat, opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) refilter() {
	m.result = search.Catalog(m.input.Value(), m.cat)
	m.entries = make([]entry, 0, len(m.result.Packs)+len(m.result.Servers))
	for _, p := range m.result.Packs {
		m.entries = append(m.entries, entry{kind: packEntry, pack: p})
	}
	for _, s := range m.result.Servers {
		m.entries = append(m.entries, entry{kind: serverEntry, server: s})
	}
	m.cursor, m.offset = 0, 0
}

func (m Model) listRows() int {
	return max(1, m.height-chromeLines)
}

func (m *Model) clamp() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.detail != nil {
			m.detail.Width, m.detail.Height = m.overlaySize()
		}
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case m.detail != nil:
			return m.updateDetail(msg)
		case m.searching:
			return m.updateSearch(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeDetail()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	vp, cmd := m.detail.Update(msg)
	m.detail = &vp
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		return m, m.input.Focus()
	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.refilter()
		}
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "pgup":
		m.cursor -= m.listRows()
	case "pgdown":
		m.cursor += m.listRows()
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.entries) - 1
	case "enter":
		if len(m.entries) > 0 {
			m.openDetail(m.entries[m.cursor])
		}
		return m, nil
	}
	m.clamp()
	return m, nil
}

func (m Model) overlaySize() (w, h int) {
	return max(20, m.width-4), max(3, m.height-4)
}

func (m *Model) openDetail(e entry) {
	var md string
	switch e.kind {
	case packEntry:
		m.detailTitle = e.pack.Title()
		md = PackMarkdown(e.pack, m.opts.Installer)
	case serverEntry:
		m.detailTitle = e.server.Name
		md = ServerMarkdown(e.server, m.index.HasPack(e.server.Pack))
	}

	w, h := m.overlaySize()
	vp := viewport.New(w, h)
	vp.SetContent(m.renderMarkdown(md, w))
	m.savedCursor, m.savedOffset = m.cursor, m.offset
	m.detail = &vp
}

func (m *Model) closeDetail() {
	m.detail = nil
	m.detailTitle = ""
	m.cursor, m.offset = m.savedCursor, m.savedOffset
	m.clamp()
}

func (m Model) renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.opts.GlamourStyle),
		glamour.WithWordWrap(max(20, width-2)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) View() string {
	if m.detail != nil {
		help := helpStyle.Render("↑/↓ scroll • esc back • q quit")
		return overlayStyle.Render(m.detail.View()) + "\n" + help
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Agentic Collections") + "\n")
	b.WriteString(m.input.View() + "\n")
	t := m.result.Tally()
	b.WriteString(tallyStyle.Render(fmt.Sprintf("Packs %d  Skills %d  Agents %d  Docs %d  MCP %d",
		t.Packs, t.Skills, t.Agents, t.DocSources, t.Servers)) + "\n\n")

	switch {
	case m.opts.LoadErr != nil:
		b.WriteString(errorStyle.Render(wordwrap.String("Error: "+catalog.LoadErrorMessage, m.width)) + "\n")
	case len(m.entries) == 0:
		b.WriteString(dimStyle.Render("No packs or MCP servers found matching your search.") + "\n")
	default:
		end := min(len(m.entries), m.offset+m.listRows())
		for i := m.offset; i < end; i++ {
			b.WriteString(m.row(i) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("/ search • ↑/↓ move • enter details • esc clear • q quit"))
	return b.String()
}

func (m Model) row(i int) string {
	e := m.entries[i]
	var kind, line string
	switch e.kind {
	case packEntry:
		kind = "pack"
		line = fmt.Sprintf("%s v%s  %s", e.pack.Title(), e.pack.Version(), e.pack.Description())
	case serverEntry:
		kind = "mcp"
		line = fmt.Sprintf("%s  (%s)  %s", e.server.Name, e.server.Pack, e.server.Command)
	}
	line = truncate.StringWithTail(line, uint(max(10, m.width-10)), "…")
	if i == m.cursor {
		return "> " + kindStyle.Render(kind) + selectedStyle.Render(line)
	}
	return "  " + kindStyle.Render(kind) + line
}
