package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"fileseek/internal/config"
	"fileseek/internal/domain"
	"fileseek/internal/eventbus"
	"fileseek/internal/platform"
	"fileseek/internal/search"
)

// focusArea identifies which part of the UI receives key input
type focusArea int

const (
	focusQuery focusArea = iota
	focusExtensions
	focusResults
)

// presetOrder is the cycle order for the extension filter presets.
// "All" clears the filter; the rest come from the configuration.
var presetOrder = []string{"All", "Images", "Documents", "Code"}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	styles *Styles
	pager  *PagerOps

	queryInput textinput.Model
	extInput   textinput.Model
	focus      focusArea

	caseSensitive bool
	everywhere    bool
	preset        int

	searching  bool
	results    []string
	cursor     int
	offset     int
	matchCount int
	statusLine string
	statusErr  bool

	width  int
	height int
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	queryInput := textinput.New()
	queryInput.Placeholder = "file name substring"
	queryInput.Prompt = ""
	queryInput.Focus()

	extInput := textinput.New()
	extInput.Placeholder = "py,txt (blank = all)"
	extInput.Prompt = ""

	return &Model{
		bus:           bus,
		config:        cfg,
		styles:        NewStyles(),
		pager:         NewPagerOps(),
		queryInput:    queryInput,
		extInput:      extInput,
		focus:         focusQuery,
		caseSensitive: cfg.CaseSensitive,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case pagerClosedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("pager: %v", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.searching {
			m.bus.Publish(eventbus.SearchCancelRequestedEvent{})
		}
		return m, tea.Quit

	case "tab":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil

	case "esc":
		if m.searching {
			m.bus.Publish(eventbus.SearchCancelRequestedEvent{})
			m.setStatus("Cancelling...")
		}
		return m, nil

	case "ctrl+s":
		m.caseSensitive = !m.caseSensitive
		return m, nil

	case "ctrl+e":
		m.everywhere = !m.everywhere
		return m, nil

	case "ctrl+p":
		m.cyclePreset()
		return m, nil

	case "enter":
		if m.focus == focusResults {
			return m, m.openSelected()
		}
		m.startSearch()
		return m, nil
	}

	if m.focus == focusResults {
		m.handleResultsKey(msg.String())
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusQuery:
		m.queryInput, cmd = m.queryInput.Update(msg)
	case focusExtensions:
		m.extInput, cmd = m.extInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleFocus(dir int) {
	m.focus = focusArea((int(m.focus) + dir + 3) % 3)
	m.queryInput.Blur()
	m.extInput.Blur()
	switch m.focus {
	case focusQuery:
		m.queryInput.Focus()
	case focusExtensions:
		m.extInput.Focus()
	}
}

// cyclePreset advances through the extension presets and fills the
// filter input accordingly
func (m *Model) cyclePreset() {
	m.preset = (m.preset + 1) % len(presetOrder)
	name := presetOrder[m.preset]
	if name == "All" {
		m.extInput.SetValue("")
		return
	}
	if exts, ok := m.config.Presets[name]; ok {
		m.extInput.SetValue(strings.Join(exts, ","))
	}
}

func (m *Model) handleResultsKey(key string) {
	switch key {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.resultsHeight())
	case "pgdown":
		m.moveCursor(m.resultsHeight())
	case "home", "g":
		m.cursor = 0
		m.clampScroll()
	case "end", "G":
		m.cursor = len(m.results) - 1
		m.clampScroll()
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	h := m.resultsHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) resultsHeight() int {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

// startSearch validates the inputs and publishes a search request. The
// search core picks it up from the bus and reports back via events.
func (m *Model) startSearch() {
	if m.searching {
		m.setStatus("Search already running (esc to cancel)")
		return
	}

	query := strings.TrimSpace(m.queryInput.Value())
	if query == "" {
		m.setError("Enter a file name to search for")
		return
	}

	exts, err := search.ParseExtensions(m.extInput.Value())
	if err != nil {
		m.setError(err.Error())
		return
	}

	roots := m.config.DefaultRoots
	if m.everywhere {
		roots = platform.SystemRoots()
	}

	m.bus.Publish(eventbus.SearchRequestedEvent{Request: domain.SearchRequest{
		Roots:         roots,
		Query:         query,
		CaseSensitive: m.caseSensitive,
		Extensions:    exts,
	}})
}

func (m *Model) openSelected() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}
	path := m.results[m.cursor]
	return func() tea.Msg {
		err := m.pager.ShowFileInPager(path)
		return pagerClosedMsg{err: err}
	}
}

// handleEvent applies a forwarded domain event to the model
func (m *Model) handleEvent(e interface{}) {
	switch event := e.(type) {
	case eventbus.SearchStartedEvent:
		m.searching = true
		m.results = nil
		m.cursor = 0
		m.offset = 0
		m.matchCount = 0
		m.setStatus("Searching...")

	case eventbus.FileMatchedEvent:
		m.results = append(m.results, event.Path)
		m.matchCount++
		if m.searching {
			m.setStatus(fmt.Sprintf("Found: %d", m.matchCount))
		}

	case eventbus.SearchCompletedEvent:
		m.searching = false
		if event.Cancelled {
			m.setStatus(fmt.Sprintf("Search cancelled: %d result(s) in %.1fs",
				event.Matches, event.Elapsed.Seconds()))
		} else {
			m.setStatus(fmt.Sprintf("Search finished: %d result(s) in %.1fs",
				event.Matches, event.Elapsed.Seconds()))
		}

	case eventbus.SearchFailedEvent:
		m.searching = false
		m.setError(fmt.Sprintf("Search failed: %v", event.Err))

	case eventbus.ErrorEvent:
		m.setError(event.Message)

	default:
		log.Debug("unhandled event in UI", "event", fmt.Sprintf("%T", e))
	}
}

func (m *Model) setStatus(s string) {
	m.statusLine = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.statusLine = s
	m.statusErr = true
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("fileseek"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Name: "))
	b.WriteString(m.queryInput.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Ext:  "))
	b.WriteString(m.extInput.View())
	b.WriteString("\n")

	b.WriteString(m.renderToggles())
	b.WriteString("\n")

	b.WriteString(m.renderResults())
	b.WriteString("\n")

	if m.statusErr {
		b.WriteString(m.styles.StatusError.Render(m.statusLine))
	} else if m.searching {
		b.WriteString(m.styles.Searching.Render(m.statusLine))
	} else {
		b.WriteString(m.styles.Status.Render(m.statusLine))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter search · esc cancel · tab focus · ctrl+s case · ctrl+e everywhere · ctrl+p preset · ctrl+c quit"))

	return b.String()
}

func (m *Model) renderToggles() string {
	toggle := func(on bool, label string) string {
		if on {
			return m.styles.ToggleOn.Render("[x] " + label)
		}
		return m.styles.Toggle.Render("[ ] " + label)
	}
	preset := m.styles.Toggle.Render("preset: " + presetOrder[m.preset])
	return fmt.Sprintf("%s  %s  %s", toggle(m.caseSensitive, "case sensitive"), toggle(m.everywhere, "everywhere"), preset)
}

func (m *Model) renderResults() string {
	h := m.resultsHeight()
	if len(m.results) == 0 {
		lines := make([]string, h)
		lines[0] = m.styles.Dim.Render("(no results)")
		return strings.Join(lines, "\n")
	}

	end := m.offset + h
	if end > len(m.results) {
		end = len(m.results)
	}

	lines := make([]string, 0, h)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderResultLine(i))
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderResultLine renders one result, highlighting the query inside
// the path the way the match was made: against the base name, under
// the search's case sensitivity.
func (m *Model) renderResultLine(i int) string {
	path := m.results[i]
	if m.focus == focusResults && i == m.cursor {
		return m.styles.Selected.Render(path)
	}

	query := strings.TrimSpace(m.queryInput.Value())
	if query == "" {
		return m.styles.Result.Render(path)
	}

	haystack := path
	needle := query
	if !m.caseSensitive {
		haystack = strings.ToLower(path)
		needle = strings.ToLower(query)
	}
	idx := strings.LastIndex(haystack, needle)
	if idx < 0 {
		return m.styles.Result.Render(path)
	}

	return m.styles.Result.Render(path[:idx]) +
		m.styles.Highlight.Render(path[idx:idx+len(needle)]) +
		m.styles.Result.Render(path[idx+len(needle):])
}
