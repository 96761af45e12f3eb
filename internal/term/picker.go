package term

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	styleTitle      = lipgloss.NewStyle().Bold(true)
	styleRow        = lipgloss.NewStyle().PaddingLeft(2)
	styleRowCurrent = lipgloss.NewStyle().Bold(true)
	styleHelp       = lipgloss.NewStyle().Faint(true)
)

// pickerModel is a filterable single-choice list.
type pickerModel struct {
	ti       textinput.Model
	title    string
	all      []string
	filtered []string
	cursor   int
	choice   string
	aborted  bool
}

func newPicker(title string, names []string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()

	return pickerModel{
		ti:       ti,
		title:    title,
		all:      names,
		filtered: names,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.choice = m.filtered[m.cursor]
			}

			return m, tea.Quit

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}

			return m, nil

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}

			return m, nil
		}
	}

	m.ti, cmd = m.ti.Update(msg)
	m.filtered = filterNames(m.all, m.ti.Value())

	if m.cursor > len(m.filtered)-1 {
		m.cursor = max(0, len(m.filtered)-1)
	}

	return m, cmd
}

func (m pickerModel) View() string {
	s := styleTitle.Render(m.title) + "\n" + m.ti.View() + "\n"

	for i, name := range m.filtered {
		if i == m.cursor {
			s += styleRowCurrent.Render("> "+name) + "\n"
			continue
		}

		s += styleRow.Render(name) + "\n"
	}

	if len(m.filtered) == 0 {
		s += styleHelp.Render("  no match") + "\n"
	}

	s += styleHelp.Render("enter: select, esc: cancel") + "\n"

	return s
}

// filterNames ranks names against the query, best match first. An empty
// query keeps the original order.
func filterNames(names []string, query string) []string {
	if query == "" {
		return names
	}

	matches := fuzzy.RankFindNormalizedFold(query, names)
	slices.SortFunc(matches, func(a, b fuzzy.Rank) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	filtered := make([]string, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, match.Target)
	}

	return filtered
}
