package term

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel is a one-line text prompt with a pre-filled answer.
type inputModel struct {
	ti      textinput.Model
	title   string
	value   string
	aborted bool
}

func newInput(title, def string) inputModel {
	ti := textinput.New()
	ti.SetValue(def)
	ti.CursorEnd()
	ti.Focus()

	return inputModel{ti: ti, title: title}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit

		case tea.KeyEnter:
			m.value = m.ti.Value()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)

	return m, cmd
}

func (m inputModel) View() string {
	return styleTitle.Render(m.title) + "\n" +
		m.ti.View() + "\n" +
		styleHelp.Render("enter: accept, esc: cancel") + "\n"
}
