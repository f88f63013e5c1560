// Package tui is the terminal rendition of the command submission widget.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airemote/internal/widget"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// resolvedMsg carries the endpoint's answer back into the update loop.
type resolvedMsg struct {
	result *widget.Result
	err    error
}

// Model drives a widget against an endpoint.
type Model struct {
	endpoint  widget.Endpoint
	widget    *widget.Widget
	textinput textinput.Model
	spinner   spinner.Model
	serverURL string
}

func New(endpoint widget.Endpoint, serverURL string) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter an AI command... (Enter to execute, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = neutralStyle

	return Model{
		endpoint:  endpoint,
		widget:    widget.New(endpoint),
		textinput: ti,
		spinner:   sp,
		serverURL: serverURL,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.widget.Busy() {
				return m, nil
			}
			m.widget.SetCommand(m.textinput.Value())
			command, ok := m.widget.Begin()
			if !ok {
				return m, nil
			}
			return m, tea.Batch(m.spinner.Tick, m.submit(command))
		}

		if !m.widget.Busy() {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}
		return m, tiCmd

	case resolvedMsg:
		m.widget.Finish(msg.result, msg.err)
		m.textinput.SetValue(m.widget.Command())
		return m, nil

	case spinner.TickMsg:
		if m.widget.Busy() {
			var spCmd tea.Cmd
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil
	}

	m.textinput, tiCmd = m.textinput.Update(msg)
	return m, tiCmd
}

// submit performs the request off the update loop.
func (m Model) submit(command string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.endpoint.Execute(context.Background(), command)
		return resolvedMsg{result: result, err: err}
	}
}

func (m Model) View() string {
	display := m.widget.Display()

	var status string
	switch display.Style {
	case widget.StyleSuccess:
		status = successStyle.Render(display.Message)
	case widget.StyleError:
		status = errorStyle.Render(display.Message)
	default:
		status = neutralStyle.Render(display.Message)
	}
	if m.widget.Busy() {
		status = m.spinner.View() + status
	}

	return titleStyle.Render("AI Remote: "+m.serverURL) + "\n\n" +
		m.textinput.View() + "\n\n" +
		status + "\n\n" +
		helpStyle.Render("enter: execute • ctrl+c: quit") + "\n"
}
