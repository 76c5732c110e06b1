package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/farmswap/internal/swap"
	"github.com/tatianab/farmswap/internal/xmldoc"
)

type sessionState int

const (
	stateSelect sessionState = iota
	stateConfirm
	stateDone
	stateError
)

type model struct {
	state     sessionState
	doc       *xmldoc.Document
	host      swap.Participant
	farmhands []swap.Participant
	selected  int // index into farmhands once chosen
	textInput textinput.Model
	result    *swap.Result
	err       error
	aborted   bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	hostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))
)

func newModel(doc *xmldoc.Document, host swap.Participant, farmhands []swap.Participant) model {
	ti := textinput.New()
	ti.Placeholder = "Farmhand number or name..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		state:     stateSelect,
		doc:       doc,
		host:      host,
		farmhands: farmhands,
		selected:  -1,
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type swapDoneMsg struct {
	result *swap.Result
	err    error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit

		case tea.KeyEnter:
			switch m.state {
			case stateSelect:
				input := strings.TrimSpace(m.textInput.Value())
				if input == "" {
					return m, nil
				}
				idx, ok := m.resolve(input)
				if !ok {
					m.textInput.Reset()
					m.textInput.Placeholder = "No such farmhand. Try again..."
					return m, nil
				}
				m.selected = idx
				m.state = stateConfirm
				m.textInput.Reset()
				m.textInput.Placeholder = "y/n"
				return m, nil

			case stateConfirm:
				answer := strings.ToLower(strings.TrimSpace(m.textInput.Value()))
				m.textInput.Reset()
				switch answer {
				case "y", "yes":
					return m, m.performSwap()
				case "n", "no":
					m.aborted = true
					return m, tea.Quit
				}
				return m, nil

			case stateDone, stateError:
				return m, tea.Quit
			}
		}

	case swapDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateDone
		return m, nil
	}

	if m.state == stateSelect || m.state == stateConfirm {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateSelect:
		s = m.renderRoster() + "\n\nWhich farmhand should become the host?\n\n" +
			m.textInput.View() + "\n\n" +
			helpStyle.Render("Enter a number or a name. Esc to quit without changing anything.")

	case stateConfirm:
		target := m.farmhands[m.selected]
		s = fmt.Sprintf(
			"Swapping\n    %s\nand\n    %s\n\nContinue [y/n]? %s",
			hostStyle.Render(m.host.Name),
			hostStyle.Render(target.Name),
			m.textInput.View(),
		)

	case stateDone:
		s = fmt.Sprintf(
			"Swapped: %s is now the host, %s is a farmhand.\n\n%s",
			m.result.NewHost.Name,
			m.result.OldHost.Name,
			helpStyle.Render("Press Enter to save and exit."),
		)

	case stateError:
		s = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n\n" + helpStyle.Render("The save file has not been touched. Press Enter to exit.")
	}

	return "\n" + s + "\n"
}

func (m model) renderRoster() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("PARTICIPANTS") + "\n\n")
	b.WriteString("   Player: " + hostStyle.Render(m.host.Name) + "\n")
	for i, f := range m.farmhands {
		name := f.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "Farmhand %d: %s\n", i+1, name)
	}
	return b.String()
}

// resolve maps user input to a farmhand index: a number is an ordinal as
// printed, anything else is matched against names. Ambiguous or missing
// matches are rejected here so the engine's own resolution never fails on
// input this UI produced.
func (m model) resolve(input string) (int, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(m.farmhands) {
			return 0, false
		}
		return n - 1, true
	}
	idx, matches := -1, 0
	for i, f := range m.farmhands {
		if f.Name == input {
			idx = i
			matches++
		}
	}
	if matches != 1 {
		return 0, false
	}
	return idx, true
}

func (m model) performSwap() tea.Cmd {
	target := m.farmhands[m.selected]
	doc := m.doc
	return func() tea.Msg {
		result, err := swap.Swap(doc, swap.ByID(target.ID))
		return swapDoneMsg{result, err}
	}
}

// Run walks the user through picking and confirming a farmhand and performs
// the in-memory swap. It returns nil, nil when the user backed out; the
// caller serializes and writes only on a non-nil result.
func Run(doc *xmldoc.Document, host swap.Participant, farmhands []swap.Participant) (*swap.Result, error) {
	p := tea.NewProgram(newModel(doc, host, farmhands))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(model)
	if m.err != nil {
		return nil, m.err
	}
	if m.aborted {
		return nil, nil
	}
	return m.result, nil
}
