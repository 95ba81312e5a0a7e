package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user leaves the picker without choosing
var ErrCanceled = errors.New("canceled")

// PickerOption is one entry of the branch picker
type PickerOption struct {
	Label string
	Value string
}

type pickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Confirm, k.Cancel}}
}

var defaultPickerKeys = pickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k", "shift+tab"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "tab"),
		key.WithHelp("↓/j", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "checkout"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("ctrl+c", "q", "esc"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// PickerModel is the bubbletea model of the branch picker. Options are shown
// in the order given; the cursor wraps around.
type PickerModel struct {
	title    string
	options  []PickerOption
	cursor   int
	selected string
	canceled bool
	keys     pickerKeyMap
	help     help.Model
}

// NewPickerModel creates a picker with the cursor on index cursor
func NewPickerModel(title string, options []PickerOption, cursor int) PickerModel {
	if cursor < 0 || cursor >= len(options) {
		cursor = 0
	}
	return PickerModel{
		title:   title,
		options: options,
		cursor:  cursor,
		keys:    defaultPickerKeys,
		help:    help.New(),
	}
}

// Selected returns the chosen value, empty until confirmed
func (m PickerModel) Selected() string {
	return m.selected
}

// Canceled reports whether the picker was left without a choice
func (m PickerModel) Canceled() bool {
	return m.canceled
}

// Cursor returns the highlighted index
func (m PickerModel) Cursor() int {
	return m.cursor
}

// Init implements tea.Model
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.options) == 0 {
		if ok && key.Matches(keyMsg, m.keys.Cancel) {
			m.canceled = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	case key.Matches(keyMsg, m.keys.Confirm):
		m.selected = m.options[m.cursor].Value
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m PickerModel) View() string {
	if m.selected != "" || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.title))
	b.WriteString("\n\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  → %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(opt.Label)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", opt.Label))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Margin(1, 0).Render(b.String())
}

// PromptPicker shows the picker and returns the chosen value
func PromptPicker(title string, options []PickerOption, cursor int) (string, error) {
	if !InteractiveAllowed() {
		return "", ErrInteractiveDisabled
	}

	p := tea.NewProgram(NewPickerModel(title, options, cursor), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(PickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if m.canceled {
		return "", ErrCanceled
	}
	return m.selected, nil
}
