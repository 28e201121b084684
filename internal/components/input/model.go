package input

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeropilot/aeropilot-go/internal/styles"
)

// Model represents the input component
type Model struct {
	textarea textarea.Model
	width    int
	history  []string
	histIdx  int
	focused  bool
}

// New creates a new input model
func New(width int) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about airports, routes, or weather..."
	ta.Focus()
	ta.CharLimit = 4096
	ta.SetWidth(width - 4)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetKeys("shift+enter")
	ta.FocusedStyle.Placeholder = ta.FocusedStyle.Placeholder.Foreground(styles.Muted)
	ta.BlurredStyle.Placeholder = ta.BlurredStyle.Placeholder.Foreground(styles.Muted)

	return Model{
		textarea: ta,
		width:    width,
		history:  []string{},
		histIdx:  -1,
		focused:  true,
	}
}

// Init initializes the input component
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the input component
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if m.textarea.Value() == "" && len(m.history) > 0 {
				if m.histIdx < 0 {
					m.histIdx = len(m.history)
				}
				if m.histIdx > 0 {
					m.histIdx--
					m.textarea.SetValue(m.history[m.histIdx])
				}
				return m, nil
			}
		case "down":
			if m.histIdx >= 0 {
				m.histIdx++
				if m.histIdx >= len(m.history) {
					m.histIdx = -1
					m.textarea.SetValue("")
				} else {
					m.textarea.SetValue(m.history[m.histIdx])
				}
				return m, nil
			}
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the input component
func (m Model) View() string {
	return styles.InputBorder.Width(m.width - 2).Render(m.textarea.View())
}

// Value returns the current input text
func (m Model) Value() string {
	return m.textarea.Value()
}

// Clear empties the input and records the value in history
func (m *Model) Clear() {
	if v := m.textarea.Value(); v != "" {
		m.history = append(m.history, v)
	}
	m.histIdx = -1
	m.textarea.Reset()
}

// Focus focuses the input
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.textarea.Focus()
}

// Blur removes focus from the input
func (m *Model) Blur() {
	m.focused = false
	m.textarea.Blur()
}

// SetWidth updates the input width
func (m *Model) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width - 4)
}
