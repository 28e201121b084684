package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeropilot/aeropilot-go/internal/messages"
	"github.com/aeropilot/aeropilot-go/sdk/agent"
)

// Update handles all application messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Reserve space for: header (1), input (5), status bar (1), padding (2)
		chatHeight := msg.Height - 9
		if chatHeight < 5 {
			chatHeight = 5
		}

		m.chat.SetSize(msg.Width, chatHeight)
		m.input.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.state == StateStreaming && m.cancel != nil {
				m.cancel()
				m.state = StateIdle
				m.chat.EndAssistantMessage()
				return m, m.input.Focus()
			}
			return m, tea.Quit

		case "enter":
			if m.state == StateIdle && m.input.Value() != "" {
				return m.sendMessage()
			}

		case "ctrl+l":
			m.chat.Clear()
			m.sessionID = nil
			m.tokens = agent.TokenUsage{}
			return m, nil
		}

	// Stream events
	case messages.StreamStartMsg:
		m.state = StateStreaming
		m.chat.StartAssistantMessage()
		return m, nil

	case messages.PlanMsg:
		m.chat.AddPlan(msg.SelectedTool, msg.Reasoning)
		return m, nil

	case messages.ThinkingMsg:
		m.chat.AppendThinking(msg.Content)
		return m, nil

	case messages.ThinkingDoneMsg:
		m.chat.EndThinking()
		return m, nil

	case messages.ToolStartMsg:
		m.chat.StartTool(agent.ToolCallStartEvent{Name: msg.Name, Arguments: msg.Arguments})
		return m, nil

	case messages.ToolEndMsg:
		m.chat.CompleteTool(agent.ToolCallEndEvent{Name: msg.Name, Result: msg.Result})
		return m, nil

	case messages.TokenMsg:
		m.chat.AppendToken(msg.Content)
		return m, nil

	case messages.VisualizationMsg:
		m.chat.AddVisualization(msg.Payload)
		return m, nil

	case messages.FinalAnswerMsg:
		m.chat.SetFinalAnswer(msg.Answer)
		return m, nil

	case messages.DoneMsg:
		if msg.SessionID != "" {
			m.sessionID = &msg.SessionID
		}
		m.tokens = msg.Tokens
		m.chat.EndAssistantMessage()
		m.state = StateIdle
		return m, m.input.Focus()

	case messages.StreamEndMsg:
		if m.state == StateStreaming {
			m.chat.EndAssistantMessage()
			m.state = StateIdle
		}
		return m, m.input.Focus()

	case messages.ErrorMsg:
		m.err = fmt.Errorf("%s", msg.Message)
		m.state = StateError
		m.chat.EndAssistantMessage()
		return m, m.input.Focus()
	}

	// Update child components when idle
	if m.state == StateIdle {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Always allow chat scrolling
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// sendMessage sends the current input to the backend
func (m Model) sendMessage() (tea.Model, tea.Cmd) {
	content := m.input.Value()

	m.chat.AddUserMessage(content)
	m.input.Clear()
	m.input.Blur()
	m.err = nil

	m.ctx, m.cancel = context.WithCancel(context.Background())
	p := m.shared.GetProgram()

	return m, streamChat(m.ctx, m.client, p, content, m.sessionID)
}
