package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeropilot/aeropilot-go/sdk/agent"
)

// Model represents the chat transcript component
type Model struct {
	viewport   viewport.Model
	items      []Item
	assembler  agent.MessageAssembler
	correlator *agent.ToolCallCorrelator
	width      int
	height     int
	ready      bool
}

// New creates a new chat model
func New(width, height int) Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	vp.YPosition = 0

	return Model{
		viewport:   vp,
		items:      []Item{},
		correlator: agent.NewToolCallCorrelator(),
		width:      width,
		height:     height,
		ready:      true,
	}
}

// Init initializes the chat component
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the chat component
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle scrolling
		switch msg.String() {
		case "pgup":
			m.viewport.ViewUp()
		case "pgdown":
			m.viewport.ViewDown()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the chat component
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.viewport.View()
}

// AddUserMessage adds a user message to the chat
func (m *Model) AddUserMessage(content string) {
	m.items = append(m.items, Message{Role: RoleUser, Content: content})
	m.updateContent()
}

// StartAssistantMessage begins a new streaming assistant turn.
func (m *Model) StartAssistantMessage() {
	m.assembler.Reset()
	m.correlator = agent.NewToolCallCorrelator()
	m.items = append(m.items, Message{Role: RoleAssistant, IsStreaming: true})
	m.updateContent()
}

// AddPlan records the agent's tool plan.
func (m *Model) AddPlan(tool, reasoning string) {
	m.insertBeforeStreaming(PlanItem{SelectedTool: tool, Reasoning: reasoning})
	m.updateContent()
}

// AppendThinking adds a reasoning chunk, extending the current thinking
// block when one is open.
func (m *Model) AppendThinking(content string) {
	if idx := m.openThinkingIndex(); idx >= 0 {
		th := m.items[idx].(ThinkingItem)
		th.Content += content
		m.items[idx] = th
	} else {
		m.insertBeforeStreaming(ThinkingItem{Content: content})
	}
	m.updateContent()
}

// EndThinking closes the current thinking block.
func (m *Model) EndThinking() {
	if idx := m.openThinkingIndex(); idx >= 0 {
		th := m.items[idx].(ThinkingItem)
		th.Done = true
		m.items[idx] = th
		m.updateContent()
	}
}

// StartTool records a tool invocation.
func (m *Model) StartTool(ev agent.ToolCallStartEvent) {
	m.correlator.Apply(ev)
	m.insertBeforeStreaming(ToolEvent{Name: ev.Name, Arguments: ev.Arguments})
	m.updateContent()
}

// CompleteTool marks the matching tool invocation as done and attaches the
// result summary.
func (m *Model) CompleteTool(ev agent.ToolCallEndEvent) {
	call := m.correlator.Apply(ev)
	for i := len(m.items) - 1; i >= 0; i-- {
		if t, ok := m.items[i].(ToolEvent); ok && t.Name == ev.Name && !t.Completed {
			t.Completed = true
			t.Result = &ev.Result
			if call != nil && call.Start != nil {
				t.Arguments = call.Start.Arguments
			}
			m.items[i] = t
			break
		}
	}
	m.updateContent()
}

// AppendToken appends a streamed text chunk to the assistant message.
func (m *Model) AppendToken(content string) {
	m.assembler.Apply(agent.MessageEvent{Content: content})
	m.syncStreamingMessage()
	m.updateContent()
}

// AddVisualization records a map payload.
func (m *Model) AddVisualization(payload agent.VisualizationPayload) {
	m.insertBeforeStreaming(VisualizationItem{Payload: payload})
	m.updateContent()
}

// SetFinalAnswer replaces the streamed text with the committed answer when
// the agent sent one and nothing was streamed.
func (m *Model) SetFinalAnswer(answer string) {
	m.assembler.Apply(agent.FinalAnswerEvent{Answer: answer})
	if m.assembler.Text() == "" && answer != "" {
		if idx := m.streamingIndex(); idx >= 0 {
			msg := m.items[idx].(Message)
			msg.Content = answer
			m.items[idx] = msg
		}
	}
	m.updateContent()
}

// EndAssistantMessage marks the current assistant message as complete
func (m *Model) EndAssistantMessage() {
	if idx := m.streamingIndex(); idx >= 0 {
		msg := m.items[idx].(Message)
		msg.IsStreaming = false
		if msg.Content == "" {
			msg.Content = m.assembler.Text()
		}
		m.items[idx] = msg
	}
	m.updateContent()
}

// RunningTools returns the names of tools still executing.
func (m Model) RunningTools() []string {
	return m.correlator.Running()
}

// SetSize updates the chat dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateContent()
}

// Clear clears the transcript
func (m *Model) Clear() {
	m.items = []Item{}
	m.assembler.Reset()
	m.correlator = agent.NewToolCallCorrelator()
	m.viewport.SetContent("")
}

// IsEmpty returns true if there are no items
func (m Model) IsEmpty() bool {
	return len(m.items) == 0
}

// streamingIndex returns the index of the open assistant message, or -1.
func (m Model) streamingIndex() int {
	for i := len(m.items) - 1; i >= 0; i-- {
		if msg, ok := m.items[i].(Message); ok {
			if msg.Role == RoleAssistant && msg.IsStreaming {
				return i
			}
			return -1
		}
	}
	return -1
}

func (m Model) openThinkingIndex() int {
	for i := len(m.items) - 1; i >= 0; i-- {
		switch item := m.items[i].(type) {
		case ThinkingItem:
			if !item.Done {
				return i
			}
			return -1
		case Message:
			if item.Role == RoleUser {
				return -1
			}
		}
	}
	return -1
}

// insertBeforeStreaming places an item above the open assistant message so
// streamed text always stays at the bottom of the turn.
func (m *Model) insertBeforeStreaming(item Item) {
	if idx := m.streamingIndex(); idx >= 0 {
		m.items = append(m.items[:idx], append([]Item{item}, m.items[idx:]...)...)
		return
	}
	m.items = append(m.items, item)
}

func (m *Model) syncStreamingMessage() {
	if idx := m.streamingIndex(); idx >= 0 {
		msg := m.items[idx].(Message)
		msg.Content = m.assembler.Text()
		m.items[idx] = msg
	}
}

// updateContent rebuilds the viewport content from items
func (m *Model) updateContent() {
	var content strings.Builder

	for i, item := range m.items {
		content.WriteString(item.Render(m.width))
		if i < len(m.items)-1 {
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}
