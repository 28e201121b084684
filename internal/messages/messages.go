package messages

import "github.com/aeropilot/aeropilot-go/sdk/agent"

// Events from the backend stream, forwarded into the bubbletea loop.

type PlanMsg struct {
	SelectedTool string
	Reasoning    string
}

type ThinkingMsg struct {
	Content string
}

type ThinkingDoneMsg struct{}

type ToolStartMsg struct {
	Name      string
	Arguments agent.Value
}

type ToolEndMsg struct {
	Name   string
	Result agent.ToolResult
}

type TokenMsg struct {
	Content string
}

type VisualizationMsg struct {
	Payload agent.VisualizationPayload
}

type FinalAnswerMsg struct {
	Answer string
}

type DoneMsg struct {
	SessionID string
	Tokens    agent.TokenUsage
}

type ErrorMsg struct {
	Message string
}

// Internal app messages
type StreamStartMsg struct{}
type StreamEndMsg struct{}
