package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeropilot/aeropilot-go/internal/messages"
	"github.com/aeropilot/aeropilot-go/sdk/agent"
)

// streamChat opens the chat stream and forwards decoded events into the
// bubbletea loop via program.Send. The returned command only kicks the
// stream off; delivery happens from the goroutine.
func streamChat(ctx context.Context, client *agent.Client, p *tea.Program, message string, sessionID *string) tea.Cmd {
	return func() tea.Msg {
		events, errCh, err := client.Chat(ctx, &agent.ChatRequest{
			Message:   message,
			SessionID: sessionID,
		})
		if err != nil {
			return messages.ErrorMsg{Message: err.Error()}
		}

		go func() {
			for ev := range events {
				if msg := translate(ev); msg != nil {
					p.Send(msg)
				}
			}
			if err := <-errCh; err != nil && ctx.Err() == nil {
				p.Send(messages.ErrorMsg{Message: err.Error()})
			}
			p.Send(messages.StreamEndMsg{})
		}()

		return messages.StreamStartMsg{}
	}
}

// translate maps a decoded protocol event to its TUI message. Unknown and
// thinking_done-style events without a TUI representation return nil.
func translate(ev agent.Event) tea.Msg {
	switch ev := ev.(type) {
	case agent.PlanEvent:
		return messages.PlanMsg{SelectedTool: ev.SelectedTool, Reasoning: ev.Reasoning}
	case agent.ThinkingEvent:
		return messages.ThinkingMsg{Content: ev.Content}
	case agent.ThinkingDoneEvent:
		return messages.ThinkingDoneMsg{}
	case agent.ToolCallStartEvent:
		return messages.ToolStartMsg{Name: ev.Name, Arguments: ev.Arguments}
	case agent.ToolCallEndEvent:
		return messages.ToolEndMsg{Name: ev.Name, Result: ev.Result}
	case agent.MessageEvent:
		return messages.TokenMsg{Content: ev.Content}
	case agent.VisualizationEvent:
		return messages.VisualizationMsg{Payload: ev.Payload}
	case agent.FinalAnswerEvent:
		return messages.FinalAnswerMsg{Answer: ev.Answer}
	case agent.DoneEvent:
		return messages.DoneMsg{SessionID: ev.SessionID, Tokens: ev.Tokens}
	case agent.ErrorEvent:
		return messages.ErrorMsg{Message: ev.Message}
	default:
		return nil
	}
}
