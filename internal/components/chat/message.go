package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aeropilot/aeropilot-go/internal/styles"
	"github.com/aeropilot/aeropilot-go/sdk/agent"
)

// Role represents who sent the message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Item is one renderable entry in the chat transcript.
type Item interface {
	Render(width int) string
}

// Message represents a chat message
type Message struct {
	Role        Role
	Content     string
	IsStreaming bool
}

// Render renders a message with the given width
func (m Message) Render(width int) string {
	var sb strings.Builder

	switch m.Role {
	case RoleUser:
		sb.WriteString(styles.UserLabel.Render("You"))
		sb.WriteString("\n")
	case RoleAssistant:
		sb.WriteString(styles.AssistantLabel.Render("AeroPilot"))
		sb.WriteString("\n")
	}

	content := m.Content
	if m.Role == RoleAssistant && content != "" {
		// Use glamour for markdown rendering
		rendered, err := renderMarkdown(content, width-4)
		if err == nil {
			content = strings.TrimSpace(rendered)
		}
	}

	if m.IsStreaming {
		content += styles.StreamingCursor.Render("▊")
	}

	switch m.Role {
	case RoleUser:
		sb.WriteString(styles.UserMessage.Width(width - 2).Render(content))
	case RoleAssistant:
		sb.WriteString(styles.AssistantMessage.Width(width - 2).Render(content))
	}

	return sb.String()
}

// PlanItem shows which tool the agent chose and why.
type PlanItem struct {
	SelectedTool string
	Reasoning    string
}

// Render renders the plan line.
func (p PlanItem) Render(width int) string {
	line := fmt.Sprintf("plan: %s", styles.ToolName.Render(p.SelectedTool))
	if p.Reasoning != "" {
		line += " " + truncate(p.Reasoning, 60)
	}
	return styles.Thinking.Render(line)
}

// ThinkingItem shows accumulated reasoning text.
type ThinkingItem struct {
	Content string
	Done    bool
}

// Render renders the reasoning block.
func (t ThinkingItem) Render(width int) string {
	text := truncate(t.Content, width-6)
	if !t.Done {
		text += " …"
	}
	return styles.Thinking.Render(text)
}

// ToolEvent represents a tool invocation and, once completed, its result.
type ToolEvent struct {
	Name      string
	Arguments agent.Value
	Result    *agent.ToolResult
	Completed bool
}

// Render renders a tool event line, with a result summary when completed.
func (t ToolEvent) Render(width int) string {
	var status string
	if t.Completed {
		status = styles.ToolStatus.Render("✓")
	} else {
		status = styles.ToolStatus.Render("...")
	}

	line := fmt.Sprintf("%s %s %s", status, styles.ToolName.Render(t.Name), truncate(argsSummary(t.Arguments), 50))
	if t.Result != nil {
		if summary := resultSummary(*t.Result); summary != "" {
			line += "\n" + styles.ToolEvent.Render("  "+summary)
		}
	}
	return styles.ToolEvent.Render(line)
}

func argsSummary(args agent.Value) string {
	if args.Len() == 0 {
		return ""
	}
	if q, ok := args.First("query", "ident", "icao", "route"); ok && q.Kind() == agent.KindString {
		return q.Str()
	}
	b, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return string(b)
}

func resultSummary(r agent.ToolResult) string {
	var parts []string
	if r.Airports != nil {
		parts = append(parts, fmt.Sprintf("%d airports", len(r.Airports)))
	}
	if r.Visualization != nil {
		parts = append(parts, string(r.Visualization.Kind))
	}
	return strings.Join(parts, ", ")
}

// VisualizationItem summarizes a map payload in text form; the terminal
// cannot draw the map itself, so we show what the web UI would plot.
type VisualizationItem struct {
	Payload agent.VisualizationPayload
}

// Render renders the visualization summary.
func (v VisualizationItem) Render(width int) string {
	var sb strings.Builder
	p := v.Payload

	switch p.Kind {
	case agent.VisualizationRouteWithMarkers:
		if p.Route != nil {
			sb.WriteString(fmt.Sprintf("map: route %s → %s, %d markers", p.Route.From.Ident, p.Route.To.Ident, len(p.Markers)))
		}
	case agent.VisualizationMarkerWithDetails:
		if p.Marker != nil {
			sb.WriteString(fmt.Sprintf("map: marker %s", p.Marker.Ident))
		}
	case agent.VisualizationPointWithMarkers:
		if p.Point != nil {
			label := p.Point.Label
			if label == "" {
				label = fmt.Sprintf("%.3f, %.3f", p.Point.Latitude, p.Point.Longitude)
			}
			sb.WriteString(fmt.Sprintf("map: %s, %d nearby markers", label, len(p.Markers)))
		}
	default:
		sb.WriteString(fmt.Sprintf("map: %d markers", len(p.Markers)))
	}

	out := styles.Visualization.Render(sb.String())
	for _, q := range p.SuggestedQueries {
		out += "\n" + styles.SuggestedQuery.Render("› "+q.Label)
	}
	return out
}

// renderMarkdown renders markdown content for the terminal
func renderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content, err
	}
	return r.Render(content)
}

// truncate truncates a string to the given length
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if maxLen < 4 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

var (
	_ Item = Message{}
	_ Item = PlanItem{}
	_ Item = ThinkingItem{}
	_ Item = ToolEvent{}
	_ Item = VisualizationItem{}
)
