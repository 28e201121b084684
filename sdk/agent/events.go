package agent

// EventType discriminates between decoded protocol event kinds.
type EventType int

const (
	// EventTypePlan fires when the agent announces its tool plan.
	EventTypePlan EventType = iota
	// EventTypeThinking fires for streamed reasoning chunks.
	EventTypeThinking
	// EventTypeThinkingDone fires when the reasoning phase ends.
	EventTypeThinkingDone
	// EventTypeToolCallStart fires when a server-side tool begins execution.
	EventTypeToolCallStart
	// EventTypeToolCallEnd fires when a server-side tool completes.
	EventTypeToolCallEnd
	// EventTypeMessage fires for streamed assistant text chunks.
	EventTypeMessage
	// EventTypeVisualization fires when the server pushes a map payload.
	EventTypeVisualization
	// EventTypeFinalAnswer fires when the agent commits to its answer.
	EventTypeFinalAnswer
	// EventTypeDone fires when the stream completes normally.
	EventTypeDone
	// EventTypeError fires when the server reports a terminal error.
	EventTypeError
	// EventTypeUnknown wraps frames that could not be decoded.
	EventTypeUnknown
)

// Event is the interface for all decoded protocol events. Exactly one event
// is produced per wire frame; decoding never fails, it degrades to
// UnknownEvent instead.
type Event interface {
	Type() EventType
}

// PlanEvent announces which tool the agent selected and why.
type PlanEvent struct {
	SelectedTool string
	Arguments    *Value // nil when the plan carried no arguments
	Reasoning    string
}

// Type returns the event type.
func (e PlanEvent) Type() EventType { return EventTypePlan }

// ThinkingEvent carries a streamed reasoning chunk.
type ThinkingEvent struct {
	Content string
}

// Type returns the event type.
func (e ThinkingEvent) Type() EventType { return EventTypeThinking }

// ThinkingDoneEvent marks the end of the reasoning phase. It has no payload.
type ThinkingDoneEvent struct{}

// Type returns the event type.
func (e ThinkingDoneEvent) Type() EventType { return EventTypeThinkingDone }

// ToolCallStartEvent fires when a server-side tool begins execution.
type ToolCallStartEvent struct {
	Name      string
	Arguments Value // always an object; empty object when omitted on the wire
}

// Type returns the event type.
func (e ToolCallStartEvent) Type() EventType { return EventTypeToolCallStart }

// ToolCallEndEvent fires when a server-side tool completes.
type ToolCallEndEvent struct {
	Name   string
	Result ToolResult
}

// Type returns the event type.
func (e ToolCallEndEvent) Type() EventType { return EventTypeToolCallEnd }

// MessageEvent carries a streamed assistant text chunk.
type MessageEvent struct {
	Content string
}

// Type returns the event type.
func (e MessageEvent) Type() EventType { return EventTypeMessage }

// VisualizationEvent carries a normalized map visualization payload.
type VisualizationEvent struct {
	Payload VisualizationPayload
}

// Type returns the event type.
func (e VisualizationEvent) Type() EventType { return EventTypeVisualization }

// FinalAnswerEvent carries the agent's committed answer. Answer is the
// unescaped final_answer string; State retains the full state object.
type FinalAnswerEvent struct {
	Answer string
	State  Value
}

// Type returns the event type.
func (e FinalAnswerEvent) Type() EventType { return EventTypeFinalAnswer }

// DoneEvent marks normal stream completion.
type DoneEvent struct {
	SessionID string
	Tokens    TokenUsage
}

// Type returns the event type.
func (e DoneEvent) Type() EventType { return EventTypeDone }

// ErrorEvent carries a terminal server-side error.
type ErrorEvent struct {
	Message string
}

// Type returns the event type.
func (e ErrorEvent) Type() EventType { return EventTypeError }

// UnknownEvent wraps a frame whose name was unrecognized or whose payload
// could not be decoded. Raw holds the data body verbatim for diagnostics.
type UnknownEvent struct {
	Event string
	Raw   string
}

// Type returns the event type.
func (e UnknownEvent) Type() EventType { return EventTypeUnknown }

// IsTerminal reports whether no further events are expected after ev.
func IsTerminal(ev Event) bool {
	switch ev.Type() {
	case EventTypeDone, EventTypeError:
		return true
	default:
		return false
	}
}
