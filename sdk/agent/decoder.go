package agent

import (
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// messageContentKeys are the content aliases tried, in priority order, for
// message-family frames.
var messageContentKeys = []string{"content", "text", "response", "chunk"}

// Decoder turns an SSE byte stream into an ordered sequence of typed events.
// One decoder serves exactly one chat session.
type Decoder struct {
	frames *FrameReader
	logger *Logger
}

// NewDecoder returns a decoder over an SSE byte stream.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{frames: NewFrameReader(r), logger: GetLogger()}
}

// Next returns the next decoded event. It returns io.EOF once the stream is
// exhausted, and a non-nil error only for transport-level read failures;
// malformed frames come back as UnknownEvent, never as an error.
func (d *Decoder) Next() (Event, error) {
	frame, err := d.frames.Next()
	if err != nil {
		return nil, err
	}
	ev := DecodeFrame(frame)
	if u, ok := ev.(UnknownEvent); ok {
		d.logger.Debug("frame downgraded to unknown", "event", u.Event, "bytes", len(u.Raw))
	}
	return ev, nil
}

// DecodeFrame maps one frame to exactly one event. It never fails: any decode
// problem degrades to UnknownEvent carrying the data body verbatim.
func DecodeFrame(f Frame) Event {
	switch f.Event {
	case "plan":
		return decodePlan(f)
	case "thinking":
		return decodeThinking(f)
	case "thinking_done":
		return ThinkingDoneEvent{}
	case "tool_call_start":
		return decodeToolCallStart(f)
	case "tool_call_end":
		return decodeToolCallEnd(f)
	case "message", "content", "answer", "response", "text_chunk":
		return decodeMessage(f)
	case "ui_payload":
		return decodeVisualization(f)
	case "final_answer":
		return decodeFinalAnswer(f)
	case "done":
		return decodeDone(f)
	case "error":
		return decodeError(f)
	default:
		return UnknownEvent{Event: f.Event, Raw: f.Data}
	}
}

func unknown(f Frame) UnknownEvent {
	return UnknownEvent{Event: f.Event, Raw: f.Data}
}

func objectBody(f Frame) (gjson.Result, bool) {
	if !gjson.Valid(f.Data) {
		return gjson.Result{}, false
	}
	root := gjson.Parse(f.Data)
	return root, root.IsObject()
}

func decodePlan(f Frame) Event {
	root, ok := objectBody(f)
	if !ok {
		return unknown(f)
	}
	ev := PlanEvent{}
	if tool := root.Get("selected_tool"); tool.Type == gjson.String {
		ev.SelectedTool = tool.Str
	}
	if reasoning := root.Get("planning_reasoning"); reasoning.Type == gjson.String {
		ev.Reasoning = reasoning.Str
	}
	if args := root.Get("arguments"); args.Exists() {
		v, err := ParseValue([]byte(args.Raw))
		if err != nil {
			return unknown(f)
		}
		ev.Arguments = &v
	}
	return ev
}

func decodeThinking(f Frame) Event {
	root, ok := objectBody(f)
	if !ok {
		return unknown(f)
	}
	content := root.Get("content")
	if content.Type != gjson.String {
		return unknown(f)
	}
	return ThinkingEvent{Content: content.Str}
}

func decodeToolCallStart(f Frame) Event {
	root, ok := objectBody(f)
	if !ok {
		return unknown(f)
	}
	name := root.Get("name")
	if name.Type != gjson.String || name.Str == "" {
		return unknown(f)
	}
	ev := ToolCallStartEvent{Name: name.Str, Arguments: ObjectValue(nil)}
	if args := root.Get("arguments"); args.Exists() {
		if !args.IsObject() {
			return unknown(f)
		}
		v, err := ParseValue([]byte(args.Raw))
		if err != nil {
			return unknown(f)
		}
		ev.Arguments = v
	}
	return ev
}

func decodeToolCallEnd(f Frame) Event {
	root, ok := objectBody(f)
	if !ok {
		return unknown(f)
	}
	name := root.Get("name")
	result := root.Get("result")
	if name.Type != gjson.String || name.Str == "" || !result.IsObject() {
		return unknown(f)
	}
	tr, err := ExtractToolResult(result.Raw)
	if err != nil {
		return unknown(f)
	}
	return ToolCallEndEvent{Name: name.Str, Result: tr}
}

func decodeMessage(f Frame) Event {
	trimmed := strings.TrimSpace(f.Data)
	if gjson.Valid(trimmed) {
		if root := gjson.Parse(trimmed); root.IsObject() {
			for _, key := range messageContentKeys {
				if r := root.Get(key); r.Exists() {
					return MessageEvent{Content: r.String()}
				}
			}
			return unknown(f)
		}
	}
	// Some backends send the chunk as plain text rather than JSON.
	if trimmed != "" && !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return MessageEvent{Content: f.Data}
	}
	return unknown(f)
}

func decodeVisualization(f Frame) Event {
	payload, err := NormalizeVisualization([]byte(f.Data))
	if err != nil {
		return unknown(f)
	}
	return VisualizationEvent{Payload: *payload}
}

func decodeFinalAnswer(f Frame) Event {
	root, ok := objectBody(f)
	if !ok {
		return unknown(f)
	}
	answer := root.Get("state.final_answer")
	if answer.Type != gjson.String {
		return unknown(f)
	}
	state, err := ParseValue([]byte(root.Get("state").Raw))
	if err != nil {
		return unknown(f)
	}
	return FinalAnswerEvent{Answer: unescapeAnswer(answer.Str), State: state}
}

func decodeDone(f Frame) Event {
	root, ok := objectBody(f)
	if !ok {
		return unknown(f)
	}
	ev := DoneEvent{}
	if id := root.Get("session_id"); id.Type == gjson.String {
		ev.SessionID = id.Str
	}
	ev.Tokens = TokenUsage{
		Input:  int(root.Get("tokens.input").Int()),
		Output: int(root.Get("tokens.output").Int()),
		Total:  int(root.Get("tokens.total").Int()),
	}
	return ev
}

func decodeError(f Frame) Event {
	root, ok := objectBody(f)
	if !ok {
		return unknown(f)
	}
	for _, key := range []string{"message", "error"} {
		if r := root.Get(key); r.Type == gjson.String && r.Str != "" {
			return ErrorEvent{Message: r.Str}
		}
	}
	return ErrorEvent{Message: "Unknown error"}
}

// unescapeAnswer undoes one level of backslash escaping. One server code path
// serializes the final answer twice, so the decoded string can still contain
// literal \n and \" sequences; a clean string passes through untouched.
func unescapeAnswer(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	return answerUnescaper.Replace(s)
}

var answerUnescaper = strings.NewReplacer(
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\"`, `"`,
	`\\`, `\`,
)
