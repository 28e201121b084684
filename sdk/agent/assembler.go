package agent

import "strings"

// MessageAssembler accumulates streamed Message events into one running text
// buffer. It is a consumer-side convenience layered on the typed event
// stream; the decoder itself does not depend on it.
type MessageAssembler struct {
	buf       strings.Builder
	streaming bool
}

// Apply feeds one decoded event to the assembler. Message content is
// appended; Done, Error and FinalAnswer freeze the buffer.
func (a *MessageAssembler) Apply(ev Event) {
	switch ev := ev.(type) {
	case MessageEvent:
		a.buf.WriteString(ev.Content)
		a.streaming = true
	case DoneEvent, ErrorEvent, FinalAnswerEvent:
		a.streaming = false
	}
}

// Text returns the message text accumulated so far.
func (a *MessageAssembler) Text() string { return a.buf.String() }

// IsStreaming reports whether a message is currently mid-stream.
func (a *MessageAssembler) IsStreaming() bool { return a.streaming }

// Reset clears the assembler for a new exchange.
func (a *MessageAssembler) Reset() {
	a.buf.Reset()
	a.streaming = false
}
