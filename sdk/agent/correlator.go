package agent

import "sort"

// ToolCall is a completed start/end pair from the correlator. Start is nil
// when the end had no matching start.
type ToolCall struct {
	Start *ToolCallStartEvent
	End   ToolCallEndEvent
}

// ToolCallCorrelator pairs ToolCallStart and ToolCallEnd events by tool name
// so a UI can show which tools are currently running. The wire protocol has
// no per-call identifier, so if the same tool starts twice before ending the
// later start wins (last-write-wins).
type ToolCallCorrelator struct {
	running map[string]ToolCallStartEvent
}

// NewToolCallCorrelator returns an empty correlator.
func NewToolCallCorrelator() *ToolCallCorrelator {
	return &ToolCallCorrelator{running: make(map[string]ToolCallStartEvent)}
}

// Apply feeds one decoded event. It returns a completed pair on
// ToolCallEnd and nil for everything else.
func (c *ToolCallCorrelator) Apply(ev Event) *ToolCall {
	switch ev := ev.(type) {
	case ToolCallStartEvent:
		c.running[ev.Name] = ev
	case ToolCallEndEvent:
		call := &ToolCall{End: ev}
		if start, ok := c.running[ev.Name]; ok {
			call.Start = &start
			delete(c.running, ev.Name)
		}
		return call
	}
	return nil
}

// Running returns the names of tools with an unmatched start, sorted.
func (c *ToolCallCorrelator) Running() []string {
	names := make([]string, 0, len(c.running))
	for name := range c.running {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
