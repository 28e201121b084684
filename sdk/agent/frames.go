package agent

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Frame is one SSE unit: an event name plus its data body. Multi-line data
// bodies arrive joined with "\n".
type Frame struct {
	Event string
	Data  string
}

// FrameReader groups raw SSE lines into frames. It holds only the current
// partial frame as state, so one reader serves exactly one stream and is
// discarded with it. Delivery of lines must be single-threaded.
type FrameReader struct {
	scanner *bufio.Scanner
}

// NewFrameReader returns a reader over an SSE byte stream.
func NewFrameReader(r io.Reader) *FrameReader {
	s := bufio.NewScanner(r)
	// Tool results can carry large airport lists in a single data line.
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &FrameReader{scanner: s}
}

// Next returns the next complete frame. It returns io.EOF once the stream is
// exhausted. A stream that ends mid-frame (no trailing blank line) still
// yields that final frame before EOF.
func (fr *FrameReader) Next() (Frame, error) {
	var event string
	var data strings.Builder

	for fr.scanner.Scan() {
		line := fr.scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case line == "":
			if event != "" && data.Len() > 0 {
				return Frame{Event: event, Data: data.String()}, nil
			}
			// Blank line with an incomplete frame resets it.
			event = ""
			data.Reset()
		default:
			// id:, retry:, and comment lines are ignored.
		}
	}
	if err := fr.scanner.Err(); err != nil {
		return Frame{}, fmt.Errorf("read frame: %w", err)
	}
	if event != "" && data.Len() > 0 {
		return Frame{Event: event, Data: data.String()}, nil
	}
	return Frame{}, io.EOF
}

// WriteFrame encodes one frame in wire form. A data body containing newlines
// is split across multiple data: lines, mirroring how Next rejoins them.
func WriteFrame(w io.Writer, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
		return err
	}
	for _, line := range strings.Split(data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
