package agent

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllFrames(t *testing.T, input string) []Frame {
	t.Helper()
	fr := NewFrameReader(strings.NewReader(input))
	var frames []Frame
	for {
		f, err := fr.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, f)
	}
}

func TestFrameReader(t *testing.T) {
	t.Run("single frame", func(t *testing.T) {
		frames := readAllFrames(t, "event: message\ndata: {\"content\":\"hi\"}\n\n")
		require.Len(t, frames, 1)
		assert.Equal(t, "message", frames[0].Event)
		assert.Equal(t, `{"content":"hi"}`, frames[0].Data)
	})

	t.Run("multiple frames in order", func(t *testing.T) {
		input := "event: thinking\ndata: {\"content\":\"a\"}\n\n" +
			"event: thinking_done\ndata: {}\n\n" +
			"event: done\ndata: {\"session_id\":\"s1\"}\n\n"
		frames := readAllFrames(t, input)
		require.Len(t, frames, 3)
		assert.Equal(t, "thinking", frames[0].Event)
		assert.Equal(t, "thinking_done", frames[1].Event)
		assert.Equal(t, "done", frames[2].Event)
	})

	t.Run("multi-line data joined with newline", func(t *testing.T) {
		frames := readAllFrames(t, "event: message\ndata: line one\ndata: line two\n\n")
		require.Len(t, frames, 1)
		assert.Equal(t, "line one\nline two", frames[0].Data)
	})

	t.Run("trailing frame without blank line", func(t *testing.T) {
		frames := readAllFrames(t, "event: done\ndata: {\"session_id\":\"s1\"}")
		require.Len(t, frames, 1)
		assert.Equal(t, "done", frames[0].Event)
	})

	t.Run("ignores id retry and comment lines", func(t *testing.T) {
		input := ": keepalive\nid: 42\nretry: 3000\nevent: message\ndata: hello\n\n"
		frames := readAllFrames(t, input)
		require.Len(t, frames, 1)
		assert.Equal(t, "message", frames[0].Event)
		assert.Equal(t, "hello", frames[0].Data)
	})

	t.Run("incomplete frame is dropped on blank line", func(t *testing.T) {
		// event without data, then a complete frame
		input := "event: thinking\n\nevent: message\ndata: hi\n\n"
		frames := readAllFrames(t, input)
		require.Len(t, frames, 1)
		assert.Equal(t, "message", frames[0].Event)
	})

	t.Run("data without event is dropped", func(t *testing.T) {
		frames := readAllFrames(t, "data: orphan\n\n")
		assert.Empty(t, frames)
	})

	t.Run("empty input", func(t *testing.T) {
		frames := readAllFrames(t, "")
		assert.Empty(t, frames)
	})

	t.Run("blank lines between frames", func(t *testing.T) {
		input := "event: message\ndata: a\n\n\n\nevent: message\ndata: b\n\n"
		frames := readAllFrames(t, input)
		require.Len(t, frames, 2)
		assert.Equal(t, "a", frames[0].Data)
		assert.Equal(t, "b", frames[1].Data)
	})

	t.Run("large data line", func(t *testing.T) {
		big := strings.Repeat("x", 200*1024)
		frames := readAllFrames(t, "event: message\ndata: "+big+"\n\n")
		require.Len(t, frames, 1)
		assert.Len(t, frames[0].Data, 200*1024)
	})
}

func TestWriteFrame(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, WriteFrame(&b, "message", `{"content":"hi"}`))
		assert.Equal(t, "event: message\ndata: {\"content\":\"hi\"}\n\n", b.String())
	})

	t.Run("round trip through reader", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, WriteFrame(&b, "message", "first\nsecond"))
		frames := readAllFrames(t, b.String())
		require.Len(t, frames, 1)
		assert.Equal(t, "first\nsecond", frames[0].Data)
	})
}
