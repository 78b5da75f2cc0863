package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// InputSource supplies player choices. ok is false when no more input is
// available.
type InputSource interface {
	GetInput() (line string, ok bool)
}

// OutputSink shows text to the players.
type OutputSink interface {
	Display(text string)
	Clear()
}

// LineInput reads choices line by line from a reader.
type LineInput struct {
	scanner *bufio.Scanner
}

// NewLineInput wraps r.
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{scanner: bufio.NewScanner(r)}
}

// GetInput implements InputSource.
func (in *LineInput) GetInput() (string, bool) {
	if !in.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.scanner.Text()), true
}

// ScriptedInput replays a fixed list of choices.
type ScriptedInput struct {
	lines []string
}

// NewScriptedInput creates an input source that returns lines in order.
func NewScriptedInput(lines ...string) *ScriptedInput {
	return &ScriptedInput{lines: lines}
}

// GetInput implements InputSource.
func (in *ScriptedInput) GetInput() (string, bool) {
	if len(in.lines) == 0 {
		return "", false
	}
	line := in.lines[0]
	in.lines = in.lines[1:]
	return line, true
}

// WriterOutput writes displayed text to a writer, one line per call.
type WriterOutput struct {
	w io.Writer
}

// NewWriterOutput wraps w.
func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

// Display implements OutputSink.
func (out *WriterOutput) Display(text string) {
	fmt.Fprintln(out.w, text)
}

// Clear implements OutputSink with an ANSI clear-screen sequence.
func (out *WriterOutput) Clear() {
	fmt.Fprint(out.w, "\033[H\033[2J")
}

// BufferedOutput collects displayed text in memory.
type BufferedOutput struct {
	Lines  []string
	Clears int
}

// Display implements OutputSink.
func (out *BufferedOutput) Display(text string) {
	out.Lines = append(out.Lines, text)
}

// Clear implements OutputSink.
func (out *BufferedOutput) Clear() {
	out.Lines = nil
	out.Clears++
}
