// Package input contains line readers used to get commands for the
// normalization prompt from a terminal or from any other stream.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DefaultPrompt is shown before each line read by an InteractiveReader unless
// another is set.
const DefaultPrompt = "cnf> "

// commentPrefix starts a line that is skipped entirely. It lets scripts fed
// to a DirectReader carry notes.
const commentPrefix = "#"

// DirectReader implements command.Reader and reads commands from any generic
// input stream directly. It does not sanitize the input of control and escape
// sequences, so it is best suited to piped scripts.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
	lineNo        int
}

// InteractiveReader implements command.Reader and reads commands from stdin
// using a go implementation of the GNU Readline library. This keeps input
// clear of all typing and editing escape sequences and enables the use of
// command history. This should in general only be used when directly
// connected to a TTY for input.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a new DirectReader that buffers the provided
// reader. The returned DirectReader should have Close() called on it before
// disposal.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveReader and initializes
// readline. If historyFile is not empty, command history is kept in it between
// sessions. The returned InteractiveReader must have Close() called on it
// before disposal to properly teardown readline resources.
func NewInteractiveReader(historyFile string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          DefaultPrompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// Close cleans up resources associated with the DirectReader. It does not
// close the underlying stream.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadCommand reads the next line from the stream. The returned string will
// only be empty if there is an error reading input or blanks are allowed,
// otherwise this function is blocked on until a line containing non-space
// characters is read. Lines starting with "#" are skipped.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dr *DirectReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		dr.lineNo++

		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, commentPrefix) {
			line = ""
			continue
		}

		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// ReadCommand reads the next command from stdin. The returned string will only
// be empty if there is an error or blanks are allowed, otherwise this function
// is blocked on until a line consisting of more than empty or whitespace-only
// input is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. An interrupt (Ctrl-C) on an empty line is reported as io.EOF as
// well. If any other error occurs, the returned string will be empty and error
// will be that error.
func (ir *InteractiveReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return "", io.EOF
			}
			line = ""
			continue
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// Line returns the number of lines read so far, including skipped ones.
func (dr *DirectReader) Line() int {
	return dr.lineNo
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (ir *InteractiveReader) GetPrompt() string {
	return ir.prompt
}
