package pager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator a question and returns the answer line.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// LinePrompter writes the prompt to Out and reads one line from In.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask blocks until a full line is read. It returns io.EOF when the input is
// closed before any answer was typed.
func (p *LinePrompter) Ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+" "); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
