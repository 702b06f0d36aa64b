package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// dateLayout is the YYYY-MM-DD format the transactions endpoint accepts.
const dateLayout = "2006-01-02"

// Prompter reads interactive answers line by line. Input and output are
// injected so command tests can script a session.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints a label and returns the trimmed answer line.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AskDefault asks and substitutes def when the answer is empty.
func (p *Prompter) AskDefault(label, def string) (string, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a y/n question. Anything but "y"/"Y" is no.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// validDate reports whether s is a well-formed YYYY-MM-DD date.
func validDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return nil
}
