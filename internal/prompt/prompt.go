// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt collects the search term and prefix from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/content-robot/pkg/types"
)

// ErrCancelled is returned when the user picks the cancel option.
var ErrCancelled = errors.New("cancelled")

// Prompter reads answers line by line from r and writes questions to w.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over r and w.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// SearchTerm asks for a non-empty Wikipedia search term, asking again on
// blank answers.
func (p *Prompter) SearchTerm() (string, error) {
	for {
		fmt.Fprint(p.out, "Type a Wikipedia search term: ")
		line, err := p.readLine()
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Prefix lists types.Prefixes as a numbered menu with 0 to cancel and
// returns the chosen one, asking again on invalid answers.
func (p *Prompter) Prefix() (types.Prefix, error) {
	for i, prefix := range types.Prefixes {
		fmt.Fprintf(p.out, "[%d] %s\n", i+1, prefix)
	}
	fmt.Fprintln(p.out, "[0] CANCEL")

	for {
		fmt.Fprintf(p.out, "Choose one option [1-%d, 0]: ", len(types.Prefixes))
		line, err := p.readLine()
		if line == "0" {
			return "", ErrCancelled
		}
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(types.Prefixes) {
			return types.Prefixes[n-1], nil
		}
		if err != nil {
			return "", err
		}
	}
}

// readLine returns the next trimmed line. At EOF it returns whatever was
// read together with io.ErrUnexpectedEOF so callers stop looping.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err == io.EOF {
		return line, io.ErrUnexpectedEOF
	}
	return line, err
}
