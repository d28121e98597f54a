// Package prompt implements yes/no confirmation for the installer, either
// read from a terminal or answered in advance.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal asks on out and reads one answer per line from in.
type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewTerminal returns a Terminal reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{scanner: bufio.NewScanner(in), out: out}
}

// Confirm prints "? <question> (y/N) " and waits for a line. Only "y" or
// "yes" is consent; an empty line or end of input declines.
func (t *Terminal) Confirm(question string) (bool, error) {
	fmt.Fprintf(t.out, "? %s (y/N) ", question)
	if !t.scanner.Scan() {
		fmt.Fprintln(t.out)
		if err := t.scanner.Err(); err != nil {
			return false, fmt.Errorf("reading answer: %w", err)
		}
		return false, nil
	}
	answer := strings.TrimSpace(strings.ToLower(t.scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

// Always answers every question with the same value.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm(string) (bool, error) { return bool(a), nil }
