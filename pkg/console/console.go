// Package console implements the line-oriented operator protocol: print a
// prompt, read one line back.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxLineBytes = 1 << 20

// Console reads operator lines from in and writes prompts and reports to out.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// New wraps in and out.
func New(in io.Reader, out io.Writer) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	return &Console{in: scanner, out: out}
}

// Prompt prints prompt on its own line, unless empty, and returns the next
// input line without its line terminator. It returns io.EOF once input ends.
func (c *Console) Prompt(prompt string) (string, error) {
	if prompt != "" {
		if err := c.Println(prompt); err != nil {
			return "", err
		}
	}
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

// Println writes a to the operator followed by a newline.
func (c *Console) Println(a ...any) error {
	_, err := fmt.Fprintln(c.out, a...)
	return err
}

// Write lets renderers print straight to the operator.
func (c *Console) Write(p []byte) (int, error) {
	return c.out.Write(p)
}
