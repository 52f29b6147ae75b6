// Package table reads the comma separated text tables the store ships its
// catalog and promotion rules in.
package table

import (
	"bufio"
	"io"
	"strings"
)

// Rows skips the header line and calls fn for every non-blank data row with
// its fields split on commas and trimmed. Line numbers are 1-based and count
// the header, so they match what an editor shows.
func Rows(r io.Reader, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
	return scanner.Err()
}
