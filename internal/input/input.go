// Package input reads transmission files.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxLineBytes bounds one transmission line.
const maxLineBytes = 16 * 1024 * 1024

// ReadLines returns the non-blank lines of the file at path with
// surrounding whitespace trimmed.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input open failed (%s): %w", path, err)
	}
	defer f.Close()

	lines, err := Lines(f)
	if err != nil {
		return nil, fmt.Errorf("input read failed (%s): %w", path, err)
	}
	log.Debug().Str("path", path).Int("lines", len(lines)).Msg("read input")
	return lines, nil
}

// Lines is ReadLines over an arbitrary reader.
func Lines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
