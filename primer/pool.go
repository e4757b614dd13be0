package primer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes caps a single input line; primers are short.
const maxLineBytes = 1 << 20

// ReadPool parses newline-delimited sequences.
//
// Blank lines and lines starting with '>' or '#' are skipped, surrounding
// whitespace is trimmed, and lower-case symbols are upper-cased. Every line must
// use only A, T, G, C and all lines must share one length.
//
// Errors: ErrEmptyPool, ErrBadSymbol, ErrLengthMismatch (all wrap ErrInput), or
// the reader's own error.
func ReadPool(r io.Reader) (Pool, error) {
	var (
		sc     = bufio.NewScanner(r)
		pool   Pool
		line   string
		lineNo int
		width  = -1
	)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for sc.Scan() {
		lineNo++
		line = strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '>' || line[0] == '#' {
			continue
		}
		line = strings.ToUpper(line)
		if k := strings.IndexFunc(line, notNucleotide); k >= 0 {
			return nil, fmt.Errorf("%w: line %d, column %d: %q", ErrBadSymbol, lineNo, k+1, line[k])
		}
		if width < 0 {
			width = len(line)
		} else if len(line) != width {
			return nil, fmt.Errorf("%w: line %d has length %d, expected %d", ErrLengthMismatch, lineNo, len(line), width)
		}
		pool = append(pool, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("primer: read pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	return pool, nil
}

// LoadPool opens path and parses it with ReadPool.
func LoadPool(path string) (Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("primer: open pool: %w", err)
	}
	defer f.Close()

	pool, err := ReadPool(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return pool, nil
}

// Validate checks an in-memory pool with the same rules ReadPool applies.
func (p Pool) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPool
	}
	width := len(p[0])
	for i, s := range p {
		if k := strings.IndexFunc(s, notNucleotide); k >= 0 {
			return fmt.Errorf("%w: sequence %d, column %d", ErrBadSymbol, i, k+1)
		}
		if len(s) != width {
			return fmt.Errorf("%w: sequence %d has length %d, expected %d", ErrLengthMismatch, i, len(s), width)
		}
	}

	return nil
}

func notNucleotide(r rune) bool {
	switch r {
	case 'A', 'T', 'G', 'C':
		return false
	}
	return true
}
