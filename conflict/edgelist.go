package conflict

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/primerlib/core"
	"github.com/katalvlaran/primerlib/primer"
)

// Sentinel errors for edge-list input.
var (
	// ErrMalformedEdges indicates an unparsable edge list.
	ErrMalformedEdges = fmt.Errorf("%w: malformed edge list", primer.ErrInput)

	// ErrEdgeOutOfRange indicates an edge endpoint outside the candidate pool.
	ErrEdgeOutOfRange = fmt.Errorf("%w: edge references index outside the pool", primer.ErrInput)
)

// binaryMagic opens every binary edge file.
var binaryMagic = []byte("PLEDGE01")

// BinaryExt selects the binary format in Load and Create.
const BinaryExt = ".bin"

// ReadText parses a flat integer sequence grouped pairwise into edges.
func ReadText(r io.Reader) ([]core.Edge, error) {
	var (
		br    = bufio.NewReader(r)
		nums  []int
		token strings.Builder
	)
	flush := func() error {
		if token.Len() == 0 {
			return nil
		}
		v, err := strconv.Atoi(token.String())
		if err != nil {
			return fmt.Errorf("%w: token %q", ErrMalformedEdges, token.String())
		}
		nums = append(nums, v)
		token.Reset()
		return nil
	}

	for {
		c, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("conflict: read edges: %w", err)
		}
		switch {
		case c >= '0' && c <= '9':
			token.WriteRune(c)
		case c == '-' && token.Len() == 0:
			token.WriteRune(c)
		default:
			if err = flush(); err != nil {
				return nil, err
			}
			if c == '-' {
				token.WriteRune(c)
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of integers (%d)", ErrMalformedEdges, len(nums))
	}

	edges := make([]core.Edge, 0, len(nums)/2)
	for k := 0; k < len(nums); k += 2 {
		edges = append(edges, core.Edge{U: nums[k], V: nums[k+1]})
	}

	return edges, nil
}

// ReadBinary parses the binary edge format.
func ReadBinary(r io.Reader) ([]core.Edge, error) {
	br := bufio.NewReader(r)
	head := make([]byte, len(binaryMagic))
	if _, err := io.ReadFull(br, head); err != nil || !bytes.Equal(head, binaryMagic) {
		return nil, fmt.Errorf("%w: bad binary header", ErrMalformedEdges)
	}

	var edges []core.Edge
	for {
		u, err := binary.ReadUvarint(br)
		if errors.Is(err, io.EOF) {
			return edges, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEdges, err)
		}
		v, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("%w: truncated pair after %d edges", ErrMalformedEdges, len(edges))
		}
		if u > uint64(maxInt) || v > uint64(maxInt) {
			return nil, fmt.Errorf("%w: (%d, %d)", ErrEdgeOutOfRange, u, v)
		}
		edges = append(edges, core.Edge{U: int(u), V: int(v)})
	}
}

const maxInt = int(^uint(0) >> 1)

// Writer appends edges to an edge-list file.
type Writer interface {
	WriteEdge(e core.Edge) error
	// Flush writes buffered data to the underlying writer.
	Flush() error
}

// NewWriter returns a buffered text or binary Writer over w.
// The binary header is written immediately.
func NewWriter(w io.Writer, binaryFormat bool) (Writer, error) {
	bw := bufio.NewWriter(w)
	if !binaryFormat {
		return &textWriter{w: bw}, nil
	}
	if _, err := bw.Write(binaryMagic); err != nil {
		return nil, err
	}
	return &binaryWriter{w: bw}, nil
}

type textWriter struct {
	w   *bufio.Writer
	buf []byte
}

func (t *textWriter) WriteEdge(e core.Edge) error {
	t.buf = strconv.AppendInt(t.buf[:0], int64(e.U), 10)
	t.buf = append(t.buf, ' ')
	t.buf = strconv.AppendInt(t.buf, int64(e.V), 10)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	return err
}

func (t *textWriter) Flush() error { return t.w.Flush() }

type binaryWriter struct {
	w   *bufio.Writer
	buf [2 * binary.MaxVarintLen64]byte
}

func (b *binaryWriter) WriteEdge(e core.Edge) error {
	if e.U < 0 || e.V < 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrEdgeOutOfRange, e.U, e.V)
	}
	k := binary.PutUvarint(b.buf[:], uint64(e.U))
	k += binary.PutUvarint(b.buf[k:], uint64(e.V))
	_, err := b.w.Write(b.buf[:k])
	return err
}

func (b *binaryWriter) Flush() error { return b.w.Flush() }

// WriteText writes edges one "u v" pair per line.
func WriteText(w io.Writer, edges []core.Edge) error {
	return writeAll(w, edges, false)
}

// WriteBinary writes edges in the binary format.
func WriteBinary(w io.Writer, edges []core.Edge) error {
	return writeAll(w, edges, true)
}

func writeAll(w io.Writer, edges []core.Edge, binaryFormat bool) error {
	ew, err := NewWriter(w, binaryFormat)
	if err != nil {
		return err
	}
	for _, e := range edges {
		if err = ew.WriteEdge(e); err != nil {
			return err
		}
	}
	return ew.Flush()
}

// FromEdges builds a graph over n candidates from a loaded edge list,
// translating graph-construction failures into input errors.
func FromEdges(n int, edges []core.Edge) (*core.Graph, error) {
	g, err := core.New(n, edges)
	switch {
	case err == nil:
		return g, nil
	case errors.Is(err, core.ErrNodeOutOfRange):
		return nil, fmt.Errorf("%w: %w", ErrEdgeOutOfRange, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrMalformedEdges, err)
	}
}

// Load reads the edge file at path (binary when it ends in BinaryExt) and
// builds the graph over n candidates.
func Load(path string, n int) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("conflict: open edges: %w", err)
	}
	defer f.Close()

	var edges []core.Edge
	if IsBinaryPath(path) {
		edges, err = ReadBinary(f)
	} else {
		edges, err = ReadText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	g, err := FromEdges(n, edges)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// IsBinaryPath reports whether path names a binary edge file.
func IsBinaryPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), BinaryExt)
}
