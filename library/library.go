// Package library persists selected libraries and their throughput series.
//
// A library file is a header line with the total run time followed by one
// sequence per line:
//
//	Total time (seconds):	12.5
//	ATGCATGCATGCATGCATGC
//	GCTAGCTAGCTAGCTAGCTA
//
// Files are named <YYYYmmdd-HHMMSS>-<strategy>.txt. The optional series file
// next to it is a TSV of (elapsed_seconds, count) observations.
package library

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

const (
	headerPrefix = "Total time (seconds):"
	stampLayout  = "20060102-150405"
	seriesSuffix = "-series.tsv"
	seriesHeader = "elapsed_seconds\tcount"
)

// ErrBadHeader indicates an unparsable time header.
var ErrBadHeader = fmt.Errorf("%w: bad library header", primer.ErrInput)

// Library is the content of a library file.
type Library struct {
	// Elapsed is the recorded run time; negative when the file had none.
	Elapsed   time.Duration
	Sequences []primer.Sequence
}

// Write writes the header and the sequences to w.
func Write(w io.Writer, elapsed time.Duration, seqs []primer.Sequence) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\t%s\n", headerPrefix, strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64))
	for _, s := range seqs {
		bw.WriteString(s)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FileName returns the timestamped file name for a run.
func FileName(strategy string, now time.Time) string {
	return now.Format(stampLayout) + "-" + strategy + ".txt"
}

// WriteFile creates dir if needed and writes the library there under
// FileName. It returns the file path.
func WriteFile(dir, strategy string, now time.Time, elapsed time.Duration, seqs []primer.Sequence) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("library: %w", err)
	}
	path := filepath.Join(dir, FileName(strategy, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("library: %w", err)
	}
	if err = Write(f, elapsed, seqs); err != nil {
		f.Close()
		return "", fmt.Errorf("library: write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("library: close %s: %w", path, err)
	}
	return path, nil
}

// Read parses a library. The header is optional; blank lines are skipped
// and sequences are upper-cased. Sequences of any length are returned as is
// so that a later check can report them.
func Read(r io.Reader) (Library, error) {
	var (
		lib    = Library{Elapsed: -1}
		sc     = bufio.NewScanner(r)
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, headerPrefix); ok {
			sec, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			if err != nil {
				return lib, fmt.Errorf("%w: line %d: %v", ErrBadHeader, lineNo, err)
			}
			if sec >= 0 {
				lib.Elapsed = time.Duration(sec * float64(time.Second))
			}
			continue
		}
		line = strings.ToUpper(line)
		if k := strings.IndexFunc(line, func(c rune) bool { return !strings.ContainsRune("ATGC", c) }); k >= 0 {
			return lib, fmt.Errorf("%w: line %d, column %d", primer.ErrBadSymbol, lineNo, k+1)
		}
		lib.Sequences = append(lib.Sequences, line)
	}
	if err := sc.Err(); err != nil {
		return lib, fmt.Errorf("library: read: %w", err)
	}
	return lib, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return Library{Elapsed: -1}, fmt.Errorf("library: %w", err)
	}
	defer f.Close()

	lib, err := Read(f)
	if err != nil {
		return lib, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// SeriesPath returns the series file path for a library path.
func SeriesPath(libraryPath string) string {
	return strings.TrimSuffix(libraryPath, filepath.Ext(libraryPath)) + seriesSuffix
}

// WriteSeries writes the acceptance series as TSV.
func WriteSeries(w io.Writer, series []metrics.Observation) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(seriesHeader + "\n")
	for _, o := range series {
		fmt.Fprintf(bw, "%s\t%d\n", strconv.FormatFloat(o.Elapsed.Seconds(), 'f', 6, 64), o.Count)
	}
	return bw.Flush()
}

// WriteSeriesFile writes the series next to libraryPath and returns its path.
func WriteSeriesFile(libraryPath string, series []metrics.Observation) (string, error) {
	path := SeriesPath(libraryPath)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("library: %w", err)
	}
	err = WriteSeries(f, series)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("library: write %s: %w", path, err)
	}
	return path, nil
}

// ReadSeries parses a series TSV written by WriteSeries.
func ReadSeries(r io.Reader) ([]metrics.Observation, error) {
	var (
		out []metrics.Observation
		sc  = bufio.NewScanner(r)
		n   int
	)
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == seriesHeader {
			continue
		}
		secStr, countStr, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: series line %d", primer.ErrInput, n)
		}
		sec, err1 := strconv.ParseFloat(secStr, 64)
		count, err2 := strconv.ParseInt(countStr, 10, 64)
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("%w: series line %d: %v", primer.ErrInput, n, err)
		}
		out = append(out, metrics.Observation{Elapsed: time.Duration(sec * float64(time.Second)), Count: count})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("library: read series: %w", err)
	}
	return out, nil
}
