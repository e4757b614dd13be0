package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

// Mode selects how the online generator draws candidates.
type Mode string

// Sampling modes.
const (
	// Uniform draws every base uniformly; many candidates fail the GC check.
	Uniform Mode = "uniform"
	// Balanced draws the GC count first, as BalancedGC does.
	Balanced Mode = "balanced-gc"
	// Frequencies draws each position with weights inversely proportional
	// to how often each base already sits there in the library, and redraws
	// the whole candidate until its GC content is admissible.
	Frequencies Mode = "frequencies"
	// FrequenciesNoReroll draws like Frequencies once and leaves a GC
	// failure to the composition check.
	FrequenciesNoReroll Mode = "frequencies-no-reroll"
)

// maxRerolls caps the redraws of one Frequencies candidate; past it the last
// draw is returned and the composition check rejects it.
const maxRerolls = 1000

// ErrUnknownMode indicates a mode name outside Modes().
var ErrUnknownMode = errors.New("generate: unknown mode")

// Modes returns every mode in a stable order.
func Modes() []Mode { return []Mode{Uniform, Balanced, Frequencies, FrequenciesNoReroll} }

// ParseMode accepts a mode name in either '-' or '_' spelling, any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type onlineOptions struct {
	mode          Mode
	seed          int64
	maxIterations int64
	oracle        levenshtein.Oracle
	run           *metrics.Run
	onAccept      func(primer.Sequence, int)
}

// OnlineOption configures Online.
type OnlineOption func(*onlineOptions)

// WithMode sets the sampling mode; the default is Balanced.
func WithMode(m Mode) OnlineOption {
	return func(o *onlineOptions) { o.mode = m }
}

// WithSeed seeds the generator; 0 means the default seed.
func WithSeed(seed int64) OnlineOption {
	return func(o *onlineOptions) { o.seed = seed }
}

// WithMaxIterations stops after n candidates; n <= 0 means no limit.
func WithMaxIterations(n int64) OnlineOption {
	return func(o *onlineOptions) { o.maxIterations = n }
}

// WithOracle replaces the exact distance oracle.
func WithOracle(oracle levenshtein.Oracle) OnlineOption {
	return func(o *onlineOptions) { o.oracle = oracle }
}

// WithMetrics records one iteration per candidate and its outcome in run.
func WithMetrics(run *metrics.Run) OnlineOption {
	return func(o *onlineOptions) { o.run = run }
}

// WithOnAccept registers fn, called with each accepted sequence and the
// library size after it.
func WithOnAccept(fn func(primer.Sequence, int)) OnlineOption {
	return func(o *onlineOptions) { o.onAccept = fn }
}

// OnlineResult is the library grown by Online.
type OnlineResult struct {
	Sequences []primer.Sequence

	// Iterations is the number of candidates drawn.
	Iterations int64

	// Truncated is set when the context ended or the iteration limit was
	// hit before the target.
	Truncated bool
}

// Online grows a library one candidate at a time until it holds target
// sequences. Each candidate is drawn according to the mode, checked for GC
// content, then checked against every accepted sequence; the first pair
// closer than threshold rejects it.
//
// Cancellation and the iteration limit are not errors: the library so far is
// returned with Truncated set. The result satisfies the library check for c
// and threshold in every case.
//
// Errors: ErrBadCount, ErrNoAdmissibleGC, ErrUnknownMode.
func Online(ctx context.Context, target int, c primer.Constraints, threshold int, opts ...OnlineOption) (OnlineResult, error) {
	o := onlineOptions{mode: Balanced, oracle: levenshtein.Exact{}}
	for _, fn := range opts {
		fn(&o)
	}
	if target < 0 {
		return OnlineResult{}, fmt.Errorf("%w: %d", ErrBadCount, target)
	}
	if o.seed == 0 {
		o.seed = defaultSeed
	}
	if o.oracle == nil {
		o.oracle = levenshtein.Exact{}
	}
	counts := GCCounts(c)
	if len(counts) == 0 {
		return OnlineResult{}, ErrNoAdmissibleGC
	}
	draw, err := newSampler(o.mode, c, counts, rand.New(rand.NewSource(o.seed)))
	if err != nil {
		return OnlineResult{}, err
	}

	var res OnlineResult
	o.run.Start()
	defer o.run.Stop()
	for len(res.Sequences) < target {
		if ctx.Err() != nil || (o.maxIterations > 0 && res.Iterations >= o.maxIterations) {
			res.Truncated = true
			break
		}
		res.Iterations++
		o.run.AddIterations(1)

		s := draw.next()
		if !primer.IndividuallyValid(s, c) {
			o.run.RejectComposition()
			continue
		}
		if !compatible(s, res.Sequences, threshold, o.oracle) {
			o.run.RejectDistance()
			continue
		}
		res.Sequences = append(res.Sequences, s)
		draw.accepted(s)
		o.run.Accept()
		if o.onAccept != nil {
			o.onAccept(s, len(res.Sequences))
		}
	}

	return res, nil
}

func compatible(s primer.Sequence, lib []primer.Sequence, threshold int, oracle levenshtein.Oracle) bool {
	for _, t := range lib {
		if !primer.PairValid(s, t, threshold, oracle) {
			return false
		}
	}
	return true
}

// sampler draws candidates and learns from accepted ones.
type sampler struct {
	mode   Mode
	c      primer.Constraints
	counts []int
	rng    *rand.Rand

	// freq[i][b] counts base bases[b] at position i in the library, from 1.
	freq [][len(bases)]int
	buf  []byte
}

func newSampler(m Mode, c primer.Constraints, counts []int, rng *rand.Rand) (*sampler, error) {
	m, err := ParseMode(string(m))
	if err != nil {
		return nil, err
	}
	s := &sampler{mode: m, c: c, counts: counts, rng: rng}
	if m == Frequencies || m == FrequenciesNoReroll {
		s.freq = make([][len(bases)]int, c.Length)
		for i := range s.freq {
			s.freq[i] = [len(bases)]int{1, 1, 1, 1}
		}
		s.buf = make([]byte, c.Length)
	}
	return s, nil
}

func (s *sampler) next() primer.Sequence {
	switch s.mode {
	case Uniform:
		return Random(s.rng, s.c.Length)
	case Frequencies:
		var cand primer.Sequence
		for range maxRerolls {
			cand = s.inverseFrequency()
			if primer.ValidComposition(cand, s.c) {
				break
			}
		}
		return cand
	case FrequenciesNoReroll:
		return s.inverseFrequency()
	default:
		return balanced(s.rng, s.c.Length, s.counts)
	}
}

// inverseFrequency draws position i's base with weight 1/freq[i][b].
func (s *sampler) inverseFrequency() primer.Sequence {
	for i := range s.buf {
		var (
			w     [len(bases)]float64
			total float64
		)
		for b, n := range s.freq[i] {
			w[b] = 1 / float64(n)
			total += w[b]
		}
		x := s.rng.Float64() * total
		pick := len(bases) - 1
		for b := range w {
			if x < w[b] {
				pick = b
				break
			}
			x -= w[b]
		}
		s.buf[i] = bases[pick]
	}
	return string(s.buf)
}

func (s *sampler) accepted(seq primer.Sequence) {
	if s.freq == nil {
		return
	}
	for i := 0; i < len(seq); i++ {
		s.freq[i][strings.IndexByte(bases, seq[i])]++
	}
}
