package metrics

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Reporter logs throttled progress for one stage of a run.
//
// Update is cheap when the limiter denies a token, so it can sit on a hot
// path; it never waits. A nil *Reporter ignores every call.
type Reporter struct {
	log     *slog.Logger
	limiter *rate.Limiter
	stage   string
	total   int64
	started time.Time
	now     func() time.Time
}

// NewReporter returns a Reporter emitting at most one record per interval.
// It returns nil when log is nil or interval is not positive, which disables
// reporting.
func NewReporter(log *slog.Logger, stage string, total int64, interval time.Duration) *Reporter {
	if log == nil || interval <= 0 {
		return nil
	}

	return &Reporter{
		log:     log,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		stage:   stage,
		total:   total,
		started: time.Now(),
		now:     time.Now,
	}
}

// Update reports done units of work if the interval has elapsed.
func (p *Reporter) Update(done int64) {
	if p == nil || !p.limiter.Allow() {
		return
	}
	p.emit("progress", done)
}

// Done reports the final count unconditionally.
func (p *Reporter) Done(done int64) {
	if p == nil {
		return
	}
	p.emit("stage complete", done)
}

func (p *Reporter) emit(msg string, done int64) {
	elapsed := p.now().Sub(p.started)
	attrs := []any{
		slog.String("stage", p.stage),
		slog.Int64("done", done),
		slog.Duration("elapsed", elapsed),
	}
	if p.total > 0 {
		attrs = append(attrs,
			slog.Int64("total", p.total),
			slog.Float64("percent", 100*float64(done)/float64(p.total)),
		)
		if done > 0 && done < p.total {
			eta := time.Duration(float64(elapsed) * float64(p.total-done) / float64(done))
			attrs = append(attrs, slog.Duration("eta", eta.Round(time.Second)))
		}
	}
	p.log.Info(msg, attrs...)
}
