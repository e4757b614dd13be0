package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace for all metrics.
const metricsNamespace = "primerlib"

// Rejection reasons used as the "reason" label.
const (
	ReasonComposition = "composition"
	ReasonDistance    = "distance"
)

// Collector exposes a Run as Prometheus metrics.
//
// Values are read from the Run at scrape time with MustNewConstMetric, so the
// collector never holds state of its own. Labels run_id and strategy are
// constant per collector.
//
// Metrics:
//
//   - primerlib_iterations_total: units of work performed
//   - primerlib_rejections_total{reason}: candidates refused by reason
//   - primerlib_selected: current library size
//   - primerlib_elapsed_seconds: wall time of the run
//   - primerlib_cpu_seconds: process CPU time over the run
//   - primerlib_throughput_per_second: accepted candidates per second
type Collector struct {
	run *Run

	iterations *prometheus.Desc
	rejections *prometheus.Desc
	selected   *prometheus.Desc
	elapsed    *prometheus.Desc
	cpu        *prometheus.Desc
	throughput *prometheus.Desc
}

// NewCollector builds a Collector reading run.
func NewCollector(run *Run, runID, strategy string) *Collector {
	labels := prometheus.Labels{"run_id": runID, "strategy": strategy}
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", name), help, variable, labels)
	}

	return &Collector{
		run:        run,
		iterations: desc("iterations_total", "Units of work performed (builder rows, elimination steps, search nodes)."),
		rejections: desc("rejections_total", "Candidates refused, by reason.", "reason"),
		selected:   desc("selected", "Sequences currently in the library."),
		elapsed:    desc("elapsed_seconds", "Wall time of the run in seconds."),
		cpu:        desc("cpu_seconds", "Process CPU time (user plus system) over the run in seconds."),
		throughput: desc("throughput_per_second", "Accepted sequences per second of wall time."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.iterations
	ch <- c.rejections
	ch <- c.selected
	ch <- c.elapsed
	ch <- c.cpu
	ch <- c.throughput
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.run.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.iterations, prometheus.CounterValue, float64(s.Iterations))
	ch <- prometheus.MustNewConstMetric(c.rejections, prometheus.CounterValue, float64(s.RejectedComposition), ReasonComposition)
	ch <- prometheus.MustNewConstMetric(c.rejections, prometheus.CounterValue, float64(s.RejectedDistance), ReasonDistance)
	ch <- prometheus.MustNewConstMetric(c.selected, prometheus.GaugeValue, float64(s.Accepted))
	ch <- prometheus.MustNewConstMetric(c.elapsed, prometheus.GaugeValue, s.Elapsed.Seconds())
	ch <- prometheus.MustNewConstMetric(c.cpu, prometheus.GaugeValue, s.CPU.Seconds())
	ch <- prometheus.MustNewConstMetric(c.throughput, prometheus.GaugeValue, s.Throughput)
}

// WriteTextfile writes the collector's metrics to path in the node_exporter
// textfile-collector format. The file is replaced atomically.
func WriteTextfile(path string, c *Collector) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return err
	}

	return prometheus.WriteToTextfile(path, reg)
}
