package rs

import "github.com/galoisfield/rscodec/metrics"

// codecMetrics is the fixed set of instrumentation every Codec
// accumulates: a call counter per operation, a failure counter per
// decode path, and one histogram per decode path recording how many
// symbols each successful call repaired. Unlike a general string-keyed
// registry, the field set here is exactly the operations Codec exposes --
// there is no open-ended namespace to register into.
type codecMetrics struct {
	encodeCalls   *metrics.Counter
	detectCalls   *metrics.Counter
	detectCorrupt *metrics.Counter

	erasureCalls    *metrics.Counter
	erasureFailures *metrics.Counter
	erasureRepaired *metrics.Histogram

	errorCalls    *metrics.Counter
	errorFailures *metrics.Counter
	errorRepaired *metrics.Histogram

	mixedCalls    *metrics.Counter
	mixedFailures *metrics.Counter
	mixedRepaired *metrics.Histogram
}

func newCodecMetrics() *codecMetrics {
	return &codecMetrics{
		encodeCalls:   metrics.NewCounter("rs.encode.calls"),
		detectCalls:   metrics.NewCounter("rs.detect.calls"),
		detectCorrupt: metrics.NewCounter("rs.detect.corrupt"),

		erasureCalls:    metrics.NewCounter("rs.erasures.calls"),
		erasureFailures: metrics.NewCounter("rs.erasures.failures"),
		erasureRepaired: metrics.NewHistogram("rs.erasures.repaired"),

		errorCalls:    metrics.NewCounter("rs.errors.calls"),
		errorFailures: metrics.NewCounter("rs.errors.failures"),
		errorRepaired: metrics.NewHistogram("rs.errors.repaired"),

		mixedCalls:    metrics.NewCounter("rs.correct.calls"),
		mixedFailures: metrics.NewCounter("rs.correct.failures"),
		mixedRepaired: metrics.NewHistogram("rs.correct.repaired"),
	}
}

func (m *codecMetrics) recordEncode() {
	m.encodeCalls.Inc()
}

func (m *codecMetrics) recordDetect(ok bool) {
	m.detectCalls.Inc()
	if !ok {
		m.detectCorrupt.Inc()
	}
}

// kind selects one of the three decode paths; recordCorrect is called
// once per CorrectErasures/CorrectErrors/Correct invocation.
type decodeKind int

const (
	decodeErasures decodeKind = iota
	decodeErrors
	decodeMixed
)

func (m *codecMetrics) recordCorrect(kind decodeKind, corrected int, err error) {
	calls, failures, repaired := m.forKind(kind)
	calls.Inc()
	if err != nil {
		failures.Inc()
		return
	}
	repaired.Observe(int64(corrected))
}

func (m *codecMetrics) forKind(kind decodeKind) (calls, failures *metrics.Counter, repaired *metrics.Histogram) {
	switch kind {
	case decodeErasures:
		return m.erasureCalls, m.erasureFailures, m.erasureRepaired
	case decodeErrors:
		return m.errorCalls, m.errorFailures, m.errorRepaired
	default:
		return m.mixedCalls, m.mixedFailures, m.mixedRepaired
	}
}

// CodecMetricsSnapshot is a point-in-time copy of a Codec's
// instrumentation, safe to read after the Codec has moved on to other
// calls.
type CodecMetricsSnapshot struct {
	EncodeCalls   int64
	DetectCalls   int64
	DetectCorrupt int64

	ErasureCalls    int64
	ErasureFailures int64
	ErasureRepaired HistogramSnapshot
	ErrorCalls      int64
	ErrorFailures   int64
	ErrorRepaired   HistogramSnapshot
	CorrectCalls    int64
	CorrectFailures int64
	CorrectRepaired HistogramSnapshot
}

// HistogramSnapshot is a point-in-time copy of a metrics.Histogram.
type HistogramSnapshot struct {
	Count int64
	Sum   int64
	Min   int64
	Max   int64
	Mean  float64
}

func snapshotHistogram(h *metrics.Histogram) HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Sum:   h.Sum(),
		Min:   h.Min(),
		Max:   h.Max(),
		Mean:  h.Mean(),
	}
}

// Metrics returns a snapshot of the Codec's instrumentation, so a host
// application can alert on a rising correction-failure rate or a spike in
// repaired-symbol counts without holding a reference into the Codec's
// internals.
func (c *Codec) Metrics() CodecMetricsSnapshot {
	m := c.metrics
	return CodecMetricsSnapshot{
		EncodeCalls:   m.encodeCalls.Value(),
		DetectCalls:   m.detectCalls.Value(),
		DetectCorrupt: m.detectCorrupt.Value(),

		ErasureCalls:    m.erasureCalls.Value(),
		ErasureFailures: m.erasureFailures.Value(),
		ErasureRepaired: snapshotHistogram(m.erasureRepaired),
		ErrorCalls:      m.errorCalls.Value(),
		ErrorFailures:   m.errorFailures.Value(),
		ErrorRepaired:   snapshotHistogram(m.errorRepaired),
		CorrectCalls:    m.mixedCalls.Value(),
		CorrectFailures: m.mixedFailures.Value(),
		CorrectRepaired: snapshotHistogram(m.mixedRepaired),
	}
}
