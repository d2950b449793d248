package capture

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

const captureStatsLogInterval = 5 * time.Second

// Metered wraps a Source and records capture counts and latency.
type Metered struct {
	src    Source
	logger *slog.Logger

	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastCapture  atomic.Int64
	lastLog      time.Time
}

// NewMetered wraps src. Stats are logged at debug level every few seconds.
func NewMetered(src Source, logger *slog.Logger) *Metered {
	return &Metered{src: src, logger: logger, lastLog: time.Now()}
}

func (m *Metered) Next(ctx context.Context) (*image.RGBA, error) {
	start := time.Now()
	img, err := m.src.Next(ctx)
	if err != nil || img == nil {
		m.skipped.Add(1)
		return img, err
	}
	m.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	m.captures.Add(1)
	m.sequence.Add(1)
	now := time.Now()
	m.lastCapture.Store(now.UnixNano())
	if now.Sub(m.lastLog) >= captureStatsLogInterval {
		m.lastLog = now
		m.logStats()
	}
	return img, nil
}

// Recycle forwards to the wrapped source when it pools frames.
func (m *Metered) Recycle(img *image.RGBA) {
	if r, ok := m.src.(Recycler); ok {
		r.Recycle(img)
	}
}

func (m *Metered) Close() error { return m.src.Close() }

// Stats returns a snapshot of the counters.
func (m *Metered) Stats() CaptureStats {
	captures := m.captures.Load()
	total := m.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	age := time.Duration(0)
	if ns := m.lastCapture.Load(); ns != 0 {
		last = time.Unix(0, ns)
		age = time.Since(last)
	}
	return CaptureStats{
		Captures:         captures,
		Skipped:          m.skipped.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      last,
		LatestFrameAge:   age,
		Sequence:         m.sequence.Load(),
	}
}

func (m *Metered) logStats() {
	if m.logger == nil {
		return
	}
	stats := m.Stats()
	m.logger.Debug("capture.stats",
		"captures", humanize.Comma(int64(stats.Captures)),
		"skipped", humanize.Comma(int64(stats.Skipped)),
		"avg_capture", stats.AvgCapture,
		"last_capture", humanize.Time(stats.LastCapture),
	)
}

var _ Recycler = (*Metered)(nil)
