package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process request counters. Exposed as a JSON
// snapshot on the admin surface; a full metrics pipeline is out of scope.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
	previews        uint64
	builds          uint64
	submissions     uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordPreview()    { atomic.AddUint64(&c.previews, 1) }
func (c *Collector) RecordBuild()      { atomic.AddUint64(&c.builds, 1) }
func (c *Collector) RecordSubmission() { atomic.AddUint64(&c.submissions, 1) }

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      errs,
		"rateLimitedTotal": limited,
		"avgDurationMs":    avg,
		"previewsTotal":    atomic.LoadUint64(&c.previews),
		"buildsTotal":      atomic.LoadUint64(&c.builds),
		"submissionsTotal": atomic.LoadUint64(&c.submissions),
	}
}
