package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RouteStats is the accumulated timing for one route.
type RouteStats struct {
	AvgMs float64 `json:"avg"`
	Count int64   `json:"count"`
}

// PerfMonitor accumulates per-route request timings. The health endpoint
// exposes the snapshot; there is no external metrics sink.
type PerfMonitor struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	counts map[string]int64
}

func NewPerfMonitor() *PerfMonitor {
	return &PerfMonitor{
		totals: make(map[string]time.Duration),
		counts: make(map[string]int64),
	}
}

// Middleware times every request, keyed by method and path.
func (p *PerfMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		p.record(r.Method+" "+r.URL.Path, time.Since(start))
	})
}

func (p *PerfMonitor) record(route string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totals[route] += elapsed
	p.counts[route]++
}

// Snapshot returns average latency and request count per route.
func (p *PerfMonitor) Snapshot() map[string]RouteStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]RouteStats, len(p.counts))
	for route, count := range p.counts {
		out[route] = RouteStats{
			AvgMs: float64(p.totals[route].Milliseconds()) / float64(count),
			Count: count,
		}
	}
	return out
}
