package loadgen

import (
	"sort"
	"sync"
	"time"
)

// sample is the outcome of one request.
type sample struct {
	task    string
	status  int
	err     error
	latency time.Duration
}

// TaskStats aggregates the samples of one named task. Min/Max/Total only
// cover samples with a measured latency; a request that never hit the wire
// counts as a failure but not in the latency figures.
type TaskStats struct {
	Name       string
	Requests   int64
	Failures   int64
	BotBlocked int64 // 403 responses, counted separately from other failures
	Min        time.Duration
	Max        time.Duration
	Total      time.Duration

	measured int64
}

// Avg returns the mean latency over the measured requests.
func (s TaskStats) Avg() time.Duration {
	if s.measured == 0 {
		return 0
	}
	return s.Total / time.Duration(s.measured)
}

// Report collects samples from all workers.
type Report struct {
	mu    sync.Mutex
	tasks map[string]*TaskStats

	Start time.Time
	End   time.Time
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{tasks: make(map[string]*TaskStats)}
}

func (r *Report) record(s sample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.tasks[s.task]
	if !ok {
		stats = &TaskStats{Name: s.task}
		r.tasks[s.task] = stats
	}

	stats.Requests++
	if s.err != nil || s.status != 200 {
		stats.Failures++
	}
	if s.status == 403 {
		stats.BotBlocked++
	}

	if s.latency > 0 {
		stats.measured++
		stats.Total += s.latency
		if stats.Min == 0 || s.latency < stats.Min {
			stats.Min = s.latency
		}
		if s.latency > stats.Max {
			stats.Max = s.latency
		}
	}
}

// Tasks returns the per-task aggregates sorted by name.
func (r *Report) Tasks() []TaskStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]TaskStats, 0, len(r.tasks))
	for _, stats := range r.tasks {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TotalRequests returns the request count across all tasks.
func (r *Report) TotalRequests() int64 {
	var total int64
	for _, stats := range r.Tasks() {
		total += stats.Requests
	}
	return total
}

// TotalFailures returns the failure count across all tasks.
func (r *Report) TotalFailures() int64 {
	var total int64
	for _, stats := range r.Tasks() {
		total += stats.Failures
	}
	return total
}

// Duration returns the wall-clock length of the run.
func (r *Report) Duration() time.Duration {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}
