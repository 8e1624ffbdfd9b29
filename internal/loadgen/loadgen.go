// Package loadgen drives HTTP GET load against the n11 search endpoint with
// weighted task selection and randomized query terms, paced by a shared rate
// limiter.
package loadgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/Awaveform/insider-one-assessment/internal/common"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Task names as reported in the summary.
const (
	TaskHomepage     = "GET / (homepage)"
	TaskSearch       = "GET /arama?q=[term]"
	TaskAutocomplete = "GET /arama?q=[partial] (autocomplete)"
	TaskListing      = "GET /arama?q=[term]&pg=2 (page 2)"
)

// task is one weighted step of the simulated user journey.
type task struct {
	name   string
	weight int
	build  func(rng *rand.Rand, base string, cfg common.LoadTestConfig) string
}

// Search is the heaviest task, listing browsing half that, autocomplete the
// lightest.
var tasks = []task{
	{
		name:   TaskSearch,
		weight: 3,
		build: func(rng *rand.Rand, base string, cfg common.LoadTestConfig) string {
			query := url.Values{"q": {cfg.SearchTerms[rng.Intn(len(cfg.SearchTerms))]}}
			return base + cfg.SearchPath + "?" + query.Encode()
		},
	},
	{
		name:   TaskListing,
		weight: 2,
		build: func(rng *rand.Rand, base string, cfg common.LoadTestConfig) string {
			query := url.Values{
				"q":  {cfg.SearchTerms[rng.Intn(len(cfg.SearchTerms))]},
				"pg": {"2"},
			}
			return base + cfg.SearchPath + "?" + query.Encode()
		},
	},
	{
		name:   TaskAutocomplete,
		weight: 1,
		build: func(rng *rand.Rand, base string, cfg common.LoadTestConfig) string {
			term := cfg.SearchTerms[rng.Intn(len(cfg.SearchTerms))]
			partial := string([]rune(term)[:min(3, len([]rune(term)))])
			query := url.Values{"q": {partial}}
			return base + cfg.SearchPath + "?" + query.Encode()
		},
	},
}

// Runner executes the load test.
type Runner struct {
	cfg        common.LoadTestConfig
	duration   time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// NewRunner builds a runner from the loadtest configuration section.
func NewRunner(cfg common.LoadTestConfig, duration time.Duration) *Runner {
	return &Runner{
		cfg:        cfg,
		duration:   duration,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		logger:     common.GetLogger(),
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests to
// install a mock transport.
func (r *Runner) WithHTTPClient(httpClient *http.Client) *Runner {
	r.httpClient = httpClient
	return r
}

// Run executes the configured number of simulated users for the run
// duration and returns the aggregated report. Each user loads the homepage
// once before entering its task loop, like a real session would.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, r.duration)
	defer cancel()

	report := NewReport()
	report.Start = time.Now()

	r.logger.Info().
		Int("users", r.cfg.Users).
		Float64("rps", r.cfg.RPS).
		Str("duration", r.duration.String()).
		Str("base_url", r.cfg.BaseURL).
		Msg("Load test starting")

	var wg sync.WaitGroup
	for worker := 0; worker < r.cfg.Users; worker++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r.runUser(ctx, rand.New(rand.NewSource(seed)), report)
		}(time.Now().UnixNano() + int64(worker))
	}
	wg.Wait()

	report.End = time.Now()
	r.logger.Info().
		Int64("requests", report.TotalRequests()).
		Int64("failures", report.TotalFailures()).
		Msg("Load test finished")

	return report, nil
}

func (r *Runner) runUser(ctx context.Context, rng *rand.Rand, report *Report) {
	if err := r.limiter.Wait(ctx); err != nil {
		return
	}
	r.do(ctx, TaskHomepage, r.cfg.BaseURL+"/", report)

	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return // run deadline reached
		}
		t := r.pickTask(rng)
		r.do(ctx, t.name, t.build(rng, r.cfg.BaseURL, r.cfg), report)
	}
}

// pickTask draws a task proportionally to its weight.
func (r *Runner) pickTask(rng *rand.Rand) task {
	total := 0
	for _, t := range tasks {
		total += t.weight
	}
	n := rng.Intn(total)
	for _, t := range tasks {
		n -= t.weight
		if n < 0 {
			return t
		}
	}
	return tasks[len(tasks)-1]
}

func (r *Runner) do(ctx context.Context, name, fullURL string, report *Report) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		report.record(sample{task: name, err: err})
		return
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	latency := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
			return // run ended mid-flight, not a service failure
		}
		r.logger.Warn().Err(err).Str("task", name).Msg("Request failed")
		report.record(sample{task: name, err: err, latency: latency})
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden:
		r.logger.Warn().Str("task", name).Msg("Blocked by bot detection (403)")
	default:
		r.logger.Warn().
			Str("task", name).
			Int("status", resp.StatusCode).
			Msg(fmt.Sprintf("%s returned unexpected status", name))
	}
	report.record(sample{task: name, status: resp.StatusCode, latency: latency})
}
