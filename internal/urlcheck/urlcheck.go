// Package urlcheck probes external URLs referenced by articles and
// transcripts. It is the only part of the pipeline that touches the network,
// and it only ever produces warnings: an unreachable URL is suspicious, not
// structurally broken.
package urlcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coursekit/courselint/internal/logging"
	"github.com/coursekit/courselint/pkg/interfaces"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultBatchSize = 8
)

// Check is one URL to probe, with the file/line/label used to attribute the
// resulting diagnostic.
type Check struct {
	URL   string
	File  string
	Line  int
	Label string
}

// Config tunes the checker.
type Config struct {
	// Timeout bounds each individual request.
	Timeout time.Duration
	// BatchSize is the fixed number of requests in flight at once. Batches
	// bound load on remote servers; a stalled request delays only its own
	// batch.
	BatchSize int
	// Client overrides the HTTP client, primarily for tests.
	Client *http.Client
	Logger interfaces.Logger
}

// Checker issues bounded-concurrency reachability probes.
type Checker struct {
	client    *http.Client
	timeout   time.Duration
	batchSize int
	logger    interfaces.Logger
}

// New constructs a Checker, applying defaults for any zero option.
func New(cfg Config) *Checker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Checker{
		client:    client,
		timeout:   timeout,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run probes every check and returns the resulting warnings in input order,
// regardless of completion order. A timed-out request never cancels its
// batch siblings.
func (c *Checker) Run(ctx context.Context, checks []Check) []interfaces.Diagnostic {
	if len(checks) == 0 {
		return nil
	}

	results := make([]*interfaces.Diagnostic, len(checks))

	for offset := 0; offset < len(checks); offset += c.batchSize {
		end := offset + c.batchSize
		if end > len(checks) {
			end = len(checks)
		}

		group := new(errgroup.Group)
		for i := offset; i < end; i++ {
			group.Go(func() error {
				results[i] = c.probe(ctx, checks[i])
				return nil
			})
		}
		// Goroutines only write disjoint slice slots; Wait never fails.
		_ = group.Wait()
	}

	var diags []interfaces.Diagnostic
	for _, result := range results {
		if result != nil {
			diags = append(diags, *result)
		}
	}
	return diags
}

func (c *Checker) probe(ctx context.Context, check Check) *interfaces.Diagnostic {
	status, err := c.request(ctx, http.MethodHead, check.URL)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = c.request(ctx, http.MethodGet, check.URL)
	}

	if err != nil {
		c.logger.Debug("urlcheck.request.failed", "url", check.URL, "error", err)
		return c.warning(check, fmt.Sprintf("URL '%s' is unreachable: %v", check.URL, err))
	}

	if reachable(status) {
		return nil
	}
	return c.warning(check, fmt.Sprintf("URL '%s' returned status %d", check.URL, status))
}

func (c *Checker) request(ctx context.Context, method, url string) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// reachable accepts 2xx/3xx, plus 429: a rate-limited server is alive even
// though it refused this probe.
func reachable(status int) bool {
	if status >= 200 && status < 400 {
		return true
	}
	return status == http.StatusTooManyRequests
}

func (c *Checker) warning(check Check, message string) *interfaces.Diagnostic {
	if check.Label != "" {
		message = fmt.Sprintf("%s (%s)", message, check.Label)
	}
	return &interfaces.Diagnostic{
		File:       check.File,
		Line:       check.Line,
		Message:    message,
		Suggestion: "Verify the URL or update the reference",
		Severity:   interfaces.SeverityWarning,
		Category:   interfaces.CategoryURL,
	}
}
