// Package i5 provides the main client interface for Interface5 submissions.
package i5

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CondeSun/i5Req/pkg/reliability"
	"github.com/CondeSun/i5Req/pkg/request"
	"github.com/CondeSun/i5Req/pkg/transport"
)

// Client is the main client for submitting requests to Interface5
type Client struct {
	httpClient *transport.HTTPSClient
	tracker    *reliability.SubmissionTracker
	logger     *slog.Logger
	metrics    *clientMetrics
}

// ClientConfig holds client configuration
type ClientConfig struct {
	// HTTPSConfig configures TLS and timeouts; nil selects the defaults.
	HTTPSConfig *transport.HTTPSConfig
	// Logger receives structured submission logs; nil selects slog.Default.
	Logger *slog.Logger
	// Registerer receives the client's prometheus collectors; nil disables
	// metrics.
	Registerer prometheus.Registerer
	// RetentionWindow bounds how long finished async submissions stay
	// queryable. Zero selects 24h.
	RetentionWindow time.Duration
}

// Receipt is the answer of the WebServiceInput endpoint for an accepted
// batch.
type Receipt struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the receipt body into v. The endpoint's answer shape
// is scenario-specific, so decoding is left to the caller.
func (r *Receipt) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding receipt: %w", err)
	}
	return nil
}

// NewClient creates a new Interface5 client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = &ClientConfig{}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	retention := config.RetentionWindow
	if retention == 0 {
		retention = 24 * time.Hour
	}

	var metrics *clientMetrics
	if config.Registerer != nil {
		var err error
		metrics, err = newClientMetrics(config.Registerer)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	return &Client{
		httpClient: transport.NewHTTPSClient(config.HTTPSConfig),
		tracker:    reliability.NewSubmissionTracker(retention),
		logger:     logger,
		metrics:    metrics,
	}, nil
}

// Close releases the client's background resources, stopping the
// submission tracker's cleanup goroutine. Outcomes of finished async
// submissions stay queryable after Close.
func (c *Client) Close() {
	c.tracker.Close()
}

// Submit sends a validated request to the endpoint and waits for the
// answer. Only requests that passed Validate can reach this point.
func (c *Client) Submit(ctx context.Context, validated *request.ValidatedRequest, endpoint Endpoint) (*Receipt, error) {
	receipt, err := c.post(ctx, validated, endpoint, "sync")
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// SubmitAsync sends a validated request in fire-and-continue mode. It
// returns a submission id immediately; delivery happens in the background
// and the outcome can be observed via Status or Wait. There are no
// retries: a failed delivery stays failed.
//
// The passed context only gates the caller; the background delivery uses
// its own timeout derived from the transport configuration.
func (c *Client) SubmitAsync(ctx context.Context, validated *request.ValidatedRequest, endpoint Endpoint) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	submissionID := uuid.New().String()
	c.tracker.Track(submissionID)

	go func() {
		c.tracker.MarkSending(submissionID)

		receipt, err := c.post(context.Background(), validated, endpoint, "async")
		if err != nil {
			c.tracker.RecordFailure(submissionID, err)
			c.logger.Error("async submission failed",
				"submission_id", submissionID,
				"operation", validated.Name(),
				"error", err,
			)
			return
		}

		c.tracker.RecordDelivery(submissionID, receipt.StatusCode, receipt.Body)
	}()

	return submissionID, nil
}

// Status returns a snapshot of an async submission.
func (c *Client) Status(submissionID string) (reliability.Submission, bool) {
	return c.tracker.Get(submissionID)
}

// Wait blocks until an async submission reaches a terminal state or the
// context is cancelled.
func (c *Client) Wait(ctx context.Context, submissionID string) (reliability.Submission, error) {
	return c.tracker.Wait(ctx, submissionID)
}

func (c *Client) post(ctx context.Context, validated *request.ValidatedRequest, endpoint Endpoint, mode string) (*Receipt, error) {
	body, err := validated.Body()
	if err != nil {
		return nil, err
	}

	log := c.logger.With(
		"operation", validated.Name(),
		"documents", validated.DocumentCount(),
		"endpoint", endpoint.URL(),
	)

	resp, err := c.httpClient.Post(ctx, endpoint.URL(), body)
	if err != nil {
		c.metrics.observe(mode, "failed", len(body))
		log.Error("submission failed", "error", err)
		return nil, fmt.Errorf("posting batch to Interface5: %w", err)
	}

	c.metrics.observe(mode, "delivered", len(body))
	log.Info("batch submitted", "status", resp.StatusCode)

	return &Receipt{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}
