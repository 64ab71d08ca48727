// Package client drives the two-call payment simulation flow: create a
// transaction, push it to the requested terminal status, wait out the fake
// processing delay and decide which page the user lands on. Every error
// branch converges on the failure page so a sleeping backend never leaves
// the user stuck on a spinner.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
)

// Page is a redirect target in the demo UI.
type Page string

const (
	PageSuccess Page = "transaction-success.html"
	PageFailure Page = "transaction-failed.html"
)

const (
	defaultTimeout = 10 * time.Second
	defaultDelay   = 1500 * time.Millisecond
)

// Result is the outcome of a simulation run. Reason is a human-readable
// error category, set only when the flow failed; it is what the failure
// page displays.
type Result struct {
	Redirect Page
	Reason   string
}

func (r Result) Failed() bool {
	return r.Redirect == PageFailure
}

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	delay   time.Duration
	prefs   Preferences
}

type Option func(*Client)

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithDelay sets the simulated processing delay applied before the redirect.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

func WithPreferences(p Preferences) Option {
	return func(c *Client) {
		c.prefs = p
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: defaultTimeout,
		delay:   defaultDelay,
		prefs:   DefaultPreferences(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Simulate runs the full payment flow. wantSuccess picks the terminal status
// the caller wants the transaction pushed to; any network or API failure
// overrides it and routes to the failure page with a mapped reason.
func (c *Client) Simulate(ctx context.Context, wantSuccess bool) Result {
	tx, err := c.createTransaction(ctx, c.prefs.transactionRequest())
	if err != nil {
		return c.finish(ctx, Result{Redirect: PageFailure, Reason: reasonFor(err)})
	}

	status := models.StatusFailed
	if wantSuccess {
		status = models.StatusSuccess
	}
	if _, err := c.updateStatus(ctx, tx.ID, status); err != nil {
		return c.finish(ctx, Result{Redirect: PageFailure, Reason: reasonFor(err)})
	}

	page := PageFailure
	if wantSuccess {
		page = PageSuccess
	}
	return c.finish(ctx, Result{Redirect: page})
}

func (c *Client) createTransaction(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	var env models.Response
	if err := c.doJSON(ctx, http.MethodPost, "/", req, &env); err != nil {
		return nil, err
	}
	if env.Data == nil || env.Data.ID == "" {
		return nil, errors.New("create response is missing the transaction")
	}
	return env.Data, nil
}

func (c *Client) updateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	var env models.Response
	req := models.UpdateStatusRequest{Status: status}
	if err := c.doJSON(ctx, http.MethodPut, "/"+id+"/status", req, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New("update response is missing the transaction")
	}
	return env.Data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apiError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// finish applies the fixed processing delay before handing back the result.
// Context cancellation cuts the delay short.
func (c *Client) finish(ctx context.Context, r Result) Result {
	if c.delay <= 0 {
		return r
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return r
}

type apiError struct {
	StatusCode int
}

func (e *apiError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

func reasonFor(err error) string {
	var api *apiError
	switch {
	case errors.As(err, &api):
		return categorize(api.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	default:
		return "Network error. Please check your connection."
	}
}

func categorize(statusCode int) string {
	switch {
	case statusCode == http.StatusBadRequest:
		return "Bad request"
	case statusCode == http.StatusUnauthorized:
		return "Unauthorized"
	case statusCode == http.StatusForbidden:
		return "Forbidden"
	case statusCode == http.StatusNotFound:
		return "Not found"
	case statusCode == http.StatusRequestTimeout:
		return "Request timed out"
	case statusCode == http.StatusTooManyRequests:
		return "Too many requests. Please try again later."
	case statusCode >= 500:
		return "Server error. Please try again later."
	default:
		return fmt.Sprintf("HTTP error %d", statusCode)
	}
}
