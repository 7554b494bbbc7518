// Package api is the remote-backend adapter: a thin JSON client for
// the finance REST API, mapped onto the store.TransactionStore
// contract. Connectivity failures and backend rejections surface as
// the store package's typed errors, never as message strings to grep.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/store"
)

// Client talks to the remote transactions API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ store.TransactionStore = (*Client)(nil)

// New creates a client for the given base URL (e.g.
// "https://backend-finanzas.example.com/api").
func New(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", baseURL, err)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// listResponse matches the backend's list envelope.
type listResponse struct {
	Data []core.Transaction `json:"data"`
}

func (c *Client) List(ctx context.Context) ([]core.Transaction, error) {
	body, err := c.do(ctx, http.MethodGet, "/transactions", nil)
	if err != nil {
		return nil, err
	}

	var envelope listResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}
	// Some deployments return the bare array.
	var txs []core.Transaction
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, fmt.Errorf("%w: decode list response: %v", store.ErrUnavailable, err)
	}
	return txs, nil
}

func (c *Client) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("encode transaction: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/transactions", payload)
	if err != nil {
		return core.Transaction{}, err
	}

	var stored core.Transaction
	if err := json.Unmarshal(body, &stored); err != nil || stored.ID == "" {
		// Backend acknowledged but returned no usable entity; keep the
		// record we sent as authoritative.
		return tx, nil
	}
	return stored, nil
}

func (c *Client) Remove(ctx context.Context, id string) (bool, error) {
	_, err := c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil)
	if err == nil {
		return true, nil
	}
	var status *statusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		// Nothing to remove: idempotent-friendly, not an error.
		return false, nil
	}
	return false, err
}

func (c *Client) RemoveAll(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/transactions", nil)
	return err
}

// statusError carries the HTTP status of a rejected request so Remove
// can treat 404 as "nothing to remove".
type statusError struct {
	Code int
	Err  error
}

func (e *statusError) Error() string { return e.Err.Error() }
func (e *statusError) Unwrap() error { return e.Err }

// do executes one request and classifies failures: transport errors
// map to ErrUnavailable, 5xx to ErrUnavailable, other non-2xx to
// ErrWrite.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "API request failed",
			"method", method,
			"path", path,
			"error", err)
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", store.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode >= 500:
		return nil, &statusError{
			Code: resp.StatusCode,
			Err:  fmt.Errorf("%w: backend returned %d", store.ErrUnavailable, resp.StatusCode),
		}
	default:
		return nil, &statusError{
			Code: resp.StatusCode,
			Err:  fmt.Errorf("%w: backend returned %d", store.ErrWrite, resp.StatusCode),
		}
	}
}
