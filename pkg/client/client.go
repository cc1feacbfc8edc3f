// Package client is a thin HTTP client for the visa slot tracker API,
// mirroring the four alert operations: list, create, update, delete.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Alert is an alert record as returned by the API.
type Alert struct {
	ID        int64     `json:"id"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	VisaType  string    `json:"visaType"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pagination describes one page of a listing result.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResult is the response of the list operation.
type ListResult struct {
	Data       []Alert    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateAlertRequest is the payload for creating an alert. Status is
// optional; the server defaults it to Active.
type CreateAlertRequest struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	VisaType string `json:"visaType"`
	Status   string `json:"status,omitempty"`
}

// UpdateAlertRequest is a partial update; nil fields are left unchanged.
// At least one field must be set.
type UpdateAlertRequest struct {
	Country  *string `json:"country,omitempty"`
	City     *string `json:"city,omitempty"`
	VisaType *string `json:"visaType,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// ListOptions carries the optional filters and pagination for List.
// Zero values are omitted and the server applies its defaults.
type ListOptions struct {
	Country string
	Status  string
	Page    int
	Limit   int
}

// APIError is returned when the server responds outside the 2xx range.
// Message is the server's error field when present.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to a visa slot tracker server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL (e.g. "http://localhost:3000").
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 10 * time.Second})
}

// NewWithHTTPClient creates a client using the provided http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    hc,
	}
}

// List fetches one page of alerts matching the options.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	query := url.Values{}
	if opts.Country != "" {
		query.Set("country", opts.Country)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var result ListResult
	if err := c.do(ctx, http.MethodGet, "/alerts", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create stores a new alert and returns the full created record.
func (c *Client) Create(ctx context.Context, req CreateAlertRequest) (*Alert, error) {
	var result mutationResponse
	if err := c.do(ctx, http.MethodPost, "/alerts", nil, req, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Update applies a partial update and returns the full updated record.
func (c *Client) Update(ctx context.Context, id int64, req UpdateAlertRequest) (*Alert, error) {
	var result mutationResponse
	path := "/alerts/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Delete removes an alert.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := "/alerts/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// mutationResponse is the server's envelope for create/update.
type mutationResponse struct {
	Message string `json:"message"`
	Data    *Alert `json:"data"`
}

// errorResponse is the server's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// do performs one HTTP call, serializing the body as JSON and decoding the
// response into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var bodyReader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
