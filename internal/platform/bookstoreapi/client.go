package bookstoreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bookstores/internal/jsonapi"
	"bookstores/internal/storefront"
)

const DefaultBaseURL = "http://localhost:3000"

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	RPS       float64
}

// Client talks to the JSON:API book store service. Requests are never retried.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// StatusError is a non-2xx answer from the store service.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return storefront.ErrUpstreamFetch }

func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// FetchStores loads GET /stores with its included countries, books and authors.
func (c *Client) FetchStores(ctx context.Context) (*jsonapi.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/stores", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc jsonapi.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode stores: %v", jsonapi.ErrMalformedDocument, err)
	}
	return &doc, nil
}

type ratingUpdate struct {
	Data ratingUpdateData `json:"data"`
}

type ratingUpdateData struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Attributes ratingAttributes `json:"attributes"`
}

type ratingAttributes struct {
	Rating float64 `json:"rating"`
}

// UpdateStoreRating sends PATCH /stores/{id} with the new rating.
func (c *Client) UpdateStoreRating(ctx context.Context, storeID string, rating float64) error {
	body, err := json.Marshal(ratingUpdate{
		Data: ratingUpdateData{
			Type:       "stores",
			ID:         storeID,
			Attributes: ratingAttributes{Rating: rating},
		},
	})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPatch, c.baseURL+"/stores/"+url.PathEscape(storeID), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) do(ctx context.Context, method, u string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", jsonapi.MediaType)
	if body != nil {
		req.Header.Set("Content-Type", jsonapi.MediaType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", storefront.ErrUpstreamFetch, method, u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Method: method, URL: u, StatusCode: resp.StatusCode}
	}
	return resp, nil
}
