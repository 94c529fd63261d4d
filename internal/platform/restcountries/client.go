package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bookstores/internal/storefront"
)

const DefaultBaseURL = "https://restcountries.com/v3.1"

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	RPS       float64
}

// Client looks up country flags by alpha-2 code. Requests are never retried.
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

// Country matches one element of the alpha?codes= response. Only the png
// flag variant is read.
type Country struct {
	CCA2  string `json:"cca2"`
	Code  string `json:"code"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

// Alpha2 prefers cca2 and falls back to a plain code field.
func (c Country) Alpha2() string {
	if c.CCA2 != "" {
		return c.CCA2
	}
	return c.Code
}

// StatusError is a non-200 answer from the countries service.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status code: %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return storefront.ErrUpstreamFetch }

// LookupCodes fetches the countries for a comma-separated list of codes.
func (c *Client) LookupCodes(ctx context.Context, codes string) ([]Country, error) {
	parts := strings.Split(codes, ",")
	for i, p := range parts {
		parts[i] = url.QueryEscape(strings.TrimSpace(p))
	}
	u := fmt.Sprintf("%s/alpha?codes=%s", c.baseURL, strings.Join(parts, ","))

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", storefront.ErrUpstreamFetch, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}

	var countries []Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, fmt.Errorf("%w: decode countries: %v", storefront.ErrUpstreamFetch, err)
	}
	return countries, nil
}

// FetchFlags implements storefront.FlagSource.
func (c *Client) FetchFlags(ctx context.Context, batchKey string) ([]storefront.Flag, error) {
	countries, err := c.LookupCodes(ctx, batchKey)
	if err != nil {
		return nil, err
	}
	flags := make([]storefront.Flag, 0, len(countries))
	for _, country := range countries {
		flags = append(flags, storefront.Flag{Code: country.Alpha2(), ImageURL: country.Flags.PNG})
	}
	return flags, nil
}
