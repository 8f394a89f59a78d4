package upcitemdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/whiskr/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	trialLookupPath = "/prod/trial/lookup"
	paidLookupPath  = "/prod/v1/lookup"

	trialRequestsPerMinute = 6
	trialRequestsPerDay    = 100
)

// Config holds the client settings
type Config struct {
	BaseURL string
	// APIKey switches the client to the paid endpoint; empty uses the trial tier
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int
	// RequestsPerDay caps lookups per 24h. Zero means the trial quota without
	// an API key and no daily cap with one.
	RequestsPerDay int
}

// Client handles communication with the UPCitemdb lookup API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiters   []*rate.Limiter
	log        logrus.FieldLogger
}

// NewClient creates a new UPCitemdb API client
func NewClient(cfg Config, logger logrus.FieldLogger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// The trial tier allows 6 requests per minute in bursts and 100 per day
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = trialRequestsPerMinute
	}
	limiters := []*rate.Limiter{rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)}

	rpd := cfg.RequestsPerDay
	if rpd == 0 && cfg.APIKey == "" {
		rpd = trialRequestsPerDay
	}
	if rpd > 0 {
		limiters = append(limiters, rate.NewLimiter(rate.Every(24*time.Hour/time.Duration(rpd)), rpd))
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		limiters: limiters,
		log:      logger.WithField("client", "upcitemdb"),
	}
}

// LookupUPC fetches the products registered under a UPC/EAN/ISBN code.
// A response without items is reported as domain.ErrProductNotFound.
func (c *Client) LookupUPC(ctx context.Context, code string) (*domain.UPCLookupResponse, error) {
	// Never queue behind the limiter; a saturated quota is a miss for this source
	if !c.allow() {
		return nil, fmt.Errorf("%w: upcitemdb client quota", domain.ErrRateLimited)
	}

	req, err := c.newRequest(ctx, code)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrExternalAPIFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrProductNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: upcitemdb status %d", domain.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Debug("unexpected response")
		return nil, fmt.Errorf("%w: status %d", domain.ErrExternalAPIFailure, resp.StatusCode)
	}

	var lookup domain.UPCLookupResponse
	if err := json.Unmarshal(body, &lookup); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrExternalAPIFailure, err)
	}

	if len(lookup.Items) == 0 {
		return nil, domain.ErrProductNotFound
	}

	c.log.WithFields(logrus.Fields{
		"barcode": code,
		"items":   len(lookup.Items),
	}).Debug("lookup matched")
	return &lookup, nil
}

// allow takes one token from every limiter, or from none of them
func (c *Client) allow() bool {
	now := time.Now()
	taken := make([]*rate.Reservation, 0, len(c.limiters))
	for _, l := range c.limiters {
		r := l.ReserveN(now, 1)
		if !r.OK() || r.DelayFrom(now) > 0 {
			r.CancelAt(now)
			for _, prev := range taken {
				prev.CancelAt(now)
			}
			return false
		}
		taken = append(taken, r)
	}
	return true
}

func (c *Client) newRequest(ctx context.Context, code string) (*http.Request, error) {
	path := trialLookupPath
	if c.apiKey != "" {
		path = paidLookupPath
	}

	params := url.Values{}
	params.Set("upc", code)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Whiskr/1.0")
	if c.apiKey != "" {
		req.Header.Set("user_key", c.apiKey)
		req.Header.Set("key_type", "3scale")
	}
	return req, nil
}
