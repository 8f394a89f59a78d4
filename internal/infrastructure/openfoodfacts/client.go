package openfoodfacts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/whiskr/backend/internal/domain"
	"golang.org/x/time/rate"
)

// statusFound is the value of "status" when the product exists
const statusFound = 1

// Config holds the client settings
type Config struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client handles communication with the Open Food Facts product API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	log         logrus.FieldLogger
}

// NewClient creates a new Open Food Facts API client
func NewClient(cfg Config, logger logrus.FieldLogger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// Product reads are limited to 100 per minute per client
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 100
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "Whiskr/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     cfg.BaseURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		log:         logger.WithField("client", "openfoodfacts"),
	}
}

// GetProduct fetches a product by barcode.
// A response whose status is not 1, or that carries no product, is domain.ErrProductNotFound.
func (c *Client) GetProduct(ctx context.Context, code string) (*domain.OFFProduct, error) {
	if !c.rateLimiter.Allow() {
		return nil, fmt.Errorf("%w: openfoodfacts client quota", domain.ErrRateLimited)
	}

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrExternalAPIFailure, err)
	}

	// Unknown products come back as 404 with a status 0 body
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: openfoodfacts status %d", domain.ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Debug("unexpected response")
		return nil, fmt.Errorf("%w: status %d", domain.ErrExternalAPIFailure, resp.StatusCode)
	}

	return parseProduct(body)
}

// parseProduct reads the loosely typed product envelope.
// "status" may be a number or a numeric string depending on the API version.
func parseProduct(body []byte) (*domain.OFFProduct, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed JSON body", domain.ErrExternalAPIFailure)
	}

	res := gjson.GetManyBytes(body, "status", "product", "code")
	status, product := res[0], res[1]

	if status.Int() != statusFound || !product.IsObject() {
		return nil, domain.ErrProductNotFound
	}

	fields := gjson.GetMany(product.Raw, "code", "product_name", "brands", "generic_name", "image_url")

	code := fields[0].String()
	if code == "" {
		code = res[2].String()
	}

	return &domain.OFFProduct{
		Code:        code,
		ProductName: fields[1].String(),
		Brands:      fields[2].String(),
		GenericName: fields[3].String(),
		ImageURL:    fields[4].String(),
	}, nil
}
