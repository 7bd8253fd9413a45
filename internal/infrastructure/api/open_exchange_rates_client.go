package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/logger"
	"github.com/bharath-kadali/expenseTracker/internal/infrastructure/metrics"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the public openexchangerates.org API root
	DefaultBaseURL  = "https://openexchangerates.org/api"
	latestRatesPath = "/latest.json"
)

// ErrMissingAppID is returned when the client is used without a credential
var ErrMissingAppID = errors.New("exchange rate provider app id is not configured")

// ClientConfig holds the injected provider configuration
type ClientConfig struct {
	BaseURL     string
	AppID       string
	Timeout     time.Duration
	MaxRetries  int
	BackoffUnit time.Duration
}

// OpenExchangeRatesClient fetches the latest rates from an openexchangerates-compatible API
type OpenExchangeRatesClient struct {
	baseURL     string
	appID       string
	httpClient  *http.Client
	maxRetries  int
	backoffUnit time.Duration
	logger      logger.Logger
}

// NewOpenExchangeRatesClient creates a new provider client. A nil httpClient gets
// one with cfg.Timeout (10s when unset).
func NewOpenExchangeRatesClient(cfg ClientConfig, httpClient *http.Client, log logger.Logger) *OpenExchangeRatesClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &OpenExchangeRatesClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		appID:       cfg.AppID,
		httpClient:  httpClient,
		maxRetries:  cfg.MaxRetries,
		backoffUnit: cfg.BackoffUnit,
		logger:      log.WithField("component", "rate_provider"),
	}
}

// FetchLatestRates retrieves the latest rates keyed by currency code
func (c *OpenExchangeRatesClient) FetchLatestRates(ctx context.Context) (map[string]float64, error) {
	rates, err := c.fetchLatestRates(ctx)
	metrics.RecordProviderFetch(err == nil)
	return rates, err
}

func (c *OpenExchangeRatesClient) fetchLatestRates(ctx context.Context) (map[string]float64, error) {
	if c.appID == "" {
		return nil, ErrMissingAppID
	}

	reqURL := fmt.Sprintf("%s%s?app_id=%s", c.baseURL, latestRatesPath, url.QueryEscape(c.appID))

	// Execute request with retry logic
	var resp *http.Response
	var err error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err = c.do(ctx, reqURL)
		if err == nil {
			break
		}

		if attempt < c.maxRetries {
			// Wait with quadratic backoff before retrying
			backoffTime := time.Duration(attempt*attempt) * c.backoffUnit
			c.logger.Warn("Rate request failed, retrying", map[string]interface{}{
				"attempt":     attempt,
				"max_retries": c.maxRetries,
				"backoff":     backoffTime.String(),
				"error":       err.Error(),
			})

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("rate request cancelled: %w", ctx.Err())
			case <-time.After(backoffTime):
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to execute request after %d attempts: %w", c.maxRetries, err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Rate provider responded", map[string]interface{}{
		"status": resp.StatusCode,
		"bytes":  len(bodyBytes),
	})

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned error status: %d", resp.StatusCode)
	}

	return parseRates(bodyBytes)
}

func (c *OpenExchangeRatesClient) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	return c.httpClient.Do(req)
}

// parseRates extracts the "rates" object of a latest.json payload. Entries that are
// not positive numbers are skipped.
func parseRates(body []byte) (map[string]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("failed to decode response: invalid JSON")
	}

	ratesField := gjson.GetBytes(body, "rates")
	if !ratesField.IsObject() {
		return nil, errors.New("failed to decode response: missing rates object")
	}

	rates := make(map[string]float64)
	ratesField.ForEach(func(code, value gjson.Result) bool {
		if value.Type == gjson.Number && value.Float() > 0 {
			rates[code.String()] = value.Float()
		}
		return true
	})

	if len(rates) == 0 {
		return nil, errors.New("no exchange rates in response")
	}

	return rates, nil
}
