package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/qed-outreach/contact-pipeline/internal/core"
	"go.uber.org/zap"
)

const (
	verifyPath  = "/v2/email-verifier"
	accountPath = "/v2/account"
)

// Client calls the Hunter email-verification API. It implements both the
// EmailVerifier and UsageReporter interfaces.
type Client struct {
	http   *resty.Client
	apiKey string
	logger *zap.Logger
}

// verifyResponse is the verifier endpoint's JSON shape
type verifyResponse struct {
	Data *struct {
		Status string `json:"status"`
		Score  int    `json:"score"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

// accountResponse is the account endpoint's JSON shape
type accountResponse struct {
	Data *struct {
		Requests struct {
			Searches struct {
				Used int `json:"used"`
			} `json:"searches"`
			Verifications struct {
				Used int `json:"used"`
			} `json:"verifications"`
		} `json:"requests"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

type apiError struct {
	ID      string `json:"id"`
	Code    int    `json:"code"`
	Details string `json:"details"`
}

// NewClient creates a new Hunter API client with a bounded request timeout
func NewClient(cfg config.HunterConfig, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("hunter.api_key is required")
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout)

	return &Client{
		http:   httpClient,
		apiKey: cfg.APIKey,
		logger: logger,
	}, nil
}

// Verify submits a single address to the verifier and returns its verdict.
// Non-200 responses, non-JSON bodies, errors payloads and timeouts all
// surface as errors for the caller to record per-email.
func (c *Client) Verify(ctx context.Context, email string) (*core.Verdict, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetQueryParam("api_key", c.apiKey).
		Get(verifyPath)
	if err != nil {
		return nil, fmt.Errorf("verifier request failed: %w", err)
	}

	var body verifyResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("verifier returned non-JSON response (HTTP %d)", resp.StatusCode())
	}
	if resp.StatusCode() != http.StatusOK || body.Data == nil {
		return nil, apiErrorf(resp.StatusCode(), body.Errors)
	}

	c.logger.Debug("Verified email",
		zap.String("email", email),
		zap.String("status", body.Data.Status),
		zap.Int("score", body.Data.Score))

	return &core.Verdict{Status: body.Data.Status, Score: body.Data.Score}, nil
}

// Usage fetches the account's used quota counters
func (c *Client) Usage(ctx context.Context) (*core.AccountUsage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		Get(accountPath)
	if err != nil {
		return nil, fmt.Errorf("account request failed: %w", err)
	}

	var body accountResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("account endpoint returned non-JSON response (HTTP %d)", resp.StatusCode())
	}
	if resp.StatusCode() != http.StatusOK || body.Data == nil {
		return nil, apiErrorf(resp.StatusCode(), body.Errors)
	}

	return &core.AccountUsage{
		UsedSearches:      body.Data.Requests.Searches.Used,
		UsedVerifications: body.Data.Requests.Verifications.Used,
	}, nil
}

func apiErrorf(statusCode int, errs []apiError) error {
	if len(errs) > 0 {
		return fmt.Errorf("verifier error (HTTP %d): %s", statusCode, errs[0].Details)
	}
	return fmt.Errorf("verifier returned HTTP %d without data", statusCode)
}
