package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/venturelink/backend/internal/pkg/logger"
)

// Client is a minimal client for the generateContent endpoint of the
// generative language API.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a Client from a validated config
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends the prompt and returns the first candidate's first
// text part. Transport failures and 5xx/429 answers are retried with a fixed
// delay up to MaxRetries attempts; malformed or empty payloads are not, since
// resending the same prompt will not change how the API shaped its answer.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.config.BaseURL, c.config.Model, c.config.APIKey)

	var lastErr error
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 1 {
			logger.Debug().Int("attempt", attempt).Msg("Retrying generation request")
			select {
			case <-time.After(c.config.RetryDelay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrRequestFailed, ctx.Err())
			}
		}

		text, retryable, err := c.doRequest(ctx, url, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", lastErr
}

func (c *Client) doRequest(ctx context.Context, url string, body []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return "", retryable, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if len(raw) == 0 {
		return "", false, ErrEmptyBody
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(decoded.Candidates) == 0 {
		return "", false, ErrNoCandidates
	}
	if len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", false, ErrNoParts
	}

	return decoded.Candidates[0].Content.Parts[0].Text, false, nil
}
