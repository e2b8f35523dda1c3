package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lampstore/internal/config"
)

// ResendClient sends transactional email through the Resend HTTP API.
type ResendClient interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

type resendClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	apiKey      string
	fromAddress string
}

type resendSendResult struct {
	ID string `json:"id"`
}

func NewResendClient(resendCfg *config.Resend) ResendClient {
	return &resendClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:  resendCfg.BaseApiURL,
		apiKey:      resendCfg.APIKey,
		fromAddress: resendCfg.FromAddress,
	}
}

func (c *resendClientImpl) Send(ctx context.Context, to, subject, html string) (string, error) {
	payload := map[string]interface{}{
		"from":    c.fromAddress,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/emails", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("resend error %d: %s", resp.StatusCode, string(b))
	}

	var result resendSendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode resend response: %w", err)
	}

	return result.ID, nil
}
