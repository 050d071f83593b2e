package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGatewayURL = "https://www.fast2sms.com/dev/bulkV2"

// SMSGateway dispatches messages through a Fast2SMS-style REST endpoint.
type SMSGateway struct {
	apiKey string
	url    string
	client *http.Client
}

// NewSMSGateway builds a sender for the given API key. An empty url falls
// back to the Fast2SMS bulk endpoint.
func NewSMSGateway(apiKey, url string) *SMSGateway {
	if url == "" {
		url = defaultGatewayURL
	}
	return &SMSGateway{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *SMSGateway) Send(ctx context.Context, phone, message string) error {
	payload := map[string]interface{}{
		"route":   "q",
		"numbers": phone,
		"message": message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
