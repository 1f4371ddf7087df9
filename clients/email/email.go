// Package email sends booking confirmations through the transactional email
// endpoint.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is one confirmation send. The same shape serves both the attendee
// confirmation and the operator alert.
type Message struct {
	ToEmail     string `json:"toEmail"`
	ToName      string `json:"toName"`
	ServiceName string `json:"serviceName"`
	DateTime    string `json:"dateTime"`
	Company     string `json:"company,omitempty"`
	Notes       string `json:"message,omitempty"`
	MeetingLink string `json:"meetingLink,omitempty"`
}

// Client sends a single confirmation message.
type Client interface {
	SendConfirmation(ctx context.Context, msg Message) error
}

// HTTPClient implements Client over a JSON POST endpoint.
type HTTPClient struct {
	endpoint string
	apiKey   string
	sender   string
	http     *http.Client
}

// NewHTTPClient builds an email client. Missing settings yield a typed error.
func NewHTTPClient(endpoint, apiKey, sender string) (*HTTPClient, error) {
	if endpoint == "" || apiKey == "" {
		return nil, errors.New("email: endpoint and API key are required")
	}
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		sender:   sender,
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// SendConfirmation posts the message and checks the endpoint's result.
func (c *HTTPClient) SendConfirmation(ctx context.Context, msg Message) error {
	payload := struct {
		Sender string `json:"sender,omitempty"`
		Message
	}{Sender: c.sender, Message: msg}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("email: failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("email: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("email: send failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email: endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	// Some endpoints return an empty body on success.
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err == nil && !result.Success && result.Error != "" {
			return fmt.Errorf("email: endpoint rejected message: %s", result.Error)
		}
	}
	return nil
}
