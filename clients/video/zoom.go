package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Config carries the server-to-server OAuth credentials for the provider.
type Config struct {
	ClientID     string
	ClientSecret string
	AccountID    string
	TokenURL     string
	APIBaseURL   string
}

// ZoomClient implements Client against Zoom's server-to-server OAuth API.
type ZoomClient struct {
	http    *http.Client
	baseURL string
}

// NewZoomClient builds a video client. Missing credentials yield a typed
// error so startup can degrade instead of crashing.
func NewZoomClient(ctx context.Context, cfg Config) (*ZoomClient, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.AccountID == "" {
		return nil, errors.New("video: client ID, secret and account ID are required")
	}
	ts := oauth2.ReuseTokenSource(nil, &accountTokenSource{cfg: cfg, ctx: ctx})
	return &ZoomClient{
		http:    oauth2.NewClient(ctx, ts),
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
	}, nil
}

// accountTokenSource fetches account-credentials grant tokens. Zoom's
// server-to-server flow uses grant_type=account_credentials, which the stock
// clientcredentials config cannot express.
type accountTokenSource struct {
	cfg Config
	ctx context.Context
}

func (s *accountTokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{
		"grant_type": {"account_credentials"},
		"account_id": {s.cfg.AccountID},
	}
	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("video: failed to build token request: %w", err)
	}
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video: token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video: token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("video: failed to parse token response: %w", err)
	}
	return &oauth2.Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Expiry:      time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}, nil
}

// CreateRoom schedules a meeting and returns its join URL and password.
func (z *ZoomClient) CreateRoom(ctx context.Context, topic string, start time.Time, durationMin int) (*Room, error) {
	payload := map[string]any{
		"topic":      topic,
		"type":       2, // scheduled meeting
		"start_time": start.UTC().Format("2006-01-02T15:04:05Z"),
		"duration":   durationMin,
		"settings": map[string]any{
			"join_before_host": false,
			"waiting_room":     true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("video: failed to marshal meeting payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.baseURL+"/users/me/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("video: failed to build meeting request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video: meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("video: provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var meeting struct {
		JoinURL  string `json:"join_url"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(respBody, &meeting); err != nil {
		return nil, fmt.Errorf("video: failed to parse meeting response: %w", err)
	}
	if meeting.JoinURL == "" {
		return nil, errors.New("video: provider response missing join URL")
	}
	return &Room{JoinURL: meeting.JoinURL, Password: meeting.Password}, nil
}
