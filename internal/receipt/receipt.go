// Package receipt hands post-punch ledger snapshots to the external receipt
// printing service. Rendering happens on that service; this package only
// delivers the snapshot.
package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Item is one consumed line on a receipt
type Item struct {
	Title    string `json:"title"`
	Qty      int    `json:"qty"`
	MealType string `json:"mealType"`
}

// PunchReceipt is the snapshot printed after a successful punch
type PunchReceipt struct {
	MembershipID   string    `json:"membershipId"`
	UserID         string    `json:"userId"`
	Week           int       `json:"week"`
	Day            string    `json:"day"`
	Items          []Item    `json:"items"`
	MealsConsumed  int       `json:"mealsConsumed"`
	ConsumedMeals  int       `json:"consumedMeals"`
	RemainingMeals int       `json:"remainingMeals"`
	TotalMeals     int       `json:"totalMeals"`
	Status         string    `json:"status"`
	PunchedAt      time.Time `json:"punchedAt"`
}

// Sender delivers receipts
type Sender interface {
	SendPunchReceipt(ctx context.Context, r PunchReceipt) error
}

// NopSender drops every receipt; used when no printing service is configured
type NopSender struct{}

// SendPunchReceipt implements Sender
func (NopSender) SendPunchReceipt(context.Context, PunchReceipt) error { return nil }

// Config holds the printing service endpoint and its client credentials
type Config struct {
	URL          string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Timeout      time.Duration
}

// HTTPSender posts receipts as JSON to the printing service
type HTTPSender struct {
	url    string
	client *http.Client
}

// NewHTTPSender creates a sender. When client credentials are configured the
// requests carry an OAuth2 bearer token obtained with the client-credentials
// grant; otherwise they are sent unauthenticated.
func NewHTTPSender(ctx context.Context, cfg Config) (*HTTPSender, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, fmt.Errorf("receipt service url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	base := &http.Client{Timeout: timeout}
	client := base
	if cfg.ClientID != "" {
		if cfg.TokenURL == "" {
			return nil, fmt.Errorf("receipt token url is required with client credentials")
		}
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       []string{"receipts:print"},
		}
		client = cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
		client.Timeout = timeout
	}

	return &HTTPSender{url: url, client: client}, nil
}

// SendPunchReceipt implements Sender
func (s *HTTPSender) SendPunchReceipt(ctx context.Context, r PunchReceipt) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build receipt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("receipt service returned %s", resp.Status)
	}
	return nil
}
