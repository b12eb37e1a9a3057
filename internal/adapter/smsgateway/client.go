// Package smsgateway delivers alert messages as SMS through a Twilio-style
// REST gateway.
package smsgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/alert"
	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
)

// Client implements domain.Notifier against an SMS gateway REST API.
// One alert event fans out to every configured recipient.
type Client struct {
	accountSID string
	token      string
	from       string
	recipients []string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an SMS gateway client.
func NewClient(accountSID, token, from string, recipients []string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		accountSID: accountSID,
		token:      token,
		from:       from,
		recipients: recipients,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.twilio.com/2010-04-01",
		logger:  logger,
	}
}

// Notify sends the rendered alert text to every recipient. A failed send to
// one recipient does not stop the rest; the combined error reports each
// failure.
func (c *Client) Notify(ctx context.Context, event domain.AlertEvent) error {
	body := alert.Message(event)

	var errs []error
	for _, to := range c.recipients {
		sid, err := c.sendMessage(ctx, to, body)
		if err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", to, err))
			continue
		}
		c.logger.Info("alert sms sent",
			"event_id", event.ID,
			"to", to,
			"message_sid", sid,
		)
	}
	return errors.Join(errs...)
}

func (c *Client) sendMessage(ctx context.Context, to, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, url.PathEscape(c.accountSID))
	form := url.Values{
		"To":   {to},
		"From": {c.from},
		"Body": {body},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sms gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sms gateway error: status %d: %s", resp.StatusCode, respBody)
	}

	var gw response
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return gw.SID, nil
}

// Gateway API response type.

type response struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}
