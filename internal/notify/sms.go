// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/propkeep/propkeep/internal/config"
)

// SMSChannel delivers notifications through a Twilio-compatible messaging
// API. A circuit breaker shields the dispatcher from a flapping provider
// and a rate limiter keeps sends inside provider quotas.
type SMSChannel struct {
	cfg     config.SMSConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[int]
	limiter *rate.Limiter
}

// NewSMSChannel creates the SMS channel.
func NewSMSChannel(cfg config.SMSConfig) *SMSChannel {
	return &SMSChannel{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
			Name:        "sms",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		// One message per second is well under typical provider limits.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (c *SMSChannel) Name() string { return "sms" }

func (c *SMSChannel) Send(ctx context.Context, event *Event) (*Result, error) {
	start := time.Now()

	body := Subject(event)
	var lastErr error
	sent := 0
	for _, to := range c.cfg.Recipients {
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}
		if err := c.sendOne(ctx, to, body); err != nil {
			lastErr = err
			continue
		}
		sent++
	}

	if sent == 0 && lastErr != nil {
		return failed(c.Name(), start, lastErr), nil
	}
	return succeeded(c.Name(), start), nil
}

// sendOne posts one message through the circuit breaker.
func (c *SMSChannel) sendOne(ctx context.Context, to, body string) error {
	_, err := c.breaker.Execute(func() (int, error) {
		endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
			strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.AccountSID)

		form := url.Values{}
		form.Set("To", to)
		form.Set("From", c.cfg.FromNumber)
		form.Set("Body", body)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
			strings.NewReader(form.Encode()))
		if err != nil {
			return 0, err
		}
		req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.client.Do(req)
		if err != nil {
			return 0, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return resp.StatusCode, fmt.Errorf("sms provider returned %d: %s",
				resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return resp.StatusCode, nil
	})
	return err
}
