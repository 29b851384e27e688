// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rates fetches and caches exchange rates. Conversions are
// explicit; nothing in the journal converts amounts implicitly.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultURL is the URL template of the currency API. It takes the date
// (or "latest") and the lowercase base currency code.
const DefaultURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@%s/v1/currencies/%s.json"

// Fetcher fetches the rates of a base currency on a date.
type Fetcher interface {
	Fetch(ctx context.Context, from string, d time.Time) (map[string]decimal.Decimal, error)
}

// Client is a client for the currency API.
type Client struct {
	url      string
	http     *http.Client
	retries  int
	interval time.Duration
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a new client. A failed request is retried up to
// retries times with exponential backoff.
func NewClient(url string, timeout time.Duration, retries int) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:      url,
		http:     &http.Client{Timeout: timeout},
		retries:  retries,
		interval: 200 * time.Millisecond,
	}
}

// StatusError is returned for unsuccessful responses.
type StatusError struct {
	URL  string
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Fetch returns the rates of all currencies quoted against from, keyed
// by lowercase currency code. A zero date fetches the latest rates.
func (c *Client) Fetch(ctx context.Context, from string, d time.Time) (map[string]decimal.Decimal, error) {
	var (
		base = strings.ToLower(from)
		u    = fmt.Sprintf(c.url, dateKey(d), base)
		res  map[string]decimal.Decimal
	)
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.interval
	op := func() error {
		var err error
		res, err = c.get(ctx, u, base)
		return err
	}
	notify := func(err error, wait time.Duration) {
		zerolog.Ctx(ctx).Warn().Err(err).Dur("wait", wait).Str("url", u).Msg("fetching rates failed, retrying")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retries)), ctx), notify); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("url", u).Int("rates", len(res)).Msg("fetched rates")
	return res, nil
}

func (c *Client) get(ctx context.Context, u, base string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err := StatusError{URL: u, Code: resp.StatusCode}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decoding %s: %w", u, err))
	}
	raw, ok := body[base]
	if !ok {
		return nil, backoff.Permanent(fmt.Errorf("decoding %s: no rates for %s", u, base))
	}
	var res map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decoding %s: %w", u, err))
	}
	return res, nil
}

func dateKey(d time.Time) string {
	if d.IsZero() {
		return "latest"
	}
	return d.Format("2006-01-02")
}
