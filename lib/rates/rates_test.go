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

package rates

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinjar/coinjar/lib/common/date"
	"github.com/coinjar/coinjar/lib/model/currency"
	"github.com/coinjar/coinjar/lib/model/money"
)

type server struct {
	*httptest.Server
	requests atomic.Int32
	failures int32
	status   int
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := &server{status: http.StatusInternalServerError}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := s.requests.Add(1)
		if n <= s.failures {
			w.WriteHeader(s.status)
			return
		}
		switch r.URL.Path {
		case "/2021-01-04/usd.json":
			fmt.Fprint(w, `{"date": "2021-01-04", "usd": {"eur": 0.82, "chf": 0.88, "usd": 1}}`)
		case "/latest/usd.json":
			fmt.Fprint(w, `{"date": "2024-03-06", "usd": {"eur": 0.92}}`)
		case "/2021-01-04/eur.json":
			fmt.Fprint(w, `{"date": "2021-01-04", "eur": {"gbp": 0.9}}`)
		case "/2021-01-04/gbp.json":
			fmt.Fprint(w, `{"date": "2021-01-04", "gbp": `)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *server) client() *Client {
	c := NewClient(s.URL+"/%s/%s.json", time.Second, 3)
	c.interval = time.Millisecond
	return c
}

type fetcherFunc func(ctx context.Context, from string, d time.Time) (map[string]decimal.Decimal, error)

func (f fetcherFunc) Fetch(ctx context.Context, from string, d time.Time) (map[string]decimal.Decimal, error) {
	return f(ctx, from, d)
}

var (
	day = date.Date(2021, 1, 4)
	cat = currency.NewDefaultCatalog()
	usd = must(cat.ByCode("USD"))
	eur = must(cat.ByCode("EUR"))
	chf = must(cat.ByCode("CHF"))
	gbp = must(cat.ByCode("GBP"))
)

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newBook(t *testing.T, f Fetcher, path string) *Book {
	t.Helper()
	b, err := NewBook(f, path)
	if err != nil {
		t.Fatalf("NewBook() returned unexpected error: %v", err)
	}
	return b
}

func checkRate(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("rate = %v, want %s", got, want)
	}
}

func checkRequests(t *testing.T, s *server, want int32) {
	t.Helper()
	if got := s.requests.Load(); got != want {
		t.Errorf("requests = %d, want %d", got, want)
	}
}

func TestFetch(t *testing.T) {
	s := newServer(t)

	got, err := s.client().Fetch(context.Background(), "USD", day)

	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Fetch() returned %d rates, want 3", len(got))
	}
	checkRate(t, got["eur"], "0.82")
	checkRate(t, got["chf"], "0.88")
}

func TestFetchLatest(t *testing.T) {
	s := newServer(t)

	got, err := s.client().Fetch(context.Background(), "usd", time.Time{})

	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}
	checkRate(t, got["eur"], "0.92")
}

func TestFetchRetries(t *testing.T) {
	s := newServer(t)
	s.failures = 2

	got, err := s.client().Fetch(context.Background(), "USD", day)

	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}
	checkRate(t, got["eur"], "0.82")
	checkRequests(t, s, 3)
}

func TestFetchGivesUp(t *testing.T) {
	s := newServer(t)
	s.failures = 10

	_, err := s.client().Fetch(context.Background(), "USD", day)

	var statusErr StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch() returned %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("statusErr.Code = %d, want %d", statusErr.Code, http.StatusInternalServerError)
	}
	checkRequests(t, s, 4)
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	s := newServer(t)

	_, err := s.client().Fetch(context.Background(), "XYZ", day)

	var statusErr StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch() returned %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("statusErr.Code = %d, want %d", statusErr.Code, http.StatusNotFound)
	}
	checkRequests(t, s, 1)
}

func TestFetchInvalidResponse(t *testing.T) {
	s := newServer(t)

	if _, err := s.client().Fetch(context.Background(), "GBP", day); err == nil {
		t.Fatalf("Fetch() returned nil, want error")
	}
	checkRequests(t, s, 1)
}

func TestBookCaches(t *testing.T) {
	s := newServer(t)
	b := newBook(t, s.client(), "")
	defer b.Close()
	ctx := context.Background()

	tests := []struct {
		target *currency.Currency
		want   string
	}{
		{eur, "0.82"},
		{eur, "0.82"},
		{chf, "0.88"},
	}
	for _, test := range tests {
		r, err := b.Rate(ctx, usd, test.target, day)
		if err != nil {
			t.Fatalf("Rate(USD, %v) returned unexpected error: %v", test.target, err)
		}
		checkRate(t, r, test.want)
	}
	checkRequests(t, s, 1)
}

func TestBookSameCurrency(t *testing.T) {
	b := newBook(t, fetcherFunc(func(context.Context, string, time.Time) (map[string]decimal.Decimal, error) {
		return nil, errors.New("unexpected fetch")
	}), "")

	r, err := b.Rate(context.Background(), usd, usd, day)

	if err != nil {
		t.Fatalf("Rate() returned unexpected error: %v", err)
	}
	checkRate(t, r, "1")
}

func TestBookNotFound(t *testing.T) {
	s := newServer(t)
	b := newBook(t, s.client(), "")

	_, err := b.Rate(context.Background(), usd, gbp, day)

	if !errors.As(err, new(NotFoundError)) {
		t.Fatalf("Rate() returned %v, want NotFoundError", err)
	}
}

func TestBookPersists(t *testing.T) {
	var (
		s    = newServer(t)
		path = filepath.Join(t.TempDir(), "rates.db")
		ctx  = context.Background()
	)
	b := newBook(t, s.client(), path)
	for _, d := range []time.Time{day, {}} {
		if _, err := b.Rate(ctx, usd, eur, d); err != nil {
			t.Fatalf("Rate(%v) returned unexpected error: %v", d, err)
		}
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}

	offline := fetcherFunc(func(context.Context, string, time.Time) (map[string]decimal.Decimal, error) {
		return nil, errors.New("offline")
	})
	b = newBook(t, offline, path)
	defer b.Close()

	r, err := b.Rate(ctx, usd, chf, day)
	if err != nil {
		t.Fatalf("Rate() returned unexpected error: %v", err)
	}
	checkRate(t, r, "0.88")
	if _, err := b.Rate(ctx, usd, eur, time.Time{}); err == nil || err.Error() != "offline" {
		t.Fatalf("Rate(latest) returned %v, want offline", err)
	}
}

func TestConvert(t *testing.T) {
	s := newServer(t)
	b := newBook(t, s.client(), "")

	got, err := Convert(context.Background(), b, money.MustParse("$100", cat), eur, day)

	if err != nil {
		t.Fatalf("Convert() returned unexpected error: %v", err)
	}
	if got, want := got.String(), "€82.00"; got != want {
		t.Fatalf("Convert() = %s, want %s", got, want)
	}
}

func TestConvertValuable(t *testing.T) {
	s := newServer(t)
	b := newBook(t, s.client(), "")
	v := money.Sum(money.MustParse("$100", cat), money.MustParse("€10", cat), money.MustParse("-$50", cat))

	got, err := ConvertValuable(context.Background(), b, v, eur, day)

	if err != nil {
		t.Fatalf("ConvertValuable() returned unexpected error: %v", err)
	}
	if got, want := got.String(), "€51.00"; got != want {
		t.Fatalf("ConvertValuable() = %s, want %s", got, want)
	}
}

func TestConvertValuableFails(t *testing.T) {
	s := newServer(t)
	b := newBook(t, s.client(), "")
	v := money.Sum(money.MustParse("£10", cat))

	if _, err := ConvertValuable(context.Background(), b, v, eur, day); err == nil {
		t.Fatalf("ConvertValuable() returned nil, want error")
	}
}
