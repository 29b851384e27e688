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
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"

	"github.com/coinjar/coinjar/lib/model/currency"
)

var bucket = []byte("rates")

// NotFoundError is returned when the source has no rate for a pair.
type NotFoundError struct {
	From, To string
	Date     time.Time
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no rate for %s/%s on %s", e.From, e.To, dateKey(e.Date))
}

// Book looks up exchange rates. Rates are served from memory, then
// from the optional persistent cache, then from the fetcher. Latest
// rates are not persisted.
type Book struct {
	fetcher Fetcher
	db      *bolt.DB

	mutex sync.Mutex
	rates map[string]decimal.Decimal
}

// NewBook creates a book. An empty cache path disables the persistent
// cache.
func NewBook(f Fetcher, cachePath string) (*Book, error) {
	b := &Book{
		fetcher: f,
		rates:   make(map[string]decimal.Decimal),
	}
	if cachePath == "" {
		return b, nil
	}
	db, err := bolt.Open(cachePath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening rate cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening rate cache: %w", err)
	}
	b.db = db
	return b, nil
}

// Close closes the persistent cache.
func (b *Book) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Rate returns the price of one unit of from in units of to on the
// given date. A zero date asks for the latest rate.
func (b *Book) Rate(ctx context.Context, from, to *currency.Currency, d time.Time) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	k := key(from.Code(), to.Code(), d)
	if r, ok := b.lookup(k); ok {
		return r, nil
	}
	r, ok, err := b.load(k)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if ok {
		zerolog.Ctx(ctx).Debug().Str("key", k).Msg("rate cache hit")
		b.remember(map[string]decimal.Decimal{k: r})
		return r, nil
	}
	fetched, err := b.fetcher.Fetch(ctx, from.Code(), d)
	if err != nil {
		return decimal.Decimal{}, err
	}
	batch := make(map[string]decimal.Decimal, len(fetched))
	for code, r := range fetched {
		batch[key(from.Code(), code, d)] = r
	}
	b.remember(batch)
	if !d.IsZero() {
		if err := b.store(batch); err != nil {
			return decimal.Decimal{}, err
		}
	}
	r, ok = batch[k]
	if !ok {
		return decimal.Decimal{}, NotFoundError{From: from.Code(), To: to.Code(), Date: d}
	}
	return r, nil
}

func (b *Book) lookup(k string) (decimal.Decimal, bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	r, ok := b.rates[k]
	return r, ok
}

func (b *Book) remember(batch map[string]decimal.Decimal) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for k, r := range batch {
		b.rates[k] = r
	}
}

func (b *Book) load(k string) (decimal.Decimal, bool, error) {
	if b.db == nil {
		return decimal.Decimal{}, false, nil
	}
	var (
		res decimal.Decimal
		ok  bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(k))
		if v == nil {
			return nil
		}
		var err error
		if res, err = decimal.NewFromString(string(v)); err != nil {
			return fmt.Errorf("invalid cached rate %s: %w", k, err)
		}
		ok = true
		return nil
	})
	return res, ok, err
}

func (b *Book) store(batch map[string]decimal.Decimal) error {
	if b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucket)
		for k, r := range batch {
			if err := bk.Put([]byte(k), []byte(r.String())); err != nil {
				return err
			}
		}
		return nil
	})
}

func key(from, to string, d time.Time) string {
	return strings.Join([]string{dateKey(d), strings.ToLower(from), strings.ToLower(to)}, "/")
}
