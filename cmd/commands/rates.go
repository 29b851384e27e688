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

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/coinjar/coinjar/lib/common/date"
	"github.com/coinjar/coinjar/lib/common/table"
	"github.com/coinjar/coinjar/lib/config"
	"github.com/coinjar/coinjar/lib/model/currency"
	"github.com/coinjar/coinjar/lib/rates"
)

// CreateRatesCmd creates the command.
func CreateRatesCmd() *cobra.Command {
	var r ratesRunner
	c := &cobra.Command{
		Use:   "rates",
		Short: "fetch exchange rates",
		Long: `Fetch the exchange rates of the currency pairs listed in the given yaml file:

  date: 2021-01-04   # optional, defaults to the latest rates
  pairs:
    - from: USD
      to: EUR`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type ratesRunner struct {
	output outputFlags
}

type ratesConfig struct {
	Date  string      `yaml:"date"`
	Pairs []ratesPair `yaml:"pairs"`
}

type ratesPair struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

const ratesConcurrency = 5

func (r *ratesRunner) setupFlags(c *cobra.Command) {
	r.output.setup(c)
}

func (r *ratesRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *ratesRunner) execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := r.readConfig(args[0])
	if err != nil {
		return err
	}
	var d time.Time
	if cfg.Date != "" {
		if d, err = date.Parse(cfg.Date, date.Today()); err != nil {
			return err
		}
	}
	book, err := newBook(ctx)
	if err != nil {
		return err
	}
	defer book.Close()

	var (
		cat     = currency.NewDefaultCatalog()
		results = make([]decimal.Decimal, len(cfg.Pairs))
		errs    = make([]error, len(cfg.Pairs))
		g       errgroup.Group
		bar     = pb.New(len(cfg.Pairs))
	)
	bar.SetWriter(cmd.ErrOrStderr())
	bar.Start()
	g.SetLimit(ratesConcurrency)
	for i, p := range cfg.Pairs {
		g.Go(func() error {
			defer bar.Increment()
			from, err := resolveCurrency(cat, p.From)
			if err != nil {
				errs[i] = err
				return nil
			}
			to, err := resolveCurrency(cat, p.To)
			if err != nil {
				errs[i] = err
				return nil
			}
			if results[i], err = book.Rate(ctx, from, to, d); err != nil {
				errs[i] = fmt.Errorf("%s/%s: %w", p.From, p.To, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	bar.Finish()
	if err := multierr.Combine(errs...); err != nil {
		return err
	}
	tbl := table.New(2, 1)
	addHeader(tbl, "From", "To", "Rate")
	for i, p := range cfg.Pairs {
		tbl.AddRow().
			AddText(p.From, table.Left).
			AddText(p.To, table.Left).
			AddAmount(results[i].String(), 0)
	}
	tbl.AddSeparatorRow()
	return r.output.render(cmd, tbl)
}

func (r *ratesRunner) readConfig(path string) (ratesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return ratesConfig{}, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	var cfg ratesConfig
	if err := dec.Decode(&cfg); err != nil {
		return ratesConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// resolveCurrency looks up a currency, registering unknown codes.
func resolveCurrency(cat *currency.Catalog, text string) (*currency.Currency, error) {
	if c, err := cat.Resolve(text); err == nil {
		return c, nil
	}
	return cat.Register(text, "", "", currency.CodeSuffix)
}

func newBook(ctx context.Context) (*rates.Book, error) {
	cfg := config.FromContext(ctx)
	return rates.NewBook(rates.NewClient(cfg.RatesURL, cfg.RatesTimeout, cfg.RatesRetries), cfg.RatesCache)
}
