// Package picker runs the query/commit cycle of the emoji picker.
//
// While the UI is open every query change goes through Update, which ranks
// the corpus and arms the top glyph. Once the UI has closed, Commit takes
// the armed glyph and types it into the window that regains focus.
package picker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/subins2000/quemoji/internal/corpus"
	"github.com/subins2000/quemoji/internal/handoff"
	"github.com/subins2000/quemoji/internal/inject"
	"github.com/subins2000/quemoji/internal/logger"
	"github.com/subins2000/quemoji/internal/ranker"
	"github.com/subins2000/quemoji/internal/selection"
)

// ErrNoSelection is returned by Commit when nothing was armed.
var ErrNoSelection = errors.New("no emoji selected")

// Options configure an Engine.
type Options struct {
	Limit       int
	MinScore    float64
	SettleDelay time.Duration
}

// Engine holds the corpus and the pending selection for one picker run.
type Engine struct {
	corpus  *corpus.Corpus
	ranker  *ranker.Ranker
	limit   int
	delay   time.Duration
	pending *handoff.Slot
	table   []ranker.Result
}

// NewEngine returns an engine searching c.
func NewEngine(c *corpus.Corpus, opts Options) *Engine {
	limit := opts.Limit
	if limit < 1 {
		limit = ranker.DefaultLimit
	}
	return &Engine{
		corpus:  c,
		ranker:  ranker.New(ranker.Options{MinScore: opts.MinScore}),
		limit:   limit,
		delay:   opts.SettleDelay,
		pending: handoff.New(),
	}
}

// Update ranks query, arms the best glyph (or disarms when nothing
// matches) and returns the labels to display.
func (e *Engine) Update(query string) []string {
	start := time.Now()
	e.table = e.ranker.Rank(query, e.corpus, e.limit)
	glyph, ok := selection.Extract(e.table)
	e.pending.Set(glyph, ok)

	logger.Debug("query %q: %d results in %s", query, len(e.table), time.Since(start))
	return ranker.Labels(e.table)
}

// Results returns the results of the last Update.
func (e *Engine) Results() []ranker.Result {
	return e.table
}

// Cancel disarms the pending selection so Commit types nothing.
func (e *Engine) Cancel() {
	e.table = nil
	e.pending.Clear()
}

// Commit types the armed glyph through inj after the settle delay. It must
// only be called once the UI has closed. The glyph is taken from the
// pending slot whether or not the injection succeeds.
func (e *Engine) Commit(ctx context.Context, inj inject.Injector) (string, error) {
	glyph, ok := e.pending.Take()
	if !ok {
		return "", ErrNoSelection
	}

	logger.Info("sending %s via %s", glyph, inj.Name())
	if err := inject.Settled(inj, e.delay).Inject(ctx, glyph); err != nil {
		return glyph, fmt.Errorf("send %s: %w", glyph, err)
	}
	return glyph, nil
}
