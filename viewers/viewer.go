package viewers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/formats"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/recorder"
	"github.com/nzai/nseq/renderers"
	"github.com/nzai/nseq/schedulers"
	"github.com/nzai/nseq/sources"
	"github.com/nzai/nseq/stores"
	"github.com/nzai/nseq/symbols"
	"go.uber.org/zap"
)

// Viewer look up symbols, render their quotes and keep them live
type Viewer struct {
	source    sources.Source
	renderer  renderers.Renderer
	store     stores.Store
	scheduler *schedulers.Scheduler
	now       func() time.Time

	searchLimiter  *schedulers.Limiter
	suggestLimiter *schedulers.Limiter

	searches atomic.Uint64
	mutex    sync.Mutex
	cancel   context.CancelFunc
}

// NewViewer create viewer, every snapshot it renders is recorded to store
func NewViewer(source sources.Source, renderer renderers.Renderer, store stores.Store, options ...schedulers.SchedulerOption) *Viewer {
	renderer = recorder.NewRecorder(renderer, store)

	return &Viewer{
		source:         source,
		renderer:       renderer,
		store:          store,
		scheduler:      schedulers.NewScheduler(source, renderer, options...),
		now:            time.Now,
		searchLimiter:  schedulers.NewLimiter(constants.SearchDebounce),
		suggestLimiter: schedulers.NewLimiter(constants.SuggestDebounce),
	}
}

// Search normalize raw input, render its quote once and keep it live.
// Empty input returns ErrEmptySymbol without rendering anything.
func (v *Viewer) Search(ctx context.Context, raw string) error {
	symbol, err := symbols.Normalize(raw)
	if err != nil {
		return err
	}

	ctx, generation := v.begin(ctx)

	// a new search ends the current live updates
	v.scheduler.Cancel()
	v.renderer.RenderLoading()

	snapshot, err := v.source.Quote(ctx, symbol)

	// a newer search waits in begin until this one rendered and tracked
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if !v.latest(generation) {
		zap.L().Debug("discard superseded search", zap.Stringer("symbol", symbol), zap.Error(err))
		return context.Canceled
	}

	if err != nil {
		zap.L().Warn("search quote failed", zap.Error(err), zap.String("input", raw), zap.Stringer("symbol", symbol))
		v.renderer.RenderError(Message(strings.TrimSpace(raw), err, v.now()))
		return err
	}

	v.renderer.RenderQuote(snapshot)
	v.scheduler.Track(symbol)

	return nil
}

// SearchLater run Search once input settled, earlier pending input is dropped
func (v *Viewer) SearchLater(raw string) {
	v.searchLimiter.Do(func() {
		err := v.Search(context.Background(), raw)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, constants.ErrEmptySymbol) {
			zap.L().Debug("debounced search failed", zap.Error(err), zap.String("input", raw))
		}
	})
}

// TrackForLiveUpdates replace the current live updates with symbol
func (v *Viewer) TrackForLiveUpdates(symbol symbols.Symbol) *schedulers.Session {
	return v.scheduler.Track(symbol)
}

// Session current live updates, nil before the first search
func (v *Viewer) Session() *schedulers.Session {
	return v.scheduler.Current()
}

// Focus the input regained focus, live updates stop
func (v *Viewer) Focus() {
	v.scheduler.Cancel()
}

// Suggest search listings for query. Short queries return nothing, results are
// cached for a while and a failed search falls back to the quick access list.
func (v *Viewer) Suggest(ctx context.Context, query string) quotes.Suggestions {
	query = strings.TrimSpace(query)
	if len(query) < constants.MinSuggestQueryLength {
		return quotes.Suggestions{}
	}

	cached, err := v.store.LoadSuggestions(query, v.now(), constants.SuggestionTTL)
	if err == nil {
		return cached
	}

	if !errors.Is(err, constants.ErrRecordNotFound) {
		zap.L().Warn("load cached suggestions failed", zap.Error(err), zap.String("query", query))
	}

	suggestions, err := v.source.Search(ctx, query)
	if err != nil {
		zap.L().Warn("search suggestions failed, use quick access list", zap.Error(err), zap.String("query", query))
		return fallback(query)
	}

	err = v.store.SaveSuggestions(query, suggestions, v.now())
	if err != nil {
		zap.L().Warn("cache suggestions failed", zap.Error(err), zap.String("query", query))
	}

	return suggestions
}

// SuggestLater run Suggest once input settled and hand the result to show
func (v *Viewer) SuggestLater(query string, show func(quotes.Suggestions)) {
	v.suggestLimiter.Do(func() {
		show(v.Suggest(context.Background(), query))
	})
}

// Recent latest snapshot of every symbol shown so far, ordered by symbol
func (v *Viewer) Recent() ([]*quotes.Snapshot, error) {
	return v.store.Snapshots()
}

// Last latest snapshot shown for symbol, ErrRecordNotFound when never shown
func (v *Viewer) Last(symbol symbols.Symbol) (*quotes.Snapshot, error) {
	return v.store.LoadSnapshot(symbol)
}

// Close stop pending input and live updates
func (v *Viewer) Close() {
	v.searchLimiter.Stop()
	v.suggestLimiter.Stop()

	// a search still in flight must not render after close
	v.mutex.Lock()
	v.searches.Add(1)
	if v.cancel != nil {
		v.cancel()
	}
	v.mutex.Unlock()

	v.scheduler.Close()
}

// begin start a search session, cancelling the previous one
func (v *Viewer) begin(ctx context.Context) (context.Context, uint64) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if v.cancel != nil {
		v.cancel()
	}

	ctx, v.cancel = context.WithCancel(ctx)
	return ctx, v.searches.Add(1)
}

// latest must be called with mutex held
func (v *Viewer) latest(generation uint64) bool {
	return v.searches.Load() == generation
}

// Message user facing message of a failed search
func Message(input string, err error, at time.Time) string {
	message := fmt.Sprintf("Could not find stock data for %q. Please check the symbol and try again.", input)
	if errors.Is(err, constants.ErrAllProxiesExhausted) {
		message = fmt.Sprintf("Unable to fetch data for %q. This might be because the market is currently closed or the stock symbol is incorrect.", input)
	}

	return message + "\nLast attempt: " + formats.Clock(at)
}

func fallback(query string) quotes.Suggestions {
	listings := symbols.Filter(query)

	suggestions := make(quotes.Suggestions, 0, len(listings))
	for _, listing := range listings {
		suggestions = append(suggestions, quotes.Suggestion{Symbol: listing.Symbol, Name: listing.Name})
	}

	return suggestions
}
