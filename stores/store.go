package stores

import (
	"time"

	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
)

// Store define the session cache of snapshots and search suggestions
type Store interface {
	// SaveSnapshot save the latest snapshot of its symbol
	SaveSnapshot(*quotes.Snapshot) error
	// LoadSnapshot load the latest snapshot of symbol
	LoadSnapshot(symbols.Symbol) (*quotes.Snapshot, error)
	// Snapshots load the latest snapshot of every symbol, ordered by symbol
	Snapshots() ([]*quotes.Snapshot, error)
	// SaveSuggestions save suggestions of query fetched at time
	SaveSuggestions(string, quotes.Suggestions, time.Time) error
	// LoadSuggestions load suggestions of query not older than ttl at time
	LoadSuggestions(string, time.Time, time.Duration) (quotes.Suggestions, error)
	// Close release the store
	Close() error
}
