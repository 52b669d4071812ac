package notifiers

import (
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
)

const (
	// EventQuote a snapshot was rendered
	EventQuote = "quote"
	// EventError an error message was rendered
	EventError = "error"
	// EventPaused live updates paused
	EventPaused = "paused"
)

// Event published viewer event
type Event struct {
	Event    string           `json:"event"`
	Symbol   symbols.Symbol   `json:"symbol,omitempty"`
	Snapshot *quotes.Snapshot `json:"snapshot,omitempty"`
	Message  string           `json:"message,omitempty"`
	At       int64            `json:"at"`
}
