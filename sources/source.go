package sources

import (
	"context"

	"github.com/nzai/nseq/proxies"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
)

// Source define quote and symbol search source
//
//go:generate mockgen -package=mocks -destination=../internal/mocks/mock_source.go -source=source.go Source
type Source interface {
	// Quote fetch a quote snapshot
	Quote(context.Context, symbols.Symbol) (*quotes.Snapshot, error)
	// Search search nse listings matching query
	Search(context.Context, string) (quotes.Suggestions, error)
}

// Fetcher fetch validated json from a target url
type Fetcher interface {
	FetchJSON(ctx context.Context, target string, validate proxies.Validator) ([]byte, error)
}
