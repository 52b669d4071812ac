package sources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nzai/nseq/config"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
	"go.uber.org/zap"
)

// YahooFinance yahoo finance source
type YahooFinance struct {
	fetcher Fetcher
	yahoo   config.Yahoo
}

// NewYahooFinance create yahoo finance source
func NewYahooFinance(fetcher Fetcher, yahoo config.Yahoo) *YahooFinance {
	return &YahooFinance{fetcher: fetcher, yahoo: yahoo}
}

// ChartURL build the chart url for symbol
func (yahoo YahooFinance) ChartURL(symbol symbols.Symbol) string {
	params := url.Values{}
	params.Set("interval", yahoo.yahoo.Interval)
	params.Set("range", yahoo.yahoo.Range)
	params.Set("includePrePost", "false")
	params.Set("useYfid", "true")
	params.Set("region", "IN")
	params.Set("lang", "en-IN")
	params.Set("corsDomain", "finance.yahoo.com")

	return yahoo.yahoo.ChartURL + url.PathEscape(symbol.String()) + "?" + params.Encode()
}

// SearchURL build the search url for query
func (yahoo YahooFinance) SearchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", strconv.Itoa(yahoo.yahoo.QuotesCount))
	params.Set("newsCount", "0")
	params.Set("enableFuzzyQuery", "false")
	params.Set("quotesQueryId", "tss_match_phrase_query")
	params.Set("multiQuoteQueryId", "multi_quote_single_token_query")
	params.Set("enableCb", "true")
	params.Set("region", "IN")

	return yahoo.yahoo.SearchURL + "?" + params.Encode()
}

// Quote fetch symbol quote snapshot
func (yahoo YahooFinance) Quote(ctx context.Context, symbol symbols.Symbol) (*quotes.Snapshot, error) {
	target := yahoo.ChartURL(symbol)

	payload, err := yahoo.fetcher.FetchJSON(ctx, target, quotes.ValidateChart)
	if err != nil {
		zap.L().Warn("fetch yahoo finance chart failed", zap.Error(err), zap.Stringer("symbol", symbol))
		return nil, err
	}

	snapshot, err := quotes.Parse(payload)
	if err != nil {
		zap.L().Warn("parse yahoo finance chart failed", zap.Error(err), zap.Stringer("symbol", symbol))
		return nil, err
	}

	// some relays strip meta.symbol, the quick access list still knows the name
	if snapshot.Symbol == "" {
		snapshot.Symbol = symbol
		if snapshot.Name == "" {
			snapshot.Name = symbol.Code()
			if listing, found := symbols.Lookup(symbol); found {
				snapshot.Name = listing.Name
			}
		}
	}

	return snapshot, nil
}

// Search search nse listings
func (yahoo YahooFinance) Search(ctx context.Context, query string) (quotes.Suggestions, error) {
	target := yahoo.SearchURL(query)

	payload, err := yahoo.fetcher.FetchJSON(ctx, target, quotes.ValidateSearch)
	if err != nil {
		zap.L().Warn("fetch yahoo finance search failed", zap.Error(err), zap.String("query", query))
		return nil, err
	}

	return quotes.ParseSearch(payload)
}
