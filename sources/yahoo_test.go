package sources

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/nzai/nseq/config"
	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/internal/mocks"
	"github.com/nzai/nseq/proxies"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newYahoo(fetcher Fetcher) *YahooFinance {
	return NewYahooFinance(fetcher, config.Default().Yahoo)
}

func TestYahooFinance_ChartURL(t *testing.T) {
	yahoo := newYahoo(nil)

	target, err := url.Parse(yahoo.ChartURL("M&M.NS"))
	require.NoError(t, err)
	require.Equal(t, "query1.finance.yahoo.com", target.Host)
	require.Equal(t, "/v8/finance/chart/M&M.NS", target.Path)

	query := target.Query()
	require.Equal(t, "1d", query.Get("interval"))
	require.Equal(t, "1d", query.Get("range"))
	require.Equal(t, "false", query.Get("includePrePost"))
	require.Equal(t, "IN", query.Get("region"))
	require.Equal(t, "en-IN", query.Get("lang"))
	require.Equal(t, "finance.yahoo.com", query.Get("corsDomain"))
}

func TestYahooFinance_SearchURL(t *testing.T) {
	target, err := url.Parse(newYahoo(nil).SearchURL("tata motors"))
	require.NoError(t, err)
	require.Equal(t, "/v1/finance/search", target.Path)
	require.Equal(t, "tata motors", target.Query().Get("q"))
	require.Equal(t, "6", target.Query().Get("quotesCount"))
	require.Equal(t, "0", target.Query().Get("newsCount"))
}

func TestYahooFinance_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)

	fetcher.EXPECT().
		FetchJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target string, validate proxies.Validator) ([]byte, error) {
			require.True(t, strings.Contains(target, "/chart/TCS.NS?"))

			payload := []byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":100,"previousClose":95}}]}}`)
			require.NoError(t, validate(payload))

			return payload, nil
		}).
		Times(1)

	snapshot, err := newYahoo(fetcher).Quote(t.Context(), "TCS.NS")
	require.NoError(t, err)
	require.Equal(t, symbols.Symbol("TCS.NS"), snapshot.Symbol)
	// a nameless payload takes the quick access listing name
	require.Equal(t, "Tata Consultancy Services Ltd", snapshot.Name)
	require.InDelta(t, 5, snapshot.Change, 1e-9)
}

func TestYahooFinance_QuoteNames(t *testing.T) {
	tests := []struct {
		name    string
		symbol  symbols.Symbol
		payload string
		want    string
	}{
		{
			name:    "unlisted symbol uses its code",
			symbol:  "WIPRO.NS",
			payload: `{"chart":{"result":[{"meta":{"regularMarketPrice":400}}]}}`,
			want:    "WIPRO",
		},
		{
			name:    "payload name wins",
			symbol:  "TCS.NS",
			payload: `{"chart":{"result":[{"meta":{"symbol":"TCS.NS","regularMarketPrice":100,"longName":"Tata Consultancy Services Limited"}}]}}`,
			want:    "Tata Consultancy Services Limited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockFetcher(ctrl)
			fetcher.EXPECT().FetchJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte(tt.payload), nil).Times(1)

			snapshot, err := newYahoo(fetcher).Quote(t.Context(), tt.symbol)
			require.NoError(t, err)
			require.Equal(t, tt.symbol, snapshot.Symbol)
			require.Equal(t, tt.want, snapshot.Name)
		})
	}
}

func TestYahooFinance_QuoteErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)

	exhausted := &proxies.ExhaustedError{Attempts: 3, Last: errors.New("unexpected response status (502)")}
	gomock.InOrder(
		fetcher.EXPECT().FetchJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, exhausted).Times(1),
		fetcher.EXPECT().FetchJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte(`{"chart":{"result":[{}]}}`), nil).Times(1),
	)

	yahoo := newYahoo(fetcher)

	_, err := yahoo.Quote(t.Context(), "TCS.NS")
	require.ErrorIs(t, err, constants.ErrAllProxiesExhausted)

	_, err = yahoo.Quote(t.Context(), "TCS.NS")
	require.ErrorIs(t, err, constants.ErrMalformedPayload)
}

func TestYahooFinance_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)

	fetcher.EXPECT().
		FetchJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target string, validate proxies.Validator) ([]byte, error) {
			require.Contains(t, target, "q=infy")

			payload := []byte(`{"quotes":[{"symbol":"INFY.NS","exchange":"NSI","longname":"Infosys Limited"},{"symbol":"INFY","exchange":"NYQ"}]}`)
			require.NoError(t, validate(payload))

			return payload, nil
		}).
		Times(1)

	suggestions, err := newYahoo(fetcher).Search(t.Context(), "infy")
	require.NoError(t, err)
	require.Equal(t, quotes.Suggestions{{Symbol: "INFY.NS", Name: "Infosys Limited"}}, suggestions)
}
