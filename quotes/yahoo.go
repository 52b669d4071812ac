package quotes

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/nzai/nseq/constants"
)

var (
	// YahooNotFoundCode define errors raised by yahoo finace on code not found
	YahooNotFoundCode = "Not Found"
	// ErrYahooSymbolNotFound define errors raised by yahoo finace on symbol not found
	ErrYahooSymbolNotFound = errors.New("symbol not found")
)

// Float define a provider number. Numeric strings are accepted, anything else
// that is not a number decodes as NaN and counts as missing.
type Float float64

// UnmarshalJSON never fails, so one bad field cannot spoil the whole quote
func (f *Float) UnmarshalJSON(data []byte) error {
	text := strings.Trim(strings.TrimSpace(string(data)), `"`)

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		*f = Float(math.NaN())
		return nil
	}

	*f = Float(value)
	return nil
}

// YahooQuote define yahoo finance chart response structure.
// Every number is a pointer because the provider sends null for missing values.
type YahooQuote struct {
	Chart struct {
		Result []*YahooChartResult `json:"result"`
		Err    *YahooError         `json:"error"`
	} `json:"chart"`
}

// YahooChartResult define one chart result
type YahooChartResult struct {
	Meta       *YahooMeta `json:"meta"`
	Timestamp  []*Float   `json:"timestamp"`
	Indicators struct {
		Quotes []*YahooSeries `json:"quote"`
	} `json:"indicators"`
}

// YahooMeta define chart meta
type YahooMeta struct {
	Currency                   string `json:"currency"`
	Symbol                     string `json:"symbol"`
	ExchangeName               string `json:"exchangeName"`
	FullExchangeName           string `json:"fullExchangeName"`
	InstrumentType             string `json:"instrumentType"`
	Timezone                   string `json:"timezone"`
	LongName                   string `json:"longName"`
	ShortName                  string `json:"shortName"`
	RegularMarketTime          *Float `json:"regularMarketTime"`
	RegularMarketPrice         *Float `json:"regularMarketPrice"`
	CurrentPrice               *Float `json:"currentPrice"`
	PreviousClose              *Float `json:"previousClose"`
	ChartPreviousClose         *Float `json:"chartPreviousClose"`
	RegularMarketChange        *Float `json:"regularMarketChange"`
	RegularMarketChangePercent *Float `json:"regularMarketChangePercent"`
	RegularMarketOpen          *Float `json:"regularMarketOpen"`
	RegularMarketDayHigh       *Float `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *Float `json:"regularMarketDayLow"`
	RegularMarketVolume        *Float `json:"regularMarketVolume"`
	MarketCap                  *Float `json:"marketCap"`
	FiftyTwoWeekHigh           *Float `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *Float `json:"fiftyTwoWeekLow"`
}

// YahooSeries define parallel quote arrays
type YahooSeries struct {
	Open   []*Float `json:"open"`
	Close  []*Float `json:"close"`
	High   []*Float `json:"high"`
	Low    []*Float `json:"low"`
	Volume []*Float `json:"volume"`
}

// YahooError define yahoo error body
type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Validate validate response carries a usable result
func (q YahooQuote) Validate() error {
	// yahoo error
	if q.Chart.Err != nil {
		if q.Chart.Err.Code == YahooNotFoundCode {
			return ErrYahooSymbolNotFound
		}
		return errors.New(q.Chart.Err.Description)
	}

	if len(q.Chart.Result) == 0 || q.Chart.Result[0] == nil {
		return errors.New("quote.Chart.Result is null")
	}

	if q.Chart.Result[0].Meta == nil {
		return errors.New("quote.Chart.Result[0].Meta is null")
	}

	return nil
}

// series return the first quote series, or an empty one
func (r YahooChartResult) series() *YahooSeries {
	if len(r.Indicators.Quotes) == 0 || r.Indicators.Quotes[0] == nil {
		return new(YahooSeries)
	}

	return r.Indicators.Quotes[0]
}

// ValidateChart check payload has the chart.result[0] shape
func ValidateChart(payload []byte) error {
	var shape struct {
		Chart *struct {
			Result []map[string]any `json:"result"`
		} `json:"chart"`
	}

	err := sonic.Unmarshal(payload, &shape)
	if err != nil {
		return fmt.Errorf("%w: %v", constants.ErrMalformedPayload, err)
	}

	if shape.Chart == nil || len(shape.Chart.Result) == 0 || shape.Chart.Result[0] == nil {
		return fmt.Errorf("%w: chart.result[0] missing", constants.ErrMalformedPayload)
	}

	return nil
}
