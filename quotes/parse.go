package quotes

import (
	"fmt"
	"math"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/symbols"
	"go.uber.org/zap"
)

// Parse convert a yahoo chart payload to snapshot
func Parse(payload []byte) (*Snapshot, error) {
	quote := new(YahooQuote)
	err := sonic.Unmarshal(payload, quote)
	if err != nil {
		zap.L().Warn("unmarshal chart payload failed", zap.Error(err), zap.ByteString("json", payload))
		return nil, fmt.Errorf("%w: %v", constants.ErrMalformedPayload, err)
	}

	err = quote.Validate()
	if err != nil {
		zap.L().Warn("chart payload validate failed", zap.Error(err), zap.ByteString("json", payload))
		return nil, fmt.Errorf("%w: %v", constants.ErrMalformedPayload, err)
	}

	return quote.Chart.Result[0].ToSnapshot(), nil
}

// ToSnapshot derive a snapshot, filling missing fields from the series
func (r YahooChartResult) ToSnapshot() *Snapshot {
	meta, series := r.Meta, r.series()

	price, found := first(meta.RegularMarketPrice, meta.CurrentPrice)
	if !found {
		price, _ = lastValid(series.Close)
	}

	previousClose, found := first(meta.PreviousClose, meta.ChartPreviousClose)
	if !found {
		previousClose, found = firstValid(series.Close)
		if !found {
			previousClose = price
		}
	}

	change, found := first(meta.RegularMarketChange)
	if !found {
		change = price - previousClose
	}

	changePercent, found := first(meta.RegularMarketChangePercent)
	if !found {
		changePercent = 0
		if previousClose != 0 {
			changePercent = change / previousClose * 100
		}
	}

	dayHigh, found := extreme(series.High, math.Max)
	if !found {
		dayHigh, found = first(meta.RegularMarketDayHigh)
		if !found {
			dayHigh = price
		}
	}

	dayLow, found := extreme(series.Low, math.Min)
	if !found {
		dayLow, found = first(meta.RegularMarketDayLow)
		if !found {
			dayLow = price
		}
	}

	snapshot := &Snapshot{
		Symbol:           symbols.Symbol(meta.Symbol),
		Exchange:         orDefault(meta.ExchangeName, constants.ExchangeLabel),
		Currency:         orDefault(meta.Currency, constants.DefaultCurrency),
		Price:            price,
		PreviousClose:    previousClose,
		Change:           change,
		ChangePercent:    changePercent,
		DayHigh:          dayHigh,
		DayLow:           dayLow,
		Open:             optional(meta.RegularMarketOpen, meta.ChartPreviousClose),
		Volume:           r.volume(),
		MarketCap:        optional(meta.MarketCap),
		FiftyTwoWeekHigh: optional(meta.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  optional(meta.FiftyTwoWeekLow),
	}
	snapshot.Name = orDefault(meta.LongName, orDefault(meta.ShortName, snapshot.Symbol.Code()))

	if updated, found := first(meta.RegularMarketTime); found && updated > 0 {
		snapshot.UpdatedAt = time.Unix(int64(updated), 0)
	}

	return snapshot
}

// volume prefer meta volume, then the final entry, then the series sum
func (r YahooChartResult) volume() *float64 {
	if volume := optional(r.Meta.RegularMarketVolume); volume != nil {
		return volume
	}

	series := r.series()
	if len(series.Volume) == 0 {
		return nil
	}

	if volume := optional(series.Volume[len(series.Volume)-1]); volume != nil {
		return volume
	}

	var sum float64
	for _, value := range series.Volume {
		if valid(value) {
			sum += float64(*value)
		}
	}

	if sum == 0 {
		return nil
	}

	return &sum
}

// valid is false for null, NaN, infinite and zero, matching how the provider marks gaps
func valid(value *Float) bool {
	if value == nil {
		return false
	}

	number := float64(*value)
	return !math.IsNaN(number) && !math.IsInf(number, 0) && number != 0
}

func first(values ...*Float) (float64, bool) {
	for _, value := range values {
		if valid(value) {
			return float64(*value), true
		}
	}

	return 0, false
}

func optional(values ...*Float) *float64 {
	value, found := first(values...)
	if !found {
		return nil
	}

	return &value
}

func firstValid(values []*Float) (float64, bool) {
	return first(values...)
}

func lastValid(values []*Float) (float64, bool) {
	for index := len(values) - 1; index >= 0; index-- {
		if valid(values[index]) {
			return float64(*values[index]), true
		}
	}

	return 0, false
}

func extreme(values []*Float, pick func(float64, float64) float64) (float64, bool) {
	var result float64
	found := false
	for _, value := range values {
		if !valid(value) {
			continue
		}

		if !found {
			result, found = float64(*value), true
			continue
		}

		result = pick(result, float64(*value))
	}

	return result, found
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
