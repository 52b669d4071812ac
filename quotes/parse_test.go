package quotes

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/symbols"
	"github.com/stretchr/testify/require"
)

func TestParse_ExplicitPriceAndClose(t *testing.T) {
	payload := []byte(`{"chart":{"result":[{"meta":{"symbol":"TCS.NS","exchangeName":"NSI","currency":"INR",
		"regularMarketPrice":100,"previousClose":95,"regularMarketTime":1700000000,"longName":"Tata Consultancy Services Limited"},
		"timestamp":[1700000000],"indicators":{"quote":[{"high":[101],"low":[94],"close":[100],"volume":[1200]}]}}],"error":null}}`)

	got, err := Parse(payload)
	require.NoError(t, err)
	require.Equal(t, symbols.Symbol("TCS.NS"), got.Symbol)
	require.Equal(t, "NSI", got.Exchange)
	require.Equal(t, "Tata Consultancy Services Limited", got.Name)
	require.InDelta(t, 100, got.Price, 1e-9)
	require.InDelta(t, 95, got.PreviousClose, 1e-9)
	require.InDelta(t, 5, got.Change, 1e-9)
	require.InDelta(t, 5.263, got.ChangePercent, 0.001)
	require.InDelta(t, 101, got.DayHigh, 1e-9)
	require.InDelta(t, 94, got.DayLow, 1e-9)
	require.NotNil(t, got.Volume)
	require.InDelta(t, 1200, *got.Volume, 1e-9)
	require.True(t, got.UpdatedAt.Equal(time.Unix(1700000000, 0)))
}

func TestParse_ZeroPreviousClose(t *testing.T) {
	payload := []byte(`{"chart":{"result":[{"meta":{"symbol":"X.NS","regularMarketPrice":50,"previousClose":0},
		"indicators":{"quote":[{}]}}]}}`)

	got, err := Parse(payload)
	require.NoError(t, err)
	require.False(t, math.IsNaN(got.ChangePercent))
	require.False(t, math.IsInf(got.ChangePercent, 0))
	require.Zero(t, got.ChangePercent)
	require.Zero(t, got.Change)
}

func TestParse_SeriesFallbacks(t *testing.T) {
	payload := []byte(`{"chart":{"result":[{"meta":{"symbol":"INFY.NS"},
		"indicators":{"quote":[{"high":[null,101.5,null,99.2],"low":[null,null,97.1,98],
		"close":[null,98,null,100.5,null],"volume":[null,10,null]}]}}]}}`)

	got, err := Parse(payload)
	require.NoError(t, err)
	require.InDelta(t, 100.5, got.Price, 1e-9)
	require.InDelta(t, 98, got.PreviousClose, 1e-9)
	require.InDelta(t, 2.5, got.Change, 1e-9)
	require.InDelta(t, 2.5/98*100, got.ChangePercent, 1e-9)
	require.InDelta(t, 101.5, got.DayHigh, 1e-9)
	require.InDelta(t, 97.1, got.DayLow, 1e-9)
	require.Equal(t, "NSE", got.Exchange)
	require.Equal(t, "INR", got.Currency)
	require.Equal(t, "INFY", got.Name)
	require.True(t, got.UpdatedAt.IsZero())
}

func TestParse_EmptySeriesFallsBackToPrice(t *testing.T) {
	payload := []byte(`{"chart":{"result":[{"meta":{"symbol":"A.NS","regularMarketPrice":10},
		"indicators":{"quote":[{"high":[null,null],"low":[null],"volume":[null]}]}}]}}`)

	got, err := Parse(payload)
	require.NoError(t, err)
	require.InDelta(t, 10, got.DayHigh, 1e-9)
	require.InDelta(t, 10, got.DayLow, 1e-9)
	require.InDelta(t, 10, got.PreviousClose, 1e-9)
	require.Zero(t, got.ChangePercent)
	require.Nil(t, got.Volume)
}

func TestParse_TrustsProviderChange(t *testing.T) {
	payload := []byte(`{"chart":{"result":[{"meta":{"symbol":"A.NS","regularMarketPrice":110,"previousClose":100,
		"regularMarketChange":9.5,"regularMarketChangePercent":9.5,"regularMarketVolume":5000,
		"regularMarketDayHigh":111,"regularMarketDayLow":99}}]}}`)

	got, err := Parse(payload)
	require.NoError(t, err)
	require.InDelta(t, 9.5, got.Change, 1e-9)
	require.InDelta(t, 9.5, got.ChangePercent, 1e-9)
	require.InDelta(t, 111, got.DayHigh, 1e-9)
	require.InDelta(t, 99, got.DayLow, 1e-9)
	require.InDelta(t, 5000, *got.Volume, 1e-9)
}

func TestParse_UnparseableNumericField(t *testing.T) {
	payload := []byte(`{"chart":{"result":[{"meta":{"symbol":"TCS.NS","regularMarketPrice":100,"previousClose":95,
		"marketCap":"N/A","fiftyTwoWeekHigh":"-","fiftyTwoWeekLow":"3100.5","regularMarketTime":{"raw":1}},
		"indicators":{"quote":[{"high":[101,"x"],"low":[94,true],"close":[100],"volume":["1200"]}]}}]}}`)

	got, err := Parse(payload)
	require.NoError(t, err)
	require.InDelta(t, 100, got.Price, 1e-9)
	require.InDelta(t, 5, got.Change, 1e-9)
	require.InDelta(t, 5.263, got.ChangePercent, 0.001)
	require.InDelta(t, 101, got.DayHigh, 1e-9)
	require.InDelta(t, 94, got.DayLow, 1e-9)
	require.Nil(t, got.MarketCap)
	require.Nil(t, got.FiftyTwoWeekHigh)
	require.NotNil(t, got.FiftyTwoWeekLow)
	require.InDelta(t, 3100.5, *got.FiftyTwoWeekLow, 1e-9)
	require.NotNil(t, got.Volume)
	require.InDelta(t, 1200, *got.Volume, 1e-9)
	require.True(t, got.UpdatedAt.IsZero())
}

func TestParse_VolumeSumsWhenFinalEntryMissing(t *testing.T) {
	payload := []byte(`{"chart":{"result":[{"meta":{"symbol":"A.NS","regularMarketPrice":10},
		"indicators":{"quote":[{"volume":[100,null,250,null]}]}}]}}`)

	got, err := Parse(payload)
	require.NoError(t, err)
	require.NotNil(t, got.Volume)
	require.InDelta(t, 350, *got.Volume, 1e-9)

	// the final entry wins when present
	payload = []byte(`{"chart":{"result":[{"meta":{"symbol":"A.NS","regularMarketPrice":10},
		"indicators":{"quote":[{"volume":[100,250,40]}]}}]}}`)

	got, err = Parse(payload)
	require.NoError(t, err)
	require.InDelta(t, 40, *got.Volume, 1e-9)
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		json string
		want float64
		nan  bool
	}{
		{json: `12.5`, want: 12.5},
		{json: `"7"`, want: 7},
		{json: `" 3.25 "`, want: 3.25},
		{json: `"N/A"`, nan: true},
		{json: `{"raw":1}`, nan: true},
	}

	for _, tt := range tests {
		var value Float
		require.NoError(t, value.UnmarshalJSON([]byte(tt.json)), tt.json)
		if tt.nan {
			require.True(t, math.IsNaN(float64(value)), tt.json)
			continue
		}
		require.InDelta(t, tt.want, float64(value), 1e-9, tt.json)
	}
}

func TestParse_Malformed(t *testing.T) {
	payloads := []string{
		`not json`,
		`{}`,
		`{"chart":{"result":[]}}`,
		`{"chart":{"result":[{"indicators":{}}]}}`,
		`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`,
	}

	for _, payload := range payloads {
		_, err := Parse([]byte(payload))
		require.ErrorIs(t, err, constants.ErrMalformedPayload, "Parse(%s)", payload)
	}
}

func TestValidateChart(t *testing.T) {
	require.NoError(t, ValidateChart([]byte(`{"chart":{"result":[{"meta":{}}]}}`)))
	require.ErrorIs(t, ValidateChart([]byte(`{"contents":"{}"}`)), constants.ErrMalformedPayload)
	require.ErrorIs(t, ValidateChart([]byte(`<html>`)), constants.ErrMalformedPayload)
}

func TestSnapshot_EncodeDecode(t *testing.T) {
	volume, marketCap := 1.25e7, 1.5e12
	want := Snapshot{
		Symbol:        "RELIANCE.NS",
		Exchange:      "NSI",
		Name:          "Reliance Industries Limited",
		Currency:      "INR",
		Price:         2456.35,
		PreviousClose: 2400.1,
		Change:        56.25,
		ChangePercent: 2.343,
		DayHigh:       2460,
		DayLow:        2398.5,
		Volume:        &volume,
		MarketCap:     &marketCap,
		UpdatedAt:     time.Unix(1700000000, 0),
	}

	buffer := new(bytes.Buffer)
	require.NoError(t, want.Encode(buffer))

	got := new(Snapshot)
	require.NoError(t, got.Decode(buffer))
	require.True(t, want.UpdatedAt.Equal(got.UpdatedAt))

	got.UpdatedAt = want.UpdatedAt
	require.Equal(t, want, *got)
}
