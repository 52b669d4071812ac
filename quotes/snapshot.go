package quotes

import (
	"io"
	"math"
	"time"

	"github.com/nzai/bio"
	"github.com/nzai/nseq/symbols"
	"go.uber.org/zap"
)

// Snapshot define one normalized point-in-time quote
type Snapshot struct {
	Symbol           symbols.Symbol `json:"symbol"`
	Exchange         string         `json:"exchange"`
	Name             string         `json:"name"`
	Currency         string         `json:"currency"`
	Price            float64        `json:"price"`
	PreviousClose    float64        `json:"previous_close"`
	Change           float64        `json:"change"`
	ChangePercent    float64        `json:"change_percent"`
	DayHigh          float64        `json:"day_high"`
	DayLow           float64        `json:"day_low"`
	Open             *float64       `json:"open,omitempty"`
	Volume           *float64       `json:"volume,omitempty"`
	MarketCap        *float64       `json:"market_cap,omitempty"`
	FiftyTwoWeekHigh *float64       `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  *float64       `json:"fifty_two_week_low,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsUp price moved up or stayed flat
func (s Snapshot) IsUp() bool {
	return s.Change >= 0
}

// Encode encode snapshot to io.Writer
func (s Snapshot) Encode(w io.Writer) error {
	bw := bio.NewBinaryWriter(w)

	for _, text := range []string{s.Symbol.String(), s.Exchange, s.Name, s.Currency} {
		_, err := bw.String(text)
		if err != nil {
			zap.L().Error("encode snapshot text failed", zap.Error(err), zap.Any("snapshot", s))
			return err
		}
	}

	for _, value := range []float64{s.Price, s.PreviousClose, s.Change, s.ChangePercent, s.DayHigh, s.DayLow} {
		_, err := bw.UInt64(math.Float64bits(value))
		if err != nil {
			zap.L().Error("encode snapshot value failed", zap.Error(err), zap.Any("snapshot", s))
			return err
		}
	}

	encodeOptional := func(value *float64) error {
		_, err := bw.Bool(value != nil)
		if err != nil || value == nil {
			return err
		}

		_, err = bw.UInt64(math.Float64bits(*value))
		return err
	}

	for _, value := range []*float64{s.Open, s.Volume, s.MarketCap, s.FiftyTwoWeekHigh, s.FiftyTwoWeekLow} {
		err := encodeOptional(value)
		if err != nil {
			zap.L().Error("encode snapshot optional value failed", zap.Error(err), zap.Any("snapshot", s))
			return err
		}
	}

	_, err := bw.Bool(!s.UpdatedAt.IsZero())
	if err != nil {
		zap.L().Error("encode snapshot updated flag failed", zap.Error(err), zap.Any("snapshot", s))
		return err
	}

	if s.UpdatedAt.IsZero() {
		return nil
	}

	_, err = bw.Time(s.UpdatedAt)
	if err != nil {
		zap.L().Error("encode snapshot updated time failed", zap.Error(err), zap.Time("updated", s.UpdatedAt))
		return err
	}

	return nil
}

// Decode decode snapshot from io.Reader
func (s *Snapshot) Decode(r io.Reader) error {
	br := bio.NewBinaryReader(r)

	texts := make([]string, 4)
	for index := range texts {
		text, err := br.String()
		if err != nil {
			zap.L().Error("decode snapshot text failed", zap.Error(err), zap.Int("index", index))
			return err
		}
		texts[index] = text
	}

	values := make([]float64, 6)
	for index := range values {
		bits, err := br.UInt64()
		if err != nil {
			zap.L().Error("decode snapshot value failed", zap.Error(err), zap.Int("index", index))
			return err
		}
		values[index] = math.Float64frombits(bits)
	}

	decodeOptional := func() (*float64, error) {
		present, err := br.Bool()
		if err != nil || !present {
			return nil, err
		}

		bits, err := br.UInt64()
		if err != nil {
			return nil, err
		}

		value := math.Float64frombits(bits)
		return &value, nil
	}

	optionals := make([]*float64, 5)
	for index := range optionals {
		value, err := decodeOptional()
		if err != nil {
			zap.L().Error("decode snapshot optional value failed", zap.Error(err), zap.Int("index", index))
			return err
		}
		optionals[index] = value
	}

	hasTime, err := br.Bool()
	if err != nil {
		zap.L().Error("decode snapshot updated flag failed", zap.Error(err))
		return err
	}

	var updatedAt time.Time
	if hasTime {
		updatedAt, err = br.Time()
		if err != nil {
			zap.L().Error("decode snapshot updated time failed", zap.Error(err))
			return err
		}
	}

	*s = Snapshot{
		Symbol:           symbols.Symbol(texts[0]),
		Exchange:         texts[1],
		Name:             texts[2],
		Currency:         texts[3],
		Price:            values[0],
		PreviousClose:    values[1],
		Change:           values[2],
		ChangePercent:    values[3],
		DayHigh:          values[4],
		DayLow:           values[5],
		Open:             optionals[0],
		Volume:           optionals[1],
		MarketCap:        optionals[2],
		FiftyTwoWeekHigh: optionals[3],
		FiftyTwoWeekLow:  optionals[4],
		UpdatedAt:        updatedAt,
	}

	return nil
}
