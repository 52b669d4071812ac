package quotes

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/nzai/bio"
	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/symbols"
	"go.uber.org/zap"
)

// YahooSearch define yahoo finance search response structure
type YahooSearch struct {
	Quotes []*struct {
		Symbol    string `json:"symbol"`
		Exchange  string `json:"exchange"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Suggestion define a search hit
type Suggestion struct {
	Symbol symbols.Symbol `json:"symbol"`
	Name   string         `json:"name"`
}

// Suggestions define search hits
type Suggestions []Suggestion

// ValidateSearch check payload has a quotes array
func ValidateSearch(payload []byte) error {
	var shape struct {
		Quotes *[]any `json:"quotes"`
	}

	err := sonic.Unmarshal(payload, &shape)
	if err != nil {
		return fmt.Errorf("%w: %v", constants.ErrMalformedPayload, err)
	}

	if shape.Quotes == nil {
		return fmt.Errorf("%w: quotes missing", constants.ErrMalformedPayload)
	}

	return nil
}

// ParseSearch convert a yahoo search payload to nse suggestions
func ParseSearch(payload []byte) (Suggestions, error) {
	search := new(YahooSearch)
	err := sonic.Unmarshal(payload, search)
	if err != nil {
		zap.L().Warn("unmarshal search payload failed", zap.Error(err), zap.ByteString("json", payload))
		return nil, fmt.Errorf("%w: %v", constants.ErrMalformedPayload, err)
	}

	suggestions := make(Suggestions, 0, len(search.Quotes))
	for _, quote := range search.Quotes {
		// only indian listings
		if quote == nil || quote.Exchange != constants.SearchExchange || quote.Symbol == "" {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			Symbol: symbols.Symbol(quote.Symbol),
			Name:   orDefault(quote.LongName, orDefault(quote.ShortName, quote.Symbol)),
		})
	}

	return suggestions, nil
}

// Encode encode suggestions to io.Writer
func (s Suggestions) Encode(w io.Writer) error {
	bw := bio.NewBinaryWriter(w)

	_, err := bw.Int(len(s))
	if err != nil {
		zap.L().Error("encode suggestions count failed", zap.Error(err), zap.Int("length", len(s)))
		return err
	}

	for _, suggestion := range s {
		_, err = bw.String(suggestion.Symbol.String())
		if err != nil {
			zap.L().Error("encode suggestion symbol failed", zap.Error(err), zap.Any("suggestion", suggestion))
			return err
		}

		_, err = bw.String(suggestion.Name)
		if err != nil {
			zap.L().Error("encode suggestion name failed", zap.Error(err), zap.Any("suggestion", suggestion))
			return err
		}
	}

	return nil
}

// Decode decode suggestions from io.Reader
func (s *Suggestions) Decode(r io.Reader) error {
	br := bio.NewBinaryReader(r)

	count, err := br.Int()
	if err != nil {
		zap.L().Error("decode suggestions count failed", zap.Error(err))
		return err
	}

	*s = make(Suggestions, 0, count)
	for index := 0; index < count; index++ {
		symbol, err := br.String()
		if err != nil {
			zap.L().Error("decode suggestion symbol failed", zap.Error(err), zap.Int("index", index))
			return err
		}

		name, err := br.String()
		if err != nil {
			zap.L().Error("decode suggestion name failed", zap.Error(err), zap.Int("index", index))
			return err
		}

		*s = append(*s, Suggestion{Symbol: symbols.Symbol(symbol), Name: name})
	}

	return nil
}
