package constants

import "time"

const (
	// ExchangeSuffix define the only supported exchange qualifier
	ExchangeSuffix = ".NS"
	// ExchangeLabel define default exchange label
	ExchangeLabel = "NSE"
	// SearchExchange define the exchange code yahoo search uses for NSE listings
	SearchExchange = "NSI"
	// DefaultCurrency define default quote currency
	DefaultCurrency = "INR"
	// DefaultRefreshInterval define live update interval
	DefaultRefreshInterval = time.Second * 30
	// DefaultMaxFailedAttempts define consecutive failures before updates pause
	DefaultMaxFailedAttempts = 3
	// DefaultRequestTimeout define per relay request timeout
	DefaultRequestTimeout = time.Second * 10
	// DefaultUserAgent define http user agent
	DefaultUserAgent = "nseq/1.0"
	// MinSuggestQueryLength define minimum query length for suggestions
	MinSuggestQueryLength = 2
	// SuggestionTTL define how long suggestions stay cached
	SuggestionTTL = time.Minute * 5
	// SearchDebounce define quiet period before an interactive search runs
	SearchDebounce = time.Millisecond * 500
	// SuggestDebounce define quiet period before suggestions are requested
	SuggestDebounce = time.Millisecond * 300
	// MaxResponseSize define max relay response body size
	MaxResponseSize = 4 << 20
	// TimePattern define card clock pattern
	TimePattern = "15:04:05"
	// Version define tool version
	Version = "v1.0.0"
)
