package symbols

import (
	"regexp"
	"strings"

	"github.com/nzai/nseq/constants"
)

var (
	invalidCharRegex    = regexp.MustCompile(`[^\w.]`)
	leadingSuffixRegex  = regexp.MustCompile(`^(\.NS)+`)
	trailingSuffixRegex = regexp.MustCompile(`(\.NS)+$`)
)

// Symbol define an exchange qualified ticker, eg: RELIANCE.NS
type Symbol string

// Normalize turn raw user input into a canonical ticker
func Normalize(raw string) (Symbol, error) {
	text := strings.ToUpper(strings.TrimSpace(raw))
	if text == "" {
		return "", constants.ErrEmptySymbol
	}

	text = invalidCharRegex.ReplaceAllString(text, "")

	// doubled suffixes collapse together with the trailing one
	text = leadingSuffixRegex.ReplaceAllString(text, "")
	text = trailingSuffixRegex.ReplaceAllString(text, "")
	if text == "" {
		return "", constants.ErrEmptySymbol
	}

	return Symbol(text + constants.ExchangeSuffix), nil
}


// String return the qualified ticker
func (s Symbol) String() string {
	return string(s)
}

// Code return the bare ticker without exchange suffix
func (s Symbol) Code() string {
	return strings.TrimSuffix(string(s), constants.ExchangeSuffix)
}
