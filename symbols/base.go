package symbols

import "strings"

// Listing define a symbol with its display name
type Listing struct {
	Symbol Symbol
	Name   string
}

// Base quick access symbols
var Base = []Listing{
	{Symbol: "RELIANCE.NS", Name: "Reliance Industries Ltd"},
	{Symbol: "TCS.NS", Name: "Tata Consultancy Services Ltd"},
	{Symbol: "HDFCBANK.NS", Name: "HDFC Bank Ltd"},
	{Symbol: "INFY.NS", Name: "Infosys Ltd"},
}

// Filter return base listings whose name or symbol contains query
func Filter(query string) []Listing {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Listing{}
	}

	listings := make([]Listing, 0, len(Base))
	for _, listing := range Base {
		if strings.Contains(strings.ToLower(listing.Name), query) ||
			strings.Contains(strings.ToLower(listing.Symbol.String()), query) {
			listings = append(listings, listing)
		}
	}

	return listings
}

// Lookup find base listing by symbol
func Lookup(symbol Symbol) (Listing, bool) {
	for _, listing := range Base {
		if listing.Symbol == symbol {
			return listing, true
		}
	}

	return Listing{Symbol: symbol, Name: symbol.Code()}, false
}
