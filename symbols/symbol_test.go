package symbols

import (
	"testing"

	"github.com/nzai/nseq/constants"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want Symbol
	}{
		{raw: "tcs", want: "TCS.NS"},
		{raw: "TCS.NS", want: "TCS.NS"},
		{raw: "TCS.NS.NS", want: "TCS.NS"},
		{raw: " tcs.ns ", want: "TCS.NS"},
		{raw: "  reliance ", want: "RELIANCE.NS"},
		{raw: "RELIANCE.NS.NS.NS", want: "RELIANCE.NS"},
		{raw: ".NSINFY", want: "INFY.NS"},
		{raw: "m&m", want: "MM.NS"},
		{raw: "bajaj-auto", want: "BAJAJAUTO.NS"},
		{raw: "hdfc_bank", want: "HDFC_BANK.NS"},
	}

	for _, _case := range cases {
		got, err := Normalize(_case.raw)
		require.NoError(t, err, "Normalize(%q)", _case.raw)
		require.Equal(t, _case.want, got, "Normalize(%q)", _case.raw)
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []string{"", " ", "\t\n", "   \r ", ".NS", ".ns.ns", "!!"} {
		_, err := Normalize(raw)
		require.ErrorIs(t, err, constants.ErrEmptySymbol, "Normalize(%q)", raw)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"tcs", "TCS.NS", "x.ns.ns.ns", "..ns", "a.b", "a..ns", ".nsa.ns",
		"  Infy  ", "NSE", "ns", "A.NSB", "1234", "tata motors", "..", "A.",
	}

	for _, raw := range inputs {
		once, err := Normalize(raw)
		if err != nil {
			continue
		}

		twice, err := Normalize(once.String())
		require.NoError(t, err, "Normalize(%q)", once)
		require.Equal(t, once, twice, "Normalize is not idempotent for %q", raw)
	}
}

func TestSymbol_Code(t *testing.T) {
	require.Equal(t, "TCS", Symbol("TCS.NS").Code())
	require.Equal(t, "M&M", Symbol("M&M.NS").Code())
}

func TestFilter(t *testing.T) {
	got := Filter("tata")
	require.Len(t, got, 1)
	require.Equal(t, Symbol("TCS.NS"), got[0].Symbol)

	got = Filter("INF")
	require.Len(t, got, 1)
	require.Equal(t, Symbol("INFY.NS"), got[0].Symbol)

	require.Empty(t, Filter("  "))
	require.Empty(t, Filter("nothing-like-this"))
}

func TestLookup(t *testing.T) {
	listing, found := Lookup("HDFCBANK.NS")
	require.True(t, found)
	require.Equal(t, "HDFC Bank Ltd", listing.Name)

	listing, found = Lookup("WIPRO.NS")
	require.False(t, found)
	require.Equal(t, "WIPRO", listing.Name)
}
