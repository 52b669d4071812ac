package quotes

import (
	"bytes"
	"testing"

	"github.com/nzai/nseq/constants"
	"github.com/stretchr/testify/require"
)

func TestParseSearch(t *testing.T) {
	payload := []byte(`{"quotes":[
		{"symbol":"TCS.NS","exchange":"NSI","shortname":"TATA CONSULTANCY","longname":"Tata Consultancy Services Limited"},
		{"symbol":"TCS.BO","exchange":"BSE","shortname":"TATA CONSULTANCY"},
		{"symbol":"TATAMOTORS.NS","exchange":"NSI","shortname":"TATA MOTORS LTD"},
		{"symbol":"TTM","exchange":"NYQ"}
	]}`)

	got, err := ParseSearch(payload)
	require.NoError(t, err)
	require.Equal(t, Suggestions{
		{Symbol: "TCS.NS", Name: "Tata Consultancy Services Limited"},
		{Symbol: "TATAMOTORS.NS", Name: "TATA MOTORS LTD"},
	}, got)
}

func TestValidateSearch(t *testing.T) {
	require.NoError(t, ValidateSearch([]byte(`{"quotes":[]}`)))
	require.ErrorIs(t, ValidateSearch([]byte(`{"news":[]}`)), constants.ErrMalformedPayload)
}

func TestSuggestions_EncodeDecode(t *testing.T) {
	want := Suggestions{
		{Symbol: "TCS.NS", Name: "Tata Consultancy Services Limited"},
		{Symbol: "INFY.NS", Name: "Infosys Limited"},
	}

	buffer := new(bytes.Buffer)
	require.NoError(t, want.Encode(buffer))

	var got Suggestions
	require.NoError(t, got.Decode(buffer))
	require.Equal(t, want, got)
}
