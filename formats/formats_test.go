package formats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func pointer(value float64) *float64 {
	return &value
}

func TestPrice(t *testing.T) {
	require.Equal(t, "₹2456.35", Price(2456.35))
	require.Equal(t, "₹0.50", Price(0.5))
	require.Equal(t, "₹100.00", Price(100))
	require.Equal(t, NotAvailable, Price(math.NaN()))
	require.Equal(t, NotAvailable, Price(math.Inf(1)))
	require.Equal(t, "₹94.00 - ₹101.50", Range(94, 101.5))
}

func TestPercent(t *testing.T) {
	require.Equal(t, "+5.26%", Percent(5.263157))
	require.Equal(t, "-1.20%", Percent(-1.2))
	require.Equal(t, "+0.00%", Percent(0))
	require.Equal(t, NotAvailable, Percent(math.NaN()))
}

func TestChange(t *testing.T) {
	require.Equal(t, "▲ +₹5.00 (+5.26%)", Change(5, 5.263157))
	require.Equal(t, "▼ -₹5.00 (-5.26%)", Change(-5, -5.263157))
	require.Equal(t, "▲ +₹0.00 (+0.00%)", Change(0, 0))
	require.Equal(t, "▲ +₹0.00 (+0.00%)", Change(math.NaN(), math.NaN()))
}

func TestLargeNumber(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{12_500_000, "1.25 Cr"},
		{10_000_000, "1.00 Cr"},
		{340_000, "3.40 L"},
		{100_000, "1.00 L"},
		{99_999, "99,999"},
		{12_345, "12,345"},
		{999, "999"},
		{0, "0"},
		{math.NaN(), "0"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, LargeNumber(tt.value), "LargeNumber(%v)", tt.value)
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		value *float64
		want  string
	}{
		{pointer(12_500_000), "1.25Cr"},
		{pointer(340_000), "3.40L"},
		{pointer(12_000), "12.00K"},
		{pointer(999), "999"},
		{pointer(0), NotAvailable},
		{nil, NotAvailable},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Volume(tt.value))
	}
}

func TestMarketCap(t *testing.T) {
	tests := []struct {
		value *float64
		want  string
	}{
		{pointer(16.6e12), "₹16.60T"},
		{pointer(2.5e9), "₹2.50B"},
		{pointer(7.25e6), "₹7.25M"},
		{pointer(1500), "₹1.50K"},
		{pointer(999), "₹999"},
		{nil, NotAvailable},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, MarketCap(tt.value))
	}

	require.Equal(t, NotAvailable, Optional(nil))
	require.Equal(t, "₹1.00", Optional(pointer(1)))
}

func TestClock(t *testing.T) {
	require.Equal(t, ClockNotAvailable, Clock(time.Time{}))

	// 2023-11-14 22:13:20 UTC is 03:43:20 the next day in IST
	require.Equal(t, "03:43:20", Clock(time.Unix(1700000000, 0)))
}
