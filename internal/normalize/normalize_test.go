package normalize

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeFinancials(t *testing.T, data []byte) []Financial {
	t.Helper()
	var out []Financial
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func decodeBars(t *testing.T, data []byte) []MarketBar {
	t.Helper()
	var out []MarketBar
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestApply_CompanyFinancials_MapsAndRenames(t *testing.T) {
	raw := []byte(`[
		{"symbol": "AAPL", "date": "2024-01-01", "revenue": 1000.5, "netIncome": 250.25, "currency": "USD", "extra": "dropped"},
		{"symbol": "MSFT", "date": "2024-01-01", "revenue": 2000, "netIncome": 800, "currency": "USD"}
	]`)

	out, err := testNormalizer().Apply(raw, DataTypeCompanyFinancials)
	require.NoError(t, err)

	got := decodeFinancials(t, out)
	require.Equal(t, []Financial{
		{Symbol: "AAPL", Date: "2024-01-01", Revenue: 1000.5, NetIncome: 250.25, Currency: "USD"},
		{Symbol: "MSFT", Date: "2024-01-01", Revenue: 2000, NetIncome: 800, Currency: "USD"},
	}, got)

	// The output field must be the renamed net_income, not netIncome
	var asMaps []map[string]any
	require.NoError(t, json.Unmarshal(out, &asMaps))
	require.Contains(t, asMaps[0], "net_income")
	require.NotContains(t, asMaps[0], "netIncome")
	require.NotContains(t, asMaps[0], "extra")
}

func TestApply_CompanyFinancials_CompletenessFilter(t *testing.T) {
	tests := []struct {
		name   string
		record string
		kept   bool
	}{
		{
			name:   "all fields present and truthy",
			record: `{"symbol": "AAPL", "date": "2024-01-01", "revenue": 100, "netIncome": 50, "currency": "USD"}`,
			kept:   true,
		},
		{
			name:   "missing symbol",
			record: `{"date": "2024-01-01", "revenue": 100, "netIncome": 50, "currency": "USD"}`,
			kept:   false,
		},
		{
			name:   "null currency",
			record: `{"symbol": "AAPL", "date": "2024-01-01", "revenue": 100, "netIncome": 50, "currency": null}`,
			kept:   false,
		},
		{
			name:   "empty date",
			record: `{"symbol": "AAPL", "date": "", "revenue": 100, "netIncome": 50, "currency": "USD"}`,
			kept:   false,
		},
		{
			// Zero revenue may be a legitimate value but the completeness
			// filter treats it the same as missing. Intentional sharp edge.
			name:   "zero revenue excluded",
			record: `{"symbol": "AAPL", "date": "2024-01-01", "revenue": 0, "netIncome": 500, "currency": "USD"}`,
			kept:   false,
		},
		{
			name:   "zero net income excluded",
			record: `{"symbol": "AAPL", "date": "2024-01-01", "revenue": 500, "netIncome": 0, "currency": "USD"}`,
			kept:   false,
		},
		{
			name:   "negative net income kept",
			record: `{"symbol": "AAPL", "date": "2024-01-01", "revenue": 500, "netIncome": -10, "currency": "USD"}`,
			kept:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := testNormalizer().Apply([]byte("["+tt.record+"]"), DataTypeCompanyFinancials)
			require.NoError(t, err)

			got := decodeFinancials(t, out)
			if tt.kept {
				require.Len(t, got, 1)
			} else {
				require.Empty(t, got)
			}
		})
	}
}

func TestApply_CompanyFinancials_PreservesInputOrder(t *testing.T) {
	raw := []byte(`[
		{"symbol": "C", "date": "2024-01-01", "revenue": 1, "netIncome": 1, "currency": "USD"},
		{"symbol": "A", "date": "2024-01-01", "revenue": 0, "netIncome": 1, "currency": "USD"},
		{"symbol": "B", "date": "2024-01-01", "revenue": 1, "netIncome": 1, "currency": "USD"}
	]`)

	out, err := testNormalizer().Apply(raw, DataTypeCompanyFinancials)
	require.NoError(t, err)

	got := decodeFinancials(t, out)
	require.Len(t, got, 2)
	require.Equal(t, "C", got[0].Symbol)
	require.Equal(t, "B", got[1].Symbol)
}

func TestApply_CompanyFinancials_WrongShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"top level object", `{"symbol": "AAPL"}`},
		{"revenue is a string", `[{"symbol": "AAPL", "date": "2024-01-01", "revenue": "100", "netIncome": 50, "currency": "USD"}]`},
		{"not json", `not-json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testNormalizer().Apply([]byte(tt.raw), DataTypeCompanyFinancials)
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			require.Equal(t, DataTypeCompanyFinancials, formatErr.DataType)
		})
	}
}

func TestApply_MarketData_DailyChange(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		wantPct float64
	}{
		{
			name:    "ten percent up",
			record:  `{"index": "SPX", "date": "2024-01-01", "open": 100, "close": 110, "volume": 1000}`,
			wantPct: 10.0,
		},
		{
			name:    "five percent down",
			record:  `{"index": "SPX", "date": "2024-01-01", "open": 200, "close": 190, "volume": 1000}`,
			wantPct: -5.0,
		},
		{
			// Divide-by-zero guard: zero open is zero change, not an error
			name:    "zero open",
			record:  `{"index": "SPX", "date": "2024-01-01", "open": 0, "close": 50, "volume": 1000}`,
			wantPct: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := testNormalizer().Apply([]byte("["+tt.record+"]"), DataTypeMarketData)
			require.NoError(t, err)

			got := decodeBars(t, out)
			require.Len(t, got, 1)
			require.InDelta(t, tt.wantPct, got[0].DailyChangePct, 1e-9)
		})
	}
}

func TestApply_MarketData_DefaultsAndNoFiltering(t *testing.T) {
	raw := []byte(`[
		{"index": "SPX", "date": "2024-01-01"},
		{"index": "NDX", "date": "2024-01-01", "open": 100, "close": 110, "volume": 50000000},
		{}
	]`)

	out, err := testNormalizer().Apply(raw, DataTypeMarketData)
	require.NoError(t, err)

	got := decodeBars(t, out)
	// Every input record is retained, incomplete or not
	require.Len(t, got, 3)

	require.Equal(t, MarketBar{Index: "SPX", Date: "2024-01-01"}, got[0])
	require.Equal(t, MarketBar{
		Index: "NDX", Date: "2024-01-01",
		Open: 100, Close: 110, Volume: 50000000, DailyChangePct: 10,
	}, got[1])
	require.Equal(t, MarketBar{}, got[2])
}

func TestApply_MarketData_WrongShape(t *testing.T) {
	raw := []byte(`[{"index": "SPX", "open": "not-a-number"}]`)

	_, err := testNormalizer().Apply(raw, DataTypeMarketData)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	require.Equal(t, DataTypeMarketData, formatErr.DataType)
}

func TestApply_UnknownType_Identity(t *testing.T) {
	raws := [][]byte{
		[]byte(`[{"anything": "goes"}]`),
		[]byte(`{"object": true}`),
		[]byte(`"just a string"`),
	}

	for _, raw := range raws {
		out, err := testNormalizer().Apply(raw, "unknown")
		require.NoError(t, err)
		// Byte-identical passthrough
		require.Equal(t, raw, out)
	}
}

func TestApply_EmptyInput(t *testing.T) {
	for _, dataType := range []string{DataTypeCompanyFinancials, DataTypeMarketData} {
		out, err := testNormalizer().Apply([]byte(`[]`), dataType)
		require.NoError(t, err)

		var got []any
		require.NoError(t, json.Unmarshal(out, &got))
		require.Empty(t, got)
	}
}
