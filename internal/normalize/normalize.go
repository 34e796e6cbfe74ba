// Package normalize holds the per-data-type transformation rules applied to
// raw API payloads before they land in the processed storage area.
package normalize

import (
	"encoding/json"
	"log/slog"
)

// Data type tags selecting which transformation rules apply.
const (
	DataTypeCompanyFinancials = "company_financials"
	DataTypeMarketData        = "market_data"
)

// Financial is the normalized shape of a company financial statement record.
type Financial struct {
	Symbol    string  `json:"symbol"`
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	NetIncome float64 `json:"net_income"`
	Currency  string  `json:"currency"`
}

// MarketBar is the normalized shape of a market index history record.
type MarketBar struct {
	Index          string  `json:"index"`
	Date           string  `json:"date"`
	Open           float64 `json:"open"`
	Close          float64 `json:"close"`
	Volume         int64   `json:"volume"`
	DailyChangePct float64 `json:"daily_change_pct"`
}

// financialIn is the decoded raw record. Pointers distinguish a missing
// field from a present zero value.
type financialIn struct {
	Symbol    *string  `json:"symbol"`
	Date      *string  `json:"date"`
	Revenue   *float64 `json:"revenue"`
	NetIncome *float64 `json:"netIncome"`
	Currency  *string  `json:"currency"`
}

type marketIn struct {
	Index  string   `json:"index"`
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

// Normalizer applies the transformation rules for a data type. It is pure
// apart from diagnostics on the injected logger.
type Normalizer struct {
	logger *slog.Logger
}

// New creates a Normalizer emitting diagnostics on logger.
func New(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Apply transforms a raw JSON payload according to dataType and returns the
// normalized payload. Unknown data types pass through byte-identical, with a
// warning. Structurally invalid input surfaces a *FormatError.
func (n *Normalizer) Apply(raw []byte, dataType string) ([]byte, error) {
	switch dataType {
	case DataTypeCompanyFinancials:
		return n.companyFinancials(raw)
	case DataTypeMarketData:
		return n.marketData(raw)
	default:
		n.logger.Warn("unknown data type, passing payload through unchanged",
			"data_type", dataType)
		return raw, nil
	}
}

// companyFinancials maps each record to the five-field normalized shape
// (renaming netIncome to net_income) and retains it only when every field is
// present and truthy. This is a deliberately crude completeness filter: a
// legitimate zero revenue drops the record, same as a missing one.
func (n *Normalizer) companyFinancials(raw []byte) ([]byte, error) {
	var records []financialIn
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &FormatError{DataType: DataTypeCompanyFinancials, Cause: err}
	}

	out := make([]Financial, 0, len(records))
	for _, rec := range records {
		if missing, zeroed := falsyFields(rec); len(missing)+len(zeroed) > 0 {
			// A record dropped only because present fields are zero or empty
			// may be a legitimate value caught by the completeness filter.
			// Log it distinctly so those cases stay countable.
			if len(missing) == 0 {
				n.logger.Warn("record excluded on zero-valued field",
					"data_type", DataTypeCompanyFinancials, "fields", zeroed)
			} else {
				n.logger.Warn("record excluded on missing field",
					"data_type", DataTypeCompanyFinancials, "fields", missing)
			}
			continue
		}
		out = append(out, Financial{
			Symbol:    *rec.Symbol,
			Date:      *rec.Date,
			Revenue:   *rec.Revenue,
			NetIncome: *rec.NetIncome,
			Currency:  *rec.Currency,
		})
	}
	return marshal(out)
}

// marketData coerces open/close/volume (defaulting to zero when absent) and
// computes the daily change percentage. Every input record is retained.
func (n *Normalizer) marketData(raw []byte) ([]byte, error) {
	var records []marketIn
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &FormatError{DataType: DataTypeMarketData, Cause: err}
	}

	out := make([]MarketBar, 0, len(records))
	for _, rec := range records {
		openPx := deref(rec.Open)
		closePx := deref(rec.Close)

		// Zero open means zero change, not an error; a divide-by-zero guard
		// rather than a missing-data signal.
		pct := 0.0
		if openPx != 0 {
			pct = (closePx - openPx) / openPx * 100
		}

		out = append(out, MarketBar{
			Index:          rec.Index,
			Date:           rec.Date,
			Open:           openPx,
			Close:          closePx,
			Volume:         int64(deref(rec.Volume)),
			DailyChangePct: pct,
		})
	}
	return marshal(out)
}

// falsyFields reports which of the five mapped fields fail the completeness
// filter, split into genuinely absent fields and present-but-falsy ones.
func falsyFields(rec financialIn) (missing, zeroed []string) {
	check := func(name string, present, truthy bool) {
		switch {
		case !present:
			missing = append(missing, name)
		case !truthy:
			zeroed = append(zeroed, name)
		}
	}
	check("symbol", rec.Symbol != nil, rec.Symbol != nil && *rec.Symbol != "")
	check("date", rec.Date != nil, rec.Date != nil && *rec.Date != "")
	check("revenue", rec.Revenue != nil, rec.Revenue != nil && *rec.Revenue != 0)
	check("net_income", rec.NetIncome != nil, rec.NetIncome != nil && *rec.NetIncome != 0)
	check("currency", rec.Currency != nil, rec.Currency != nil && *rec.Currency != "")
	return missing, zeroed
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
