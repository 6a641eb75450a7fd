// Package market holds the quote row model and the pure data preparation
// used by every chart: min-max scaling, date labels, tick thinning and the
// valid end-date window.
package market

// Row is one trading-day observation. Any numeric field may be absent.
type Row struct {
	Date      string   `json:"date"`
	FXRate    *float64 `json:"fx_rate"`
	VIX       *float64 `json:"vix"`
	ETFVolume *float64 `json:"etf_volume"`
	GoldClose *float64 `json:"gold_close"`
	PredClose *float64 `json:"pred_close"`
}

// ScaledRow is a Row plus the three series remapped onto [0, 500].
// Raw values stay on the embedded Row so the cursor can show true units.
type ScaledRow struct {
	Row
	FXScaled  *float64 `json:"fx_s"`
	VIXScaled *float64 `json:"vix_s"`
	ETFScaled *float64 `json:"etf_s"`
}

// PortfolioPoint is one entry of a simulation's portfolio-value history.
type PortfolioPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SimResult is the server-computed trade simulation. It is read-only on the
// client side.
type SimResult struct {
	BuyPrice         float64          `json:"buyPrice"`
	SellPrice        float64          `json:"sellPrice"`
	BuyAmount        float64          `json:"buyAmount"`
	PurchasedGrams   float64          `json:"purchasedGrams"`
	FinalValue       float64          `json:"finalValue"`
	TotalProfitLoss  float64          `json:"totalProfitLoss"`
	YieldRate        float64          `json:"yieldRate"`
	PortfolioHistory []PortfolioPoint `json:"portfolioHistory"`
}

// Float returns a pointer to v. Handy for building rows in code and tests.
func Float(v float64) *float64 { return &v }

// Column extracts one field from every row, preserving nils.
func Column(rows []Row, pick func(Row) *float64) []*float64 {
	out := make([]*float64, len(rows))
	for i, r := range rows {
		out[i] = pick(r)
	}
	return out
}

// Field selectors used by Column and the chart renderers.
func FXRate(r Row) *float64    { return r.FXRate }
func VIX(r Row) *float64       { return r.VIX }
func ETFVolume(r Row) *float64 { return r.ETFVolume }
func GoldClose(r Row) *float64 { return r.GoldClose }
func PredClose(r Row) *float64 { return r.PredClose }

// RangeText renders "first ~ last" for the footer of each chart, or "-" when
// there are no rows.
func RangeText(rows []Row) string {
	if len(rows) == 0 {
		return "-"
	}
	return rows[0].Date + " ~ " + rows[len(rows)-1].Date
}
