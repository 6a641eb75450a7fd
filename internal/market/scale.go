package market

import "math"

// ScaleCeiling is the top of the shared overlay axis.
const ScaleCeiling = 500.0

// Scaler maps values of one series onto [0, ScaleCeiling].
type Scaler struct {
	min, span float64
	ok        bool
}

// MinMaxScale builds a Scaler from the finite, non-nil subset of values.
// When there are none, the Scaler returns nil for every input. A constant
// series uses span 1, so every value maps to 0.
func MinMaxScale(values []*float64) Scaler {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := false
	for _, v := range values {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		found = true
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}
	if !found {
		return Scaler{}
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}
	return Scaler{min: lo, span: span, ok: true}
}

// Scale returns the remapped value. nil and non-finite inputs yield nil,
// never 0.
func (s Scaler) Scale(v *float64) *float64 {
	if !s.ok || v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	out := (*v - s.min) / s.span * ScaleCeiling
	return &out
}

// Valid reports whether the series had at least one finite value.
func (s Scaler) Valid() bool { return s.ok }

// ScaleRows normalizes FX, VIX and ETF volume independently so they can share
// one axis. The result is rebuilt from scratch on every call.
func ScaleRows(rows []Row) []ScaledRow {
	if len(rows) == 0 {
		return []ScaledRow{}
	}

	fx := MinMaxScale(Column(rows, FXRate))
	vix := MinMaxScale(Column(rows, VIX))
	etf := MinMaxScale(Column(rows, ETFVolume))

	out := make([]ScaledRow, len(rows))
	for i, r := range rows {
		out[i] = ScaledRow{
			Row:       r,
			FXScaled:  fx.Scale(r.FXRate),
			VIXScaled: vix.Scale(r.VIX),
			ETFScaled: etf.Scale(r.ETFVolume),
		}
	}
	return out
}

// GoldDomain returns the y-axis domain for the actual/predicted gold chart:
// the data range padded by 1000 on both sides. ok is false when neither
// series has a finite value.
func GoldDomain(rows []Row) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		for _, v := range []*float64{r.GoldClose, r.PredClose} {
			if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
				continue
			}
			ok = true
			lo = math.Min(lo, *v)
			hi = math.Max(hi, *v)
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo - 1000, hi + 1000, true
}
