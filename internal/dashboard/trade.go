package dashboard

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/market"
)

// Simulator runs trade simulations. *api.Client implements it.
type Simulator interface {
	RunTrade(ctx context.Context, tr api.TradeRequest) (*market.SimResult, error)
}

// TradeForm is the editable form state. BuyAmount stays free text while
// editing and is only converted on submit.
type TradeForm struct {
	BuyDate   string
	SellDate  string
	BuyAmount string
}

// TradeSubmission is one submit cycle issued by TradeRunner.Begin.
type TradeSubmission struct {
	ID      uint64
	Request api.TradeRequest
}

// TradeRunner tracks the idle -> submitting -> success|error cycle of the
// trade form. Error and Result are never both set.
type TradeRunner struct {
	Form       TradeForm
	Submitting bool
	Err        string
	Result     *market.SimResult

	seq uint64
}

// NewTradeRunner returns a runner pre-filled with form.
func NewTradeRunner(form TradeForm) *TradeRunner {
	return &TradeRunner{Form: form}
}

// Begin clears any previous outcome and builds the request body for the
// current form. No bounds or date-order checks are made here.
func (r *TradeRunner) Begin() TradeSubmission {
	r.seq++
	r.Submitting = true
	r.Err = ""
	r.Result = nil
	return TradeSubmission{
		ID: r.seq,
		Request: api.TradeRequest{
			BuyDate:   r.Form.BuyDate,
			SellDate:  r.Form.SellDate,
			BuyAmount: ParseAmount(r.Form.BuyAmount),
		},
	}
}

// Finish applies the outcome of submission id; stale submissions are
// ignored and return false.
func (r *TradeRunner) Finish(id uint64, res *market.SimResult, err error) bool {
	if id != r.seq {
		return false
	}
	r.Submitting = false

	if err != nil {
		r.Result = nil
		r.Err = errorMessage(err, api.TradeFallbackMessage)
		return true
	}
	r.Err = ""
	r.Result = res
	return true
}

// ParseAmount converts the free-text amount the way a numeric form field
// does: blank is 0, 0x/0o/0b literals are integers, and anything unparseable
// or non-finite is nil (sent as null).
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return market.Float(0)
	}
	if base := radix(s); base != 0 {
		n, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return nil
		}
		return market.Float(float64(n))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// radix returns the base named by a 0x, 0o or 0b prefix, or 0.
func radix(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}
