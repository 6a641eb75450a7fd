// Package dashboard holds the two request controllers behind the dashboard:
// the quote loader and the trade runner. Both are plain state machines;
// the TUI decides when to call them and runs the requests they describe.
package dashboard

import (
	"context"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/market"
)

// LoadFallbackMessage is shown when a failed fetch has no message of its own.
const LoadFallbackMessage = "데이터 로드 실패"

// Fetcher loads quote rows. *api.Client implements it.
type Fetcher interface {
	FetchQuotes(ctx context.Context, q api.QuoteQuery) ([]market.Row, error)
}

// QuoteRequest is one fetch cycle issued by QuoteLoader.Begin.
type QuoteRequest struct {
	ID    uint64
	Query api.QuoteQuery
}

// QuoteLoader tracks the idle -> loading -> success|error cycle for the time
// series. Each Begin supersedes the previous request; results from older
// requests are dropped so the last request made wins, regardless of the
// order responses arrive in.
type QuoteLoader struct {
	EndDate string
	Unit    market.Unit

	Rows    []market.Row
	Loading bool
	Err     string

	seq uint64
}

// NewQuoteLoader returns a loader with the given initial window.
func NewQuoteLoader(endDate string, unit market.Unit) *QuoteLoader {
	return &QuoteLoader{EndDate: endDate, Unit: unit, Rows: []market.Row{}}
}

// SetEndDate changes the requested end date. It reports whether the value
// changed, i.e. whether a fetch is due.
func (l *QuoteLoader) SetEndDate(d string) bool {
	if d == l.EndDate {
		return false
	}
	l.EndDate = d
	return true
}

// SetUnit changes the window unit. It reports whether a fetch is due.
func (l *QuoteLoader) SetUnit(u market.Unit) bool {
	if u == l.Unit {
		return false
	}
	l.Unit = u
	return true
}

// Begin starts a new fetch cycle for the current end date and unit. The end
// date sent to the server is clamped into the valid data window; the
// displayed EndDate is left as entered.
func (l *QuoteLoader) Begin() QuoteRequest {
	l.seq++
	l.Loading = true
	l.Err = ""
	return QuoteRequest{
		ID: l.seq,
		Query: api.QuoteQuery{
			To:   market.ClampEndDate(l.EndDate),
			Unit: l.Unit,
		},
	}
}

// Finish applies the outcome of request id. It returns false, changing
// nothing, when a newer request has been issued since. On error the
// previous rows are kept.
func (l *QuoteLoader) Finish(id uint64, rows []market.Row, err error) bool {
	if id != l.seq {
		return false
	}
	l.Loading = false

	if err != nil {
		l.Err = errorMessage(err, LoadFallbackMessage)
		return true
	}
	if rows == nil {
		rows = []market.Row{}
	}
	l.Rows = rows
	return true
}

// Scaled returns the overlay rows derived from the current row set.
func (l *QuoteLoader) Scaled() []market.ScaledRow {
	return market.ScaleRows(l.Rows)
}

// Latest reports whether id is the most recent request.
func (l *QuoteLoader) Latest(id uint64) bool { return id == l.seq }

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
