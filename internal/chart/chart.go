// Package chart renders the dashboard charts to PNG images.
package chart

import (
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"

	"github.com/Dallionking/goldsim/internal/market"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Size is the output image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when a zero Size is passed.
var DefaultSize = Size{Width: 1000, Height: 500}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

// Overlay renders FX rate, VIX and ETF volume min-max scaled onto a shared
// 0-500 axis.
func Overlay(rows []market.Row, unit market.Unit, size Size) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	scaled := market.ScaleRows(rows)

	fx := make([]float64, len(scaled))
	vix := make([]float64, len(scaled))
	etf := make([]float64, len(scaled))
	for i, r := range scaled {
		fx[i] = value(r.FXScaled)
		vix[i] = value(r.VIXScaled)
		etf[i] = value(r.ETFScaled)
	}

	yMin, yMax := 0.0, float64(market.ScaleCeiling)
	return render(
		[][]float64{fx, vix, etf},
		size,
		charts.TitleTextOptionFunc("FX / VIX / ETF volume", market.RangeText(rows)),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{"USD/KRW", "VIX", "ETF volume"},
			Left: charts.PositionRight,
		}),
		xAxis(rows, unit),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
	)
}

// Gold renders the actual and predicted gold close on a real price axis
// padded by 1000 on both ends.
func Gold(rows []market.Row, unit market.Unit, size Size) ([]byte, error) {
	lo, hi, ok := market.GoldDomain(rows)
	if !ok {
		return nil, ErrNoData
	}

	actual := make([]float64, len(rows))
	pred := make([]float64, len(rows))
	for i, r := range rows {
		actual[i] = value(r.GoldClose)
		pred[i] = value(r.PredClose)
	}

	return render(
		[][]float64{actual, pred},
		size,
		charts.TitleTextOptionFunc("Gold close (KRW/g)", market.RangeText(rows)),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{"Actual", "Predicted"},
			Left: charts.PositionRight,
		}),
		xAxis(rows, unit),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &lo, Max: &hi, DivideCount: 5}),
	)
}

// Portfolio renders the simulated portfolio value as an area chart with the
// y axis in units of 10,000 won.
func Portfolio(history []market.PortfolioPoint, size Size) ([]byte, error) {
	if len(history) == 0 {
		return nil, ErrNoData
	}

	labels := make([]string, len(history))
	values := make([]float64, len(history))
	for i, p := range history {
		labels[i] = market.FormatDateStr(p.Date, market.FormatMonthDay)
		values[i] = p.Value / 10000
	}

	return render(
		[][]float64{values},
		size,
		charts.TitleTextOptionFunc("Portfolio value"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNumber(len(labels), 8),
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5, Formatter: "{value}만"}),
		func(opt *charts.ChartOption) {
			opt.FillArea = true
		},
	)
}

func render(values [][]float64, size Size, opts ...charts.OptionFunc) ([]byte, error) {
	size = size.orDefault()
	opts = append(opts,
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(size.Width),
		charts.HeightOptionFunc(size.Height),
	)

	p, err := charts.LineRender(values, opts...)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf, nil
}

func xAxis(rows []market.Row, unit market.Unit) charts.OptionFunc {
	count, format := unit.TickConfig()
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = market.FormatDateStr(r.Date, format)
	}
	return charts.XAxisOptionFunc(charts.XAxisOption{
		Data:        labels,
		SplitNumber: splitNumber(len(labels), count),
		BoundaryGap: charts.FalseFlag(),
	})
}

// splitNumber caps the tick count at the number of gaps between points.
func splitNumber(n, count int) int {
	if n <= 1 {
		return 1
	}
	if count > n-1 {
		return n - 1
	}
	return count
}

// value maps a missing point to the library's null marker so the line
// breaks instead of dropping to zero.
func value(v *float64) float64 {
	if v == nil {
		return charts.GetNullValue()
	}
	return *v
}
