package styles

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestSparkGlyphs(t *testing.T) {
	got := SparkGlyphs([]*float64{f(1), nil, f(2), f(math.NaN()), f(3)}, 3)
	assert.Equal(t, "⡀⣇⣿", got)

	assert.Empty(t, SparkGlyphs(nil, 10))
	assert.Empty(t, SparkGlyphs([]*float64{nil}, 10))
	assert.Empty(t, SparkGlyphs([]*float64{f(1)}, 0))
}

func TestSparkGlyphs_FlatSeries(t *testing.T) {
	got := SparkGlyphs([]*float64{f(5), f(5)}, 4)
	assert.Equal(t, 4, utf8.RuneCountInString(got))
	assert.Equal(t, "⡀⡀⡀⡀", got)
}

func TestSparkline(t *testing.T) {
	assert.Contains(t, Sparkline([]*float64{f(1), f(2)}, 2), "⡀⣿")
	assert.Empty(t, Sparkline(nil, 2))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "금 시세", TruncateWithEllipsis("금 시세", 10))
	assert.Equal(t, "환율 ...", TruncateWithEllipsis("환율 / VIX", 6))
	assert.Equal(t, "abc", TruncateWithEllipsis("abcdef", 3))
}

func TestSignedStyle(t *testing.T) {
	assert.Equal(t, ProfitText.GetForeground(), SignedStyle(1).GetForeground())
	assert.Equal(t, LossText.GetForeground(), SignedStyle(-1).GetForeground())
	assert.Equal(t, Value.GetForeground(), SignedStyle(0).GetForeground())
}

func TestButtonAndDivider(t *testing.T) {
	assert.Contains(t, Button("수익률 계산", false, false), " 수익률 계산 ")
	assert.Contains(t, Divider(3), "───")
	assert.Empty(t, Divider(0))
}
