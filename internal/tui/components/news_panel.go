package components

const (
	NewsTitle = "관련 뉴스"
	NewsEmpty = "뉴스 없음"
)

// NewsPanel is the related-news panel. No news source is wired up, so it
// always shows the empty state.
type NewsPanel struct {
	Width  int
	Height int
}

// Render returns the panel.
func (n NewsPanel) Render() string {
	inner := max(n.Width-4, 10)
	return Panel(NewsTitle, Placeholder(NewsEmpty, inner, n.Height), n.Width, false)
}
