package models

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the dashboard reacts to. Bindings double as
// the footer's help text.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Next      key.Binding
	Prev      key.Binding
	Apply     key.Binding
	Back      key.Binding

	Unit     key.Binding
	UnitPrev key.Binding
	UnitNext key.Binding

	CursorLeft  key.Binding
	CursorRight key.Binding
	Reload      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "종료"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "종료"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "다음"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "이전"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "적용"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "차트로"),
		),
		Unit: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "기간"),
		),
		UnitPrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "기간 이동"),
		),
		UnitNext: key.NewBinding(
			key.WithKeys("right"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h/l", "커서"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("l"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "새로고침"),
		),
	}
}

// chartHints are shown while the charts have focus.
func (k keyMap) chartHints() []key.Binding {
	return []key.Binding{k.Unit, k.UnitPrev, k.CursorLeft, k.Reload, k.Next, k.Quit}
}

// inputHints are shown while a text input or the submit button has focus.
func (k keyMap) inputHints(apply string) []key.Binding {
	a := k.Apply
	a.SetHelp("enter", apply)
	return []key.Binding{a, k.Next, k.Prev, k.Back, k.ForceQuit}
}
