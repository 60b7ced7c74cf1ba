package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the timeline view understands.
type keyMap struct {
	PanLeft   key.Binding
	PanRight  key.Binding
	PanFast   key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	JumpNext  key.Binding
	JumpPrev  key.Binding
	Now       key.Binding
	PresetDay key.Binding
	PresetWk  key.Binding
	PresetMo  key.Binding
	PresetYr  key.Binding
	PresetDec key.Binding
	Yank      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PanLeft:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		PanRight:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		PanFast:   key.NewBinding(key.WithKeys("shift+left", "shift+right"), key.WithHelp("shift+←/→", "fling")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		JumpNext:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next boundary")),
		JumpPrev:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev boundary")),
		Now:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "go to now")),
		PresetDay: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "day")),
		PresetWk:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "week")),
		PresetMo:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "month")),
		PresetYr:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "year")),
		PresetDec: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "decade")),
		Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy focused event")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Now, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanLeft, k.PanRight, k.PanFast, k.ZoomIn, k.ZoomOut},
		{k.JumpNext, k.JumpPrev, k.Now, k.Yank},
		{k.PresetDay, k.PresetWk, k.PresetMo, k.PresetYr, k.PresetDec},
		{k.Help, k.Quit},
	}
}
