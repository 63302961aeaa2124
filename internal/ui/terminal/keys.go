package terminal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start    key.Binding
	Trust    key.Binding
	Distrust key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "begin"),
		),
		Trust: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trust AI answer"),
		),
		Distrust: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "do not trust AI answer"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func helpLine(bindings ...key.Binding) string {
	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += " | "
		}
		h := b.Help()
		line += h.Key + " " + h.Desc
	}
	return line
}
