package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Aman-CERP/anagrams/internal/output"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Lookup key.Binding
	Exit   key.Binding
	Submit key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Lookup: key.NewBinding(
			key.WithKeys(output.ChoiceLookup),
			key.WithHelp(output.ChoiceLookup, "look up"),
		),
		Exit: key.NewBinding(
			key.WithKeys(output.ChoiceExit, "q"),
			key.WithHelp(output.ChoiceExit+"/q", "exit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "find"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap for the menu.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Lookup, k.Exit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Lookup, k.Exit, k.Quit},
		{k.Submit, k.Back},
	}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back, k.Quit}
}
