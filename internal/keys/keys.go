package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Task actions
	NewTask        key.Binding
	EditTask       key.Binding
	ToggleComplete key.Binding
	DeleteTask     key.Binding
	Breakdown      key.Binding

	// List filters
	FilterClear         key.Binding
	FilterDueThisWeek   key.Binding
	FilterHighPriority  key.Binding
	FilterOverdue       key.Binding
	FilterTopFive       key.Binding
	FilterPriorityRange key.Binding
	CycleCategory       key.Binding
	ShowCompleted       key.Binding

	// Sort
	CycleSort key.Binding

	// Focus session
	Focus       key.Binding
	TimerToggle key.Binding
	TimerReset  key.Binding

	// Subtask ordering
	SwapUp      key.Binding
	SwapDown    key.Binding
	MakeOrdered key.Binding
	MakeLoose   key.Binding
	AddSubtask  key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open subtasks"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		EditTask: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit task"),
		),
		ToggleComplete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle complete"),
		),
		DeleteTask: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Breakdown: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "AI breakdown"),
		),
		FilterClear: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear filter"),
		),
		FilterDueThisWeek: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "due this week"),
		),
		FilterHighPriority: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "high priority"),
		),
		FilterOverdue: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "overdue"),
		),
		FilterTopFive: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "top five"),
		),
		FilterPriorityRange: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "priority range"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category"),
		),
		ShowCompleted: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "show completed"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus session"),
		),
		TimerToggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		TimerReset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset timer"),
		),
		SwapUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		SwapDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		MakeOrdered: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "add to order"),
		),
		MakeLoose: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "remove from order"),
		),
		AddSubtask: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add subtask"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.NewTask, k.EditTask, k.ToggleComplete, k.DeleteTask, k.Breakdown},
		{k.FilterDueThisWeek, k.FilterHighPriority, k.FilterOverdue, k.FilterTopFive, k.FilterPriorityRange, k.FilterClear},
		{k.CycleCategory, k.ShowCompleted, k.CycleSort, k.Focus},
		{k.TimerToggle, k.TimerReset, k.SwapUp, k.SwapDown, k.MakeOrdered, k.MakeLoose, k.AddSubtask},
	}
}
