package tasklist

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmuir/focusdo/internal/keys"
	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/priority"
	"github.com/tmuir/focusdo/internal/store"
	"github.com/tmuir/focusdo/internal/taskview"
	"github.com/tmuir/focusdo/internal/theme"
)

// TasksLoadedMsg is sent when ranked tasks have been loaded from the store.
type TasksLoadedMsg struct {
	Tasks []priority.Scored
}

// CategoriesLoadedMsg is sent when categories have been loaded.
type CategoriesLoadedMsg struct {
	Categories []model.Category
}

// SelectedTaskMsg is sent when a user selects a task to open its subtasks.
type SelectedTaskMsg struct {
	TaskID string
}

// Model is the main task list view component.
type Model struct {
	list          list.Model
	store         store.Store
	keys          *keys.KeyMap
	delegate      *ItemDelegate
	spec          taskview.Spec
	sortKey       taskview.SortKey
	showCompleted bool
	categories    []model.Category
	categoryIndex int
	rangeMode     bool
	rangeInput    textinput.Model
	width         int
	height        int
}

// New creates a new task list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	delegate := &ItemDelegate{
		categories: make(map[string]model.Category),
		now:        func() time.Time { return time.Now().UTC() },
	}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	ri := textinput.New()
	ri.Placeholder = "min-max, e.g. 3-7"
	ri.Prompt = "priority range: "
	ri.Width = width - 4

	return Model{
		list:          l,
		store:         s,
		keys:          k,
		delegate:      delegate,
		categoryIndex: -1,
		rangeInput:    ri,
		width:         width,
		height:        height,
	}
}

// Init returns commands that load the initial tasks and categories.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.LoadTasks(), m.LoadCategories())
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		items := make([]list.Item, len(msg.Tasks))
		for i, scored := range msg.Tasks {
			items[i] = TaskItem{Scored: scored}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case CategoriesLoadedMsg:
		m.categories = msg.Categories
		for k := range m.delegate.categories {
			delete(m.delegate.categories, k)
		}
		for _, c := range msg.Categories {
			m.delegate.categories[c.ID] = c
		}
		if m.categoryIndex >= len(m.categories) {
			m.categoryIndex = -1
			m.spec.Categories = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.rangeMode {
			return m.handleRangeKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleRangeKeys processes key input while the priority range prompt
// is open.
func (m Model) handleRangeKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.rangeMode = false
		min, max, err := parseRange(m.rangeInput.Value())
		if err != nil {
			return m, m.LoadTasks()
		}
		m.spec.Kind = taskview.FilterPriorityRange
		m.spec.MinPriority = min
		m.spec.MaxPriority = max
		return m, m.LoadTasks()

	case "esc":
		m.rangeMode = false
		m.rangeInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.rangeInput, cmd = m.rangeInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{TaskID: item.Scored.Task.ID}
		}

	case key.Matches(msg, m.keys.FilterClear):
		m.spec.Kind = taskview.FilterNone
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.FilterDueThisWeek):
		return m.setFilter(taskview.FilterDueThisWeek)

	case key.Matches(msg, m.keys.FilterHighPriority):
		return m.setFilter(taskview.FilterHighPriority)

	case key.Matches(msg, m.keys.FilterOverdue):
		return m.setFilter(taskview.FilterOverdue)

	case key.Matches(msg, m.keys.FilterTopFive):
		return m.setFilter(taskview.FilterTopFive)

	case key.Matches(msg, m.keys.FilterPriorityRange):
		m.rangeMode = true
		m.rangeInput.Reset()
		return m, m.rangeInput.Focus()

	case key.Matches(msg, m.keys.CycleCategory):
		m.cycleCategory()
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.ShowCompleted):
		m.showCompleted = !m.showCompleted
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.CycleSort):
		if m.sortKey == taskview.SortByPriorityKey {
			m.sortKey = taskview.SortByDueDateKey
		} else {
			m.sortKey = taskview.SortByPriorityKey
		}
		return m, m.LoadTasks()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// setFilter toggles the given named filter: pressing the same filter
// key again clears it.
func (m Model) setFilter(kind taskview.FilterKind) (Model, tea.Cmd) {
	if m.spec.Kind == kind {
		m.spec.Kind = taskview.FilterNone
	} else {
		m.spec.Kind = kind
	}
	return m, m.LoadTasks()
}

// cycleCategory advances the category narrowing: all categories, then
// each category in name order, then back to all.
func (m *Model) cycleCategory() {
	if len(m.categories) == 0 {
		m.categoryIndex = -1
		m.spec.Categories = nil
		return
	}

	m.categoryIndex++
	if m.categoryIndex >= len(m.categories) {
		m.categoryIndex = -1
		m.spec.Categories = nil
		return
	}
	m.spec.Categories = map[string]bool{
		m.categories[m.categoryIndex].ID: true,
	}
}

// View renders the task list view.
func (m Model) View() string {
	if m.rangeMode {
		promptBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.rangeInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, promptBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.spec.Kind != taskview.FilterNone || len(m.spec.Categories) > 0 {
		return style.Render("No matching tasks.\nPress 0 to clear the filter.")
	}

	return style.Render("No tasks yet.\n\nPress n to create one.")
}

// LoadTasks returns a tea.Cmd that reads tasks from the store, ranks
// them, and applies the current filter and sort.
func (m Model) LoadTasks() tea.Cmd {
	s := m.store
	spec := m.spec
	sortKey := m.sortKey
	includeCompleted := m.showCompleted
	return func() tea.Msg {
		tasks, err := s.GetTasks(context.Background(), store.TaskQuery{
			IncludeCompleted: includeCompleted,
		})
		if err != nil {
			return TasksLoadedMsg{Tasks: nil}
		}

		now := time.Now().UTC()
		scored := priority.Rank(tasks, now)
		scored = taskview.Apply(scored, spec, includeCompleted, now)
		scored = taskview.Sort(scored, sortKey)
		return TasksLoadedMsg{Tasks: scored}
	}
}

// LoadCategories returns a tea.Cmd that reads categories from the store.
func (m Model) LoadCategories() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		categories, err := s.GetCategories(context.Background())
		if err != nil {
			return CategoriesLoadedMsg{Categories: nil}
		}
		return CategoriesLoadedMsg{Categories: categories}
	}
}

// SelectedTask returns the currently highlighted task, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Scored.Task, true
}

// Categories returns the loaded category records for the task form.
func (m Model) Categories() []model.Category {
	return m.categories
}

// InRangePrompt reports whether the priority range prompt has input focus.
func (m Model) InRangePrompt() bool {
	return m.rangeMode
}

// FilterSummary describes the active filter for the status bar, or ""
// when nothing is narrowed.
func (m Model) FilterSummary() string {
	var parts []string
	switch m.spec.Kind {
	case taskview.FilterPriorityRange:
		parts = append(parts, fmt.Sprintf("priority %.1f-%.1f",
			m.spec.MinPriority, m.spec.MaxPriority))
	case taskview.FilterDueThisWeek:
		parts = append(parts, "due this week")
	case taskview.FilterHighPriority:
		parts = append(parts, "priority > 7")
	case taskview.FilterOverdue:
		parts = append(parts, "overdue")
	case taskview.FilterTopFive:
		parts = append(parts, "top 5")
	}
	if m.categoryIndex >= 0 && m.categoryIndex < len(m.categories) {
		parts = append(parts, "category: "+m.categories[m.categoryIndex].Name)
	}
	if m.showCompleted {
		parts = append(parts, "showing completed")
	}
	return strings.Join(parts, " | ")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.rangeInput.Width = width - 4
}

// parseRange parses a "min-max" priority range.
func parseRange(s string) (float64, float64, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return 0, 0, fmt.Errorf("range %q must be min-max", s)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range minimum %q", lo)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range maximum %q", hi)
	}
	if min > max {
		min, max = max, min
	}
	return min, max, nil
}
