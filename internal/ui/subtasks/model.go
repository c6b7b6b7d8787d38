package subtasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmuir/focusdo/internal/keys"
	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/ordering"
	"github.com/tmuir/focusdo/internal/store"
	"github.com/tmuir/focusdo/internal/theme"
)

// SubtasksLoadedMsg is sent when the subtasks of a task have been loaded.
type SubtasksLoadedMsg struct {
	TaskID   string
	Subtasks []model.Subtask
}

// CloseMsg is sent when the user leaves the subtask panel.
type CloseMsg struct{}

// savedMsg reports the outcome of a persisted mutation.
type savedMsg struct {
	err error
}

// Model is the subtask panel: the ordered sequence on top, the loose
// (unordered) group below it.
type Model struct {
	store     store.Store
	keys      *keys.KeyMap
	task      model.Task
	subs      []model.Subtask
	cursor    int
	addMode   bool
	addInput  textinput.Model
	statusMsg string
	width     int
	height    int
}

// New creates a new subtask panel model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	ai := textinput.New()
	ai.Placeholder = "subtask title..."
	ai.Prompt = "add: "
	ai.Width = width - 4

	return Model{
		store:    s,
		keys:     k,
		addInput: ai,
		width:    width,
		height:   height,
	}
}

// SetTask points the panel at a task and returns the load command.
func (m *Model) SetTask(task model.Task) tea.Cmd {
	m.task = task
	m.subs = nil
	m.cursor = 0
	m.statusMsg = ""
	return m.loadSubtasks()
}

// Update handles messages for the subtask panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubtasksLoadedMsg:
		if msg.TaskID != m.task.ID {
			return m, nil
		}
		m.subs = msg.Subtasks
		if n := len(m.visible()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.statusMsg = ""
		return m, m.loadSubtasks()

	case tea.KeyMsg:
		if m.addMode {
			return m.handleAddKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleAddKeys processes key input while the add prompt is open.
func (m Model) handleAddKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.addMode = false
		title := m.addInput.Value()
		if title == "" {
			return m, nil
		}
		return m, m.createSubtask(title)

	case "esc":
		m.addMode = false
		m.addInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.AddSubtask):
		m.addMode = true
		m.addInput.Reset()
		return m, m.addInput.Focus()

	case key.Matches(msg, m.keys.SwapUp):
		if sub, ok := m.selected(); ok {
			return m, m.saveTransform(ordering.Swap(m.subs, sub.ID, ordering.Up))
		}
		return m, nil

	case key.Matches(msg, m.keys.SwapDown):
		if sub, ok := m.selected(); ok {
			return m, m.saveTransform(ordering.Swap(m.subs, sub.ID, ordering.Down))
		}
		return m, nil

	case key.Matches(msg, m.keys.MakeOrdered):
		if sub, ok := m.selected(); ok {
			return m, m.saveTransform(ordering.MoveToOrdered(m.subs, sub.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.MakeLoose):
		if sub, ok := m.selected(); ok {
			return m, m.saveTransform(ordering.MoveToUnordered(m.subs, sub.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleComplete):
		if sub, ok := m.selected(); ok {
			return m, m.toggleComplete(sub.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteTask):
		if sub, ok := m.selected(); ok {
			return m, m.saveTransform(ordering.Delete(m.subs, sub.ID))
		}
		return m, nil
	}

	return m, nil
}

// visible returns the subtasks in display order: the ordered group by
// rank, then the loose group by importance.
func (m Model) visible() []model.Subtask {
	ordered, unordered := ordering.SortForDisplay(m.subs)
	return append(ordered, unordered...)
}

// selected returns the subtask under the cursor, if any.
func (m Model) selected() (model.Subtask, bool) {
	vis := m.visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return model.Subtask{}, false
	}
	return vis[m.cursor], true
}

// View renders the subtask panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	sections := []string{titleStyle.Render(m.task.Title)}

	if m.addMode {
		sections = append(sections, m.addInput.View())
	}

	ordered, unordered := ordering.SortForDisplay(m.subs)

	sections = append(sections, theme.SectionTitleStyle.Render("Ordered"))
	if len(ordered) == 0 {
		sections = append(sections, theme.HelpStyle.Render("  no ordered subtasks"))
	}
	for i, sub := range ordered {
		sections = append(sections, m.renderRow(sub, i == m.cursor,
			fmt.Sprintf("%d.", *sub.Order)))
	}

	sections = append(sections, theme.SectionTitleStyle.Render("Unordered"))
	if len(unordered) == 0 {
		sections = append(sections, theme.HelpStyle.Render("  no unordered subtasks"))
	}
	for i, sub := range unordered {
		sections = append(sections, m.renderRow(sub, len(ordered)+i == m.cursor, "•"))
	}

	if m.statusMsg != "" {
		sections = append(sections, theme.OverdueStyle.Render(m.statusMsg))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderRow draws one subtask line.
func (m Model) renderRow(sub model.Subtask, isSelected bool, marker string) string {
	var check string
	if sub.Completed {
		check = "✓"
	} else {
		check = "○"
	}

	line := fmt.Sprintf("%s %s %s", marker, check, sub.Title)
	if sub.Duration != nil {
		line += theme.DueDateStyle.Render(fmt.Sprintf(" (%dm)", *sub.Duration))
	}

	if sub.Completed {
		line = theme.DimmedStyle.Render(line)
	}
	if isSelected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// InPrompt reports whether the add prompt has input focus.
func (m Model) InPrompt() bool {
	return m.addMode
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.addInput.Width = width - 4
}

// loadSubtasks returns a command that reads the task's subtasks.
func (m Model) loadSubtasks() tea.Cmd {
	s := m.store
	taskID := m.task.ID
	return func() tea.Msg {
		subs, err := s.GetSubtasks(context.Background(), taskID)
		if err != nil {
			return SubtasksLoadedMsg{TaskID: taskID}
		}
		return SubtasksLoadedMsg{TaskID: taskID, Subtasks: subs}
	}
}

// saveTransform persists an ordering engine result in one transaction.
func (m Model) saveTransform(subs []model.Subtask) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return savedMsg{err: s.SaveSubtaskOrders(context.Background(), subs)}
	}
}

// createSubtask appends a new subtask at the end of the ordered group
// and persists it.
func (m Model) createSubtask(title string) tea.Cmd {
	s := m.store
	appended := ordering.Append(m.subs, model.Subtask{
		TaskID: m.task.ID,
		Title:  title,
	}, true)
	sub := appended[len(appended)-1]
	return func() tea.Msg {
		_, err := s.CreateSubtask(context.Background(), sub)
		return savedMsg{err: err}
	}
}

// toggleComplete flips a subtask's completion state.
func (m Model) toggleComplete(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return savedMsg{err: s.ToggleSubtaskComplete(context.Background(), id)}
	}
}
