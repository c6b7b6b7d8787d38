package focusview

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmuir/focusdo/internal/focus"
	"github.com/tmuir/focusdo/internal/keys"
	"github.com/tmuir/focusdo/internal/priority"
	"github.com/tmuir/focusdo/internal/store"
	"github.com/tmuir/focusdo/internal/taskview"
	"github.com/tmuir/focusdo/internal/theme"
)

// CloseMsg is sent when the user leaves the focus view.
type CloseMsg struct{}

// tickMsg is the one-second pulse driving the countdown. gen ties the
// pulse to the chain that scheduled it; a pause or reset invalidates
// the chain, so an in-flight pulse from before the pause is dropped
// instead of double-counting after a quick resume.
type tickMsg struct {
	gen int
}

// tasksLoadedMsg carries the ranked candidate tasks for the session.
type tasksLoadedMsg struct {
	tasks []priority.Scored
}

// Model is the focus session view: a set of tasks picked for the
// session and the pomodoro countdown.
type Model struct {
	store   store.Store
	keys    *keys.KeyMap
	timer   focus.Timer
	session *focus.Session
	tasks   []priority.Scored
	cursor  int
	tickGen int
	width   int
	height  int
}

// New creates a new focus view model.
func New(s store.Store, k *keys.KeyMap, cfg focus.Config, width, height int) Model {
	return Model{
		store:   s,
		keys:    k,
		timer:   focus.NewTimer(cfg),
		session: focus.NewSession(),
		width:   width,
		height:  height,
	}
}

// Open prepares the view for a fresh session and returns the command
// that loads candidate tasks.
func (m *Model) Open() tea.Cmd {
	m.cursor = 0
	return m.loadTasks()
}

// Leave pauses the countdown and clears the session; the session set is
// transient and does not survive the view.
func (m *Model) Leave() {
	m.timer = m.timer.Pause()
	m.tickGen++
	m.session.Clear()
}

// Update handles messages for the focus view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) && len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen || !m.timer.Running {
			// Stale pulse from a superseded chain.
			return m, nil
		}
		m.timer = m.timer.Tick()
		if m.timer.Running {
			return m, m.tick()
		}
		// The period ended and the timer landed paused.
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// handleKeys processes key input for the focus view.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.Leave()
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.tasks) {
			m.session.Toggle(m.tasks[m.cursor].Task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.TimerToggle):
		if m.timer.Running {
			m.timer = m.timer.Pause()
			m.tickGen++
			return m, nil
		}
		m.timer = m.timer.Start()
		return m, m.tick()

	case key.Matches(msg, m.keys.TimerReset):
		m.timer = m.timer.Reset(nil)
		m.tickGen++
		m.session.Clear()
		return m, nil
	}

	return m, nil
}

// View renders the focus view.
func (m Model) View() string {
	sections := []string{m.renderTimer()}

	sections = append(sections, theme.SectionTitleStyle.Render(
		fmt.Sprintf("Session tasks (%d selected)", m.session.Len())))

	if len(m.tasks) == 0 {
		sections = append(sections, theme.HelpStyle.Render("  no open tasks"))
	}
	for i, scored := range m.tasks {
		sections = append(sections, m.renderRow(scored, i == m.cursor))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTimer draws the countdown readout.
func (m Model) renderTimer() string {
	label := "Work"
	if m.timer.OnBreak {
		label = "Break"
	}
	state := "paused"
	if m.timer.Running {
		state = "running"
	}

	readout := theme.TimerStyle.Render(fmt.Sprintf(
		"%s  %s  (%s, %d pomodoros)",
		label, formatClock(m.timer.TimeLeft), state, m.timer.PomodoroCount,
	))
	return readout
}

// renderRow draws one candidate task line.
func (m Model) renderRow(scored priority.Scored, isSelected bool) string {
	var marker string
	if m.session.Contains(scored.Task.ID) {
		marker = "◉"
	} else {
		marker = "○"
	}

	pri := theme.PriorityStyle(scored.Display).
		Render(fmt.Sprintf("[%4.1f]", scored.Display))
	line := fmt.Sprintf("%s %s %s", marker, pri, scored.Task.Title)

	if isSelected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// TimerStatus returns a short countdown summary for the header.
func (m Model) TimerStatus() string {
	if !m.timer.Running && m.timer.PomodoroCount == 0 &&
		m.timer.TimeLeft == m.timer.Config.WorkSeconds && !m.timer.OnBreak {
		return ""
	}
	label := "work"
	if m.timer.OnBreak {
		label = "break"
	}
	return fmt.Sprintf("%s %s", label, formatClock(m.timer.TimeLeft))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// tick schedules the next one-second pulse on the current chain.
func (m Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// loadTasks returns a command that loads and ranks the open tasks.
func (m Model) loadTasks() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		tasks, err := s.GetTasks(context.Background(), store.TaskQuery{})
		if err != nil {
			return tasksLoadedMsg{}
		}
		now := time.Now().UTC()
		scored := taskview.SortByPriority(priority.Rank(tasks, now))
		return tasksLoadedMsg{tasks: scored}
	}
}

// formatClock renders seconds as M:SS.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
