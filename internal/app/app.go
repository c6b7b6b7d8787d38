package app

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmuir/focusdo/internal/ai"
	"github.com/tmuir/focusdo/internal/credential"
	"github.com/tmuir/focusdo/internal/focus"
	"github.com/tmuir/focusdo/internal/keys"
	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/store"
	"github.com/tmuir/focusdo/internal/ui"
	"github.com/tmuir/focusdo/internal/ui/focusview"
	helpview "github.com/tmuir/focusdo/internal/ui/help"
	"github.com/tmuir/focusdo/internal/ui/subtasks"
	"github.com/tmuir/focusdo/internal/ui/taskform"
	"github.com/tmuir/focusdo/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
	ViewSubtasks
	ViewFocus
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	keys         *keys.KeyMap
	provider     ai.Provider
	taskList     tasklist.Model
	taskForm     taskform.Model
	subtaskView  subtasks.Model
	focusView    focusview.Model
	helpView     helpview.Model
	ready        bool
	statusError  string
}

// New creates the root application model.
func New(s store.Store, cfg *model.AppConfig) Model {
	k := keys.DefaultKeyMap()

	timerCfg := focus.Config{
		WorkSeconds:       cfg.Pomodoro.WorkMinutes * 60,
		ShortBreakSeconds: cfg.Pomodoro.ShortBreakMinutes * 60,
		LongBreakSeconds:  cfg.Pomodoro.LongBreakMinutes * 60,
		LongBreakInterval: cfg.Pomodoro.LongBreakInterval,
	}

	return Model{
		currentView: ViewList,
		store:       s,
		keys:        k,
		provider:    loadAIProvider(cfg),
		taskList:    tasklist.New(s, k, 80, 24),
		taskForm:    taskform.New(80, 24),
		subtaskView: subtasks.New(s, k, 80, 24),
		focusView:   focusview.New(s, k, timerCfg, 80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// loadAIProvider attempts to create the breakdown provider by loading
// the API key from the environment variable or system keyring. Returns
// nil if no key is available.
func loadAIProvider(cfg *model.AppConfig) ai.Provider {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		var err error
		apiKey, err = credential.Get("claude-api-key")
		if err != nil || apiKey == "" {
			return nil
		}
	}

	return ai.New(apiKey, cfg.AI.Model, cfg.AI.MaxTokens)
}

// Init returns the initial command to load the task list.
func (m Model) Init() tea.Cmd {
	return m.taskList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.subtaskView.SetSize(contentWidth, contentHeight)
		m.focusView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can size themselves.
		return m.updateActiveView(msg)

	case tasklist.SelectedTaskMsg:
		task, ok := m.taskList.SelectedTask()
		if !ok || task.ID != msg.TaskID {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewSubtasks
		return m, m.subtaskView.SetTask(task)

	case taskform.TaskCreatedMsg:
		m.currentView = ViewList
		return m, m.createTask(msg.Task)

	case taskform.TaskUpdatedMsg:
		m.currentView = ViewList
		return m, m.updateTask(msg.Task)

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case subtasks.CloseMsg:
		m.currentView = ViewList
		return m, m.taskList.LoadTasks()

	case focusview.CloseMsg:
		m.currentView = ViewList
		return m, m.taskList.LoadTasks()

	case taskMutatedMsg:
		if msg.err != nil {
			m.statusError = msg.err.Error()
			return m, nil
		}
		m.statusError = ""
		return m, m.taskList.LoadTasks()

	case breakdownAppliedMsg:
		if msg.err != nil {
			m.statusError = msg.err.Error()
			return m, nil
		}
		m.statusError = ""
		return m, m.taskList.LoadTasks()

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work across views. It reports
// whether the key was consumed.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Never steal keys from an active text prompt or the form.
	if m.currentView == ViewForm ||
		(m.currentView == ViewList && m.taskList.InRangePrompt()) ||
		(m.currentView == ViewSubtasks && m.subtaskView.InPrompt()) {
		if msg.String() == "ctrl+c" {
			return true, m, tea.Quit
		}
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return true, m, tea.Quit

	case "q":
		if m.currentView == ViewList {
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "n":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewForm
			m.taskForm.SetCategories(m.taskList.Categories())
			return true, m, m.taskForm.StartCreate()
		}

	case "e":
		if m.currentView == ViewList {
			task, ok := m.taskList.SelectedTask()
			if !ok {
				return true, m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewForm
			m.taskForm.SetCategories(m.taskList.Categories())
			return true, m, m.taskForm.StartEdit(task)
		}

	case "x":
		if m.currentView == ViewList {
			task, ok := m.taskList.SelectedTask()
			if !ok {
				return true, m, nil
			}
			return true, m, m.toggleTaskComplete(task.ID)
		}

	case "d":
		if m.currentView == ViewList {
			task, ok := m.taskList.SelectedTask()
			if !ok {
				return true, m, nil
			}
			return true, m, m.deleteTask(task.ID)
		}

	case "b":
		if m.currentView == ViewList {
			task, ok := m.taskList.SelectedTask()
			if !ok {
				return true, m, nil
			}
			return true, m, m.breakDownTask(task)
		}

	case "f":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewFocus
			return true, m, m.focusView.Open()
		}

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewSubtasks:
		m.subtaskView, cmd = m.subtaskView.Update(msg)
	case ViewFocus:
		m.focusView, cmd = m.focusView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("focusdo", m.focusView.TimerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewForm:
		return m.taskForm.View()
	case ViewSubtasks:
		return m.subtaskView.View()
	case ViewFocus:
		return m.focusView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Show errors prominently when present.
	if m.statusError != "" && m.currentView == ViewList {
		return m.statusError
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewSubtasks:
		return "a add | K/J move | o order | u unorder | x done | d delete | esc back"
	case ViewFocus:
		return "space start/pause | r reset | enter pick task | esc back"
	default:
		filterSummary := m.taskList.FilterSummary()
		if filterSummary != "" {
			return filterSummary + " | 0 clear"
		}
		return "q quit | ? help | n new | f focus | b breakdown | 1-4 filter | / range | tab sort"
	}
}
