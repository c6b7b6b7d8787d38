package taskform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is created via the form.
type TaskCreatedMsg struct {
	Task model.Task
}

// TaskUpdatedMsg is dispatched when an existing task is updated via the form.
type TaskUpdatedMsg struct {
	Task model.Task
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	importance  string
	duration    string
	dueDate     string
	categoryID  string
	repeat      string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	editMode   bool
	editing    model.Task
	categories []model.Category
	width      int
	height     int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetCategories sets the available categories for the form selector.
func (m *Model) SetCategories(categories []model.Category) {
	m.categories = categories
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editing = model.Task{}
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editing = task
	*m.fb = formBindings{
		title:       task.Title,
		description: task.Description,
	}
	if task.ImportanceFactor != nil {
		m.fb.importance = strconv.Itoa(*task.ImportanceFactor)
	}
	if task.Duration != nil {
		m.fb.duration = strconv.Itoa(*task.Duration)
	}
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.Format("2006-01-02")
	}
	if task.CategoryID != nil {
		m.fb.categoryID = *task.CategoryID
	}
	if task.RepeatInterval != nil {
		m.fb.repeat = *task.RepeatInterval
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Importance").
			Placeholder("1-10 (blank for default)").
			Value(&m.fb.importance).
			Validate(validateOptionalInt(1, 10)),
		huh.NewInput().
			Title("Duration").
			Placeholder("Estimated minutes (blank for default)").
			Value(&m.fb.duration).
			Validate(validateOptionalInt(1, 24*60)),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		m.categoryField(),
		huh.NewInput().
			Title("Repeat").
			Placeholder("e.g. 3 days or 1 month (optional)").
			Value(&m.fb.repeat).
			Validate(validateOptionalRepeat),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) categoryField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, c := range m.categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.categoryID)
}

func (m Model) handleSubmit() tea.Cmd {
	task := model.Task{
		Title:       m.fb.title,
		Description: m.fb.description,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(m.fb.importance)); err == nil {
		task.ImportanceFactor = &n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(m.fb.duration)); err == nil {
		task.Duration = &n
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(m.fb.dueDate)); err == nil {
		task.DueDate = &t
	}
	if m.fb.categoryID != "" {
		id := m.fb.categoryID
		task.CategoryID = &id
	}
	if r := strings.TrimSpace(m.fb.repeat); r != "" {
		task.RepeatInterval = &r
	}

	if m.editMode {
		task.ID = m.editing.ID
		task.Completed = m.editing.Completed
		task.CompletedAt = m.editing.CompletedAt
		task.CreatedAt = m.editing.CreatedAt
		return func() tea.Msg { return TaskUpdatedMsg{Task: task} }
	}
	return func() tea.Msg { return TaskCreatedMsg{Task: task} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalInt(min, max int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalRepeat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, _, err := model.ParseRepeatInterval(s)
	if err != nil {
		return fmt.Errorf("use e.g. 3 days or 1 month")
	}
	return nil
}
