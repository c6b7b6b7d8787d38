package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/priority"
	"github.com/tmuir/focusdo/internal/theme"
)

// TaskItem wraps a scored task so it can be used in a bubbles/list.
type TaskItem struct {
	Scored priority.Scored
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Scored.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Scored.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	return priorityLabel(i.Scored.Display)
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	// categories maps category id to record for badge rendering.
	// Shared by reference with the tasklist Model so reloads are visible.
	categories map[string]model.Category

	// now anchors overdue checks for the whole render pass.
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := ti.Scored.Task
	isSelected := index == m.Index()

	var prefix string
	if task.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	priBadge := theme.PriorityStyle(ti.Scored.Display).
		Render(priorityLabel(ti.Scored.Display))

	catBadge := ""
	if task.CategoryID != nil {
		if cat, ok := d.categories[*task.CategoryID]; ok {
			catBadge = theme.CategoryStyle(cat.Color).Render(cat.Name)
		}
	}

	dueDateStr := ""
	if task.DueDate != nil {
		dueDateStr = theme.DueDateStyle.Render(" " + task.DueDate.Format("Jan 02"))
	}

	overdueStr := ""
	if task.IsOverdue(d.now()) {
		overdueStr = theme.OverdueStyle.Render(" OVERDUE")
	}

	line := fmt.Sprintf(
		"%s %s %s%s%s%s",
		prefix, priBadge, task.Title, catBadge, dueDateStr, overdueStr,
	)

	if task.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel formats a display priority for the list row.
func priorityLabel(display float64) string {
	if display == priority.OverdueScore {
		return "[!!]"
	}
	return fmt.Sprintf("[%4.1f]", display)
}
