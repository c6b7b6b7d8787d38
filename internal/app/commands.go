package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmuir/focusdo/internal/ai"
	"github.com/tmuir/focusdo/internal/model"
	"github.com/tmuir/focusdo/internal/ordering"
)

// taskMutatedMsg reports the outcome of a task write.
type taskMutatedMsg struct {
	err error
}

// breakdownAppliedMsg reports the outcome of an AI breakdown commit.
type breakdownAppliedMsg struct {
	err error
}

// breakdownTimeout bounds a single breakdown API call.
const breakdownTimeout = 60 * time.Second

// createTask returns a command that inserts a task.
func (m Model) createTask(task model.Task) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.CreateTask(context.Background(), task)
		return taskMutatedMsg{err: err}
	}
}

// updateTask returns a command that saves task edits.
func (m Model) updateTask(task model.Task) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return taskMutatedMsg{err: s.UpdateTask(context.Background(), task)}
	}
}

// deleteTask returns a command that removes a task and its subtasks.
func (m Model) deleteTask(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return taskMutatedMsg{err: s.DeleteTask(context.Background(), id)}
	}
}

// toggleTaskComplete returns a command that flips completion state,
// advancing the due date for repeating tasks.
func (m Model) toggleTaskComplete(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.ToggleTaskComplete(context.Background(), id)
		return taskMutatedMsg{err: err}
	}
}

// breakDownTask returns a command that asks the AI provider to split
// the task into subtasks. Nothing is written until the provider call
// succeeds; a failed call leaves the task untouched.
func (m Model) breakDownTask(task model.Task) tea.Cmd {
	s := m.store
	provider := m.provider
	return func() tea.Msg {
		if provider == nil {
			return breakdownAppliedMsg{err: ai.ErrNoAPIKey}
		}

		ctx, cancel := context.WithTimeout(context.Background(), breakdownTimeout)
		defer cancel()

		description := task.Title
		if task.Description != "" {
			description += "\n\n" + task.Description
		}

		result, err := provider.BreakDown(ctx, description)
		if err != nil {
			return breakdownAppliedMsg{err: err}
		}

		// Commit: refine the main task, then append the proposed
		// subtasks to the end of the ordered group.
		task.Title = result.MainTask.Title
		if result.MainTask.Description != "" {
			task.Description = result.MainTask.Description
		}
		if minutes := result.MainTask.Duration.TotalMinutes(); minutes > 0 {
			task.Duration = &minutes
		}
		if err := s.UpdateTask(ctx, task); err != nil {
			return breakdownAppliedMsg{err: fmt.Errorf("saving refined task: %w", err)}
		}

		existing, err := s.GetSubtasks(ctx, task.ID)
		if err != nil {
			return breakdownAppliedMsg{err: fmt.Errorf("loading subtasks: %w", err)}
		}

		for _, bs := range result.Subtasks {
			sub := model.Subtask{
				TaskID:      task.ID,
				Title:       bs.Title,
				Description: bs.Description,
			}
			if minutes := bs.Duration.TotalMinutes(); minutes > 0 {
				sub.Duration = &minutes
			}
			if bs.ImportanceFactor >= 1 && bs.ImportanceFactor <= 10 {
				imp := bs.ImportanceFactor
				sub.ImportanceFactor = &imp
			}

			existing = ordering.Append(existing, sub, true)
			created, err := s.CreateSubtask(ctx, existing[len(existing)-1])
			if err != nil {
				return breakdownAppliedMsg{err: fmt.Errorf("saving subtask %q: %w", bs.Title, err)}
			}
			existing[len(existing)-1] = created
		}

		return breakdownAppliedMsg{}
	}
}
