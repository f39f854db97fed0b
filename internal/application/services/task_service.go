package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskmaster/dashboard/internal/application/insights"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// TaskService handles task-related operations on top of the store. Unlike
// the store it reports unknown ids and rejects malformed input.
type TaskService struct {
	store  ports.DashboardStore
	logger *logger.Logger
	now    func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(store ports.DashboardStore, logger *logger.Logger) *TaskService {
	return &TaskService{
		store:  store,
		logger: logger.WithComponent("tasks"),
		now:    time.Now,
	}
}

// CreateTask adds a task built from req
func (s *TaskService) CreateTask(req ports.CreateTaskRequest) (entities.Task, error) {
	draft := req.Draft()
	if draft.Title == "" {
		return entities.Task{}, fmt.Errorf("title is required")
	}
	if !draft.Priority.IsValid() {
		return entities.Task{}, fmt.Errorf("%w: %q", entities.ErrInvalidPriority, draft.Priority)
	}
	if err := validDueDate(draft.DueDate); err != nil {
		return entities.Task{}, err
	}

	task := s.store.AddTask(draft)
	s.logger.Infow("Task created successfully", "task_id", task.ID, "title", task.Title)
	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(id string) (entities.Task, error) {
	task, ok := s.store.Task(id)
	if !ok {
		return entities.Task{}, fmt.Errorf("%w: %s", entities.ErrTaskNotFound, id)
	}
	return task, nil
}

// ListTasks returns the filtered tasks in display order
func (s *TaskService) ListTasks(filter ports.TaskFilter) []entities.Task {
	return insights.SortTasks(insights.FilterTasks(s.store.Tasks(), filter, s.now()))
}

// UpdateTask merges patch into the task
func (s *TaskService) UpdateTask(id string, patch ports.TaskPatch) (entities.Task, error) {
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return entities.Task{}, fmt.Errorf("%w: %q", entities.ErrInvalidPriority, *patch.Priority)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return entities.Task{}, fmt.Errorf("title cannot be empty")
		}
		patch.Title = &title
	}
	if patch.DueDate != nil {
		if err := validDueDate(*patch.DueDate); err != nil {
			return entities.Task{}, err
		}
	}

	if !s.store.UpdateTask(id, patch) {
		return entities.Task{}, fmt.Errorf("%w: %s", entities.ErrTaskNotFound, id)
	}
	task, _ := s.store.Task(id)
	s.logger.Infow("Task updated successfully", "task_id", id)
	return task, nil
}

// ToggleTask flips the completed flag
func (s *TaskService) ToggleTask(id string) (entities.Task, error) {
	if !s.store.ToggleTask(id) {
		return entities.Task{}, fmt.Errorf("%w: %s", entities.ErrTaskNotFound, id)
	}
	task, _ := s.store.Task(id)
	s.logger.Infow("Task toggled", "task_id", id, "completed", task.Completed)
	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(id string) error {
	if !s.store.DeleteTask(id) {
		return fmt.Errorf("%w: %s", entities.ErrTaskNotFound, id)
	}
	s.logger.Infow("Task deleted successfully", "task_id", id)
	return nil
}

// Stats summarizes all tasks
func (s *TaskService) Stats() insights.TaskStats {
	return insights.StatsAt(s.store.Tasks(), s.now())
}

// Reminders lists incomplete tasks due within window
func (s *TaskService) Reminders(window time.Duration) []insights.Reminder {
	return insights.Reminders(s.store.Tasks(), s.now(), window)
}

// Calendar lays out a month with the tasks due on each day. A zero year or
// month means the current one.
func (s *TaskService) Calendar(year int, month time.Month) (insights.CalendarMonth, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	return insights.Month(year, month, s.store.Tasks(), now)
}

func validDueDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(entities.DueDateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", entities.ErrInvalidDueDate, date)
	}
	return nil
}
