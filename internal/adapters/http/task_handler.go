package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// defaultReminderDays is the window GET /tasks/reminders uses without ?days=.
const defaultReminderDays = 3

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns filtered tasks, incomplete first
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Param status query string false "all, pending or completed"
// @Param priority query string false "low, medium or high"
// @Param category query string false "Category"
// @Param due query string false "all, today, week or overdue"
// @Param q query string false "Search title and description"
// @Success 200 {array} entities.Task
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	var filter ports.TaskFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	if err := c.Validate(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, h.taskService.ListTasks(filter))
}

// CreateTask adds a task
// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body ports.CreateTaskRequest true "Task"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(req)
	if err != nil {
		h.logger.Warnw("Create task failed", "error", err)
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask returns one task
// @Summary Get task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask merges a partial task update
// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body ports.TaskPatch true "Fields to change"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.TaskPatch
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Param("id"), req)
	if err != nil {
		h.logger.Warnw("Update task failed", "error", err, "task_id", c.Param("id"))
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// ToggleTask flips a task's completed flag
// @Summary Toggle task completion
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Router /tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	task, err := h.taskService.ToggleTask(c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
// @Summary Delete task
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStats summarizes all tasks
// @Summary Task statistics
// @Tags Tasks
// @Produce json
// @Success 200 {object} insights.TaskStats
// @Router /tasks/stats [get]
func (h *TaskHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.taskService.Stats())
}

// GetReminders lists incomplete tasks due within ?days= (default 3)
// @Summary Due-soon reminders
// @Tags Tasks
// @Produce json
// @Param days query int false "Window in days"
// @Success 200 {array} insights.Reminder
// @Router /tasks/reminders [get]
func (h *TaskHandler) GetReminders(c echo.Context) error {
	days := defaultReminderDays
	if daysStr := c.QueryParam("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid days parameter")
		}
		days = n
	}

	return c.JSON(http.StatusOK, h.taskService.Reminders(time.Duration(days)*24*time.Hour))
}

// GetCalendar lays out a month grid with tasks due on each day
// @Summary Calendar month
// @Tags Calendar
// @Produce json
// @Param year query int false "Year, default current"
// @Param month query int false "Month 1-12, default current"
// @Success 200 {object} insights.CalendarMonth
// @Router /calendar [get]
func (h *TaskHandler) GetCalendar(c echo.Context) error {
	var year, month int
	if s := c.QueryParam("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid year parameter")
		}
		year = y
	}
	if s := c.QueryParam("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid month parameter")
		}
		month = m
	}

	cal, err := h.taskService.Calendar(year, time.Month(month))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, cal)
}
