package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/dto"
	"github.com/noah-isme/mentora-go-api/internal/service"
	"github.com/noah-isme/mentora-go-api/internal/utils"
)

// TaskHandler wires the expert-facing task routes.
type TaskHandler struct {
	tasks       service.TaskService
	assignments service.AssignmentService
	grading     service.GradingService
	logger      zerolog.Logger
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(tasks service.TaskService, assignments service.AssignmentService, grading service.GradingService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:       tasks,
		assignments: assignments,
		grading:     grading,
		logger:      logger.With().Str("component", "task_handler").Logger(),
	}
}

// RegisterTasks attaches the task catalog endpoints to the router group.
func (h *TaskHandler) RegisterTasks(router fiber.Router) {
	router.Post("/assign", h.assign)
	router.Get("/expert", h.listByExpert)
	router.Get("/:taskId", h.details)
	router.Delete("/:taskId", h.delete)
	router.Get("/:taskId/assignments", h.roster)
}

// RegisterGrading attaches the grading endpoint to the assignments group.
func (h *TaskHandler) RegisterGrading(router fiber.Router) {
	router.Patch("/:assignmentId/grade", h.grade)
}

// RegisterDirectory attaches the roster selection and leaderboard endpoints.
func (h *TaskHandler) RegisterDirectory(router fiber.Router) {
	router.Get("/students", h.students)
	router.Get("/leaderboard", h.leaderboard)
}

func (h *TaskHandler) assign(c *fiber.Ctx) error {
	var payload dto.TaskCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	task, err := h.tasks.Assign(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "task assigned", task)
}

func (h *TaskHandler) listByExpert(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListByExpert(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "tasks retrieved", tasks)
}

func (h *TaskHandler) details(c *fiber.Ctx) error {
	taskID, err := parseUintParam(c, "taskId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	details, err := h.tasks.Details(c.UserContext(), taskID, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "task details retrieved", details)
}

func (h *TaskHandler) delete(c *fiber.Ctx) error {
	taskID, err := parseUintParam(c, "taskId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.tasks.Delete(c.UserContext(), taskID, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "task deleted", fiber.Map{"id": taskID})
}

func (h *TaskHandler) roster(c *fiber.Ctx) error {
	taskID, err := parseUintParam(c, "taskId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	// Ownership check through the details lookup before exposing the roster.
	if _, err := h.tasks.Details(c.UserContext(), taskID, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	assignments, err := h.assignments.ListByTask(c.UserContext(), taskID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "task assignments retrieved", assignments)
}

func (h *TaskHandler) grade(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.grading.Grade(c.UserContext(), assignmentID, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grade updated", assignment)
}

func (h *TaskHandler) students(c *fiber.Ctx) error {
	students, err := h.tasks.Students(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *TaskHandler) leaderboard(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	entries, err := h.tasks.Leaderboard(c.UserContext(), userIDFromContext(c), limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "leaderboard retrieved", entries)
}

func (h *TaskHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoStudentsMatched):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotTaskOwner):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNoAssignees),
		errors.Is(err, service.ErrAmbiguousAssignees):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.SendError(c, fiber.StatusConflict, "assignment already exists")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
