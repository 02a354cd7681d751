package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/dto"
	"github.com/noah-isme/mentora-go-api/internal/models"
	"github.com/noah-isme/mentora-go-api/internal/observability"
	"github.com/noah-isme/mentora-go-api/internal/repository"
)

// ErrTaskNotFound indicates the task does not exist or is not owned by the caller.
var ErrTaskNotFound = errors.New("task not found")

// ErrNoAssignees indicates the assignee spec carried no students.
var ErrNoAssignees = errors.New("no students provided")

// ErrAmbiguousAssignees indicates both spec arms were populated.
var ErrAmbiguousAssignees = errors.New("students must be given by id or by name, not both")

// ErrNoStudentsMatched indicates directory resolution produced an empty set.
var ErrNoStudentsMatched = errors.New("no matching students found")

// TaskNotifier fans notifications out to the assignees of a freshly created
// task. Callers treat it as fire-and-forget.
type TaskNotifier interface {
	DispatchTaskAssigned(ctx context.Context, studentIDs []uint, taskID, expertID uint, title string) error
}

// TaskService exposes the expert-facing task catalog use cases.
type TaskService interface {
	Assign(ctx context.Context, expertID uint, payload dto.TaskCreateRequest) (dto.TaskWithProgressResponse, error)
	ListByExpert(ctx context.Context, expertID uint) ([]dto.TaskWithProgressResponse, error)
	Details(ctx context.Context, taskID, expertID uint) (dto.TaskDetailsResponse, error)
	Delete(ctx context.Context, taskID, expertID uint) error
	Students(ctx context.Context) ([]dto.StudentResponse, error)
	Leaderboard(ctx context.Context, expertID uint, limit int) ([]dto.LeaderboardEntry, error)
}

type taskService struct {
	tasks       repository.TaskRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	notifier    TaskNotifier
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewTaskService builds a new task service.
func NewTaskService(tasks repository.TaskRepository, assignments repository.AssignmentRepository, users repository.UserRepository, notifier TaskNotifier, validate *validator.Validate, logger zerolog.Logger) TaskService {
	return &taskService{
		tasks:       tasks,
		assignments: assignments,
		users:       users,
		notifier:    notifier,
		validator:   validate,
		logger:      logger.With().Str("component", "task_service").Logger(),
	}
}

func (s *taskService) Assign(ctx context.Context, expertID uint, payload dto.TaskCreateRequest) (dto.TaskWithProgressResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskWithProgressResponse{}, err
	}

	studentIDs, err := s.resolveAssignees(ctx, payload.Students)
	if err != nil {
		return dto.TaskWithProgressResponse{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.TaskWithProgressResponse{}, fmt.Errorf("invalid due date: %w", err)
	}

	priority := payload.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	attachments := make([]models.Attachment, 0, len(payload.Attachments))
	for _, attachment := range payload.Attachments {
		attachments = append(attachments, models.Attachment{
			Filename: attachment.Filename,
			URL:      attachment.URL,
			FileType: attachment.FileType,
		})
	}

	task := models.Task{
		Title:       payload.Title,
		Description: payload.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Attachments: attachments,
		CreatedBy:   expertID,
		AssignedTo:  studentIDs,
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return dto.TaskWithProgressResponse{}, err
	}

	inserted, err := s.assignments.BulkCreate(ctx, task.ID, studentIDs)
	if err != nil {
		return dto.TaskWithProgressResponse{}, err
	}
	if inserted != len(studentIDs) {
		s.logger.Warn().
			Uint("task_id", task.ID).
			Int("requested", len(studentIDs)).
			Int("inserted", inserted).
			Msg("partial assignment fan-out")
	}

	// Fire-and-forget: a failed notification dispatch never rolls back the
	// committed task or its ledger rows.
	if s.notifier != nil {
		if err := s.notifier.DispatchTaskAssigned(ctx, studentIDs, task.ID, expertID, task.Title); err != nil {
			s.logger.Warn().Err(err).Uint("task_id", task.ID).Msg("notification fan-out failed")
		}
	}

	observability.TasksAssignedTotal().WithLabelValues(priority).Inc()
	s.logger.Info().Uint("task_id", task.ID).Int("students", len(studentIDs)).Msg("task assigned")

	records, err := s.assignments.ListByTask(ctx, task.ID)
	if err != nil {
		return dto.TaskWithProgressResponse{}, err
	}

	return dto.TaskWithProgressResponse{
		TaskResponse: dto.NewTaskResponse(task),
		Progress:     BuildTaskProgress(records),
	}, nil
}

func (s *taskService) ListByExpert(ctx context.Context, expertID uint) ([]dto.TaskWithProgressResponse, error) {
	tasks, err := s.tasks.ListByCreator(ctx, expertID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TaskWithProgressResponse, 0, len(tasks))
	for _, task := range tasks {
		records, err := s.assignments.ListByTask(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.TaskWithProgressResponse{
			TaskResponse: dto.NewTaskResponse(task),
			Progress:     BuildTaskProgress(records),
		})
	}

	return responses, nil
}

func (s *taskService) Details(ctx context.Context, taskID, expertID uint) (dto.TaskDetailsResponse, error) {
	task, err := s.tasks.GetByIDForCreator(ctx, taskID, expertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TaskDetailsResponse{}, ErrTaskNotFound
		}
		return dto.TaskDetailsResponse{}, err
	}

	records, err := s.assignments.ListByTask(ctx, taskID)
	if err != nil {
		return dto.TaskDetailsResponse{}, err
	}

	return dto.TaskDetailsResponse{
		Task:        dto.NewTaskResponse(task),
		Assignments: dto.NewAssignmentResponseSlice(records),
		Analytics:   BuildTaskAnalytics(task, records),
	}, nil
}

func (s *taskService) Delete(ctx context.Context, taskID, expertID uint) error {
	if err := s.tasks.DeleteCascade(ctx, taskID, expertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.logger.Info().Uint("task_id", taskID).Msg("task deleted with cascade")
	return nil
}

func (s *taskService) Students(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}

func (s *taskService) Leaderboard(ctx context.Context, expertID uint, limit int) ([]dto.LeaderboardEntry, error) {
	tasks, err := s.tasks.ListByCreator(ctx, expertID)
	if err != nil {
		return nil, err
	}

	taskIDs := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	records, err := s.assignments.ListByTaskIDs(ctx, taskIDs)
	if err != nil {
		return nil, err
	}

	return BuildLeaderboard(records, limit), nil
}

// resolveAssignees turns the tagged assignee spec into a concrete id set via
// the user directory, filtered to the student role.
func (s *taskService) resolveAssignees(ctx context.Context, spec dto.AssigneeSpec) ([]uint, error) {
	if spec.Empty() {
		return nil, ErrNoAssignees
	}
	if spec.Ambiguous() {
		return nil, ErrAmbiguousAssignees
	}

	var students []models.User
	var err error
	if len(spec.IDs) > 0 {
		students, err = s.users.FindByIDsAndRole(ctx, spec.IDs, models.RoleStudent)
	} else {
		students, err = s.users.FindByNamesAndRole(ctx, spec.Names, models.RoleStudent)
	}
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrNoStudentsMatched
	}

	ids := make([]uint, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}
	return ids, nil
}
