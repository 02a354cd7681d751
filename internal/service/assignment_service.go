package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/dto"
	"github.com/noah-isme/mentora-go-api/internal/models"
	"github.com/noah-isme/mentora-go-api/internal/repository"
)

// ErrAssignmentNotFound indicates no ledger row exists for the lookup.
var ErrAssignmentNotFound = errors.New("task assignment not found")

// ErrInvalidStatus indicates an unknown status value was supplied.
var ErrInvalidStatus = errors.New("invalid status")

// ErrCompletedIsTerminal indicates an attempt to move a completed assignment
// back to an earlier state.
var ErrCompletedIsTerminal = errors.New("completed assignments cannot be reverted")

// ErrSubmissionRequired indicates a completion attempt without an answer.
var ErrSubmissionRequired = errors.New("completing a task requires a submission")

// AssignmentService owns the per-student status lifecycle.
type AssignmentService interface {
	UpdateStatus(ctx context.Context, taskID, studentID uint, payload dto.StatusUpdateRequest) (dto.AssignmentResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error)
	ListByTask(ctx context.Context, taskID uint) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds the ledger service.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

// UpdateStatus applies one state-machine transition for the (task, student)
// ledger row. Pending and In Progress move freely between each other, any
// non-terminal state may complete with a submission, and Completed is
// terminal.
func (s *assignmentService) UpdateStatus(ctx context.Context, taskID, studentID uint, payload dto.StatusUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	switch payload.Status {
	case models.AssignmentStatusPending, models.AssignmentStatusInProgress, models.AssignmentStatusCompleted:
	default:
		return dto.AssignmentResponse{}, ErrInvalidStatus
	}

	assignment, err := s.assignments.GetByTaskAndStudent(ctx, taskID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if assignment.IsCompleted() && payload.Status != models.AssignmentStatusCompleted {
		return dto.AssignmentResponse{}, ErrCompletedIsTerminal
	}

	switch payload.Status {
	case models.AssignmentStatusPending:
		assignment.Status = models.AssignmentStatusPending
		assignment.CompletedAt = nil
	case models.AssignmentStatusInProgress:
		assignment.Status = models.AssignmentStatusInProgress
	case models.AssignmentStatusCompleted:
		if payload.SubmissionData == nil {
			return dto.AssignmentResponse{}, ErrSubmissionRequired
		}
		if err := s.complete(ctx, &assignment, *payload.SubmissionData); err != nil {
			return dto.AssignmentResponse{}, err
		}
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().
		Uint("task_id", taskID).
		Uint("student_id", studentID).
		Str("status", assignment.Status).
		Msg("assignment status updated")

	return dto.NewAssignmentResponse(assignment), nil
}

// complete writes the submission for the pair and stamps both timestamps. An
// existing submission keeps its identity; its answer is replaced and its
// status reset to submitted.
func (s *assignmentService) complete(ctx context.Context, assignment *models.TaskAssignment, payload dto.SubmissionPayload) error {
	submission, err := s.submissions.FindByTaskAndStudent(ctx, assignment.TaskID, assignment.StudentID)
	switch {
	case err == nil:
		submission.Answer = payload.Answer
		submission.Status = models.SubmissionStatusSubmitted
		if err := s.submissions.Update(ctx, &submission); err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = models.Submission{
			TaskID:    assignment.TaskID,
			StudentID: assignment.StudentID,
			Answer:    payload.Answer,
			Status:    models.SubmissionStatusSubmitted,
		}
		if err := s.submissions.Create(ctx, &submission); err != nil {
			return err
		}
	default:
		return err
	}

	now := s.now()
	assignment.Status = models.AssignmentStatusCompleted
	assignment.SubmissionID = &submission.ID
	assignment.SubmittedAt = &now
	assignment.CompletedAt = &now
	return nil
}

func (s *assignmentService) ListByStudent(ctx context.Context, studentID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) ListByTask(ctx context.Context, taskID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponseSlice(assignments), nil
}
