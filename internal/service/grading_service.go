package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/dto"
	"github.com/noah-isme/mentora-go-api/internal/models"
	"github.com/noah-isme/mentora-go-api/internal/repository"
)

// ErrNotTaskOwner indicates the grading actor did not create the parent task.
var ErrNotTaskOwner = errors.New("only the task creator can grade its assignments")

// GradingService encapsulates the expert grading workflow.
type GradingService interface {
	Grade(ctx context.Context, assignmentID, expertID uint, payload dto.GradeRequest) (dto.AssignmentResponse, error)
}

type gradingService struct {
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewGradingService constructs the grading service.
func NewGradingService(assignments repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) GradingService {
	return &gradingService{
		assignments: assignments,
		validator:   validate,
		logger:      logger.With().Str("component", "grading_service").Logger(),
	}
}

// Grade writes score and feedback onto the ledger row and, when a submission
// is linked, marks it reviewed with the same values. Both writes happen in
// one transaction; ownership and range checks run before any mutation.
func (s *gradingService) Grade(ctx context.Context, assignmentID, expertID uint, payload dto.GradeRequest) (dto.AssignmentResponse, error) {
	tracer := otel.Tracer("github.com/noah-isme/mentora-go-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.update")
	span.SetAttributes(
		attribute.Int64("grading.assignment_id", int64(assignmentID)),
		attribute.Int64("grading.expert_id", int64(expertID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByIDWithTask(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assignment_not_found")
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_lookup_failed")
		return dto.AssignmentResponse{}, err
	}

	if assignment.Task.CreatedBy != expertID {
		span.SetStatus(codes.Error, "not_task_owner")
		return dto.AssignmentResponse{}, ErrNotTaskOwner
	}

	score := *payload.Score
	feedback := strings.TrimSpace(payload.Feedback)
	assignment.Score = &score
	assignment.Feedback = feedback

	var submission *models.Submission
	if assignment.Submission != nil && assignment.Submission.ID != 0 {
		submission = assignment.Submission
		submission.Marks = &score
		submission.Feedback = feedback
		submission.Status = models.SubmissionStatusReviewed
	}

	if err := s.assignments.Grade(ctx, &assignment, submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_write_failed")
		return dto.AssignmentResponse{}, err
	}

	span.SetAttributes(attribute.Int("grading.score", score))
	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Int("score", score).
		Msg("assignment graded")

	return dto.NewAssignmentResponse(assignment), nil
}
