package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/dto"
	"github.com/noah-isme/mentora-go-api/internal/models"
)

type fakeLedgerRepo struct {
	assignment  models.TaskAssignment
	found       bool
	updated     *models.TaskAssignment
	updateCalls int
}

func (f *fakeLedgerRepo) Create(ctx context.Context, assignment *models.TaskAssignment) error {
	return nil
}

func (f *fakeLedgerRepo) BulkCreate(ctx context.Context, taskID uint, studentIDs []uint) (int, error) {
	return len(studentIDs), nil
}

func (f *fakeLedgerRepo) GetByID(ctx context.Context, id uint) (models.TaskAssignment, error) {
	return f.assignment, nil
}

func (f *fakeLedgerRepo) GetByIDWithTask(ctx context.Context, id uint) (models.TaskAssignment, error) {
	return f.assignment, nil
}

func (f *fakeLedgerRepo) GetByTaskAndStudent(ctx context.Context, taskID, studentID uint) (models.TaskAssignment, error) {
	if !f.found {
		return models.TaskAssignment{}, gorm.ErrRecordNotFound
	}
	return f.assignment, nil
}

func (f *fakeLedgerRepo) ListByStudent(ctx context.Context, studentID uint) ([]models.TaskAssignment, error) {
	return []models.TaskAssignment{f.assignment}, nil
}

func (f *fakeLedgerRepo) ListByTask(ctx context.Context, taskID uint) ([]models.TaskAssignment, error) {
	return []models.TaskAssignment{f.assignment}, nil
}

func (f *fakeLedgerRepo) ListByTaskIDs(ctx context.Context, taskIDs []uint) ([]models.TaskAssignment, error) {
	return []models.TaskAssignment{f.assignment}, nil
}

func (f *fakeLedgerRepo) Update(ctx context.Context, assignment *models.TaskAssignment) error {
	f.updateCalls++
	f.updated = assignment
	return nil
}

func (f *fakeLedgerRepo) Grade(ctx context.Context, assignment *models.TaskAssignment, submission *models.Submission) error {
	return nil
}

type fakeSubmissionStore struct {
	submission  models.Submission
	found       bool
	created     *models.Submission
	updateCalls int
}

func (f *fakeSubmissionStore) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = 77
	f.created = submission
	return nil
}

func (f *fakeSubmissionStore) Update(ctx context.Context, submission *models.Submission) error {
	f.updateCalls++
	f.submission = *submission
	return nil
}

func (f *fakeSubmissionStore) FindByTaskAndStudent(ctx context.Context, taskID, studentID uint) (models.Submission, error) {
	if !f.found {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return f.submission, nil
}

func (f *fakeSubmissionStore) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	return f.submission, nil
}

func newLedgerService(repo *fakeLedgerRepo, store *fakeSubmissionStore) AssignmentService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAssignmentService(repo, store, validate, zerolog.Nop())
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newLedgerService(&fakeLedgerRepo{found: true}, &fakeSubmissionStore{})

	_, err := svc.UpdateStatus(context.Background(), 1, 2, dto.StatusUpdateRequest{Status: "Done"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusAssignmentNotFound(t *testing.T) {
	svc := newLedgerService(&fakeLedgerRepo{found: false}, &fakeSubmissionStore{})

	_, err := svc.UpdateStatus(context.Background(), 1, 2, dto.StatusUpdateRequest{Status: models.AssignmentStatusInProgress})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestUpdateStatusCompletedIsTerminal(t *testing.T) {
	repo := &fakeLedgerRepo{
		found:      true,
		assignment: models.TaskAssignment{ID: 1, TaskID: 1, StudentID: 2, Status: models.AssignmentStatusCompleted},
	}
	svc := newLedgerService(repo, &fakeSubmissionStore{})

	_, err := svc.UpdateStatus(context.Background(), 1, 2, dto.StatusUpdateRequest{Status: models.AssignmentStatusInProgress})
	require.ErrorIs(t, err, ErrCompletedIsTerminal)
	require.Zero(t, repo.updateCalls)
}

func TestUpdateStatusCompletionRequiresSubmission(t *testing.T) {
	repo := &fakeLedgerRepo{
		found:      true,
		assignment: models.TaskAssignment{ID: 1, TaskID: 1, StudentID: 2, Status: models.AssignmentStatusInProgress},
	}
	svc := newLedgerService(repo, &fakeSubmissionStore{})

	_, err := svc.UpdateStatus(context.Background(), 1, 2, dto.StatusUpdateRequest{Status: models.AssignmentStatusCompleted})
	require.ErrorIs(t, err, ErrSubmissionRequired)
	require.Zero(t, repo.updateCalls)
}

func TestUpdateStatusCompletionCreatesSubmissionAndStampsTimes(t *testing.T) {
	repo := &fakeLedgerRepo{
		found:      true,
		assignment: models.TaskAssignment{ID: 1, TaskID: 1, StudentID: 2, Status: models.AssignmentStatusInProgress},
	}
	store := &fakeSubmissionStore{found: false}
	svc := newLedgerService(repo, store)

	response, err := svc.UpdateStatus(context.Background(), 1, 2, dto.StatusUpdateRequest{
		Status:         models.AssignmentStatusCompleted,
		SubmissionData: &dto.SubmissionPayload{Answer: "my answer"},
	})
	require.NoError(t, err)

	require.NotNil(t, store.created)
	require.Equal(t, "my answer", store.created.Answer)
	require.Equal(t, models.SubmissionStatusSubmitted, store.created.Status)

	require.Equal(t, models.AssignmentStatusCompleted, response.Status)
	require.NotNil(t, response.SubmittedAt)
	require.NotNil(t, response.CompletedAt)
	require.NotNil(t, response.SubmissionID)
	require.Equal(t, uint(77), *response.SubmissionID)
	require.Equal(t, 1, repo.updateCalls)
}

func TestUpdateStatusCompletionReplacesExistingAnswer(t *testing.T) {
	repo := &fakeLedgerRepo{
		found:      true,
		assignment: models.TaskAssignment{ID: 1, TaskID: 1, StudentID: 2, Status: models.AssignmentStatusInProgress},
	}
	store := &fakeSubmissionStore{
		found:      true,
		submission: models.Submission{ID: 5, TaskID: 1, StudentID: 2, Answer: "draft", Status: models.SubmissionStatusPending},
	}
	svc := newLedgerService(repo, store)

	response, err := svc.UpdateStatus(context.Background(), 1, 2, dto.StatusUpdateRequest{
		Status:         models.AssignmentStatusCompleted,
		SubmissionData: &dto.SubmissionPayload{Answer: "final answer"},
	})
	require.NoError(t, err)

	require.Nil(t, store.created)
	require.Equal(t, 1, store.updateCalls)
	require.Equal(t, "final answer", store.submission.Answer)
	require.Equal(t, models.SubmissionStatusSubmitted, store.submission.Status)
	require.Equal(t, uint(5), *response.SubmissionID)
}

func TestUpdateStatusRevertToPendingClearsCompletedAt(t *testing.T) {
	stale := time.Now().Add(-time.Hour)
	repo := &fakeLedgerRepo{
		found:      true,
		assignment: models.TaskAssignment{ID: 1, TaskID: 1, StudentID: 2, Status: models.AssignmentStatusInProgress, CompletedAt: &stale},
	}
	svc := newLedgerService(repo, &fakeSubmissionStore{})

	response, err := svc.UpdateStatus(context.Background(), 1, 2, dto.StatusUpdateRequest{Status: models.AssignmentStatusPending})
	require.NoError(t, err)
	require.Equal(t, models.AssignmentStatusPending, response.Status)
	require.Nil(t, response.CompletedAt)
}
