package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

func TestBuildTaskProgressCountsAndRate(t *testing.T) {
	records := []models.TaskAssignment{
		{Status: models.AssignmentStatusCompleted},
		{Status: models.AssignmentStatusInProgress},
		{Status: models.AssignmentStatusPending},
	}

	progress := BuildTaskProgress(records)
	require.Equal(t, 3, progress.Total)
	require.Equal(t, 1, progress.Completed)
	require.Equal(t, 1, progress.InProgress)
	require.Equal(t, 1, progress.Pending)
	require.Equal(t, 33, progress.CompletionRate)
}

func TestBuildTaskProgressEmpty(t *testing.T) {
	progress := BuildTaskProgress(nil)
	require.Zero(t, progress.Total)
	require.Zero(t, progress.CompletionRate)
}

func TestBuildTaskAnalyticsAveragesCompletedOnly(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := models.Task{CreatedAt: created}

	twoDays := created.Add(48 * time.Hour)
	fourDays := created.Add(96 * time.Hour)
	records := []models.TaskAssignment{
		{Status: models.AssignmentStatusCompleted, CompletedAt: &twoDays},
		{Status: models.AssignmentStatusCompleted, CompletedAt: &fourDays},
		{Status: models.AssignmentStatusInProgress},
	}

	analytics := BuildTaskAnalytics(task, records)
	require.Equal(t, 3, analytics.Total)
	require.Equal(t, 2, analytics.Completed)
	require.Equal(t, 3, analytics.AvgCompletionDays)
}

func TestBuildTaskAnalyticsNoCompletions(t *testing.T) {
	task := models.Task{CreatedAt: time.Now()}
	analytics := BuildTaskAnalytics(task, []models.TaskAssignment{{Status: models.AssignmentStatusPending}})
	require.Zero(t, analytics.AvgCompletionDays)
}

func TestBuildLeaderboardOrdersAndBreaksTies(t *testing.T) {
	records := []models.TaskAssignment{
		// Alice: 2/2 completed.
		{StudentID: 1, Student: models.User{ID: 1, Name: "Alice"}, Status: models.AssignmentStatusCompleted},
		{StudentID: 1, Student: models.User{ID: 1, Name: "Alice"}, Status: models.AssignmentStatusCompleted},
		// Bob: 1/2 completed.
		{StudentID: 2, Student: models.User{ID: 2, Name: "Bob"}, Status: models.AssignmentStatusCompleted},
		{StudentID: 2, Student: models.User{ID: 2, Name: "Bob"}, Status: models.AssignmentStatusPending},
		// Cara: 1/1 completed, ties Alice on rate but not on count.
		{StudentID: 3, Student: models.User{ID: 3, Name: "Cara"}, Status: models.AssignmentStatusCompleted},
	}

	entries := BuildLeaderboard(records, 0)
	require.Len(t, entries, 3)
	require.Equal(t, "Alice", entries[0].Name)
	require.Equal(t, 100, entries[0].CompletionRate)
	require.Equal(t, "Cara", entries[1].Name)
	require.Equal(t, "Bob", entries[2].Name)
	require.Equal(t, 50, entries[2].CompletionRate)
}

func TestBuildLeaderboardAppliesLimit(t *testing.T) {
	records := []models.TaskAssignment{
		{StudentID: 1, Student: models.User{ID: 1, Name: "Alice"}, Status: models.AssignmentStatusCompleted},
		{StudentID: 2, Student: models.User{ID: 2, Name: "Bob"}, Status: models.AssignmentStatusPending},
		{StudentID: 3, Student: models.User{ID: 3, Name: "Cara"}, Status: models.AssignmentStatusPending},
	}

	entries := BuildLeaderboard(records, 2)
	require.Len(t, entries, 2)
	require.Equal(t, "Alice", entries[0].Name)
}
