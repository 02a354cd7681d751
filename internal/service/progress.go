package service

import (
	"math"
	"sort"
	"time"

	"github.com/noah-isme/mentora-go-api/internal/dto"
	"github.com/noah-isme/mentora-go-api/internal/models"
)

// DefaultLeaderboardSize caps leaderboard responses when the caller does not
// ask for a specific size.
const DefaultLeaderboardSize = 10

// BuildTaskProgress summarizes the status distribution of a task's ledger
// rows. Pure; recomputed on every read.
func BuildTaskProgress(records []models.TaskAssignment) dto.TaskProgress {
	progress := dto.TaskProgress{Total: len(records)}

	for _, record := range records {
		switch record.Status {
		case models.AssignmentStatusCompleted:
			progress.Completed++
		case models.AssignmentStatusInProgress:
			progress.InProgress++
		default:
			progress.Pending++
		}
	}

	progress.CompletionRate = completionRate(progress.Completed, progress.Total)
	return progress
}

// BuildTaskAnalytics extends the progress summary with the mean completion
// time in whole days. Records without a completion timestamp are skipped.
func BuildTaskAnalytics(task models.Task, records []models.TaskAssignment) dto.TaskAnalytics {
	analytics := dto.TaskAnalytics{TaskProgress: BuildTaskProgress(records)}

	var total time.Duration
	var completed int
	for _, record := range records {
		if record.CompletedAt == nil {
			continue
		}
		total += record.CompletedAt.Sub(task.CreatedAt)
		completed++
	}

	if completed > 0 {
		days := total.Hours() / 24 / float64(completed)
		analytics.AvgCompletionDays = int(math.Round(days))
	}

	return analytics
}

// BuildLeaderboard ranks students by completion rate across the supplied
// ledger rows. Ties break on completed count, then name, to keep the order
// stable across reads.
func BuildLeaderboard(records []models.TaskAssignment, limit int) []dto.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	byStudent := make(map[uint]*dto.LeaderboardEntry)
	for _, record := range records {
		entry, ok := byStudent[record.StudentID]
		if !ok {
			entry = &dto.LeaderboardEntry{
				StudentID: record.StudentID,
				Name:      record.Student.Name,
			}
			byStudent[record.StudentID] = entry
		}
		entry.Total++
		if record.Status == models.AssignmentStatusCompleted {
			entry.Completed++
		}
	}

	entries := make([]dto.LeaderboardEntry, 0, len(byStudent))
	for _, entry := range byStudent {
		entry.CompletionRate = completionRate(entry.Completed, entry.Total)
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CompletionRate != entries[j].CompletionRate {
			return entries[i].CompletionRate > entries[j].CompletionRate
		}
		if entries[i].Completed != entries[j].Completed {
			return entries[i].Completed > entries[j].Completed
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
