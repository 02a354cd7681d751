package dto

// TaskProgress summarizes the status distribution of a task's assignments.
// It is recomputed on every read and never persisted.
type TaskProgress struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"in_progress"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"`
}

// TaskAnalytics extends the progress summary with completion-time insight.
type TaskAnalytics struct {
	TaskProgress
	AvgCompletionDays int `json:"avg_completion_days"`
}

// LeaderboardEntry ranks one student across a set of tasks.
type LeaderboardEntry struct {
	StudentID      uint   `json:"student_id"`
	Name           string `json:"name"`
	Completed      int    `json:"completed"`
	Total          int    `json:"total"`
	CompletionRate int    `json:"completion_rate"`
}
