// models/progress.go
package models

import "time"

type ProgressRecord struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	LessonID     string    `json:"lesson_id" db:"lesson_id"`
	AttemptID    *string   `json:"attempt_id,omitempty" db:"attempt_id"`
	Completed    bool      `json:"completed" db:"completed"`
	Score        int       `json:"score" db:"score"`
	XPEarned     int       `json:"xp_earned" db:"xp_earned"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
	TimeSpent    int       `json:"time_spent" db:"time_spent"` // saniye
	MistakesMade int       `json:"mistakes_made" db:"mistakes_made"`
	PerfectScore bool      `json:"perfect_score" db:"perfect_score"`
}

type DailyStreak struct {
	ID            string `json:"id" db:"id"`
	UserID        string `json:"user_id" db:"user_id"`
	Day           string `json:"day" db:"day"` // YYYY-MM-DD
	XPEarned      int    `json:"xp_earned" db:"xp_earned"`
	GoalCompleted bool   `json:"goal_completed" db:"goal_completed"`
}
