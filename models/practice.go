package models

import "time"

// PracticeSession bir dersin tekrar çalışılmasıdır; CompletedAt boşsa oturum açıktır.
type PracticeSession struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"userId" db:"user_id"`
	LessonID       string     `json:"lessonId" db:"lesson_id"`
	StartedAt      time.Time  `json:"startedAt" db:"started_at"`
	CompletedAt    *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	Duration       int        `json:"duration" db:"duration"` // saniye
	CorrectAnswers int        `json:"correctAnswers" db:"correct_answers"`
	TotalQuestions int        `json:"totalQuestions" db:"total_questions"`
	XPEarned       int        `json:"xpEarned" db:"xp_earned"`
}

func (p *PracticeSession) Completed() bool {
	return p.CompletedAt != nil
}
