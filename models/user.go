// models/user.go
package models

import (
	"time"
)

type User struct {
	ID                    string    `json:"id" db:"id"`
	Email                 string    `json:"email" db:"email"`
	Username              string    `json:"username" db:"username"`
	PasswordHash          string    `json:"-" db:"password_hash"` // bcrypt hash'i
	XP                    int       `json:"xp" db:"xp"`
	Level                 int       `json:"level" db:"-"` // her okumada xp'den hesaplanır
	StreakDays            int       `json:"streak_days" db:"streak_days"`
	LastLogin             time.Time `json:"last_login" db:"last_login"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	DailyGoal             int       `json:"daily_goal" db:"daily_goal"`
	TotalLessonsCompleted int       `json:"total_lessons_completed" db:"total_lessons_completed"`
	AchievementPoints     int       `json:"achievement_points" db:"achievement_points"`
}

type Session struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	UserAgent    string     `json:"user_agent" db:"user_agent"`
	IPAddress    string     `json:"ip_address" db:"ip_address"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastActivity time.Time  `json:"last_activity" db:"last_activity"`
	ExpiresAt    time.Time  `json:"expires_at" db:"expires_at"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	TerminatedAt *time.Time `json:"terminated_at,omitempty" db:"terminated_at"`
	IsCurrent    bool       `json:"is_current" db:"-"`
}
