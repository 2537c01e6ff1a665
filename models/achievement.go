// models/achievement.go
package models

import "time"

// Başarı koşul tipleri
const (
	RequirementLessonsCompleted = "lessons_completed"
	RequirementXPTotal          = "xp_total"
	RequirementPerfectScores    = "perfect_scores"
	RequirementStreakDays       = "streak_days"
)

type Achievement struct {
	ID               string    `json:"id" db:"id"`
	Seq              int       `json:"-" db:"seq"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	IconName         string    `json:"icon_name" db:"icon_name"`
	Points           int       `json:"points" db:"points"`
	Category         string    `json:"category" db:"category"`
	RequirementType  string    `json:"requirement_type" db:"requirement_type"`
	RequirementValue int       `json:"requirement_value" db:"requirement_value"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type UserAchievement struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	AchievementID string     `json:"achievement_id" db:"achievement_id"`
	UnlockedAt    *time.Time `json:"unlocked_at" db:"unlocked_at"`
	Progress      int        `json:"progress" db:"progress"`
}

// AchievementStatus katalogdaki bir başarının kullanıcıya göre durumu.
type AchievementStatus struct {
	Achievement
	UnlockedAt *time.Time `json:"unlocked_at"`
	Progress   int        `json:"progress"`
}
