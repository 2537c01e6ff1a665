// models/leaderboard.go

package models

type LeaderboardEntry struct {
	Rank                  int    `json:"rank" db:"-"`
	ID                    string `json:"id" db:"id"`
	Username              string `json:"username" db:"username"`
	XP                    int    `json:"xp" db:"xp"`
	Level                 int    `json:"level" db:"-"`
	StreakDays            int    `json:"streak_days" db:"streak_days"`
	TotalLessonsCompleted int    `json:"total_lessons_completed" db:"total_lessons_completed"`
	AchievementPoints     int    `json:"achievement_points" db:"achievement_points"`
}

type LeaderboardStats struct {
	TotalUsers     int `json:"total_users"`
	TotalCompleted int `json:"total_completions"`
	TotalXP        int `json:"total_xp"`
}
