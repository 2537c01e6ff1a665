package models

type DashboardData struct {
	User         *User               `json:"user"`
	Stats        DashboardStats      `json:"stats"`
	Recent       []ProgressRecord    `json:"recent_activity"`
	Achievements []AchievementStatus `json:"achievements"`
	Week         []DailyStreak       `json:"week"`
}

type DashboardStats struct {
	XP                int `json:"xp"`
	Level             int `json:"level"`
	NextLevelXP       int `json:"next_level_xp"`
	LessonsCompleted  int `json:"lessons_completed"`
	Rank              int `json:"rank"`
	DailyGoal         int `json:"daily_goal"`
	DailyProgress     int `json:"daily_progress"`
	Streak            int `json:"streak"`
	AchievementPoints int `json:"achievement_points"`
	UnlockedCount     int `json:"unlocked_count"`
}
