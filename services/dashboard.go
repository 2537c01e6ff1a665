// services/dashboard.go
package services

import (
	"context"
	"time"

	"hausa-platform/database"
	"hausa-platform/leveling"
	"hausa-platform/models"
)

const recentActivity = 10

type Dashboard struct {
	store        *database.Store
	users        *Users
	achievements *AchievementTracker
	now          func() time.Time
}

// Get kullanıcının özet istatistiklerini, son derslerini, başarılarını ve son yedi günün XP'sini toplar.
func (d *Dashboard) Get(ctx context.Context, userID string) (*models.DashboardData, error) {
	u, err := d.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := d.store.Progress.ListByUser(ctx, userID, recentActivity)
	if err != nil {
		return nil, err
	}
	rank, err := d.store.Users.Rank(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements, err := d.achievements.ListAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := d.now()
	week, err := d.store.Progress.DailySince(ctx, userID, dayKey(today.AddDate(0, 0, -6)))
	if err != nil {
		return nil, err
	}

	daily := 0
	for _, day := range week {
		if day.Day == dayKey(today) {
			daily = day.XPEarned
		}
	}

	unlocked := 0
	for _, a := range achievements {
		if a.UnlockedAt != nil {
			unlocked++
		}
	}

	progress := leveling.ProgressFor(u.XP)
	return &models.DashboardData{
		User: u,
		Stats: models.DashboardStats{
			XP:                u.XP,
			Level:             progress.Level,
			NextLevelXP:       progress.NextLevelXP,
			LessonsCompleted:  u.TotalLessonsCompleted,
			Rank:              rank,
			DailyGoal:         u.DailyGoal,
			DailyProgress:     daily,
			Streak:            u.StreakDays,
			AchievementPoints: u.AchievementPoints,
			UnlockedCount:     unlocked,
		},
		Recent:       recent,
		Achievements: achievements,
		Week:         week,
	}, nil
}
