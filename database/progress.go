// database/progress.go
package database

import (
	"context"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

type ProgressRepository struct {
	q sqlx.ExtContext
}

const progressColumns = `id, user_id, lesson_id, attempt_id, completed, score, xp_earned,
	completed_at, time_spent, mistakes_made, perfect_score`

func (r *ProgressRepository) Insert(ctx context.Context, p *models.ProgressRecord) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO learning_progress (`+progressColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.LessonID, p.AttemptID, p.Completed, p.Score, p.XPEarned,
		p.CompletedAt, p.TimeSpent, p.MistakesMade, p.PerfectScore)
	return storageErr(err, "progress record")
}

func (r *ProgressRepository) GetByAttempt(ctx context.Context, userID, attemptID string) (*models.ProgressRecord, error) {
	var p models.ProgressRecord
	err := get(ctx, r.q, &p, `
		SELECT `+progressColumns+` FROM learning_progress
		WHERE user_id = ? AND attempt_id = ?
	`, userID, attemptID)
	if err != nil {
		return nil, storageErr(err, "progress record")
	}
	return &p, nil
}

// ListByUser en yeni kayıtları önce döner.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ProgressRecord, error) {
	records := []models.ProgressRecord{}
	err := selectAll(ctx, r.q, &records, `
		SELECT `+progressColumns+` FROM learning_progress
		WHERE user_id = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, storageErr(err, "progress records")
	}
	return records, nil
}

// SumXP kullanıcının tüm kayıtlarındaki xp_earned toplamı.
func (r *ProgressRepository) SumXP(ctx context.Context, userID string) (int, error) {
	var sum int
	err := get(ctx, r.q, &sum, `SELECT COALESCE(SUM(xp_earned), 0) FROM learning_progress WHERE user_id = ?`, userID)
	if err != nil {
		return 0, storageErr(err, "progress records")
	}
	return sum, nil
}

func (r *ProgressRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := get(ctx, r.q, &n, `SELECT COUNT(*) FROM learning_progress WHERE user_id = ?`, userID)
	if err != nil {
		return 0, storageErr(err, "progress records")
	}
	return n, nil
}

// AddDailyXP günün kaydına XP ekler; hedefe ulaşıldıysa goal_completed işaretlenir.
func (r *ProgressRepository) AddDailyXP(ctx context.Context, id, userID, day string, xp, goal int) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO daily_streaks (id, user_id, day, xp_earned, goal_completed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET
			xp_earned = daily_streaks.xp_earned + excluded.xp_earned,
			goal_completed = (daily_streaks.xp_earned + excluded.xp_earned >= ?)
	`, id, userID, day, xp, xp >= goal, goal)
	return storageErr(err, "daily streak")
}

func (r *ProgressRepository) DailySince(ctx context.Context, userID, fromDay string) ([]models.DailyStreak, error) {
	days := []models.DailyStreak{}
	err := selectAll(ctx, r.q, &days, `
		SELECT id, user_id, day, xp_earned, goal_completed FROM daily_streaks
		WHERE user_id = ? AND day >= ?
		ORDER BY day ASC
	`, userID, fromDay)
	if err != nil {
		return nil, storageErr(err, "daily streak")
	}
	return days, nil
}
