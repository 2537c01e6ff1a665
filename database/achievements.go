// database/achievements.go
package database

import (
	"context"
	"time"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

type AchievementRepository struct {
	q sqlx.ExtContext
}

const achievementColumns = `id, seq, title, description, icon_name, points, category,
	requirement_type, requirement_value, created_at`

func (r *AchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO achievements (id, seq, title, description, icon_name, points, category,
			requirement_type, requirement_value, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM achievements), ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Title, a.Description, a.IconName, a.Points, a.Category,
		a.RequirementType, a.RequirementValue, a.CreatedAt)
	if err != nil {
		return storageErr(err, "achievement")
	}
	return storageErr(get(ctx, r.q, &a.Seq, `SELECT seq FROM achievements WHERE id = ?`, a.ID), "achievement")
}

func (r *AchievementRepository) GetByID(ctx context.Context, id string) (*models.Achievement, error) {
	var a models.Achievement
	err := get(ctx, r.q, &a, `SELECT `+achievementColumns+` FROM achievements WHERE id = ?`, id)
	if err != nil {
		return nil, storageErr(err, "achievement")
	}
	return &a, nil
}

// List katalogu ekleme sırasıyla döner.
func (r *AchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	list := []models.Achievement{}
	if err := selectAll(ctx, r.q, &list, `SELECT `+achievementColumns+` FROM achievements ORDER BY seq`); err != nil {
		return nil, storageErr(err, "achievements")
	}
	return list, nil
}

func (r *AchievementRepository) ListByRequirement(ctx context.Context, requirementType string) ([]models.Achievement, error) {
	list := []models.Achievement{}
	err := selectAll(ctx, r.q, &list, `
		SELECT `+achievementColumns+` FROM achievements
		WHERE requirement_type = ?
		ORDER BY seq
	`, requirementType)
	if err != nil {
		return nil, storageErr(err, "achievements")
	}
	return list, nil
}

func (r *AchievementRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := get(ctx, r.q, &n, `SELECT COUNT(*) FROM achievements`); err != nil {
		return 0, storageErr(err, "achievements")
	}
	return n, nil
}

func (r *AchievementRepository) ListForUser(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	list := []models.UserAchievement{}
	err := selectAll(ctx, r.q, &list, `
		SELECT id, user_id, achievement_id, unlocked_at, progress
		FROM user_achievements WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, storageErr(err, "user achievements")
	}
	return list, nil
}

// LockForUser satır yoksa sıfır ilerlemeyle oluşturur ve kilitleyerek okur.
func (r *AchievementRepository) LockForUser(ctx context.Context, id, userID, achievementID string) (*models.UserAchievement, error) {
	_, err := exec(ctx, r.q, `
		INSERT INTO user_achievements (id, user_id, achievement_id, progress)
		VALUES (?, ?, ?, 0)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`, id, userID, achievementID)
	if err != nil {
		return nil, storageErr(err, "user achievement")
	}

	var ua models.UserAchievement
	err = get(ctx, r.q, &ua, `
		SELECT id, user_id, achievement_id, unlocked_at, progress
		FROM user_achievements WHERE user_id = ? AND achievement_id = ?`+forUpdate(r.q),
		userID, achievementID)
	if err != nil {
		return nil, storageErr(err, "user achievement")
	}
	return &ua, nil
}

func (r *AchievementRepository) SaveProgress(ctx context.Context, id string, progress int, unlockedAt *time.Time) error {
	res, err := exec(ctx, r.q, `
		UPDATE user_achievements SET progress = ?, unlocked_at = ? WHERE id = ?
	`, progress, unlockedAt, id)
	if err != nil {
		return storageErr(err, "user achievement")
	}
	return expectOne(res, "user achievement")
}

func (r *AchievementRepository) CountUnlocked(ctx context.Context, userID string) (int, error) {
	var n int
	err := get(ctx, r.q, &n, `
		SELECT COUNT(*) FROM user_achievements WHERE user_id = ? AND unlocked_at IS NOT NULL
	`, userID)
	if err != nil {
		return 0, storageErr(err, "user achievements")
	}
	return n, nil
}
