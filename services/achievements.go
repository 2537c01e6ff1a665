// services/achievements.go
package services

import (
	"context"
	"log"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/database"
	"hausa-platform/events"
	"hausa-platform/metrics"
	"hausa-platform/models"

	"github.com/google/uuid"
)

type AchievementTracker struct {
	store   *database.Store
	users   *Users
	events  events.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

// ListAchievements katalogdaki her başarıyı kullanıcı için tam bir kez döner.
func (t *AchievementTracker) ListAchievements(ctx context.Context, userID string) ([]models.AchievementStatus, error) {
	if _, err := t.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	catalog, err := t.store.Achievements.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := t.store.Achievements.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byAchievement := make(map[string]models.UserAchievement, len(rows))
	for _, ua := range rows {
		byAchievement[ua.AchievementID] = ua
	}

	statuses := make([]models.AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		st := models.AchievementStatus{Achievement: a}
		if ua, ok := byAchievement[a.ID]; ok {
			st.UnlockedAt = ua.UnlockedAt
			st.Progress = ua.Progress
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// RecordProgress ilerlemeyi delta kadar artırır; requirement_value'da sabitlenir.
func (t *AchievementTracker) RecordProgress(ctx context.Context, userID, achievementID string, delta int) (*models.UserAchievement, error) {
	if delta < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "delta must not be negative")
	}

	var result *models.UserAchievement
	var unlocked []models.Achievement
	err := t.store.InTx(ctx, func(tx *database.Store) error {
		if _, err := tx.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		a, err := tx.Achievements.GetByID(ctx, achievementID)
		if err != nil {
			return err
		}

		ua, newly, err := t.apply(ctx, tx, userID, *a, func(cur int) int { return cur + delta })
		if err != nil {
			return err
		}
		result = ua
		if newly {
			unlocked = append(unlocked, *a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.announce(ctx, userID, unlocked)
	return result, nil
}

// Evaluate bir koşul tipindeki tüm başarılara delta ekler ve yeni açılanları döner.
func (t *AchievementTracker) Evaluate(ctx context.Context, userID, requirementType string, delta int) ([]models.Achievement, error) {
	if delta < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "delta must not be negative")
	}
	if delta == 0 {
		return nil, nil
	}
	return t.applyAll(ctx, userID, requirementType, func(cur int) int { return cur + delta })
}

// Raise ilerlemeyi mutlak bir değere yükseltir (seri gibi azalabilen ölçüler için).
func (t *AchievementTracker) Raise(ctx context.Context, userID, requirementType string, value int) ([]models.Achievement, error) {
	if value < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "value must not be negative")
	}
	return t.applyAll(ctx, userID, requirementType, func(cur int) int {
		if value > cur {
			return value
		}
		return cur
	})
}

func (t *AchievementTracker) applyAll(ctx context.Context, userID, requirementType string, next func(int) int) ([]models.Achievement, error) {
	var unlocked []models.Achievement
	err := t.store.InTx(ctx, func(tx *database.Store) error {
		unlocked = nil
		if _, err := tx.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		list, err := tx.Achievements.ListByRequirement(ctx, requirementType)
		if err != nil {
			return err
		}
		for _, a := range list {
			_, newly, err := t.apply(ctx, tx, userID, a, next)
			if err != nil {
				return err
			}
			if newly {
				unlocked = append(unlocked, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.announce(ctx, userID, unlocked)
	return unlocked, nil
}

// apply tek bir başarının satırını kilitler, ilerlemeyi günceller ve ilk açılışta puanı işler.
func (t *AchievementTracker) apply(ctx context.Context, tx *database.Store, userID string, a models.Achievement, next func(int) int) (*models.UserAchievement, bool, error) {
	ua, err := tx.Achievements.LockForUser(ctx, uuid.NewString(), userID, a.ID)
	if err != nil {
		return nil, false, err
	}

	progress := next(ua.Progress)
	if progress > a.RequirementValue {
		progress = a.RequirementValue
	}
	if progress < ua.Progress {
		progress = ua.Progress
	}

	newly := false
	if ua.UnlockedAt == nil && progress >= a.RequirementValue {
		at := t.now()
		ua.UnlockedAt = &at
		newly = true
		if err := tx.Users.AddAchievementPoints(ctx, userID, a.Points); err != nil {
			return nil, false, err
		}
	}

	if progress == ua.Progress && !newly {
		return ua, false, nil
	}
	ua.Progress = progress
	if err := tx.Achievements.SaveProgress(ctx, ua.ID, ua.Progress, ua.UnlockedAt); err != nil {
		return nil, false, err
	}
	return ua, newly, nil
}

func (t *AchievementTracker) announce(ctx context.Context, userID string, unlocked []models.Achievement) {
	if len(unlocked) == 0 {
		return
	}
	t.users.Invalidate(ctx, userID)
	for _, a := range unlocked {
		t.metrics.AchievementsUnlocked.Inc()
		t.events.Publish(models.Event{
			Type:    models.EventAchievementUnlocked,
			UserID:  userID,
			Payload: a,
		})
		log.Printf("Başarı açıldı: user=%s achievement=%s", userID, a.Title)
	}
}
