// services/ledger.go
package services

import (
	"context"
	"log"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/database"
	"hausa-platform/events"
	"hausa-platform/leveling"
	"hausa-platform/metrics"
	"hausa-platform/models"

	"github.com/google/uuid"
)

const (
	maxScore     = 100
	historyLimit = 50
)

type CompletionRequest struct {
	UserID       string
	LessonID     string
	Score        int
	XPEarned     int
	AttemptID    string // istemci tarafından üretilir; aynı deneme ikinci kez işlenmez
	TimeSpent    int
	MistakesMade int
}

type CompletionResult struct {
	Record    *models.ProgressRecord
	LevelUp   *leveling.LevelUp
	Unlocked  []models.Achievement
	Duplicate bool
}

// Ledger ders tamamlamalarını kaydeder; kayıt ve XP artışı tek transaction'da yapılır.
type Ledger struct {
	store        *database.Store
	achievements *AchievementTracker
	users        *Users
	events       events.Publisher
	metrics      *metrics.Metrics
	now          func() time.Time
}

func (l *Ledger) RecordCompletion(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	if err := validateCompletion(req); err != nil {
		return nil, err
	}

	var (
		result = &CompletionResult{}
		newXP  int
	)
	err := l.store.InTx(ctx, func(tx *database.Store) error {
		user, err := tx.Users.GetByIDForUpdate(ctx, req.UserID)
		if err != nil {
			return err
		}
		lesson, err := tx.Lessons.GetByID(ctx, req.LessonID)
		if err != nil {
			return err
		}
		if req.XPEarned > lesson.XPReward {
			return apperr.New(apperr.InvalidArgument, "xpEarned %d exceeds lesson reward %d", req.XPEarned, lesson.XPReward)
		}

		if req.AttemptID != "" {
			existing, err := tx.Progress.GetByAttempt(ctx, req.UserID, req.AttemptID)
			if err == nil {
				result.Record = existing
				result.Duplicate = true
				return nil
			}
			if !apperr.IsKind(err, apperr.NotFound) {
				return err
			}
		}

		now := l.now()
		record := &models.ProgressRecord{
			ID:           uuid.NewString(),
			UserID:       req.UserID,
			LessonID:     req.LessonID,
			Completed:    true,
			Score:        req.Score,
			XPEarned:     req.XPEarned,
			CompletedAt:  now,
			TimeSpent:    req.TimeSpent,
			MistakesMade: req.MistakesMade,
			PerfectScore: req.Score == maxScore,
		}
		if req.AttemptID != "" {
			attempt := req.AttemptID
			record.AttemptID = &attempt
		}
		if err := tx.Progress.Insert(ctx, record); err != nil {
			return err
		}

		newXP, err = tx.Users.CreditCompletion(ctx, req.UserID, req.XPEarned)
		if err != nil {
			return err
		}
		if err := tx.Progress.AddDailyXP(ctx, uuid.NewString(), req.UserID, dayKey(now), req.XPEarned, user.DailyGoal); err != nil {
			return err
		}

		result.Record = record
		return nil
	})
	if err != nil {
		// Aynı attempt_id ile yarışan iki istekten ikincisi benzersizlik kısıtına takılır
		if req.AttemptID != "" && apperr.IsKind(err, apperr.Conflict) {
			existing, getErr := l.store.Progress.GetByAttempt(ctx, req.UserID, req.AttemptID)
			if getErr != nil {
				return nil, getErr
			}
			return &CompletionResult{Record: existing, Duplicate: true}, nil
		}
		return nil, err
	}
	if result.Duplicate {
		return result, nil
	}

	l.metrics.LessonsCompleted.Inc()
	l.metrics.XPCredited.Add(float64(req.XPEarned))
	l.users.Invalidate(ctx, req.UserID)

	if up, ok := leveling.DetectLevelUp(newXP-req.XPEarned, newXP); ok {
		result.LevelUp = &up
		l.metrics.LevelUps.Inc()
		l.events.Publish(models.Event{Type: models.EventLevelUp, UserID: req.UserID, Payload: up})
	}

	result.Unlocked = l.evaluate(ctx, req)
	return result, nil
}

type progressDelta struct {
	requirement string
	delta       int
}

// evaluate kaydedilmiş tamamlamayı başarı takibine iletir. Hatalar isteği bozmaz.
func (l *Ledger) evaluate(ctx context.Context, req CompletionRequest) []models.Achievement {
	deltas := []progressDelta{
		{models.RequirementLessonsCompleted, 1},
		{models.RequirementXPTotal, req.XPEarned},
	}
	if req.Score == maxScore {
		deltas = append(deltas, progressDelta{models.RequirementPerfectScores, 1})
	}

	var unlocked []models.Achievement
	for _, d := range deltas {
		got, err := l.achievements.Evaluate(ctx, req.UserID, d.requirement, d.delta)
		if err != nil {
			log.Printf("Başarı değerlendirmesi başarısız: user=%s type=%s: %v", req.UserID, d.requirement, err)
			continue
		}
		unlocked = append(unlocked, got...)
	}
	return unlocked
}

func (l *Ledger) History(ctx context.Context, userID string, limit int) ([]models.ProgressRecord, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	if _, err := l.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return l.store.Progress.ListByUser(ctx, userID, limit)
}

// XPBalance kullanıcının saklanan XP'sini ve kayıtlarından hesaplanan toplamı döner.
func (l *Ledger) XPBalance(ctx context.Context, userID string) (stored, summed int, err error) {
	u, err := l.store.Users.GetByID(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	summed, err = l.store.Progress.SumXP(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return u.XP, summed, nil
}

func validateCompletion(req CompletionRequest) error {
	if req.UserID == "" {
		return apperr.New(apperr.InvalidArgument, "userId is required")
	}
	if req.LessonID == "" {
		return apperr.New(apperr.InvalidArgument, "lessonId is required")
	}
	if req.Score < 0 || req.Score > maxScore {
		return apperr.New(apperr.InvalidArgument, "score must be between 0 and %d", maxScore)
	}
	if req.XPEarned < 0 {
		return apperr.New(apperr.InvalidArgument, "xpEarned must not be negative")
	}
	if req.TimeSpent < 0 || req.MistakesMade < 0 {
		return apperr.New(apperr.InvalidArgument, "timeSpent and mistakesMade must not be negative")
	}
	if len(req.AttemptID) > 128 {
		return apperr.New(apperr.InvalidArgument, "attemptId is too long")
	}
	return nil
}
