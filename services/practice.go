package services

import (
	"context"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/database"
	"hausa-platform/models"

	"github.com/google/uuid"
)

const (
	practiceAttemptPrefix = "practice:"
	practiceHistoryLimit  = 50
)

type PracticeResult struct {
	Session    *models.PracticeSession
	Completion *CompletionResult
}

// Practice açık ders alıştırmalarını yönetir. Bitirilen oturumun XP'si
// Ledger'a tamamlanma olarak yazılır; böylece users.xp kayıt toplamıyla aynı kalır.
type Practice struct {
	store  *database.Store
	users  *Users
	ledger *Ledger
	now    func() time.Time
}

func (p *Practice) Start(ctx context.Context, userID, lessonID string) (*models.PracticeSession, error) {
	if lessonID == "" {
		return nil, apperr.New(apperr.InvalidArgument, "lessonId is required")
	}
	lesson, err := p.store.Lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	u, err := p.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !IsUnlocked(u.Level, *lesson) {
		return nil, apperr.New(apperr.Forbidden, "lesson requires level %d", lesson.RequiredLevel)
	}

	session := &models.PracticeSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		LessonID:  lesson.ID,
		StartedAt: p.now(),
	}
	if err := p.store.Practice.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Finish oturumu kapatır ve doğru cevap oranına göre XP verir.
// Aynı oturum ikinci kez bitirilemez; kredi attempt kimliğiyle tekildir.
func (p *Practice) Finish(ctx context.Context, userID, sessionID string, correct, total int) (*PracticeResult, error) {
	if total <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "totalQuestions must be positive")
	}
	if correct < 0 || correct > total {
		return nil, apperr.New(apperr.InvalidArgument, "correctAnswers must be between 0 and totalQuestions")
	}

	session, err := p.store.Practice.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, apperr.New(apperr.Conflict, "practice session already finished")
	}
	lesson, err := p.store.Lessons.GetByID(ctx, session.LessonID)
	if err != nil {
		return nil, err
	}

	now := p.now()
	duration := int(now.Sub(session.StartedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	completion, err := p.ledger.RecordCompletion(ctx, CompletionRequest{
		UserID:       userID,
		LessonID:     lesson.ID,
		Score:        correct * maxScore / total,
		XPEarned:     lesson.XPReward * correct / total,
		AttemptID:    practiceAttemptPrefix + session.ID,
		TimeSpent:    duration,
		MistakesMade: total - correct,
	})
	if err != nil {
		return nil, err
	}

	session.Duration = duration
	session.CorrectAnswers = correct
	session.TotalQuestions = total
	session.XPEarned = completion.Record.XPEarned
	err = p.store.Practice.Complete(ctx, session, now)
	if apperr.IsKind(err, apperr.NotFound) {
		return nil, apperr.New(apperr.Conflict, "practice session already finished")
	}
	if err != nil {
		return nil, err
	}
	session.CompletedAt = &now
	return &PracticeResult{Session: session, Completion: completion}, nil
}

func (p *Practice) History(ctx context.Context, userID string) ([]models.PracticeSession, error) {
	return p.store.Practice.ListByUser(ctx, userID, practiceHistoryLimit)
}
