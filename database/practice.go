package database

import (
	"context"
	"time"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

const practiceColumns = `id, user_id, lesson_id, started_at, completed_at, duration,
	correct_answers, total_questions, xp_earned`

type PracticeRepository struct {
	q sqlx.ExtContext
}

func (r *PracticeRepository) Create(ctx context.Context, p *models.PracticeSession) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO practice_sessions (id, user_id, lesson_id, started_at)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.UserID, p.LessonID, p.StartedAt)
	return storageErr(err, "practice session")
}

// GetByID yalnızca sahibinin oturumunu döner.
func (r *PracticeRepository) GetByID(ctx context.Context, id, userID string) (*models.PracticeSession, error) {
	var p models.PracticeSession
	err := get(ctx, r.q, &p, `SELECT `+practiceColumns+` FROM practice_sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, storageErr(err, "practice session")
	}
	return &p, nil
}

// Complete açık oturumu kapatır; zaten kapanmışsa NotFound döner.
func (r *PracticeRepository) Complete(ctx context.Context, p *models.PracticeSession, at time.Time) error {
	res, err := exec(ctx, r.q, `
		UPDATE practice_sessions
		SET completed_at = ?, duration = ?, correct_answers = ?, total_questions = ?, xp_earned = ?
		WHERE id = ? AND user_id = ? AND completed_at IS NULL
	`, at, p.Duration, p.CorrectAnswers, p.TotalQuestions, p.XPEarned, p.ID, p.UserID)
	if err != nil {
		return storageErr(err, "practice session")
	}
	return expectOne(res, "practice session")
}

// ListByUser en yeni oturumdan başlar.
func (r *PracticeRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.PracticeSession, error) {
	list := []models.PracticeSession{}
	err := selectAll(ctx, r.q, &list, `
		SELECT `+practiceColumns+` FROM practice_sessions
		WHERE user_id = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, storageErr(err, "practice sessions")
	}
	return list, nil
}
