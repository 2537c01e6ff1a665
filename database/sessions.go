// database/sessions.go
package database

import (
	"context"
	"time"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

type SessionRepository struct {
	q sqlx.ExtContext
}

const sessionColumns = `id, user_id, user_agent, ip_address, created_at, last_activity,
	expires_at, is_active, terminated_at`

func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO user_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.UserAgent, s.IPAddress, s.CreatedAt, s.LastActivity,
		s.ExpiresAt, s.IsActive, s.TerminatedAt)
	return storageErr(err, "session")
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := get(ctx, r.q, &s, `SELECT `+sessionColumns+` FROM user_sessions WHERE id = ?`, id)
	if err != nil {
		return nil, storageErr(err, "session")
	}
	return &s, nil
}

func (r *SessionRepository) ListActive(ctx context.Context, userID string, now time.Time) ([]models.Session, error) {
	list := []models.Session{}
	err := selectAll(ctx, r.q, &list, `
		SELECT `+sessionColumns+` FROM user_sessions
		WHERE user_id = ? AND is_active = ? AND expires_at > ?
		ORDER BY last_activity DESC
	`, userID, true, now)
	if err != nil {
		return nil, storageErr(err, "sessions")
	}
	return list, nil
}

func (r *SessionRepository) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := exec(ctx, r.q, `UPDATE user_sessions SET last_activity = ? WHERE id = ?`, at, id)
	return storageErr(err, "session")
}

// Extend açık bir oturumun bitiş zamanını ileri alır.
func (r *SessionRepository) Extend(ctx context.Context, id string, at, expiresAt time.Time) error {
	res, err := exec(ctx, r.q, `
		UPDATE user_sessions SET last_activity = ?, expires_at = ?
		WHERE id = ? AND is_active = ?
	`, at, expiresAt, id, true)
	if err != nil {
		return storageErr(err, "session")
	}
	return expectOne(res, "session")
}

// Terminate oturumu yalnızca sahibi adına kapatır.
func (r *SessionRepository) Terminate(ctx context.Context, id, userID string, at time.Time) error {
	res, err := exec(ctx, r.q, `
		UPDATE user_sessions SET is_active = ?, terminated_at = ?
		WHERE id = ? AND user_id = ? AND is_active = ?
	`, false, at, id, userID, true)
	if err != nil {
		return storageErr(err, "session")
	}
	return expectOne(res, "session")
}

func (r *SessionRepository) TerminateAllExcept(ctx context.Context, userID, keepID string, at time.Time) (int64, error) {
	res, err := exec(ctx, r.q, `
		UPDATE user_sessions SET is_active = ?, terminated_at = ?
		WHERE user_id = ? AND id <> ? AND is_active = ?
	`, false, at, userID, keepID, true)
	if err != nil {
		return 0, storageErr(err, "session")
	}
	return res.RowsAffected()
}

// DeactivateExpired süresi dolmuş oturumları kapatır.
func (r *SessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := exec(ctx, r.q, `
		UPDATE user_sessions SET is_active = ?, terminated_at = ?
		WHERE is_active = ? AND expires_at <= ?
	`, false, now, true, now)
	if err != nil {
		return 0, storageErr(err, "session")
	}
	return res.RowsAffected()
}
