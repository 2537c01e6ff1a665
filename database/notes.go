package database

import (
	"context"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

type NoteRepository struct {
	q sqlx.ExtContext
}

func (r *NoteRepository) Create(ctx context.Context, n *models.Note) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO user_notes (id, user_id, lesson_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, n.ID, n.UserID, n.LessonID, n.Content, n.CreatedAt, n.UpdatedAt)
	return storageErr(err, "note")
}

// List kullanıcının notlarını son güncellenenden başlayarak döner; lessonID boşsa hepsi.
func (r *NoteRepository) List(ctx context.Context, userID, lessonID string) ([]models.Note, error) {
	query := `SELECT id, user_id, lesson_id, content, created_at, updated_at FROM user_notes WHERE user_id = ?`
	args := []interface{}{userID}
	if lessonID != "" {
		query += ` AND lesson_id = ?`
		args = append(args, lessonID)
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	list := []models.Note{}
	if err := selectAll(ctx, r.q, &list, query, args...); err != nil {
		return nil, storageErr(err, "notes")
	}
	return list, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	var n models.Note
	err := get(ctx, r.q, &n, `
		SELECT id, user_id, lesson_id, content, created_at, updated_at
		FROM user_notes WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return nil, storageErr(err, "note")
	}
	return &n, nil
}

func (r *NoteRepository) Update(ctx context.Context, n *models.Note) error {
	res, err := exec(ctx, r.q, `
		UPDATE user_notes SET content = ?, updated_at = ? WHERE id = ? AND user_id = ?
	`, n.Content, n.UpdatedAt, n.ID, n.UserID)
	if err != nil {
		return storageErr(err, "note")
	}
	return expectOne(res, "note")
}

func (r *NoteRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := exec(ctx, r.q, `DELETE FROM user_notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return storageErr(err, "note")
	}
	return expectOne(res, "note")
}
