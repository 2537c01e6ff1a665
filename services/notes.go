package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"hausa-platform/apperr"
	"hausa-platform/database"
	"hausa-platform/models"

	"github.com/google/uuid"
)

const maxNoteLength = 10000

type Notes struct {
	store *database.Store
	now   func() time.Time
}

func (n *Notes) List(ctx context.Context, userID, lessonID string) ([]models.Note, error) {
	return n.store.Notes.List(ctx, userID, strings.TrimSpace(lessonID))
}

func (n *Notes) Create(ctx context.Context, userID, lessonID, content string) (*models.Note, error) {
	if err := validateNote(content); err != nil {
		return nil, err
	}
	if lessonID == "" {
		return nil, apperr.New(apperr.InvalidArgument, "lessonId is required")
	}
	if _, err := n.store.Lessons.GetByID(ctx, lessonID); err != nil {
		return nil, err
	}

	now := n.now()
	note := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		LessonID:  lessonID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := n.store.Notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update yalnızca sahibinin notunu değiştirir; başkasınınki NotFound döner.
func (n *Notes) Update(ctx context.Context, userID, id, content string) (*models.Note, error) {
	if err := validateNote(content); err != nil {
		return nil, err
	}
	note, err := n.store.Notes.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	note.Content = content
	note.UpdatedAt = n.now()
	if err := n.store.Notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (n *Notes) Delete(ctx context.Context, userID, id string) error {
	return n.store.Notes.Delete(ctx, id, userID)
}

func validateNote(content string) error {
	if strings.TrimSpace(content) == "" || utf8.RuneCountInString(content) > maxNoteLength {
		return apperr.New(apperr.InvalidArgument, "content must be 1-%d characters", maxNoteLength)
	}
	return nil
}
