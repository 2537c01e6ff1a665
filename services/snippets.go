// services/snippets.go
package services

import (
	"context"
	"strings"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/database"
	"hausa-platform/models"

	"github.com/google/uuid"
)

const (
	maxSnippetTitle = 200
	maxSnippetCode  = 64 * 1024
)

type Snippets struct {
	store *database.Store
	now   func() time.Time
}

func (s *Snippets) List(ctx context.Context, userID, search string) ([]models.Snippet, error) {
	return s.store.Snippets.List(ctx, userID, strings.TrimSpace(search))
}

func (s *Snippets) Create(ctx context.Context, userID, title, code, language string) (*models.Snippet, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxSnippetTitle {
		return nil, apperr.New(apperr.InvalidArgument, "title must be 1-%d characters", maxSnippetTitle)
	}
	if strings.TrimSpace(code) == "" || len(code) > maxSnippetCode {
		return nil, apperr.New(apperr.InvalidArgument, "code must not be empty or larger than %d bytes", maxSnippetCode)
	}
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = "text"
	}

	snippet := &models.Snippet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Code:      code,
		Language:  language,
		CreatedAt: s.now(),
	}
	if err := s.store.Snippets.Create(ctx, snippet); err != nil {
		return nil, err
	}
	return snippet, nil
}

// Delete yalnızca sahibinin parçacığını siler; başkasınınki NotFound döner.
func (s *Snippets) Delete(ctx context.Context, userID, id string) error {
	return s.store.Snippets.Delete(ctx, id, userID)
}
