// database/snippets.go
package database

import (
	"context"
	"strings"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

type SnippetRepository struct {
	q sqlx.ExtContext
}

func (r *SnippetRepository) Create(ctx context.Context, s *models.Snippet) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO snippets (id, user_id, title, code, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.Title, s.Code, s.Language, s.CreatedAt)
	return storageErr(err, "snippet")
}

// List kullanıcının parçacıklarını en yeniden eskiye döner; search başlıkta aranır.
func (r *SnippetRepository) List(ctx context.Context, userID, search string) ([]models.Snippet, error) {
	list := []models.Snippet{}
	err := selectAll(ctx, r.q, &list, `
		SELECT id, user_id, title, code, language, created_at
		FROM snippets WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, storageErr(err, "snippets")
	}
	if search == "" {
		return list, nil
	}

	term := strings.ToLower(search)
	filtered := list[:0]
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Title), term) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func (r *SnippetRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := exec(ctx, r.q, `DELETE FROM snippets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return storageErr(err, "snippet")
	}
	return expectOne(res, "snippet")
}
