// services/catalog.go
package services

import (
	"context"
	"strings"

	"hausa-platform/database"
	"hausa-platform/models"
)

type LessonFilter struct {
	Category string
	Search   string
}

type Catalog struct {
	store *database.Store
}

// ListLessons seviyeye göre artan, eşitlikte ekleme sırasıyla dersleri döner.
func (c *Catalog) ListLessons(ctx context.Context, f LessonFilter) ([]models.Lesson, error) {
	return c.store.Lessons.List(ctx, database.LessonFilter{
		Category: strings.TrimSpace(f.Category),
		Search:   strings.TrimSpace(f.Search),
	})
}

// ListForUser kilitli dersleri de listeler; yalnızca Locked işaretlenir.
func (c *Catalog) ListForUser(ctx context.Context, f LessonFilter, userLevel int) ([]models.LessonView, error) {
	lessons, err := c.ListLessons(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]models.LessonView, len(lessons))
	for i, l := range lessons {
		views[i] = models.LessonView{Lesson: l, Locked: !IsUnlocked(userLevel, l)}
	}
	return views, nil
}

func (c *Catalog) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	return c.store.Lessons.GetByID(ctx, id)
}

func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	return c.store.Lessons.Categories(ctx)
}

func IsUnlocked(userLevel int, lesson models.Lesson) bool {
	return userLevel >= lesson.RequiredLevel
}
