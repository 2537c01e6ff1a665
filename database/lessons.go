// database/lessons.go
package database

import (
	"context"
	"strings"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

type LessonRepository struct {
	q sqlx.ExtContext
}

type LessonFilter struct {
	Category string
	Search   string
}

const lessonColumns = `id, seq, title, description, content, level, category, xp_reward,
	required_level, has_audio, has_video, features, prerequisites, difficulty, estimated_time, created_at`

// Create dersi katalogun sonuna ekler; seq ekleme sırasını korur.
func (r *LessonRepository) Create(ctx context.Context, l *models.Lesson) error {
	if l.Features == nil {
		l.Features = models.TagSet{}
	}
	if l.Prerequisites == nil {
		l.Prerequisites = models.TagSet{}
	}
	_, err := exec(ctx, r.q, `
		INSERT INTO lessons (id, seq, title, description, content, level, category, xp_reward,
			required_level, has_audio, has_video, features, prerequisites, difficulty, estimated_time, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM lessons), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.Title, l.Description, l.Content, l.Level, l.Category, l.XPReward,
		l.RequiredLevel, l.HasAudio, l.HasVideo, l.Features, l.Prerequisites, l.Difficulty, l.EstimatedTime, l.CreatedAt)
	if err != nil {
		return storageErr(err, "lesson")
	}
	return storageErr(get(ctx, r.q, &l.Seq, `SELECT seq FROM lessons WHERE id = ?`, l.ID), "lesson")
}

// Update katalog içeriğini değiştirir; seq ve oluşturulma zamanı korunur.
func (r *LessonRepository) Update(ctx context.Context, l *models.Lesson) error {
	res, err := exec(ctx, r.q, `
		UPDATE lessons SET description = ?, content = ?, level = ?, category = ?, xp_reward = ?,
			required_level = ?, has_audio = ?, has_video = ?, features = ?, prerequisites = ?,
			difficulty = ?, estimated_time = ?
		WHERE id = ?
	`, l.Description, l.Content, l.Level, l.Category, l.XPReward, l.RequiredLevel,
		l.HasAudio, l.HasVideo, l.Features, l.Prerequisites, l.Difficulty, l.EstimatedTime, l.ID)
	if err != nil {
		return storageErr(err, "lesson")
	}
	return expectOne(res, "lesson")
}

func (r *LessonRepository) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	var l models.Lesson
	err := get(ctx, r.q, &l, `SELECT `+lessonColumns+` FROM lessons WHERE id = ?`, id)
	if err != nil {
		return nil, storageErr(err, "lesson")
	}
	return &l, nil
}

func (r *LessonRepository) GetByTitle(ctx context.Context, title string) (*models.Lesson, error) {
	var l models.Lesson
	err := get(ctx, r.q, &l, `SELECT `+lessonColumns+` FROM lessons WHERE title = ? ORDER BY seq LIMIT 1`, title)
	if err != nil {
		return nil, storageErr(err, "lesson")
	}
	return &l, nil
}

// List dersleri seviyeye göre artan, eşitlikte ekleme sırasıyla döner.
func (r *LessonRepository) List(ctx context.Context, f LessonFilter) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE 1 = 1`
	var args []interface{}

	if f.Category != "" && f.Category != "all" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}

	query += ` ORDER BY level ASC, seq ASC`

	lessons := []models.Lesson{}
	if err := selectAll(ctx, r.q, &lessons, query, args...); err != nil {
		return nil, storageErr(err, "lessons")
	}

	// Başlık araması Go tarafında yapılır; SQLite LOWER yalnızca ASCII'yi küçültür
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		filtered := lessons[:0]
		for _, l := range lessons {
			if strings.Contains(strings.ToLower(l.Title), term) {
				filtered = append(filtered, l)
			}
		}
		lessons = filtered
	}
	return lessons, nil
}

func (r *LessonRepository) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := selectAll(ctx, r.q, &categories, `
		SELECT category FROM lessons GROUP BY category ORDER BY MIN(level), MIN(seq)
	`)
	if err != nil {
		return nil, storageErr(err, "lessons")
	}
	return categories, nil
}

func (r *LessonRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := get(ctx, r.q, &n, `SELECT COUNT(*) FROM lessons`); err != nil {
		return 0, storageErr(err, "lessons")
	}
	return n, nil
}
