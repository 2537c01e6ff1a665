// database/seed.go
package database

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"hausa-platform/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Lessons      []CatalogLesson      `yaml:"lessons"`
	Achievements []CatalogAchievement `yaml:"achievements"`
}

type CatalogLesson struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Content       string   `yaml:"content"`
	Level         int      `yaml:"level"`
	Category      string   `yaml:"category"`
	XPReward      int      `yaml:"xp_reward"`
	RequiredLevel int      `yaml:"required_level"`
	HasAudio      bool     `yaml:"has_audio"`
	HasVideo      bool     `yaml:"has_video"`
	Features      []string `yaml:"features"`
	Prerequisites []string `yaml:"prerequisites"`
	Difficulty    string   `yaml:"difficulty"`
	EstimatedTime int      `yaml:"estimated_time"`
}

type CatalogAchievement struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	IconName         string `yaml:"icon_name"`
	Points           int    `yaml:"points"`
	Category         string `yaml:"category"`
	RequirementType  string `yaml:"requirement_type"`
	RequirementValue int    `yaml:"requirement_value"`
}

func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("katalog çözümlenemedi: %w", err)
	}
	return &c, nil
}

func (l CatalogLesson) Lesson(now time.Time) *models.Lesson {
	required := l.RequiredLevel
	if required < 1 {
		required = 1
	}
	difficulty := l.Difficulty
	if difficulty == "" {
		difficulty = "beginner"
	}
	return &models.Lesson{
		ID:            uuid.NewString(),
		Title:         l.Title,
		Description:   l.Description,
		Content:       l.Content,
		Level:         l.Level,
		Category:      l.Category,
		XPReward:      l.XPReward,
		RequiredLevel: required,
		HasAudio:      l.HasAudio,
		HasVideo:      l.HasVideo,
		Features:      models.NewTagSet(l.Features...),
		Prerequisites: models.NewTagSet(l.Prerequisites...),
		Difficulty:    difficulty,
		EstimatedTime: l.EstimatedTime,
		CreatedAt:     now,
	}
}

// Seed katalog tabloları boşsa verilen katalogu tek transaction'da yükler.
func Seed(ctx context.Context, store *Store, catalog *Catalog) error {
	return store.InTx(ctx, func(tx *Store) error {
		now := time.Now().UTC()

		lessonCount, err := tx.Lessons.Count(ctx)
		if err != nil {
			return err
		}
		if lessonCount == 0 {
			for _, cl := range catalog.Lessons {
				if err := tx.Lessons.Create(ctx, cl.Lesson(now)); err != nil {
					return err
				}
			}
			log.Printf("%d ders yüklendi", len(catalog.Lessons))
		}

		achievementCount, err := tx.Achievements.Count(ctx)
		if err != nil {
			return err
		}
		if achievementCount == 0 {
			for _, ca := range catalog.Achievements {
				a := &models.Achievement{
					ID:               uuid.NewString(),
					Title:            ca.Title,
					Description:      ca.Description,
					IconName:         ca.IconName,
					Points:           ca.Points,
					Category:         ca.Category,
					RequirementType:  ca.RequirementType,
					RequirementValue: ca.RequirementValue,
					CreatedAt:        now,
				}
				if err := tx.Achievements.Create(ctx, a); err != nil {
					return err
				}
			}
			log.Printf("%d başarı yüklendi", len(catalog.Achievements))
		}
		return nil
	})
}
