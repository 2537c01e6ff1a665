// models/lesson.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

type Lesson struct {
	ID            string    `json:"id" db:"id"`
	Seq           int       `json:"-" db:"seq"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Content       string    `json:"content" db:"content"`
	Level         int       `json:"level" db:"level"`
	Category      string    `json:"category" db:"category"`
	XPReward      int       `json:"xp_reward" db:"xp_reward"`
	RequiredLevel int       `json:"required_level" db:"required_level"`
	HasAudio      bool      `json:"has_audio" db:"has_audio"`
	HasVideo      bool      `json:"has_video" db:"has_video"`
	Features      TagSet    `json:"features" db:"features"`
	Prerequisites TagSet    `json:"prerequisites" db:"prerequisites"` // önce bitirilmesi önerilen ders başlıkları
	Difficulty    string    `json:"difficulty" db:"difficulty"`
	EstimatedTime int       `json:"estimated_time" db:"estimated_time"` // dakika
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// LessonView kullanıcının seviyesine göre kilit bilgisi eklenmiş derstir.
type LessonView struct {
	Lesson
	Locked bool `json:"locked"`
}

// TagSet tekrarsız, sıralı etiket kümesi; veritabanında JSON dizi olarak tutulur.
type TagSet []string

func NewTagSet(tags ...string) TagSet {
	seen := make(map[string]struct{}, len(tags))
	out := make(TagSet, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (s TagSet) Has(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

func (s TagSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *TagSet) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = TagSet{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("TagSet: desteklenmeyen tip %T", src)
	}
	if len(raw) == 0 {
		*s = TagSet{}
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return err
	}
	*s = NewTagSet(tags...)
	return nil
}
