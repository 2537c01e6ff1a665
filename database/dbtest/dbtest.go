// Package dbtest testler için bellek içi SQLite veritabanı hazırlar.
package dbtest

import (
	"context"
	"testing"
	"time"

	"hausa-platform/database"
	"hausa-platform/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// New şeması kurulmuş, boş bir Store döner.
func New(t testing.TB) *database.Store {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InitDB(context.Background(), db))
	return database.NewStore(db)
}

// NewSeeded varsayılan katalogla doldurulmuş bir Store döner.
func NewSeeded(t testing.TB) *database.Store {
	t.Helper()

	store := New(t)
	catalog, err := database.DefaultCatalog()
	require.NoError(t, err)
	require.NoError(t, database.Seed(context.Background(), store, catalog))
	return store
}

func CreateUser(t testing.TB, store *database.Store, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: string(hash),
		LastLogin:    now,
		CreatedAt:    now,
		DailyGoal:    50,
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func CreateLesson(t testing.TB, store *database.Store, title, category string, level, requiredLevel, reward int) *models.Lesson {
	t.Helper()

	l := &models.Lesson{
		ID:            uuid.NewString(),
		Title:         title,
		Level:         level,
		Category:      category,
		XPReward:      reward,
		RequiredLevel: requiredLevel,
		Features:      models.NewTagSet("quiz"),
		Difficulty:    "beginner",
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, store.Lessons.Create(context.Background(), l))
	return l
}

func CreateAchievement(t testing.TB, store *database.Store, title, requirementType string, value, points int) *models.Achievement {
	t.Helper()

	a := &models.Achievement{
		ID:               uuid.NewString(),
		Title:            title,
		Points:           points,
		RequirementType:  requirementType,
		RequirementValue: value,
		CreatedAt:        time.Now().UTC(),
	}
	require.NoError(t, store.Achievements.Create(context.Background(), a))
	return a
}
