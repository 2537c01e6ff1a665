package services

import (
	"context"
	"testing"

	"hausa-platform/apperr"
	"hausa-platform/database/dbtest"
	"hausa-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLessonsByCategory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	dbtest.CreateLesson(t, h.store, "Numbers 11-100", "Numbers", 2, 2, 90)
	dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)
	dbtest.CreateLesson(t, h.store, "Numbers 1-10", "Numbers", 1, 1, 60)

	lessons, err := h.Catalog.ListLessons(ctx, LessonFilter{Category: "Numbers"})
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	for _, l := range lessons {
		assert.Equal(t, "Numbers", l.Category)
	}
	assert.LessOrEqual(t, lessons[0].Level, lessons[1].Level)
	assert.Equal(t, "Numbers 1-10", lessons[0].Title)

	all, err := h.Catalog.ListLessons(ctx, LessonFilter{Category: "all", Search: "  greet "})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Greetings", all[0].Title)
}

func TestIsUnlocked(t *testing.T) {
	lesson := models.Lesson{RequiredLevel: 2}

	assert.False(t, IsUnlocked(1, lesson))
	assert.True(t, IsUnlocked(2, lesson))
	assert.True(t, IsUnlocked(3, lesson))
}

func TestListForUserKeepsLockedLessons(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	open := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)
	locked := dbtest.CreateLesson(t, h.store, "Market", "Conversation", 3, 3, 120)

	views, err := h.Catalog.ListForUser(ctx, LessonFilter{}, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, open.ID, views[0].ID)
	assert.False(t, views[0].Locked)
	assert.Equal(t, locked.ID, views[1].ID)
	assert.True(t, views[1].Locked)
}

func TestGetLessonAndCategories(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)

	got, err := h.Catalog.GetLesson(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greetings", got.Title)

	_, err = h.Catalog.GetLesson(ctx, "missing")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	categories, err := h.Catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Greetings"}, categories)
}
