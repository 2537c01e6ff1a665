package services

import (
	"context"
	"testing"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetStaleStreaks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := h.clock.Now()

	yesterday := dbtest.CreateUser(t, h.store, "yesterday")
	stale := dbtest.CreateUser(t, h.store, "stale")
	require.NoError(t, h.store.Users.UpdateLogin(ctx, yesterday.ID, now.Add(-24*time.Hour), 3))
	require.NoError(t, h.store.Users.UpdateLogin(ctx, stale.ID, now.Add(-72*time.Hour), 5))

	_, err := h.Users.Get(ctx, stale.ID)
	require.NoError(t, err)

	n, err := h.Streaks.ResetStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := h.Users.Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StreakDays)

	got, err = h.Users.Get(ctx, yesterday.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StreakDays)
}

func TestCleanupSessions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)
	res, err := h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	n, err := h.Streaks.CleanupSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	h.clock.Advance(25 * time.Hour)
	n, err = h.Streaks.CleanupSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = h.Auth.Authenticate(ctx, res.User.ID, res.Session.ID)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestLeaderboardOrdersByXP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 200)

	low := dbtest.CreateUser(t, h.store, "low")
	high := dbtest.CreateUser(t, h.store, "high")
	dbtest.CreateUser(t, h.store, "idle")

	_, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: low.ID, LessonID: l.ID, Score: 50, XPEarned: 30})
	require.NoError(t, err)
	_, err = h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: high.ID, LessonID: l.ID, Score: 90, XPEarned: 150})
	require.NoError(t, err)

	page, err := h.Leaderboard.Top(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "high", page.Entries[0].Username)
	assert.Equal(t, 1, page.Entries[0].Rank)
	assert.Equal(t, 2, page.Entries[0].Level)
	assert.Equal(t, "low", page.Entries[1].Username)
	assert.Equal(t, 3, page.Stats.TotalUsers)
	assert.Equal(t, 180, page.Stats.TotalXP)

	next, err := h.Leaderboard.Top(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, next.Entries, 1)
	assert.Equal(t, 3, next.Entries[0].Rank)
}

func TestSnippets(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, h.store, "owner")
	other := dbtest.CreateUser(t, h.store, "other")

	_, err := h.Snippets.Create(ctx, owner.ID, " ", "x", "")
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	first, err := h.Snippets.Create(ctx, owner.ID, "Sannu greeting", "print('sannu')", "")
	require.NoError(t, err)
	assert.Equal(t, "text", first.Language)

	h.clock.Advance(time.Minute)
	second, err := h.Snippets.Create(ctx, owner.ID, "Numbers", "1 2 3", "Python")
	require.NoError(t, err)

	list, err := h.Snippets.List(ctx, owner.ID, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	list, err = h.Snippets.List(ctx, owner.ID, "SANNU")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	assert.Equal(t, apperr.NotFound, apperr.KindOf(h.Snippets.Delete(ctx, other.ID, first.ID)))
	require.NoError(t, h.Snippets.Delete(ctx, owner.ID, first.ID))
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "musa")
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 60)
	dbtest.CreateAchievement(t, h.store, "First Steps", "lessons_completed", 1, 10)

	_, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 100, XPEarned: 60})
	require.NoError(t, err)

	d, err := h.Dashboard.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, d.Stats.XP)
	assert.Equal(t, 1, d.Stats.Level)
	assert.Equal(t, 100, d.Stats.NextLevelXP)
	assert.Equal(t, 60, d.Stats.DailyProgress)
	assert.Equal(t, 1, d.Stats.Rank)
	assert.Equal(t, 1, d.Stats.UnlockedCount)
	assert.Equal(t, 10, d.Stats.AchievementPoints)
	assert.Len(t, d.Recent, 1)
	assert.Len(t, d.Week, 1)
}
