package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"hausa-platform/apperr"
	"hausa-platform/database/dbtest"
	"hausa-platform/leveling"
	"hausa-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRecordCompletionCreditsXP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "musa")
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)

	res, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 80, XPEarned: 40})
	require.NoError(t, err)
	require.NotNil(t, res.Record)
	assert.False(t, res.Duplicate)
	assert.Nil(t, res.LevelUp)
	assert.Equal(t, 40, res.Record.XPEarned)
	assert.False(t, res.Record.PerfectScore)
	assert.Nil(t, res.Record.AttemptID)

	stored, summed, err := h.Ledger.XPBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, stored)
	assert.Equal(t, 40, summed)

	history, err := h.Ledger.History(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.Record.ID, history[0].ID)

	days, err := h.store.Progress.DailySince(ctx, u.ID, "2026-10-17")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 40, days[0].XPEarned)
	assert.False(t, days[0].GoalCompleted)
}

func TestRecordCompletionEmitsLevelUp(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "amina")
	l := dbtest.CreateLesson(t, h.store, "Numbers 1-10", "Numbers", 1, 1, 60)

	ch, cancel := h.hub.Subscribe(u.ID)
	defer cancel()

	res, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 90, XPEarned: 60})
	require.NoError(t, err)
	assert.Nil(t, res.LevelUp)

	res, err = h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 90, XPEarned: 50})
	require.NoError(t, err)
	require.NotNil(t, res.LevelUp)
	assert.Equal(t, leveling.LevelUp{OldLevel: 1, NewLevel: 2}, *res.LevelUp)

	select {
	case ev := <-ch:
		assert.Equal(t, models.EventLevelUp, ev.Type)
		assert.Equal(t, *res.LevelUp, ev.Payload)
	default:
		t.Fatal("seviye olayı yayınlanmadı")
	}

	got, err := h.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 110, got.XP)
	assert.Equal(t, 2, got.Level)
}

func TestRecordCompletionRejectsXPAboveReward(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "bello")
	l := dbtest.CreateLesson(t, h.store, "Family", "Vocabulary", 2, 2, 30)

	_, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 100, XPEarned: 31})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	assertUntouched(t, h, u.ID)
}

func TestRecordCompletionUnknownReferences(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "zainab")
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)

	_, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: "missing", Score: 50, XPEarned: 10})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assertUntouched(t, h, u.ID)

	_, err = h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: "missing", LessonID: l.ID, Score: 50, XPEarned: 10})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRecordCompletionValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "hauwa")
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)

	tests := []struct {
		name string
		req  CompletionRequest
	}{
		{"score above 100", CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 101, XPEarned: 10}},
		{"negative score", CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: -1, XPEarned: 10}},
		{"negative xp", CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 50, XPEarned: -1}},
		{"missing user", CompletionRequest{LessonID: l.ID, Score: 50, XPEarned: 10}},
		{"missing lesson", CompletionRequest{UserID: u.ID, Score: 50, XPEarned: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Ledger.RecordCompletion(ctx, tt.req)
			assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
		})
	}
	assertUntouched(t, h, u.ID)
}

func TestRecordCompletionAttemptIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "sani")
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)

	req := CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 70, XPEarned: 30, AttemptID: "attempt-1"}
	first, err := h.Ledger.RecordCompletion(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, first.Record.AttemptID)

	second, err := h.Ledger.RecordCompletion(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Record.ID, second.Record.ID)

	stored, summed, err := h.Ledger.XPBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored)
	assert.Equal(t, 30, summed)

	// Farklı kullanıcı aynı attempt_id'yi kullanabilir
	other := dbtest.CreateUser(t, h.store, "other")
	req.UserID = other.ID
	res, err := h.Ledger.RecordCompletion(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
}

func TestRecordCompletionFeedsAchievements(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "ladi")
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)
	first := dbtest.CreateAchievement(t, h.store, "First Steps", models.RequirementLessonsCompleted, 1, 10)
	flawless := dbtest.CreateAchievement(t, h.store, "Flawless", models.RequirementPerfectScores, 1, 25)
	century := dbtest.CreateAchievement(t, h.store, "Century", models.RequirementXPTotal, 100, 20)

	res, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 100, XPEarned: 50})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, flawless.ID}, achievementIDs(res.Unlocked))

	statuses, err := h.Achievements.ListAchievements(ctx, u.ID)
	require.NoError(t, err)
	byID := map[string]models.AchievementStatus{}
	for _, s := range statuses {
		byID[s.ID] = s
	}
	assert.Equal(t, 50, byID[century.ID].Progress)
	assert.Nil(t, byID[century.ID].UnlockedAt)

	got, err := h.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, got.AchievementPoints)
}

func TestConcurrentCompletionsKeepBalance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, h.store, "tanko")
	l := dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Ledger.RecordCompletion(ctx, CompletionRequest{UserID: u.ID, LessonID: l.ID, Score: 60, XPEarned: 15})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, summed, err := h.Ledger.XPBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, workers*15, stored)
	assert.Equal(t, stored, summed)
}

// Her işlem dizisinden sonra users.xp kayıtların xp_earned toplamına eşit kalır.
func TestXPEqualsSumOfRecords(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	lessons := []*models.Lesson{
		dbtest.CreateLesson(t, h.store, "Greetings", "Greetings", 1, 1, 50),
		dbtest.CreateLesson(t, h.store, "Numbers", "Numbers", 1, 1, 80),
	}
	users := 0

	rapid.Check(t, func(rt *rapid.T) {
		users++
		u := dbtest.CreateUser(t, h.store, fmt.Sprintf("prop%d", users))

		steps := rapid.IntRange(1, 12).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			lesson := lessons[rapid.IntRange(0, len(lessons)-1).Draw(rt, "lesson")]
			req := CompletionRequest{
				UserID:   u.ID,
				LessonID: lesson.ID,
				Score:    rapid.IntRange(-5, 105).Draw(rt, "score"),
				XPEarned: rapid.IntRange(-5, lesson.XPReward+5).Draw(rt, "xp"),
			}
			if rapid.Bool().Draw(rt, "withAttempt") {
				req.AttemptID = rapid.SampledFrom([]string{"a", "b", "c"}).Draw(rt, "attempt")
			}
			_, _ = h.Ledger.RecordCompletion(ctx, req)

			stored, summed, err := h.Ledger.XPBalance(ctx, u.ID)
			if err != nil {
				rt.Fatalf("XPBalance: %v", err)
			}
			if stored != summed {
				rt.Fatalf("users.xp=%d, Σxp_earned=%d", stored, summed)
			}
		}
	})
}

func assertUntouched(t *testing.T, h *harness, userID string) {
	t.Helper()
	ctx := context.Background()

	stored, summed, err := h.Ledger.XPBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored)
	assert.Equal(t, 0, summed)

	n, err := h.store.Progress.CountByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func achievementIDs(list []models.Achievement) []string {
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	return ids
}
