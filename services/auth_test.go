package services

import (
	"context"
	"testing"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  SignupRequest
		kind apperr.Kind
	}{
		{"short username", SignupRequest{Email: "a@b.com", Password: "secret1", Username: "ab"}, apperr.InvalidArgument},
		{"long username", SignupRequest{Email: "a@b.com", Password: "secret1", Username: "abcdefghijklmnopqrstuvwxyz12345"}, apperr.InvalidArgument},
		{"bad email", SignupRequest{Email: "not-an-email", Password: "secret1", Username: "musa"}, apperr.InvalidArgument},
		{"short password", SignupRequest{Email: "a@b.com", Password: "12345", Username: "musa"}, apperr.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Auth.Signup(ctx, tt.req)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, 50, u.DailyGoal)

	_, err = h.Auth.Signup(ctx, SignupRequest{Email: "A@B.com", Password: "secret1", Username: "other"})
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	_, err = h.Auth.Signup(ctx, SignupRequest{Email: "c@d.com", Password: "secret1", Username: "musa"})
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestSigninIssuesTokenAndSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)

	res, err := h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "secret1", UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, 1, res.User.StreakDays)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.Session.IsCurrent)

	claims, err := h.Auth.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, res.Session.ID, claims.SessionID)
	assert.Equal(t, "musa", claims.Username)

	s, err := h.Auth.Authenticate(ctx, u.ID, claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, s.ID)

	sessions, err := h.Auth.Sessions(ctx, u.ID, res.Session.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].IsCurrent)
}

func TestSigninWrongPassword(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)

	_, err = h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "wrong-password"})
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	_, err = h.Auth.Signin(ctx, SigninRequest{Email: "nobody@b.com", Password: "secret1"})
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestSignoutEndsSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)
	res, err := h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, h.Auth.Signout(ctx, u.ID, res.Session.ID))
	require.NoError(t, h.Auth.Signout(ctx, u.ID, res.Session.ID))

	_, err = h.Auth.Authenticate(ctx, u.ID, res.Session.ID)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	_, err = h.Auth.Refresh(ctx, res.Token)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestTokenExpiryAndRefresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)
	res, err := h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	h.clock.Advance(time.Hour)
	fresh, err := h.Auth.Refresh(ctx, res.Token)
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, fresh)

	h.clock.Advance(25 * time.Hour)
	_, err = h.Auth.ParseToken(res.Token)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	_, err = h.Auth.ParseToken("garbage")
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestRememberedSessionOutlivesTokenTTL(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)
	short, err := h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	long, err := h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "secret1", Remember: true})
	require.NoError(t, err)
	assert.Equal(t, h.clock.Now().Add(30*24*time.Hour), long.Session.ExpiresAt)

	h.clock.Advance(48 * time.Hour)

	_, err = h.Auth.Authenticate(ctx, u.ID, short.Session.ID)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	claims, err := h.Auth.ParseToken(long.Token)
	require.NoError(t, err)
	assert.Equal(t, long.Session.ID, claims.SessionID)
	_, err = h.Auth.Authenticate(ctx, u.ID, long.Session.ID)
	require.NoError(t, err)

	// Yenileme hatırlanan oturumun süresini kısaltmaz
	_, err = h.Auth.Refresh(ctx, long.Token)
	require.NoError(t, err)
	s, err := h.store.Sessions.GetByID(ctx, long.Session.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, long.Session.ExpiresAt, s.ExpiresAt, time.Second)
}

func TestSigninStreak(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.Auth.Signup(ctx, SignupRequest{Email: "a@b.com", Password: "secret1", Username: "musa"})
	require.NoError(t, err)

	signin := func() *models.User {
		res, err := h.Auth.Signin(ctx, SigninRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)
		return res.User
	}

	assert.Equal(t, 1, signin().StreakDays)
	assert.Equal(t, 1, signin().StreakDays)

	h.clock.Advance(24 * time.Hour)
	assert.Equal(t, 2, signin().StreakDays)

	h.clock.Advance(24 * time.Hour)
	assert.Equal(t, 3, signin().StreakDays)

	h.clock.Advance(72 * time.Hour)
	assert.Equal(t, 1, signin().StreakDays)
}

func TestNextStreak(t *testing.T) {
	day := func(d, hour int) time.Time { return time.Date(2026, 10, d, hour, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		current int
		last    time.Time
		now     time.Time
		want    int
	}{
		{"first login", 0, day(17, 8), day(17, 9), 1},
		{"same day", 4, day(17, 1), day(17, 23), 4},
		{"next day", 4, day(16, 23), day(17, 0), 5},
		{"gap", 4, day(14, 12), day(17, 12), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextStreak(tt.current, tt.last, tt.now))
		})
	}
}
