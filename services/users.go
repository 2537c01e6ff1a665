// services/users.go
package services

import (
	"context"
	"errors"
	"log"

	"hausa-platform/apperr"
	"hausa-platform/cache"
	"hausa-platform/database"
	"hausa-platform/leveling"
	"hausa-platform/metrics"
	"hausa-platform/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxDailyGoal      = 1000
)

// Profile kullanıcının seviye ilerlemesiyle birlikte görünümü.
type Profile struct {
	User         *models.User      `json:"user"`
	Progress     leveling.Progress `json:"progress"`
	Achievements int               `json:"unlocked_achievements"`
}

// Users profil okumalarını önbellek üzerinden yapar; önbellek hiçbir zaman doğruluk kaynağı değildir.
type Users struct {
	store   *database.Store
	cache   cache.UserCache
	metrics *metrics.Metrics
}

func (s *Users) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.cache.Get(ctx, id)
	if err == nil {
		s.metrics.CacheHits.Inc()
		u.Level = leveling.LevelFor(u.XP)
		return u, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Kullanıcı önbelleği okunamadı (%s): %v", id, err)
	}
	s.metrics.CacheMisses.Inc()

	// Sürüm okumadan önce alınır; arada Invalidate çağrılırsa Set yazmaz
	version, verErr := s.cache.Version(ctx, id)

	u, err = s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if verErr != nil {
		log.Printf("Önbellek sürümü okunamadı (%s): %v", id, verErr)
	} else if err := s.cache.Set(ctx, u, version); err != nil {
		log.Printf("Kullanıcı önbelleğe yazılamadı (%s): %v", id, err)
	}
	u.Level = leveling.LevelFor(u.XP)
	return u, nil
}

func (s *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.store.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, u.ID)
}

func (s *Users) Profile(ctx context.Context, id string) (*Profile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u)
}

func (s *Users) PublicProfile(ctx context.Context, username string) (*Profile, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	public := *u
	public.Email = ""
	return s.profile(ctx, &public)
}

func (s *Users) profile(ctx context.Context, u *models.User) (*Profile, error) {
	unlocked, err := s.store.Achievements.CountUnlocked(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: u, Progress: leveling.ProgressFor(u.XP), Achievements: unlocked}, nil
}

// Invalidate her yazma işleminden sonra çağrılır; hata yalnızca loglanır.
func (s *Users) Invalidate(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		log.Printf("Kullanıcı önbelleği temizlenemedi %v: %v", ids, err)
	}
}

func (s *Users) ChangePassword(ctx context.Context, id, current, next string) error {
	if len(next) < minPasswordLength {
		return apperr.New(apperr.InvalidArgument, "password must be at least %d characters", minPasswordLength)
	}

	u, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return apperr.New(apperr.Unauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "could not hash password")
	}
	if err := s.store.Users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}
	s.Invalidate(ctx, id)
	return nil
}

func (s *Users) SetDailyGoal(ctx context.Context, id string, goal int) error {
	if goal <= 0 || goal > maxDailyGoal {
		return apperr.New(apperr.InvalidArgument, "daily goal must be between 1 and %d", maxDailyGoal)
	}
	if err := s.store.Users.UpdateDailyGoal(ctx, id, goal); err != nil {
		return err
	}
	s.Invalidate(ctx, id)
	return nil
}
