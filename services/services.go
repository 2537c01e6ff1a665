// Package services uygulamanın iş kurallarını repository'lerin üzerinde toplar.
package services

import (
	"time"

	"hausa-platform/cache"
	"hausa-platform/config"
	"hausa-platform/database"
	"hausa-platform/events"
	"hausa-platform/metrics"
)

type Services struct {
	Ledger       *Ledger
	Catalog      *Catalog
	Achievements *AchievementTracker
	Dashboard    *Dashboard
	Auth         *Auth
	Users        *Users
	Snippets     *Snippets
	Leaderboard  *Leaderboard
	Streaks      *Streaks
	Practice     *Practice
	Notes        *Notes
}

type Options struct {
	Auth      config.AuthConfig
	DailyGoal int
	Cache     cache.UserCache
	Events    events.Publisher
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

func New(store *database.Store, opts Options) *Services {
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory(10 * time.Minute)
	}
	if opts.Events == nil {
		opts.Events = events.NewHub()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewMetrics()
	}
	if opts.Now == nil {
		opts.Now = utcNow
	}
	if opts.DailyGoal <= 0 {
		opts.DailyGoal = 50
	}

	users := &Users{store: store, cache: opts.Cache, metrics: opts.Metrics}
	tracker := &AchievementTracker{store: store, users: users, events: opts.Events, metrics: opts.Metrics, now: opts.Now}

	ledger := &Ledger{
		store:        store,
		achievements: tracker,
		users:        users,
		events:       opts.Events,
		metrics:      opts.Metrics,
		now:          opts.Now,
	}

	return &Services{
		Ledger:       ledger,
		Catalog:      &Catalog{store: store},
		Achievements: tracker,
		Dashboard:    &Dashboard{store: store, users: users, achievements: tracker, now: opts.Now},
		Auth: &Auth{
			store:        store,
			cfg:          opts.Auth,
			dailyGoal:    opts.DailyGoal,
			users:        users,
			achievements: tracker,
			now:          opts.Now,
		},
		Users:       users,
		Snippets:    &Snippets{store: store, now: opts.Now},
		Leaderboard: &Leaderboard{store: store},
		Streaks:     &Streaks{store: store, users: users, now: opts.Now},
		Practice:    &Practice{store: store, users: users, ledger: ledger, now: opts.Now},
		Notes:       &Notes{store: store, now: opts.Now},
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// dayKey günlük kayıtlar için UTC tarih anahtarı.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
