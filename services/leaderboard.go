// services/leaderboard.go
package services

import (
	"context"

	"hausa-platform/database"
	"hausa-platform/leveling"
	"hausa-platform/models"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 100
)

type LeaderboardPage struct {
	Entries []models.LeaderboardEntry `json:"leaderboard"`
	Stats   models.LeaderboardStats   `json:"stats"`
	Page    int                       `json:"page"`
	Limit   int                       `json:"limit"`
}

type Leaderboard struct {
	store *database.Store
}

// Top kullanıcıları XP'ye göre azalan sırada sayfalar.
func (l *Leaderboard) Top(ctx context.Context, page, limit int) (*LeaderboardPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	offset := (page - 1) * limit

	entries, err := l.store.Users.Leaderboard(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = offset + i + 1
		entries[i].Level = leveling.LevelFor(entries[i].XP)
	}

	stats, err := l.store.Users.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &LeaderboardPage{Entries: entries, Stats: stats, Page: page, Limit: limit}, nil
}
