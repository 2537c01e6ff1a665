// services/streaks.go
package services

import (
	"context"
	"log"
	"time"

	"hausa-platform/database"
)

// Streaks zamanlanmış bakım işleri: kopan serilerin sıfırlanması ve eski oturumların kapatılması.
type Streaks struct {
	store *database.Store
	users *Users
	now   func() time.Time
}

// ResetStale dünden önce giriş yapmamış kullanıcıların serisini sıfırlar.
func (s *Streaks) ResetStale(ctx context.Context) (int, error) {
	yesterday := truncateDay(s.now()).AddDate(0, 0, -1)

	ids, err := s.store.Users.ResetStaleStreaks(ctx, yesterday)
	if err != nil {
		return 0, err
	}
	s.users.Invalidate(ctx, ids...)
	if len(ids) > 0 {
		log.Printf("Seri sıfırlandı: %d kullanıcı", len(ids))
	}
	return len(ids), nil
}

func (s *Streaks) CleanupSessions(ctx context.Context) (int64, error) {
	n, err := s.store.Sessions.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("Süresi dolan %d oturum kapatıldı", n)
	}
	return n, nil
}
