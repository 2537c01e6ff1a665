// Package cache kullanıcı profillerini okuma önbelleğinde tutar.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"hausa-platform/models"
)

// ErrMiss anahtar önbellekte yoksa döner.
var ErrMiss = errors.New("cache: key not found")

const (
	PrefixUser    = "user:"
	PrefixVersion = "user:ver:"
)

// UserCache profil okumalarının önünde duran önbellektir. Parola hash'i saklanmaz.
//
// Her kullanıcının bir geçersizleştirme sayacı vardır: Delete sayacı artırır,
// Set yalnızca sayaç okumadan önce alınan version ile aynıysa yazar. Böylece
// veritabanı okuması ile Set arasında yapılan bir geçersizleştirme eski kaydı
// geri yazdıramaz.
type UserCache interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Version(ctx context.Context, id string) (int64, error)
	Set(ctx context.Context, u *models.User, version int64) error
	Delete(ctx context.Context, ids ...string) error
}

func UserKey(id string) string {
	return PrefixUser + id
}

func VersionKey(id string) string {
	return PrefixVersion + id
}

type memoryEntry struct {
	user      models.User
	expiresAt time.Time
}

// Memory süreç içi UserCache; Redis yapılandırılmadığında kullanılır.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	entries  map[string]memoryEntry
	versions map[string]int64
	now      func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		entries:  make(map[string]memoryEntry),
		versions: make(map[string]int64),
		now:      time.Now,
	}
}

func (m *Memory) Get(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[UserKey(id)]
	if !ok {
		return nil, ErrMiss
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, UserKey(id))
		return nil, ErrMiss
	}
	u := e.user
	return &u, nil
}

func (m *Memory) Version(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.versions[id], nil
}

func (m *Memory) Set(_ context.Context, u *models.User, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Okumadan sonra geçersizleştirildiyse eski kayıt yazılmaz
	if m.versions[u.ID] != version {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	m.entries[UserKey(u.ID)] = memoryEntry{user: cp, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.entries, UserKey(id))
		m.versions[id]++
	}
	return nil
}
