// Package events kullanıcıya özel anlık olayları (seviye atlama, başarı) dağıtır.
package events

import (
	"log"
	"sync"
	"time"

	"hausa-platform/models"
)

const defaultBuffer = 16

// Publisher olay üreten servislerin bağımlı olduğu arayüzdür.
type Publisher interface {
	Publish(ev models.Event)
}

type subscriber struct {
	ch chan models.Event
}

// Hub kullanıcı başına abonelikleri tutar. Yavaş aboneler olay kaçırır, yayıncı beklemez.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	buffer int
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: defaultBuffer,
	}
}

// Subscribe kullanıcının olay kanalını ve aboneliği kapatan fonksiyonu döner.
func (h *Hub) Subscribe(userID string) (<-chan models.Event, func()) {
	s := &subscriber{ch: make(chan models.Event, h.buffer)}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscriber]struct{})
	}
	h.subs[userID][s] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], s)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel
}

func (h *Hub) Publish(ev models.Event) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs[ev.UserID] {
		select {
		case s.ch <- ev:
		default:
			log.Printf("Olay düşürüldü (abone dolu): user=%s type=%s", ev.UserID, ev.Type)
		}
	}
}

// Subscribers kullanıcının açık abonelik sayısı.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
