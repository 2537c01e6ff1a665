package models

import "time"

const (
	EventLevelUp             = "level_up"
	EventAchievementUnlocked = "achievement_unlocked"
)

// Event websocket üzerinden istemciye gönderilen bildirimdir.
type Event struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id"`
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
}
