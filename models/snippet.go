// models/snippet.go
package models

import "time"

type Snippet struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Code      string    `json:"code" db:"code"`
	Language  string    `json:"language" db:"language"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
