package models

import (
	"time"
)

type Message struct {
	ID       string    `json:"id"        db:"id"`
	ChatID   string    `json:"chat_id"   db:"chat_id"`
	AuthorID string    `json:"author_id" db:"author_id"`
	Content  string    `json:"content"   db:"content"`
	SentAt   time.Time `json:"sent_at"   db:"sent_at"`
}
