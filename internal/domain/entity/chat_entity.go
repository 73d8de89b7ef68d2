package entity

import "time"

// ChatExchange is one prompt/response pair produced by the chat relay.
type ChatExchange struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
