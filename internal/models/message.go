package models

import "time"

// Message is one chat message inside a club's thread.
type Message struct {
	ID        uint        `json:"message_id"`
	Content   string      `json:"content"`
	Club      uint        `json:"club"`
	Sender    UserProfile `json:"sender"`
	CreatedAt time.Time   `json:"created_at"`
}

// SendMessageInput is the payload for sending a club message.
type SendMessageInput struct {
	Content string `json:"content"`
	Club    uint   `json:"club"`
}
