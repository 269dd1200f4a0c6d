package domain

import "time"

type ChatMessageID string

// ChatMessage is producer/host coordination chat. It is studio-internal
// state and never part of the composed broadcast output.
type ChatMessage struct {
	ID     ChatMessageID `json:"id"`
	Sender string        `json:"sender"`
	Text   string        `json:"text"`
	SentAt time.Time     `json:"sent_at"`
}
