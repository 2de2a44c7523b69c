// Package queue defines message payloads exchanged over the message broker.
package queue

// MessageSentEvent is published after a message is persisted. It carries
// enough information for downstream consumers to log or notify without
// querying the primary database. Only the URL of an image is included,
// never the blob itself.
type MessageSentEvent struct {
	MessageID  uint64 `json:"message_id"`
	SenderID   uint64 `json:"sender_id"`
	SenderName string `json:"sender_name"`
	ReceiverID uint64 `json:"receiver_id"`
	HasText    bool   `json:"has_text"`
	Image      string `json:"image,omitempty"`
	SentAt     string `json:"sent_at"`
}
