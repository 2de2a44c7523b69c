package model

import "time"

// Message models a row in the `messages` table. A message always
// belongs to exactly one ordered sender/receiver pair and carries a
// text body, an image URL, or both. Messages are immutable once
// inserted; there is no edit or delete path.
//
// Fields:
//  ID         – primary key identifier, monotonically increasing.
//  SenderID   – user who sent the message.
//  ReceiverID – user the message was addressed to.
//  Text       – message body ("" when the message is image-only).
//  Image      – hosted image URL ("" when the message is text-only).
//  CreatedAt  – server-assigned creation timestamp.
type Message struct {
	ID         uint64    // messages.id
	SenderID   uint64    // messages.sender_id
	ReceiverID uint64    // messages.receiver_id
	Text       string    // messages.text
	Image      string    // messages.image
	CreatedAt  time.Time // messages.created_at
}
