package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/direct-chat/internal/model"
)

type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// Insert persists a new message and returns it with the server-assigned
// id and timestamp. At least one of text/image must be set; the same
// rule is validated at the handler but enforced here as well so no code
// path can create an empty message. Every call writes exactly one row —
// rapid successive sends are never merged or deduplicated.
func (r *MessageRepo) Insert(ctx context.Context, senderID, receiverID uint64, text, image string) (model.Message, error) {
	if text == "" && image == "" {
		return model.Message{}, ErrEmptyMessage
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (sender_id, receiver_id, text, image) VALUES (?,?,?,?)",
		senderID, receiverID, text, image)
	if err != nil {
		return model.Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Message{}, err
	}

	var m model.Message
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,sender_id,receiver_id,text,image,created_at FROM messages WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Image, &m.CreatedAt)
	return m, err
}

// History returns every message exchanged between the two users, in both
// directions, ordered by creation time ascending with the id as the tie
// breaker. The read has no side effects, so repeated calls with no
// intervening sends return identical sequences.
func (r *MessageRepo) History(ctx context.Context, userID, otherID uint64) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,sender_id,receiver_id,text,image,created_at FROM messages
		 WHERE (sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)
		 ORDER BY created_at ASC, id ASC`,
		userID, otherID, otherID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Image, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
