package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/H4ckEd666/Twitter-clone-app/internal/db"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

type MutualChecker interface {
	AreMutuals(ctx context.Context, a, b string) (bool, error)
}

// Notifier pushes a real-time event to a user's live session, if any.
type Notifier interface {
	SendToUser(ctx context.Context, userID, event string, data any) error
}

type Service struct {
	db       db.DB
	gate     MutualChecker
	notifier Notifier
}

func NewService(db db.DB, gate MutualChecker, notifier Notifier) *Service {
	return &Service{db: db, gate: gate, notifier: notifier}
}

// pair orders two participants the way conversations are keyed.
func pair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

const selectMessage = `
	SELECT m.id, m.conversation_id, m.text, m.read, m.created_at,
	       s.id, s.username, s.full_name, s.profile_image,
	       r.id, r.username, r.full_name, r.profile_image
	FROM messages m
	JOIN users s ON s.id = m.sender_id
	JOIN users r ON r.id = m.receiver_id`

// Send stores a message between mutuals and pushes it to the receiver's live
// session. The push is best effort.
func (s *Service) Send(ctx context.Context, sender, receiver, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, apperr.Validation("Message cannot be empty")
	}
	mutual, err := s.gate.AreMutuals(ctx, sender, receiver)
	if err != nil {
		return Message{}, err
	}
	if !mutual {
		return Message{}, apperr.Forbidden("You can only chat with mutuals")
	}

	messageID := uuid.NewString()
	userA, userB := pair(sender, receiver)
	err = db.WithTx(ctx, s.db, func(q db.Querier) error {
		var conversationID string
		if err := q.QueryRow(ctx, `
			INSERT INTO conversations (id, user_a, user_b) VALUES ($1,$2,$3)
			ON CONFLICT (user_a, user_b) DO UPDATE SET updated_at = now()
			RETURNING id
		`, uuid.NewString(), userA, userB).Scan(&conversationID); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, `
			INSERT INTO messages (id, conversation_id, sender_id, receiver_id, text)
			VALUES ($1,$2,$3,$4,$5)
		`, messageID, conversationID, sender, receiver, text); err != nil {
			return err
		}
		_, err := q.Exec(ctx, `UPDATE conversations SET last_message_id=$2, updated_at=now() WHERE id=$1`, conversationID, messageID)
		return err
	})
	if err != nil {
		return Message{}, err
	}

	msgs, err := s.list(ctx, selectMessage+` WHERE m.id = $1`, messageID)
	if err != nil {
		return Message{}, err
	}
	if len(msgs) == 0 {
		return Message{}, apperr.NotFound("Message not found")
	}
	msg := msgs[0]

	if s.notifier != nil {
		if err := s.notifier.SendToUser(ctx, receiver, stream.EventMessageNew, msg); err != nil {
			log.Warn().Err(err).Str("receiver_id", receiver).Msg("realtime push failed")
		}
	}
	return msg, nil
}

// Thread marks the other user's messages to viewer as read and returns the
// whole conversation, oldest first.
func (s *Service) Thread(ctx context.Context, viewer, other string) (Thread, error) {
	userA, userB := pair(viewer, other)
	var conversationID string
	err := s.db.QueryRow(ctx, `SELECT id FROM conversations WHERE user_a=$1 AND user_b=$2`, userA, userB).Scan(&conversationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Thread{Messages: []Message{}}, nil
	}
	if err != nil {
		return Thread{}, err
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE messages SET read = true
		WHERE conversation_id=$1 AND sender_id=$2 AND receiver_id=$3 AND read = false
	`, conversationID, other, viewer); err != nil {
		return Thread{}, err
	}

	msgs, err := s.list(ctx, selectMessage+`
		WHERE m.conversation_id = $1
		ORDER BY m.created_at
	`, conversationID)
	if err != nil {
		return Thread{}, err
	}
	return Thread{ConversationID: &conversationID, Messages: msgs}, nil
}

func (s *Service) UnreadCounts(ctx context.Context, viewer string) ([]UnreadCount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT sender_id, COUNT(*)
		FROM messages
		WHERE receiver_id=$1 AND read = false
		GROUP BY sender_id
		ORDER BY sender_id
	`, viewer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []UnreadCount{}
	for rows.Next() {
		var c UnreadCount
		if err := rows.Scan(&c.SenderID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (s *Service) list(ctx context.Context, sql string, args ...any) ([]Message, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Text, &m.Read, &m.CreatedAt,
			&m.Sender.ID, &m.Sender.Username, &m.Sender.FullName, &m.Sender.ProfileImage,
			&m.Receiver.ID, &m.Receiver.Username, &m.Receiver.FullName, &m.Receiver.ProfileImage); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
