package store

import (
	"errors"

	"github.com/hamza-olgun/react-chat-app/model"

	"gorm.io/gorm"
)

// CreateMessage persists a message for an existing receiver. The row is the
// durable copy; pushing it to the receiver is the caller's concern and must
// only happen after this returns nil.
func (s *Store) CreateMessage(senderID, receiverID uint, content string) (*model.Message, error) {
	if content == "" {
		return nil, ErrValidation
	}
	if _, err := s.UserByID(receiverID); err != nil {
		return nil, err
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.db.Create(message).Error; err != nil {
		return nil, failure(err)
	}
	return message, nil
}

// Conversation returns the full message history between two users, oldest
// first. As a side effect every unread message from the peer is marked read;
// the ids of newly read messages are returned so the peer can be notified.
func (s *Store) Conversation(userID, peerID uint) ([]model.Message, []uint, error) {
	read, err := s.MarkConversationRead(userID, peerID)
	if err != nil {
		return nil, nil, err
	}

	messages := []model.Message{}
	err = s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, nil, failure(err)
	}
	return messages, read, nil
}

// MarkConversationRead flips every unread message from peer to read in one
// batch and returns their ids. Re-marking is a no-op. Both ids must be real:
// a zero id would otherwise fall out of the query and widen the batch to
// every conversation of the reader.
func (s *Store) MarkConversationRead(readerID, peerID uint) ([]uint, error) {
	if readerID == 0 || peerID == 0 {
		return nil, ErrValidation
	}

	unread := []uint{}
	err := s.db.Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", peerID, readerID, false).
		Pluck("id", &unread).Error
	if err != nil {
		return nil, failure(err)
	}
	if len(unread) == 0 {
		return unread, nil
	}

	err = s.db.Model(&model.Message{}).
		Where("id IN ?", unread).
		Update("read", true).Error
	if err != nil {
		return nil, failure(err)
	}
	return unread, nil
}

// MarkMessageRead marks a single message read on behalf of its receiver.
// The returned flag reports whether this call performed the 0->1 transition;
// an already-read message is a no-op, not an error.
func (s *Store) MarkMessageRead(messageID, readerID uint) (*model.Message, bool, error) {
	if messageID == 0 || readerID == 0 {
		return nil, false, ErrValidation
	}

	message := new(model.Message)
	err := s.db.
		Where("receiver_id = ?", readerID).
		First(message, messageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, failure(err)
	}

	if message.Read {
		return message, false, nil
	}

	if err := s.db.Model(message).Update("read", true).Error; err != nil {
		return nil, false, failure(err)
	}
	return message, true, nil
}

func (s *Store) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&model.Message{}).
		Where("receiver_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, failure(err)
}
