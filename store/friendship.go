package store

import (
	"errors"

	"github.com/hamza-olgun/react-chat-app/model"

	"gorm.io/gorm"
)

// Friend is one entry of a user's friend list.
type Friend struct {
	ID               uint   `json:"id"`
	Username         string `json:"username"`
	Status           string `json:"status"`
	LastSeen         int64  `json:"last_seen"`
	FriendshipStatus string `json:"friendship_status"`
}

// CreateFriendRequest inserts the single pending row for a user pair.
// At most one row may exist per unordered pair: the existence check covers
// both directions and the composite unique index catches the race where two
// requests pass the check concurrently.
func (s *Store) CreateFriendRequest(senderID, receiverID uint) (*model.Friendship, error) {
	if senderID == receiverID {
		return nil, ErrSelfReference
	}
	if _, err := s.UserByID(receiverID); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.Model(&model.Friendship{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			senderID, receiverID, receiverID, senderID).
		Count(&count).Error
	if err != nil {
		return nil, failure(err)
	}
	if count > 0 {
		return nil, ErrConflict
	}

	friendship := &model.Friendship{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     model.FriendshipPending,
	}
	if err := s.db.Create(friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, failure(err)
	}
	return friendship, nil
}

// AcceptFriendRequest transitions a pending row to accepted. Only the
// receiver of the request may accept it; anything else is NotFound, which
// also covers double accepts and accept-after-reject.
func (s *Store) AcceptFriendRequest(requestID, receiverID uint) (*model.Friendship, error) {
	return s.resolveFriendRequest(requestID, receiverID, model.FriendshipAccepted)
}

// RejectFriendRequest transitions a pending row to rejected.
func (s *Store) RejectFriendRequest(requestID, receiverID uint) (*model.Friendship, error) {
	return s.resolveFriendRequest(requestID, receiverID, model.FriendshipRejected)
}

func (s *Store) resolveFriendRequest(requestID, receiverID uint, status string) (*model.Friendship, error) {
	if requestID == 0 || receiverID == 0 {
		return nil, ErrValidation
	}

	friendship := new(model.Friendship)
	err := s.db.
		Where("receiver_id = ? AND status = ?", receiverID, model.FriendshipPending).
		Preload("Sender").
		Preload("Receiver").
		First(friendship, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, failure(err)
	}

	if err := s.db.Model(friendship).Update("status", status).Error; err != nil {
		return nil, failure(err)
	}
	friendship.Status = status
	return friendship, nil
}

// Friends lists the accepted friendships of a user as peer entries.
func (s *Store) Friends(userID uint) ([]Friend, error) {
	rows := []model.Friendship{}
	err := s.db.
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, model.FriendshipAccepted).
		Preload("Sender").
		Preload("Receiver").
		Find(&rows).Error
	if err != nil {
		return nil, failure(err)
	}

	friends := []Friend{}
	for _, row := range rows {
		peer := row.Sender
		if row.SenderID == userID {
			peer = row.Receiver
		}
		friends = append(friends, Friend{
			ID:               peer.ID,
			Username:         peer.Username,
			Status:           peer.Status,
			LastSeen:         peer.LastSeen.Unix(),
			FriendshipStatus: row.Status,
		})
	}
	return friends, nil
}

// FriendIDs returns just the peer ids, for presence fan-out.
func (s *Store) FriendIDs(userID uint) ([]uint, error) {
	rows := []model.Friendship{}
	err := s.db.
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, model.FriendshipAccepted).
		Find(&rows).Error
	if err != nil {
		return nil, failure(err)
	}

	ids := []uint{}
	for _, row := range rows {
		if row.SenderID == userID {
			ids = append(ids, row.ReceiverID)
		} else {
			ids = append(ids, row.SenderID)
		}
	}
	return ids, nil
}

// PendingRequests lists requests awaiting the user's decision, newest first.
func (s *Store) PendingRequests(userID uint) ([]model.Friendship, error) {
	rows := []model.Friendship{}
	err := s.db.
		Where(&model.Friendship{ReceiverID: userID, Status: model.FriendshipPending}).
		Preload("Sender").
		Order("created_at desc, id desc").
		Find(&rows).Error
	return rows, failure(err)
}
