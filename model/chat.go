package model

import "gorm.io/gorm"

type Message struct {
	gorm.Model
	SenderID   uint   `gorm:"index;not null" json:"sender_id"`
	ReceiverID uint   `gorm:"index;not null" json:"receiver_id"`
	Sender     User   `gorm:"foreignKey:SenderID" json:"-"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"-"`
	Content    string `gorm:"not null" json:"content"`
	Read       bool   `gorm:"index;not null;default:false" json:"is_read"`
}

// Friendship is the single row for an unordered user pair. The composite
// unique index closes the duplicate-request race at the storage layer;
// the reverse direction is checked in store.CreateFriendRequest.
type Friendship struct {
	gorm.Model
	SenderID   uint   `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"sender_id"`
	ReceiverID uint   `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"receiver_id"`
	Sender     User   `gorm:"foreignKey:SenderID" json:"-"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"-"`
	Status     string `gorm:"index;not null;default:pending" json:"status"`
}

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipRejected = "rejected"
)
