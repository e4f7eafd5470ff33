package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/hamza-olgun/react-chat-app/model"

	"gorm.io/gorm"
)

// Typed failures surfaced to the durable channel. Push-channel handlers
// log and swallow these instead.
var (
	ErrNotFound      = errors.New("record not found")
	ErrConflict      = errors.New("record already exists")
	ErrSelfReference = errors.New("self-targeted request")
	ErrValidation    = errors.New("invalid input")
	ErrUnavailable   = errors.New("store unavailable")
)

// failure wraps a database error as a dependency failure so callers can
// tell "the store said no" from "the store is down".
func failure(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Store wraps the relational database behind the operations the relay and
// the REST controllers need. It is the single source of truth for users,
// messages and friendships; the push channel is only a notification hint.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UserByID(id uint) (*model.User, error) {
	user := new(model.User)
	if err := s.db.First(user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, failure(err)
	}
	return user, nil
}

func (s *Store) UserByUsername(username string) (*model.User, error) {
	user := new(model.User)
	if err := s.db.Where(&model.User{Username: username}).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, failure(err)
	}
	return user, nil
}

// SearchUsers matches usernames by prefix, excluding the caller.
func (s *Store) SearchUsers(query string, exclude uint) ([]model.User, error) {
	users := []model.User{}
	err := s.db.
		Where("username LIKE ?", query+"%").
		Where("id <> ?", exclude).
		Limit(20).
		Find(&users).Error
	return users, failure(err)
}

func (s *Store) AllUsers() ([]model.User, error) {
	users := []model.User{}
	err := s.db.Order("id asc").Find(&users).Error
	return users, failure(err)
}

// SetUserStatus records presence and refreshes last_seen.
func (s *Store) SetUserStatus(userID uint, status string) error {
	return failure(s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"status":    status,
			"last_seen": time.Now(),
		}).Error)
}
