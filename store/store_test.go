package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hamza-olgun/react-chat-app/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore creates a store over a throwaway in-memory database with
// the production schema.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Message{}, &model.Friendship{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return New(db)
}

func createTestUser(t *testing.T, s *Store, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
		Role:     "user",
		Status:   model.StatusOffline,
	}
	if err := s.db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func TestCreateMessageUnknownReceiver(t *testing.T) {
	s := setupTestStore(t)
	sender := createTestUser(t, s, "alice")

	_, err := s.CreateMessage(sender.ID, 999, "hello")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCreateMessageEmptyContent(t *testing.T) {
	s := setupTestStore(t)
	sender := createTestUser(t, s, "alice")
	receiver := createTestUser(t, s, "bob")

	_, err := s.CreateMessage(sender.ID, receiver.ID, "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestMessageIdsUnique(t *testing.T) {
	s := setupTestStore(t)
	sender := createTestUser(t, s, "alice")
	receiver := createTestUser(t, s, "bob")

	seen := map[uint]bool{}
	for i := 0; i < 10; i++ {
		message, err := s.CreateMessage(sender.ID, receiver.ID, fmt.Sprintf("message %d", i))
		if err != nil {
			t.Fatalf("Failed to create message: %v", err)
		}
		if seen[message.ID] {
			t.Fatalf("Duplicate message id %d", message.ID)
		}
		seen[message.ID] = true
	}
}

// A message sent while the receiver has no live session must still be
// stored and show up, already marked read, on the next conversation fetch.
func TestOfflineReceiverDurability(t *testing.T) {
	s := setupTestStore(t)
	sender := createTestUser(t, s, "alice")
	receiver := createTestUser(t, s, "bob")

	message, err := s.CreateMessage(sender.ID, receiver.ID, "hi")
	if err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}
	if message.Read {
		t.Error("New message must start unread")
	}

	count, err := s.UnreadCount(receiver.ID)
	if err != nil {
		t.Fatalf("Failed to count unread: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 unread, got %d", count)
	}

	messages, read, err := s.Conversation(receiver.ID, sender.ID)
	if err != nil {
		t.Fatalf("Failed to fetch conversation: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if !messages[0].Read {
		t.Error("Fetched message must be read after the fetch side effect")
	}
	if len(read) != 1 || read[0] != message.ID {
		t.Errorf("Expected newly read ids [%d], got %v", message.ID, read)
	}

	count, _ = s.UnreadCount(receiver.ID)
	if count != 0 {
		t.Errorf("Expected 0 unread after fetch, got %d", count)
	}
}

func TestConversationOrderedOldestFirst(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	first, _ := s.CreateMessage(alice.ID, bob.ID, "first")
	second, _ := s.CreateMessage(bob.ID, alice.ID, "second")
	third, _ := s.CreateMessage(alice.ID, bob.ID, "third")

	messages, _, err := s.Conversation(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("Failed to fetch conversation: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}
	for i, want := range []uint{first.ID, second.ID, third.ID} {
		if messages[i].ID != want {
			t.Errorf("Position %d: expected id %d, got %d", i, want, messages[i].ID)
		}
	}
}

// isRead only ever goes 0->1, no matter how often marking is invoked.
func TestReadTransitionMonotonic(t *testing.T) {
	s := setupTestStore(t)
	sender := createTestUser(t, s, "alice")
	receiver := createTestUser(t, s, "bob")

	message, _ := s.CreateMessage(sender.ID, receiver.ID, "hi")

	_, changed, err := s.MarkMessageRead(message.ID, receiver.ID)
	if err != nil {
		t.Fatalf("Failed to mark read: %v", err)
	}
	if !changed {
		t.Error("First mark must perform the transition")
	}

	_, changed, err = s.MarkMessageRead(message.ID, receiver.ID)
	if err != nil {
		t.Fatalf("Re-marking must not fail: %v", err)
	}
	if changed {
		t.Error("Re-marking must be a no-op")
	}

	if _, read, _ := s.Conversation(receiver.ID, sender.ID); len(read) != 0 {
		t.Errorf("Conversation fetch found unread messages after mark: %v", read)
	}
}

// A zero peer id must be refused outright. Letting it through would drop
// the sender condition from the batch query and mark every unread message
// of the reader, across all conversations.
func TestMarkConversationReadZeroPeer(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	s.CreateMessage(bob.ID, alice.ID, "from bob")
	s.CreateMessage(carol.ID, alice.ID, "from carol")

	if _, err := s.MarkConversationRead(alice.ID, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("Zero peer: expected ErrValidation, got %v", err)
	}
	if _, err := s.MarkConversationRead(0, bob.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("Zero reader: expected ErrValidation, got %v", err)
	}
	if _, _, err := s.Conversation(alice.ID, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("Zero conversation peer: expected ErrValidation, got %v", err)
	}

	count, err := s.UnreadCount(alice.ID)
	if err != nil {
		t.Fatalf("Failed to count unread: %v", err)
	}
	if count != 2 {
		t.Errorf("Unread state must survive the refused call, got %d of 2", count)
	}
}

// Marking a conversation read touches that peer's messages only.
func TestMarkConversationReadScopedToPeer(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	fromBob, _ := s.CreateMessage(bob.ID, alice.ID, "from bob")
	s.CreateMessage(carol.ID, alice.ID, "from carol")

	read, err := s.MarkConversationRead(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Failed to mark conversation read: %v", err)
	}
	if len(read) != 1 || read[0] != fromBob.ID {
		t.Errorf("Expected read ids [%d], got %v", fromBob.ID, read)
	}

	count, _ := s.UnreadCount(alice.ID)
	if count != 1 {
		t.Errorf("Carol's message must stay unread, got %d unread", count)
	}
}

func TestMarkMessageReadZeroIds(t *testing.T) {
	s := setupTestStore(t)
	sender := createTestUser(t, s, "alice")
	receiver := createTestUser(t, s, "bob")

	message, _ := s.CreateMessage(sender.ID, receiver.ID, "hi")

	if _, _, err := s.MarkMessageRead(0, receiver.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("Zero message id: expected ErrValidation, got %v", err)
	}
	if _, _, err := s.MarkMessageRead(message.ID, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("Zero reader id: expected ErrValidation, got %v", err)
	}
}

func TestMarkMessageReadWrongReceiver(t *testing.T) {
	s := setupTestStore(t)
	sender := createTestUser(t, s, "alice")
	receiver := createTestUser(t, s, "bob")
	other := createTestUser(t, s, "mallory")

	message, _ := s.CreateMessage(sender.ID, receiver.ID, "hi")

	_, _, err := s.MarkMessageRead(message.ID, other.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-receiver, got %v", err)
	}
}

func TestFriendRequestSelfReference(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")

	_, err := s.CreateFriendRequest(alice.ID, alice.ID)
	if !errors.Is(err, ErrSelfReference) {
		t.Errorf("Expected ErrSelfReference, got %v", err)
	}
}

// At most one friendship row may exist per unordered pair, whichever side
// asks first.
func TestFriendRequestDuplicatePair(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	if _, err := s.CreateFriendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if _, err := s.CreateFriendRequest(alice.ID, bob.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("Same direction: expected ErrConflict, got %v", err)
	}
	if _, err := s.CreateFriendRequest(bob.ID, alice.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("Reverse direction: expected ErrConflict, got %v", err)
	}

	var count int64
	s.db.Model(&model.Friendship{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 friendship row, got %d", count)
	}
}

func TestFriendRequestLifecycle(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	request, err := s.CreateFriendRequest(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	pending, err := s.PendingRequests(bob.ID)
	if err != nil {
		t.Fatalf("Failed to list pending requests: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != request.ID {
		t.Fatalf("Expected pending request %d, got %v", request.ID, pending)
	}
	if pending[0].Sender.Username != "alice" {
		t.Errorf("Expected sender alice, got %q", pending[0].Sender.Username)
	}

	accepted, err := s.AcceptFriendRequest(request.ID, bob.ID)
	if err != nil {
		t.Fatalf("Failed to accept request: %v", err)
	}
	if accepted.Status != model.FriendshipAccepted {
		t.Errorf("Expected accepted status, got %q", accepted.Status)
	}

	// The transition is terminal in both directions.
	if _, err := s.AcceptFriendRequest(request.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Double accept: expected ErrNotFound, got %v", err)
	}
	if _, err := s.RejectFriendRequest(request.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reject after accept: expected ErrNotFound, got %v", err)
	}

	// Both sides see each other.
	for _, tc := range []struct {
		user uint
		peer string
	}{
		{alice.ID, "bob"},
		{bob.ID, "alice"},
	} {
		friends, err := s.Friends(tc.user)
		if err != nil {
			t.Fatalf("Failed to list friends: %v", err)
		}
		if len(friends) != 1 || friends[0].Username != tc.peer {
			t.Errorf("User %d: expected friend %q, got %v", tc.user, tc.peer, friends)
		}
		if friends[0].FriendshipStatus != model.FriendshipAccepted {
			t.Errorf("Expected friendship_status accepted, got %q", friends[0].FriendshipStatus)
		}
	}
}

func TestFriendRequestAcceptOnlyByReceiver(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	request, _ := s.CreateFriendRequest(alice.ID, bob.ID)

	// The sender cannot accept their own request.
	if _, err := s.AcceptFriendRequest(request.ID, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFriendRequestRejected(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	request, _ := s.CreateFriendRequest(alice.ID, bob.ID)

	rejected, err := s.RejectFriendRequest(request.ID, bob.ID)
	if err != nil {
		t.Fatalf("Failed to reject request: %v", err)
	}
	if rejected.Status != model.FriendshipRejected {
		t.Errorf("Expected rejected status, got %q", rejected.Status)
	}

	if _, err := s.AcceptFriendRequest(request.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Accept after reject: expected ErrNotFound, got %v", err)
	}

	friends, _ := s.Friends(alice.ID)
	if len(friends) != 0 {
		t.Errorf("Rejected pair must not be friends, got %v", friends)
	}
}

func TestFriendIDs(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	request, _ := s.CreateFriendRequest(alice.ID, bob.ID)
	s.AcceptFriendRequest(request.ID, bob.ID)
	s.CreateFriendRequest(carol.ID, alice.ID) // still pending

	ids, err := s.FriendIDs(alice.ID)
	if err != nil {
		t.Fatalf("Failed to list friend ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != bob.ID {
		t.Errorf("Expected friend ids [%d], got %v", bob.ID, ids)
	}
}

func TestSetUserStatus(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")

	if err := s.SetUserStatus(alice.ID, model.StatusOnline); err != nil {
		t.Fatalf("Failed to set status: %v", err)
	}

	user, err := s.UserByID(alice.ID)
	if err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if user.Status != model.StatusOnline {
		t.Errorf("Expected online, got %q", user.Status)
	}
	if user.LastSeen.IsZero() {
		t.Error("Expected last_seen to be set")
	}
}

func TestUserLookups(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	createTestUser(t, s, "albert")
	createTestUser(t, s, "bob")

	if _, err := s.UserByID(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := s.UserByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	user, err := s.UserByUsername("alice")
	if err != nil || user.ID != alice.ID {
		t.Errorf("Expected alice (%d), got %v %v", alice.ID, user, err)
	}

	matches, err := s.SearchUsers("al", alice.ID)
	if err != nil {
		t.Fatalf("Failed to search users: %v", err)
	}
	if len(matches) != 1 || matches[0].Username != "albert" {
		t.Errorf("Expected [albert] excluding the caller, got %v", matches)
	}
}

// A dead database connection surfaces as ErrUnavailable, never as one of
// the domain errors and never untyped.
func TestStoreUnavailable(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	sqlDB, err := s.db.DB()
	if err != nil {
		t.Fatalf("Failed to get raw connection: %v", err)
	}
	sqlDB.Close()

	if _, err := s.UnreadCount(alice.ID); !errors.Is(err, ErrUnavailable) {
		t.Errorf("UnreadCount: expected ErrUnavailable, got %v", err)
	}
	if _, err := s.MarkConversationRead(alice.ID, bob.ID); !errors.Is(err, ErrUnavailable) {
		t.Errorf("MarkConversationRead: expected ErrUnavailable, got %v", err)
	}
	if err := s.SetUserStatus(alice.ID, model.StatusOnline); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SetUserStatus: expected ErrUnavailable, got %v", err)
	}
}
