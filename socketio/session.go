package socketio

import (
	"time"

	"github.com/hamza-olgun/react-chat-app/utils"

	"github.com/google/uuid"
)

// Session is the per-connection identity attached after authentication.
// Volatile, process-lifetime only; it dies with the connection.
type Session struct {
	*utils.TokenMetadata
	ConnectionID string
	ConnectedAt  time.Time
}

func NewSession(claims *utils.TokenMetadata) *Session {
	return &Session{
		TokenMetadata: claims,
		ConnectionID:  uuid.NewString(),
		ConnectedAt:   time.Now(),
	}
}
