package router

import (
	"log"
	"time"

	"github.com/hamza-olgun/react-chat-app/model"
	"github.com/hamza-olgun/react-chat-app/socketio"
	"github.com/hamza-olgun/react-chat-app/store"
	"github.com/hamza-olgun/react-chat-app/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

type CallerInfo struct {
	Id       uint   `json:"id"`
	Username string `json:"username"`
}

type IncomingCall struct {
	Caller    CallerInfo  `json:"caller"`
	Offer     interface{} `json:"offer,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type CallAccepted struct {
	Answer   interface{} `json:"answer"`
	CallerId uint        `json:"callerId"`
}

type IceCandidate struct {
	Candidate interface{} `json:"candidate"`
	SenderId  uint        `json:"senderId"`
}

type UserStatusChanged struct {
	UserId uint   `json:"userId"`
	Status string `json:"status"`
}

type MessageRead struct {
	MessageId uint `json:"messageId"`
	SenderId  uint `json:"senderId"`
}

// Socket wires the push-channel relay: session registration, message and
// read-receipt mirrors, presence fan-out and call signaling. Handlers never
// answer errors over the socket; failed side effects are logged and the
// durable store remains the source of truth.
func Socket(server *socket.Server, db *store.Store) {
	calls := NewCallRegistry()

	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Handshake-authenticated reconnects are already addressed by the
		// socketio middleware; announce them like a fresh authenticate.
		if session := identity(client); session != nil {
			announcePresence(db, session)
		}

		client.On("authenticate", func(args ...interface{}) {
			token := ""
			if len(args) > 0 {
				if raw, ok := args[0].(string); ok {
					token = raw
				} else if data := payload(args); data != nil {
					token = payloadString(data, "token")
				}
			}
			if token == "" {
				client.Disconnect(true)
				return
			}

			claims, err := utils.CheckAndExtractTokenMetadata(token, "JWT_ACCESS_KEY")
			if err != nil || claims.Otp {
				log.Printf("socket authentication rejected: %v", err)
				client.Disconnect(true)
				return
			}

			// Re-authentication joins the same room again, which the
			// adapter treats as a no-op: no duplicate entries.
			client.SetData(socketio.NewSession(claims))
			client.Join(socketio.UserRoom(claims.UserID()))
			announcePresence(db, identity(client))
		})

		// Legacy re-registration alias. Only the verified identity may be
		// re-joined; the client-supplied id is ignored beyond a sanity check.
		client.On("join", func(args ...interface{}) {
			session := identity(client)
			if session == nil {
				return
			}
			client.Join(socketio.UserRoom(session.UserID()))
		})

		// Best-effort push mirror of the durable send. The REST call is the
		// carrier of record; this only shortens the receiver's wait.
		client.On("sendMessage", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			receiverID := payloadUint(data, "receiver_id")
			if receiverID == 0 {
				return
			}

			data["sender_id"] = session.UserID()
			socketio.EmitTo(receiverID, "receiveMessage", data)
		})

		client.On("markMessageAsRead", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			message, changed, err := db.MarkMessageRead(payloadUint(data, "messageId"), session.UserID())
			if err != nil {
				log.Printf("mark message read failed: %v", err)
				return
			}
			if !changed {
				return
			}

			socketio.EmitTo(message.SenderID, "messageRead", MessageRead{
				MessageId: message.ID,
				SenderId:  session.UserID(),
			})
		})

		// Batch read acknowledgement for a whole conversation.
		client.On("messagesRead", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			friendID := payloadUint(data, "friendId")
			if friendID == 0 {
				return
			}

			read, err := db.MarkConversationRead(session.UserID(), friendID)
			if err != nil {
				log.Printf("mark conversation read failed: %v", err)
				return
			}

			for _, id := range read {
				socketio.EmitTo(friendID, "messageRead", MessageRead{
					MessageId: id,
					SenderId:  session.UserID(),
				})
			}
			socketio.EmitTo(friendID, "messagesRead", map[string]interface{}{
				"receiverId": session.UserID(),
				"count":      len(read),
			})
		})

		// Relay credentials for clients behind NATs plain STUN cannot
		// cross. Only handed to registered sessions.
		client.On("request-turn-credentials", func(args ...interface{}) {
			if identity(client) == nil {
				return
			}
			client.Emit("turn-credentials", turnCredentials())
		})

		// Call signaling. Offer, answer and candidates are opaque blobs:
		// the relay resolves the address, attaches the verified sender
		// identity and republishes, nothing more.
		client.On("startCall", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			receiverID := payloadUint(data, "receiverId")
			if receiverID == 0 {
				return
			}

			if !calls.Begin(session.UserID(), receiverID, CallInitiated) {
				client.Emit("callUnavailable", map[string]interface{}{"receiverId": receiverID})
				return
			}

			socketio.EmitTo(receiverID, "incomingCall", IncomingCall{
				Caller: CallerInfo{
					Id:       session.UserID(),
					Username: session.Username,
				},
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})

		client.On("offer", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			receiverID := payloadUint(data, "receiverId")
			offer, ok := data["offer"]
			if receiverID == 0 || !ok {
				return
			}

			if !calls.Begin(session.UserID(), receiverID, CallOffered) {
				client.Emit("callUnavailable", map[string]interface{}{"receiverId": receiverID})
				return
			}

			socketio.EmitTo(receiverID, "incomingCall", IncomingCall{
				Caller: CallerInfo{
					Id:       session.UserID(),
					Username: session.Username,
				},
				Offer:     offer,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})

		client.On("answer", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			receiverID := payloadUint(data, "receiverId")
			answer, ok := data["answer"]
			if receiverID == 0 || !ok {
				return
			}

			calls.Advance(session.UserID(), receiverID, CallAnswered)

			socketio.EmitTo(receiverID, "callAccepted", CallAccepted{
				Answer:   answer,
				CallerId: session.UserID(),
			})
		})

		// Repeatable in either direction, no ordering guarantee relative
		// to the answer.
		client.On("ice-candidate", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			receiverID := payloadUint(data, "receiverId")
			candidate, ok := data["candidate"]
			if receiverID == 0 || !ok {
				return
			}

			calls.Advance(session.UserID(), receiverID, CallIceExchanging)

			socketio.EmitTo(receiverID, "ice-candidate", IceCandidate{
				Candidate: candidate,
				SenderId:  session.UserID(),
			})
		})

		client.On("endCall", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			receiverID := payloadUint(data, "receiverId")
			if receiverID == 0 {
				return
			}

			calls.End(session.UserID(), receiverID)

			socketio.EmitTo(receiverID, "callEnded", map[string]interface{}{
				"callerId": session.UserID(),
			})
		})

		client.On("rejectCall", func(args ...interface{}) {
			session := identity(client)
			data := payload(args)
			if session == nil || data == nil {
				return
			}

			receiverID := payloadUint(data, "receiverId")
			if receiverID == 0 {
				return
			}

			calls.End(session.UserID(), receiverID)

			socketio.EmitTo(receiverID, "callRejected", map[string]interface{}{
				"callerId": session.UserID(),
			})
		})

		client.On("disconnect", func(args ...interface{}) {
			session := identity(client)
			if session == nil {
				return
			}

			calls.DropUser(session.UserID())

			// Last connection gone: persist offline + last_seen. No
			// offline broadcast to friends, matching the original.
			if !socketio.Online(session.UserID()) {
				if err := db.SetUserStatus(session.UserID(), model.StatusOffline); err != nil {
					log.Printf("offline status update failed: %v", err)
				}
			}
		})
	})
}

func identity(client *socket.Socket) *socketio.Session {
	session, _ := client.Data().(*socketio.Session)
	return session
}

// announcePresence persists online status and pushes it to every accepted
// friend's address. Friends without a live session just miss the hint.
func announcePresence(db *store.Store, session *socketio.Session) {
	if err := db.SetUserStatus(session.UserID(), model.StatusOnline); err != nil {
		log.Printf("online status update failed: %v", err)
	}

	friends, err := db.FriendIDs(session.UserID())
	if err != nil {
		log.Printf("presence friend lookup failed: %v", err)
		return
	}
	for _, friendID := range friends {
		socketio.EmitTo(friendID, "userStatusChanged", UserStatusChanged{
			UserId: session.UserID(),
			Status: model.StatusOnline,
		})
	}
}
