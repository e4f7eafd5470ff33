package controller

import (
	"encoding/json"
	"strconv"

	"github.com/hamza-olgun/react-chat-app/event"
	"github.com/hamza-olgun/react-chat-app/socketio"

	"github.com/gofiber/fiber/v2"
)

type MessageSendInput struct {
	ReceiverId uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

// MessageSend is the durable send: validate, persist, answer the sender,
// then push to the receiver's address. The push is a hint only; if the
// receiver is unreachable the row is picked up on their next fetch.
func MessageSend(c *fiber.Ctx) error {
	input := new(MessageSendInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	senderID, _ := currentUser(c)

	message, err := Chat.CreateMessage(senderID, input.ReceiverId, input.Content)
	if err != nil {
		return storeError(c, err)
	}

	response := messageResponse(message)

	socketio.EmitTo(message.ReceiverID, "receiveMessage", response)

	if body, err := json.Marshal(response); err == nil {
		event.Emit("api", "message.sent", body, true)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    response,
	})
}

// MessageConversation returns the history with a peer, oldest first, and
// marks every unread message from that peer as read. The peer gets a
// messageRead push per newly read message.
func MessageConversation(c *fiber.Ctx) error {
	peerID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	userID, _ := currentUser(c)

	messages, read, err := Chat.Conversation(userID, uint(peerID))
	if err != nil {
		return storeError(c, err)
	}

	for _, id := range read {
		socketio.EmitTo(uint(peerID), "messageRead", fiber.Map{
			"messageId": id,
			"senderId":  userID,
		})
	}

	response := []MessageResponse{}
	for i := range messages {
		response = append(response, messageResponse(&messages[i]))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    response,
	})
}

func MessageUnreadCount(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	count, err := Chat.UnreadCount(userID)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data": fiber.Map{
			"count": count,
		},
	})
}

// MessageMarkRead is the explicit per-message acknowledgement path.
func MessageMarkRead(c *fiber.Ctx) error {
	messageID, err := strconv.ParseUint(c.Params("messageId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	userID, _ := currentUser(c)

	message, changed, err := Chat.MarkMessageRead(uint(messageID), userID)
	if err != nil {
		return storeError(c, err)
	}

	if changed {
		socketio.EmitTo(message.SenderID, "messageRead", fiber.Map{
			"messageId": message.ID,
			"senderId":  userID,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Message marked as read",
		"data":    nil,
	})
}
