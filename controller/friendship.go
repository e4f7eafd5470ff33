package controller

import (
	"encoding/json"
	"strconv"

	"github.com/hamza-olgun/react-chat-app/event"
	"github.com/hamza-olgun/react-chat-app/model"
	"github.com/hamza-olgun/react-chat-app/socketio"
	"github.com/hamza-olgun/react-chat-app/store"

	"github.com/gofiber/fiber/v2"
)

// FriendshipRequest creates the pending row for a pair and notifies the
// target. The path parameter is a user id or, failing that, a username.
func FriendshipRequest(c *fiber.Ctx) error {
	senderID, senderName := currentUser(c)

	target, err := resolveUser(c.Params("user"))
	if err != nil {
		return storeError(c, err)
	}

	friendship, err := Chat.CreateFriendRequest(senderID, target.ID)
	if err != nil {
		return storeError(c, err)
	}

	socketio.EmitTo(target.ID, "newFriendRequest", fiber.Map{
		"id":             friendship.ID,
		"senderId":       senderID,
		"senderUsername": senderName,
	})

	if body, err := json.Marshal(friendship); err == nil {
		event.Emit("api", "friendship.requested", body, true)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Friend request sent",
		"data": fiber.Map{
			"id": friendship.ID,
		},
	})
}

func FriendshipAccept(c *fiber.Ctx) error {
	return resolveFriendship(c, model.FriendshipAccepted)
}

func FriendshipReject(c *fiber.Ctx) error {
	return resolveFriendship(c, model.FriendshipRejected)
}

func resolveFriendship(c *fiber.Ctx, status string) error {
	requestID, err := strconv.ParseUint(c.Params("requestId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	userID, username := currentUser(c)

	var friendship *model.Friendship
	if status == model.FriendshipAccepted {
		friendship, err = Chat.AcceptFriendRequest(uint(requestID), userID)
	} else {
		friendship, err = Chat.RejectFriendRequest(uint(requestID), userID)
	}
	if err != nil {
		return storeError(c, err)
	}

	// Tell the original sender which way it went.
	pushEvent := "friendRequestAccepted"
	if status == model.FriendshipRejected {
		pushEvent = "friendRequestRejected"
	}
	socketio.EmitTo(friendship.SenderID, pushEvent, fiber.Map{
		"requestId":      friendship.ID,
		"friendId":       userID,
		"friendUsername": username,
		"status":         status,
	})

	if body, err := json.Marshal(friendship); err == nil {
		event.Emit("api", "friendship."+status, body, true)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Friend request " + status,
		"data":    nil,
	})
}

func FriendshipList(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	friends, err := Chat.Friends(userID)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    friends,
	})
}

// FriendshipRequests lists requests awaiting the caller, newest first.
func FriendshipRequests(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	pending, err := Chat.PendingRequests(userID)
	if err != nil {
		return storeError(c, err)
	}

	response := []FriendRequestResponse{}
	for _, row := range pending {
		response = append(response, FriendRequestResponse{
			Id:         row.ID,
			SenderId:   row.SenderID,
			SenderName: row.Sender.Username,
			Status:     row.Status,
			CreatedAt:  row.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    response,
	})
}

func resolveUser(param string) (*model.User, error) {
	if id, err := strconv.ParseUint(param, 10, 64); err == nil {
		return Chat.UserByID(uint(id))
	}
	if param == "" {
		return nil, store.ErrValidation
	}
	return Chat.UserByUsername(param)
}
