package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/hamza-olgun/react-chat-app/model"
	"github.com/hamza-olgun/react-chat-app/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Chat is the persistent store handle shared by the controllers,
// set once at startup.
var Chat *store.Store

func Init(s *store.Store) {
	Chat = s
}

type MessageResponse struct {
	Id         uint      `json:"id"`
	SenderId   uint      `json:"sender_id"`
	ReceiverId uint      `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

func messageResponse(message *model.Message) MessageResponse {
	return MessageResponse{
		Id:         message.ID,
		SenderId:   message.SenderID,
		ReceiverId: message.ReceiverID,
		Content:    message.Content,
		CreatedAt:  message.CreatedAt,
		IsRead:     message.Read,
	}
}

type FriendRequestResponse struct {
	Id         uint      `json:"id"`
	SenderId   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// currentUser reads the verified identity out of the JWT middleware locals.
func currentUser(c *fiber.Ctx) (uint, string) {
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)

	id, _ := strconv.ParseUint(claims["id"].(string), 10, 64)
	username, _ := claims["username"].(string)
	return uint(id), username
}

// storeError maps the store's error taxonomy onto HTTP results. Anything
// untyped is a persistence dependency failure and fails loudly.
func storeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, store.ErrNotFound):
		status, message = fiber.StatusNotFound, "Not found"
	case errors.Is(err, store.ErrConflict):
		status, message = fiber.StatusConflict, "Already exists"
	case errors.Is(err, store.ErrSelfReference):
		status, message = fiber.StatusBadRequest, "Cannot target yourself"
	case errors.Is(err, store.ErrValidation):
		status, message = fiber.StatusBadRequest, "Review your input"
	case errors.Is(err, store.ErrUnavailable):
		status, message = fiber.StatusServiceUnavailable, "Service unavailable"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    nil,
	})
}
