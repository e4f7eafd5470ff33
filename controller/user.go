package controller

import (
	"github.com/gofiber/fiber/v2"
)

func UserProfile(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	user, err := Chat.UserByID(userID)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data": fiber.Map{
			"id":        user.ID,
			"created":   user.CreatedAt.Unix(),
			"username":  user.Username,
			"email":     user.Email,
			"role":      user.Role,
			"status":    user.Status,
			"last_seen": user.LastSeen.Unix(),
			"otp":       user.Otp_enabled,
		},
	})
}

// UserSearch finds users to befriend by username prefix.
func UserSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	userID, _ := currentUser(c)

	users, err := Chat.SearchUsers(query, userID)
	if err != nil {
		return storeError(c, err)
	}

	results := []fiber.Map{}
	for _, user := range users {
		results = append(results, fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"status":   user.Status,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    results,
	})
}

// AdminUsers lists every account. Guarded by the RBAC middleware.
func AdminUsers(c *fiber.Ctx) error {
	users, err := Chat.AllUsers()
	if err != nil {
		return storeError(c, err)
	}

	results := []fiber.Map{}
	for _, user := range users {
		results = append(results, fiber.Map{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"role":      user.Role,
			"status":    user.Status,
			"last_seen": user.LastSeen.Unix(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    results,
	})
}
