package router

import (
	"github.com/hamza-olgun/react-chat-app/controller"
	"github.com/hamza-olgun/react-chat-app/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App) {
	api := app.Group("/api", logger.New())

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", controller.AuthSignup)
	auth.Post("/signin", controller.AuthSignin)
	auth.Post("/token/renew", controller.AuthTokenRenew)
	auth.Post("/2fa/secret", middleware.JWT(), middleware.OTP(), controller.AuthOtpSecret)
	auth.Post("/2fa/verify", middleware.JWT(), middleware.OTP(), controller.AuthOtpVerify)
	auth.Post("/2fa/validate", middleware.JWT(), controller.AuthOtpValidate)
	auth.Post("/2fa/disable", middleware.JWT(), middleware.OTP(), controller.AuthOtpDisable)

	// User
	user := api.Group("/users", middleware.JWT(), middleware.OTP())
	user.Get("/profile", controller.UserProfile)
	user.Get("/search", controller.UserSearch)

	// Messages (durable channel)
	messages := api.Group("/messages", middleware.JWT(), middleware.OTP())
	messages.Post("/send", controller.MessageSend)
	messages.Get("/unread/count", controller.MessageUnreadCount)
	messages.Put("/:messageId/read", controller.MessageMarkRead)
	messages.Get("/:userId", controller.MessageConversation)

	// Friendships
	friendships := api.Group("/friendships", middleware.JWT(), middleware.OTP())
	friendships.Post("/request/:user", controller.FriendshipRequest)
	friendships.Post("/accept/:requestId", controller.FriendshipAccept)
	friendships.Post("/reject/:requestId", controller.FriendshipReject)
	friendships.Get("/list", controller.FriendshipList)
	friendships.Get("/requests", controller.FriendshipRequests)

	// Admin
	admin := api.Group("/admin", middleware.JWT(), middleware.OTP(), middleware.RBAC())
	admin.Get("/users", controller.AdminUsers)
}
