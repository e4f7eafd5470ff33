package socketio

import (
	"context"
	"strconv"
	"time"

	"github.com/hamza-olgun/react-chat-app/config"
	"github.com/hamza-olgun/react-chat-app/database"
	"github.com/hamza-olgun/react-chat-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	elog "github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/socket.io-go-redis/adapter"
	r_type "github.com/zishang520/socket.io-go-redis/types"
	"github.com/zishang520/socket.io/v2/socket"
)

var server *socket.Server

func Init(app *fiber.App) *socket.Server {
	if config.Config("SOCKET_DEBUG") == "TRUE" {
		elog.DEBUG = true
	}

	options := socket.DefaultServerOptions()
	options.SetServeClient(true)
	options.SetAllowEIO3(true)
	options.SetPingInterval(25 * time.Second)
	options.SetPingTimeout(60 * time.Second)
	options.SetConnectTimeout(45 * time.Second)
	options.SetAdapter(&adapter.RedisAdapterBuilder{
		Redis: r_type.NewRedisClient(context.Background(), database.Redis[1]),
		Opts:  &adapter.RedisAdapterOptions{},
	})

	server = socket.NewServer(nil, nil)

	// Handshake fast path: a token passed in the query re-registers the
	// connection under its address immediately (reconnects). Connections
	// without one stay unauthenticated until the authenticate event.
	server.Use(func(client *socket.Socket, next func(*socket.ExtendedError)) {
		token, auth := client.Conn().Request().Query().Get("token")

		if auth {
			claims, err := utils.CheckAndExtractTokenMetadata(token, "JWT_ACCESS_KEY")

			if err == nil {
				if !claims.Otp {
					client.Join(UserRoom(claims.UserID()))
					client.SetData(NewSession(claims))
				}
			}
		}

		next(nil)
	})

	app.Get("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))
	app.Post("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))

	return server
}

// UserRoom is the logical address of a user, stable across however many
// physical connections back it.
func UserRoom(id uint) socket.Room {
	return socket.Room("user_" + strconv.FormatUint(uint64(id), 10))
}

// EmitTo pushes an event to every live connection of a user. Fire and
// forget: an empty room just drops the event.
func EmitTo(userID uint, event string, message any) {
	if server == nil {
		return
	}
	server.To(UserRoom(userID)).Emit(event, message)
}

func Broadcast(event string, message any) {
	if server == nil {
		return
	}
	server.FetchSockets()(func(sockets []*socket.RemoteSocket, _ error) {
		for _, socket := range sockets {
			socket.Emit(event, message)
		}
	})
}

// Online reports whether any live connection backs the user's address.
func Online(userID uint) bool {
	if server == nil {
		return false
	}
	room := UserRoom(userID)
	for _, key := range server.Sockets().Adapter().Rooms().Keys() {
		if key == room {
			return true
		}
	}
	return false
}
