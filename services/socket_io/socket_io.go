package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memora/services/game"
	"memora/services/notifier"
	"memora/services/rooms"
	"memora/services/socket_io/handlers"

	socketio_types "memora/services/socket_io/types"
	socketio_utils "memora/services/socket_io/utils"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Deps groups everything the socket event handlers need
type Deps struct {
	DB       *gorm.DB
	Manager  *rooms.Manager
	Machine  *game.Machine
	Notifier *notifier.Notifier
}

func (sio *MySocketServer) Start(router *gin.Engine, deps Deps) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the map, the server panics otherwise
	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username := socketio_utils.VerifyUserConnection(client, deps.DB)
		if !success {
			return
		}

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)

		fmt.Println("An individual just connected!: ", username)

		// Open a new room and start receiving its snapshots
		client.On("create_room", handlers.HandleCreateRoom(deps.Manager, deps.Notifier, client, username, (*socketio_types.SocketServer)(sio)))

		// Take the free seat in an existing room
		client.On("join_room", handlers.HandleJoinRoom(deps.Manager, deps.Notifier, client, username, (*socketio_types.SocketServer)(sio)))

		// Answer the current round
		client.On("submit_answer", handlers.HandleSubmitAnswer(deps.Machine, client, username))

		// One-off room snapshot, without subscribing
		client.On("get_room_info", handlers.HandleGetRoomInfo(deps.Manager, client, username))

		// Presence ping while a game is running
		client.On("heartbeat", handlers.HandleHeartbeat(deps.Machine, client, username))

		// Exit a room voluntarily
		client.On("leave_room", handlers.HandleLeaveRoom(deps.Manager, client, username, (*socketio_types.SocketServer)(sio)))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(username, (*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
