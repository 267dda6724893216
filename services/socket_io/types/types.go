package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track username -> socket connections
	UserConnections map[string]*socket.Socket
	// Map to track username -> active room watch cancel function
	userWatches map[string]func()
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
		userWatches:     make(map[string]func()),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(username string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[username] = socket
}

func (s *SocketServer) RemoveConnection(username string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, username)
}

func (s *SocketServer) GetConnection(username string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[username]
	return socket, exists
}

// SetWatch stores the cancel function of a user's room watch, stopping any
// previous one first. Each client follows at most one room at a time.
func (s *SocketServer) SetWatch(username string, stop func()) {
	s.mutex.Lock()
	if s.userWatches == nil {
		s.userWatches = make(map[string]func())
	}
	previous := s.userWatches[username]
	s.userWatches[username] = stop
	s.mutex.Unlock()
	if previous != nil {
		previous()
	}
}

// StopWatch cancels a user's active room watch, if any
func (s *SocketServer) StopWatch(username string) {
	s.mutex.Lock()
	stop := s.userWatches[username]
	delete(s.userWatches, username)
	s.mutex.Unlock()
	if stop != nil {
		stop()
	}
}
