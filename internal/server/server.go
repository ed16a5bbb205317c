// Package server implements the HTTP server functionality for the chatroom.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Tyrowin/chatroom/internal/chat"
)

// IdentityProvider resolves the verified name of an upgrade request. An empty
// name with a nil error means the request is anonymous; an error rejects
// the upgrade.
type IdentityProvider interface {
	Identify(r *http.Request) (string, error)
}

// AnonymousIdentity treats every request as anonymous.
type AnonymousIdentity struct{}

// Identify always returns an empty name.
func (AnonymousIdentity) Identify(*http.Request) (string, error) {
	return "", nil
}

// Server owns the room and the WebSocket gateway in front of it.
type Server struct {
	cfg      Config
	room     *chat.Room
	identity IdentityProvider
	upgrader websocket.Upgrader
	log      *zap.Logger
	pumps    sync.WaitGroup
}

// New builds a Server from cfg. A nil identity means every connection is
// anonymous and a nil observer disables room activity reporting.
func New(cfg Config, identity IdentityProvider, observer chat.Observer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if identity == nil {
		identity = AnonymousIdentity{}
	}
	cfg = sanitizeConfig(cfg)
	origins := newOriginPolicy(cfg.AllowedOrigins, log)

	return &Server{
		cfg:      cfg,
		room:     chat.NewRoom(log, observer, cfg.RoomOptions()),
		identity: identity,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.checkOrigin,
		},
		log: log.Named("server"),
	}
}

// Room returns the room served by s.
func (s *Server) Room() *chat.Room {
	return s.room
}

// StartRoom runs the room's event loop in its own goroutine. It must be
// called before the HTTP server accepts connections.
func (s *Server) StartRoom() {
	go s.room.Run()
	s.log.Info("room started and ready to manage WebSocket connections")
}

// Shutdown closes the room, which closes every client, then waits for the
// client pumps to exit or for timeout to pass.
func (s *Server) Shutdown(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	if err := s.room.Shutdown(timeout); err != nil {
		s.log.Warn("room shutdown timed out", zap.Error(err))
		return err
	}

	done := make(chan struct{})
	go func() {
		s.pumps.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("room shutdown completed")
		return nil
	case <-time.After(time.Until(deadline)):
		s.log.Warn("timed out waiting for client pumps")
		return errPumpsTimeout
	}
}
