// Package server wires HTTP handlers into a ServeMux for the chatroom
// application via routing helpers.
package server

import "net/http"

// SetupRoutes configures and returns an HTTP ServeMux with all application routes.
// It sets up handlers for health check, WebSocket endpoint, roster snapshot,
// and the chat page.
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/ws", s.WebSocketHandler)
	mux.HandleFunc("/roster", s.RosterHandler)
	mux.HandleFunc("/chat", ChatPageHandler)
	return mux
}
