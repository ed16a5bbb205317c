// Package server implements the HTTP and WebSocket gateway in front of the
// chat room.
//
// Each accepted WebSocket connection becomes a Client that the room uses as
// the session's outbox. The read pump turns inbound frames into room events
// and the write pump drains the frames the room queues for it. Configuration,
// origin checks, routing, and handlers live in their own files.
package server
