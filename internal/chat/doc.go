// Package chat implements the single shared chat room: the presence registry,
// the join handshake that binds a connection to a display name, and the
// router that decides per message between broadcast and targeted delivery.
//
// All room state is owned by one Room goroutine. Transports talk to it only
// through Connect, Disconnect and Dispatch, and receive frames through the
// Outbox they registered.
package chat
