package chat

import "errors"

var (
	ErrUnknownEvent     = errors.New("unknown event")
	ErrRoomClosed       = errors.New("room closed")
	ErrMalformedPayload = errors.New("malformed payload")
)
