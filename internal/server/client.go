// Package server manages individual WebSocket clients, handling read/write
// pumps and lifecycle control for each connection.
package server

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Tyrowin/chatroom/internal/chat"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// Client is one WebSocket connection. It is the room's Outbox for that
// connection: the room queues frames through Deliver and the write pump
// drains them.
type Client struct {
	conn           *websocket.Conn
	send           chan []byte
	room           *chat.Room
	id             chat.ConnID
	addr           string
	maxMessageSize int64
	log            *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient creates a new Client for conn. The client's send channel is
// buffered to cfg.SendBufferSize frames.
func NewClient(conn *websocket.Conn, room *chat.Room, addr string, cfg Config, log *zap.Logger) *Client {
	if conn != nil {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}

	return &Client{
		conn:           conn,
		send:           make(chan []byte, cfg.SendBufferSize),
		room:           room,
		addr:           addr,
		maxMessageSize: cfg.MaxMessageSize,
		log:            log.With(zap.String("addr", addr)),
	}
}

// Deliver queues frame for the write pump without blocking. It reports false
// when the client is closed or its buffer is full.
func (c *Client) Deliver(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		c.log.Warn("send buffer full")
		return false
	}
}

// Close stops further deliveries and lets the write pump send a close frame.
// Calling it more than once is harmless.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) setupReadConnection() {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error("setting initial read deadline", zap.Error(err))
	}
	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.Error("setting read deadline in pong handler", zap.Error(err))
		}
		return nil
	})
}

// handleReadError logs the reason a read loop ended.
func (c *Client) handleReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		c.log.Warn("message exceeded maximum size", zap.Int64("limit", c.maxMessageSize))
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure):
		c.log.Debug("client disconnected", zap.Error(err))
	case errors.Is(err, io.EOF) || isExpectedCloseError(err):
		c.log.Debug("client connection closed", zap.Error(err))
	case websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseMessageTooBig):
		c.log.Warn("unexpected websocket close", zap.Error(err))
	default:
		c.log.Warn("websocket read error", zap.Error(err))
	}
}

// processMessage hands one inbound frame to the room and returns false once
// the room no longer accepts events.
func (c *Client) processMessage(raw []byte) bool {
	env, err := chat.Decode(raw)
	if err != nil {
		c.log.Debug("ignoring malformed frame", zap.Error(err))
		return true
	}

	err = c.room.Dispatch(context.Background(), c.id, env.Event, env.Data)
	switch {
	case err == nil:
		return true
	case errors.Is(err, chat.ErrUnknownEvent):
		c.log.Debug("ignoring unknown event", zap.String("event", env.Event))
		return true
	case chat.IsClosed(err):
		return false
	default:
		c.log.Error("dispatching event", zap.String("event", env.Event), zap.Error(err))
		return true
	}
}

func (c *Client) readPump() {
	defer func() {
		if err := c.room.Disconnect(c.id); err != nil && !chat.IsClosed(err) {
			c.log.Error("disconnecting session", zap.Error(err))
		}
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			c.log.Error("closing connection in readPump", zap.Error(err))
		}
	}()

	c.setupReadConnection()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}

		if !c.processMessage(raw) {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for c.processWriteEvent(ticker) {
	}
}

// processWriteEvent waits for the next write event and returns false when the
// pump should stop processing.
func (c *Client) processWriteEvent(ticker *time.Ticker) bool {
	select {
	case message, ok := <-c.send:
		return c.handleMessage(message, ok)
	case <-ticker.C:
		return c.handlePing()
	}
}

func (c *Client) closeConnection() {
	if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
		c.log.Error("closing connection in writePump", zap.Error(err))
	}
}

// handleMessage writes one outgoing frame and returns false if the connection
// should be closed.
func (c *Client) handleMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.Error("setting write deadline", zap.Error(err))
		return false
	}

	if !ok {
		return c.writeCloseMessage()
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		if !isExpectedCloseError(err) {
			c.log.Warn("writing frame", zap.Error(err))
		}
		return false
	}
	return true
}

func (c *Client) writeCloseMessage() bool {
	if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil && !isExpectedCloseError(err) {
		c.log.Debug("writing close message", zap.Error(err))
	}
	return false
}

// handlePing sends a ping message to keep the connection alive.
func (c *Client) handlePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.Error("setting write deadline for ping", zap.Error(err))
		return false
	}
	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.log.Debug("writing ping", zap.Error(err))
		return false
	}
	return true
}
