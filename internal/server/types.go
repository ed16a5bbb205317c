// Package server defines shared response types and utility helpers that
// are reused across client and handler logic.
package server

import (
	"errors"
	"strings"
)

var errPumpsTimeout = errors.New("server: timed out waiting for client pumps")

// RosterResponse is the body served by the roster endpoint.
type RosterResponse struct {
	Names []string `json:"names"`
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
