//go:build tools

// Package tools declares the code generators used by go generate so that
// their versions are tracked in go.mod.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
