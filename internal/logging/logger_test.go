package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "console info", level: "info", format: "console", want: zapcore.InfoLevel},
		{name: "json debug", level: "debug", format: "json", want: zapcore.DebugLevel},
		{name: "default format", level: "warn", format: "", want: zapcore.WarnLevel},
		{name: "padded level", level: " error ", format: "JSON", want: zapcore.ErrorLevel},
		{name: "bad level", level: "loud", format: "console", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			log, err := New(tt.level, tt.format)
			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.True(log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				req.False(log.Core().Enabled(tt.want - 1))
			}
		})
	}
}
