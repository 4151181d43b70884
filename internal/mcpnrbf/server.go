// Copyright (c) 2026 nrbf-go Authors

package mcpnrbf

import "log/slog"

// Server holds shared state for MCP NRBF tool handlers.
type Server struct {
	MaxFileBytes int64 // refuse to decode files larger than this, 0 means unlimited
	Logger       *slog.Logger
}

// NewServer constructs a Server with the given file-size ceiling and logger.
func NewServer(maxFileBytes int64, logger *slog.Logger) *Server {
	return &Server{MaxFileBytes: maxFileBytes, Logger: logger}
}
