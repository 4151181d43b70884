// Copyright (c) 2026 nrbf-go Authors

package mcpnrbf

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcp_server "github.com/mark3labs/mcp-go/server"
)

///////////////////////////////////////////////////////////////////////////////

// RegisterTools registers the NRBF inspection tools on mcpServer.
func (s *Server) RegisterTools(mcpServer *mcp_server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("decode_flat",
			mcp.WithDescription("Decodes an NRBF (.NET Remoting Binary Format) file and returns its records as Flat JSON: one tagged object per record, in stream order. Understands .zst/.zstd-compressed files transparently."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path to the NRBF file to decode"),
			),
		),
		s.decodeFlatHandler,
	)

	mcpServer.AddTool(
		mcp.NewTool("decode_interleaved",
			mcp.WithDescription("Decodes an NRBF file and returns its records as Interleaved JSON: class member values appear as direct object keys, shaped like the original .NET object graph."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path to the NRBF file to decode"),
			),
		),
		s.decodeInterleavedHandler,
	)

	mcpServer.AddTool(
		mcp.NewTool("inspect_registry",
			mcp.WithDescription("Summarizes an NRBF file without materializing its full record list: stream header fields, a record-type histogram, and the BinaryLibrary id-to-name registry."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path to the NRBF file to inspect"),
			),
		),
		s.inspectRegistryHandler,
	)
}
