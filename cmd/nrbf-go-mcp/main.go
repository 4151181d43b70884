// Copyright (c) 2026 nrbf-go Authors
//
// This is a Model Context Protocol (MCP) server that bridges LLMs and
// local NRBF (.NET Remoting Binary Format) files via nrbf-go.
//

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nrbf-go/nrbf-go/internal/mcpnrbf"
	mcp_server "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

///////////////////////////////////////////////////////////////////////////////

const (
	mcpServerVersion = "0.0.1"

	defaultSSEHostPort  = ":8890"
	defaultMaxFileBytes = int64(512 << 20) // 512 MiB

	// serverInstructions is sent to LLM clients during MCP initialization.
	serverInstructions = `nrbf-go-mcp provides read-only access to local .NET Remoting Binary Format (NRBF) files.

Recommended workflow:
1. Use inspect_registry to get a quick header and record-type summary before decoding a large file in full.
2. Use decode_flat for a 1:1, tagged-variant JSON view of every record.
3. Use decode_interleaved for a nested, class-shaped JSON view closer to the original .NET object graph.

None of these tools modify the input file.`
)

type Config struct {
	LogJSON bool // Log in JSON format instead of text

	Name    string // Service Name
	Version string // Service Version

	UseSSE      bool   // Use SSE Transport instead of STDIO
	SSEHostPort string // HostPort to use for SSE

	Verbose bool // Verbose logging

	MaxFileBytes int64 // Max input file size to decode
}

var config Config
var logger *slog.Logger

///////////////////////////////////////////////////////////////////////////////

func main() {
	var showHelp bool
	var logFilename string

	pflag.StringVarP(&logFilename, "log-file", "l", "", "Log file destination (or MCP_LOG_FILE envvar). Default is stderr")
	pflag.BoolVarP(&config.LogJSON, "log-json", "j", false, "Log in JSON (default is plaintext)")
	pflag.StringVarP(&config.SSEHostPort, "port", "p", "", "host:port to listen to SSE connections")
	pflag.Int64VarP(&config.MaxFileBytes, "max-bytes", "m", defaultMaxFileBytes, "Max input file size, in bytes, to decode (<=0 is unlimited)")
	pflag.BoolVarP(&config.UseSSE, "sse", "", false, "Use SSE Transport (default is STDIO transport)")
	pflag.BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s [opts]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}

	if config.SSEHostPort == "" {
		config.SSEHostPort = defaultSSEHostPort
	}

	config.Name = "nrbf-go-mcp"
	config.Version = mcpServerVersion

	logWriter := os.Stderr
	if logFilename == "" {
		logFilename = os.Getenv("MCP_LOG_FILE")
	}
	if logFilename != "" {
		logFile, err := os.OpenFile(logFilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %s\n", err.Error())
			os.Exit(1)
		}
		logWriter = logFile
		defer logFile.Close()
	}

	logLevel := slog.LevelInfo
	if config.Verbose {
		logLevel = slog.LevelDebug
	}

	if config.LogJSON {
		logger = slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: logLevel}))
	} else {
		logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: logLevel}))
	}

	if err := run(); err != nil {
		logger.Error("run loop error", "error", err.Error())
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func run() error {
	mcpServer := mcp_server.NewMCPServer(config.Name, config.Version,
		mcp_server.WithRecovery(),
		mcp_server.WithInstructions(serverInstructions),
	)

	srv := mcpnrbf.NewServer(config.MaxFileBytes, logger)
	srv.RegisterTools(mcpServer)

	if config.UseSSE {
		sseServer := mcp_server.NewSSEServer(mcpServer)
		logger.Info("MCP SSE server started", "hostPort", config.SSEHostPort)
		if err := sseServer.Start(config.SSEHostPort); err != nil {
			return fmt.Errorf("MCP SSE server error: %w", err)
		}
	} else {
		logger.Info("MCP STDIO server started")
		if err := mcp_server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("MCP STDIO server error: %w", err)
		}
	}

	return nil
}
