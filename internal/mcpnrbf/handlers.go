// Copyright (c) 2026 nrbf-go Authors

package mcpnrbf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nrbf-go/nrbf-go"
	"github.com/segmentio/encoding/json"
)

///////////////////////////////////////////////////////////////////////////////

func (s *Server) openFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if s.MaxFileBytes > 0 && info.Size() > s.MaxFileBytes {
		return nil, fmt.Errorf("file %q is %d bytes, exceeds the %d byte limit", path, info.Size(), s.MaxFileBytes)
	}

	reader, closer, err := nrbf.MakeCompressedReader(path, false)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// info.Size() only bounds the on-disk (possibly zstd-compressed) size;
	// bound the decompressed read too, so a small compressed file can't
	// inflate past MaxFileBytes once decoded.
	if s.MaxFileBytes > 0 {
		reader = io.LimitReader(reader, s.MaxFileBytes+1)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	if s.MaxFileBytes > 0 && int64(buf.Len()) > s.MaxFileBytes {
		return nil, fmt.Errorf("file %q decompresses beyond the %d byte limit", path, s.MaxFileBytes)
	}
	return buf.Bytes(), nil
}

func (s *Server) decodeRecords(path string) ([]nrbf.Record, error) {
	data, err := s.openFile(path)
	if err != nil {
		return nil, err
	}
	dec := nrbf.NewDecoder(bytes.NewReader(data))
	return dec.All()
}

///////////////////////////////////////////////////////////////////////////////

func (s *Server) decodeFlatHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}

	records, err := s.decodeRecords(path)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to decode %s: %s", path, err), nil
	}

	var buf bytes.Buffer
	if err := nrbf.FlatEncode(&buf, records); err != nil {
		return mcp.NewToolResultErrorf("failed to encode flat json: %s", err), nil
	}

	s.Logger.Info("decode_flat", "path", path, "records", len(records))
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) decodeInterleavedHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}

	records, err := s.decodeRecords(path)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to decode %s: %s", path, err), nil
	}

	var buf bytes.Buffer
	if err := nrbf.WriteInterleaved(&buf, records); err != nil {
		return mcp.NewToolResultErrorf("failed to encode interleaved json: %s", err), nil
	}

	s.Logger.Info("decode_interleaved", "path", path, "records", len(records))
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) inspectRegistryHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}

	data, err := s.openFile(path)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to open %s: %s", path, err), nil
	}

	dec := nrbf.NewDecoder(bytes.NewReader(data))
	var header *nrbf.SerializationHeader
	counts := map[string]int{}
	total := 0
	for {
		rec, err := dec.DecodeNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return mcp.NewToolResultErrorf("failed to decode %s: %s", path, err), nil
		}
		total++
		counts[rec.RecordType().String()]++
		if h, ok := rec.(*nrbf.SerializationHeader); ok && header == nil {
			header = h
		}
	}

	summary := map[string]any{
		"record_count":     total,
		"record_types":     counts,
		"library_registry": dec.LibraryRegistry(),
	}
	if header != nil {
		summary["root_id"] = header.RootId
		summary["major_version"] = header.MajorVersion
		summary["minor_version"] = header.MinorVersion
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(summary); err != nil {
		return mcp.NewToolResultErrorf("failed to marshal summary: %s", err), nil
	}

	s.Logger.Info("inspect_registry", "path", path, "records", total)
	return mcp.NewToolResultText(buf.String()), nil
}
