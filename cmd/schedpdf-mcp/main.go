// Command schedpdf-mcp is an MCP (Model Context Protocol) server that
// exports school timetables as PDF documents.
//
// # Installation
//
//	go install github.com/jadwal/schedpdf/cmd/schedpdf-mcp@latest
//
// # Configuration
//
//	{
//	  "mcpServers": {
//	    "schedpdf": {
//	      "command": "schedpdf-mcp",
//	      "env": {
//	        "SCHEDPDF_FONT_DIR": "/usr/share/fonts/schedpdf",
//	        "SCHEDPDF_OUT": "/srv/timetables"
//	      }
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - export_teacher_schedule: one teacher, one page
//   - export_class_schedule: one class, one page
//   - export_all_teachers: a page per teacher
//   - export_all_classes: a page per class
//   - list_fonts: named fonts and whether they are installed
//   - check_style: validate a TOML style preset
//
// # Available Resources
//
//   - schedpdf://fonts : font catalog
//   - schedpdf://style/default : default style preset
//
// Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"

	"github.com/jadwal/schedpdf/logging"
	"github.com/jadwal/schedpdf/mcp"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	level := charmlog.InfoLevel
	if os.Getenv("SCHEDPDF_DEBUG") != "" {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "schedpdf-mcp",
	})
	logging.SetLogger(slog.New(logger))

	server := mcp.NewServer()
	mcp.RegisterDefaultTools(server, mcp.Options{
		FontDir:   os.Getenv("SCHEDPDF_FONT_DIR"),
		OutputDir: os.Getenv("SCHEDPDF_OUT"),
	})
	mcp.RegisterDefaultResources(server)

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "schedpdf-mcp: %v\n", err)
		os.Exit(1)
	}
}
