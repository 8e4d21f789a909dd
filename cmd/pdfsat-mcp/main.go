package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/robfig/cron/v3"

	"pdfsat/internal/adapters/filesystem"
	"pdfsat/internal/adapters/httpsurface"
	mcpadapter "pdfsat/internal/adapters/mcp"
	"pdfsat/internal/application"
	"pdfsat/internal/bootstrap"
	"pdfsat/internal/config"
	"pdfsat/internal/logging"
)

func main() {
	cfg := config.Load()

	listenFlag := flag.String("listen", cfg.ListenAddr, "address of the audience display")
	restoreFlag := flag.Bool("restore", true, "reopen the last document at start")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// stdout carries the protocol
	logger := logging.New(cfg.LogLevel, os.Stderr)

	surface := httpsurface.New(logger)
	opts := []application.PresenterOption{
		application.WithSurface(surface),
		application.WithLogger(logger),
	}
	store, err := bootstrap.SessionStore(ctx, cfg)
	if err != nil {
		logger.Warn("session store unavailable", "error", err)
	} else {
		defer store.Close()
		opts = append(opts, application.WithSessionStore(store))
	}

	opener := bootstrap.Documents(cfg, logger)
	notes := filesystem.NewNotesReader()
	presenter := application.NewPresenter(opener, notes, opts...)
	defer presenter.Close(context.Background())

	if *restoreFlag {
		if _, err := presenter.RestoreLastSession(ctx); err != nil {
			logger.Warn("could not restore last session", "error", err)
		}
	}

	clock := cron.New(cron.WithSeconds())
	if _, err := clock.AddFunc("* * * * * *", func() { presenter.Tick(time.Now()) }); err != nil {
		log.Fatalf("pdfsat-mcp: %v", err)
	}
	clock.Start()
	defer clock.Stop()

	go func() {
		if err := surface.Serve(ctx, *listenFlag); err != nil {
			logger.Error("audience surface stopped", "error", err)
		}
	}()

	mcpServer := server.NewMCPServer(
		"pdfsat-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, presenter, opener, notes)
	mcpadapter.RegisterWriteTools(mcpServer, presenter)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("pdfsat-mcp: %v", err)
	}
}
