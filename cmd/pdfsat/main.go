package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pdfsat/internal/adapters/editor"
	"pdfsat/internal/adapters/filesystem"
	"pdfsat/internal/adapters/httpsurface"
	"pdfsat/internal/adapters/tui"
	"pdfsat/internal/application"
	"pdfsat/internal/bootstrap"
	"pdfsat/internal/config"
	"pdfsat/internal/logging"
	"pdfsat/internal/ports"
)

func main() {
	cfg := config.Load()

	listen := flag.String("listen", cfg.ListenAddr, "address of the audience display")
	notesPath := flag.String("notes", "", "notes file, instead of <name>_notes.txt next to the document")
	restore := flag.Bool("restore", true, "reopen the last document when none is given")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [document]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(cfg, *listen, flag.Arg(0), *notesPath, *restore); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, listen, docPath, notesPath string, restore bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// stdout belongs to the terminal UI
	logger, logFile, err := logging.OpenFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger, logFile = slog.New(slog.DiscardHandler), io.NopCloser(nil)
	}
	defer logFile.Close()

	surface := httpsurface.New(logger)
	opts := []application.PresenterOption{
		application.WithSurface(surface),
		application.WithLogger(logger),
	}
	store, err := bootstrap.SessionStore(ctx, cfg)
	if err != nil {
		logger.Warn("session store unavailable, positions will not be remembered", "error", err)
	} else {
		defer store.Close()
		opts = append(opts, application.WithSessionStore(store))
	}

	presenter := application.NewPresenter(
		bootstrap.Documents(cfg, logger),
		filesystem.NewNotesReader(),
		opts...,
	)
	defer presenter.Close(context.Background())

	switch {
	case docPath != "":
		if err := presenter.LoadDocument(ctx, docPath, false); err != nil {
			return err
		}
		if notesPath != "" {
			if err := presenter.LoadNotes(ctx, notesPath); err != nil {
				logger.Warn("notes not loaded", "path", notesPath, "error", err)
			}
		}
	case restore:
		if _, err := presenter.RestoreLastSession(ctx); err != nil {
			logger.Warn("could not restore last session", "error", err)
		}
	}

	go func() {
		if err := surface.Serve(ctx, listen); err != nil {
			logger.Error("audience surface stopped", "error", err)
		}
	}()

	var notesEditor ports.NotesEditor
	if ed := editor.NewOpener(); ed.Available() {
		notesEditor = ed
	}

	app := tui.NewApp(presenter, notesEditor)
	defer app.Close()

	fmt.Fprintf(os.Stderr, "Audience display: http://%s/\n", listen)
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
