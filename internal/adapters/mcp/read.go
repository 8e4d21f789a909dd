package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pdfsat/internal/application"
	"pdfsat/internal/application/commands"
	"pdfsat/internal/ports"
)

// RegisterReadTools adds the tools that inspect the presentation without
// changing it.
func RegisterReadTools(s *server.MCPServer, p *application.Presenter, opener ports.DocumentOpener, notes ports.NotesReader) {
	s.AddTool(stateTool(), stateHandler(p))
	s.AddTool(notesTool(), notesHandler(p))
	s.AddTool(currentSlideTool(), currentSlideHandler(p))
	s.AddTool(infoTool(), infoHandler(opener, notes))
}

// --- state ---

func stateTool() mcp.Tool {
	return mcp.NewTool("state",
		mcp.WithDescription("Show the presenter state: document, slide position, preview, mode, elapsed time and the current note."),
	)
}

func stateHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(formatState(p.State())), nil
	}
}

// --- notes ---

func notesTool() mcp.Tool {
	return mcp.NewTool("notes",
		mcp.WithDescription("Read the speaker notes. Without arguments returns the note for the current slide."),
		mcp.WithNumber("slide",
			mcp.Description("1-based slide number. Omit for the current slide."),
		),
	)
}

func notesHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state := p.State()
		if !state.Loaded() {
			return toolError(application.ErrNoDocument)
		}

		slide := req.GetInt("slide", state.Nav.Current+1)
		if slide < 1 || slide > state.Nav.Total {
			return toolError(fmt.Errorf("%w: slide %d of %d", application.ErrPageOutOfRange, slide, state.Nav.Total))
		}

		note := p.Notes().Get(slide - 1)
		if note == "" {
			return mcp.NewToolResultText(fmt.Sprintf("No notes for slide %d.", slide)), nil
		}
		return mcp.NewToolResultText(note), nil
	}
}

// --- current_slide ---

func currentSlideTool() mcp.Tool {
	return mcp.NewTool("current_slide",
		mcp.WithDescription("Return the current slide as a PNG image at preview resolution."),
	)
}

func currentSlideHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := p.Snapshot(ctx)
		if !snap.Loaded() {
			return toolError(application.ErrNoDocument)
		}
		if snap.Current == nil {
			return toolError(err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, snap.Current); err != nil {
			return toolError(fmt.Errorf("encoding slide: %w", err))
		}
		data := base64.StdEncoding.EncodeToString(buf.Bytes())
		return mcp.NewToolResultImage(snap.Status(), data, "image/png"), nil
	}
}

// --- info ---

func infoTool() mcp.Tool {
	return mcp.NewTool("info",
		mcp.WithDescription("Describe a document without loading it: page count and co-located notes."),
		mcp.WithString("path",
			mcp.Description("Path to a .pdf, .dsh or .xml document"),
			mcp.Required(),
		),
	)
}

func infoHandler(opener ports.DocumentOpener, notes ports.NotesReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		info, err := commands.NewInfoCommand(opener, notes, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %d pages\n", info.Name, info.Pages)
		if info.NotesPath != "" {
			fmt.Fprintf(&sb, "notes: %s (%s, %d slides)\n", info.NotesPath, info.Encoding, info.Notes.Len())
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatState(s application.Snapshot) string {
	if !s.Loaded() {
		return "No document loaded."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", s.DocumentName)
	fmt.Fprintf(&sb, "%s\n", s.Status())
	if s.PreviewAtEnd {
		sb.WriteString("preview: end of presentation\n")
	}
	fmt.Fprintf(&sb, "mode: %s  elapsed: %s\n", s.Mode, s.Elapsed)
	if s.Nav.HasRemembered {
		fmt.Fprintf(&sb, "remembered: %d\n", s.Nav.Remembered+1)
	}
	if s.Diagnostic != "" {
		fmt.Fprintf(&sb, "warning: %s\n", s.Diagnostic)
	}
	if s.Note != "" {
		fmt.Fprintf(&sb, "\n%s\n", s.Note)
	}
	return sb.String()
}
