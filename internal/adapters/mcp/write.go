package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pdfsat/internal/application"
	"pdfsat/internal/application/commands"
	"pdfsat/internal/domain"
)

// RegisterWriteTools adds the tools that drive the presentation.
func RegisterWriteTools(s *server.MCPServer, p *application.Presenter) {
	s.AddTool(navigateTool(), navigateHandler(p))
	s.AddTool(goLiveTool(), goLiveHandler(p))
	s.AddTool(stopTool(), stopHandler(p))
	s.AddTool(toggleBlankTool(), toggleBlankHandler(p))
	s.AddTool(loadDocumentTool(), loadDocumentHandler(p))
	s.AddTool(loadNotesTool(), loadNotesHandler(p))
	s.AddTool(pointerTool(), pointerHandler(p))
}

// --- navigate ---

func actionNames() []string {
	actions := domain.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return names
}

func navigateTool() mcp.Tool {
	return mcp.NewTool("navigate",
		mcp.WithDescription("Apply a navigation command. advance makes the preview current; the preview_* commands move the preview only; remember and recall bookmark the preview slide."),
		mcp.WithString("action",
			mcp.Description("One of: "+strings.Join(actionNames(), ", ")),
			mcp.Enum(actionNames()...),
			mcp.Required(),
		),
	)
}

func navigateHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		action := req.GetString("action", "")

		result, err := commands.NewNavigateCommand(p, action).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		status := result.State.Status()
		if !result.Changed {
			status = fmt.Sprintf("%s had no effect. %s", result.Action, status)
		}
		return mcp.NewToolResultText(status), nil
	}
}

// --- go_live ---

func goLiveTool() mcp.Tool {
	return mcp.NewTool("go_live",
		mcp.WithDescription("Start presenting on the audience display and start the clock."),
		mcp.WithBoolean("from_start",
			mcp.Description("Restart from the first slide. Defaults to the current slide."),
		),
	)
}

func goLiveHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fromStart := req.GetBool("from_start", false)

		state, err := commands.NewGoLiveCommand(p, fromStart).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Live. %s", state.Status())), nil
	}
}

// --- stop ---

func stopTool() mcp.Tool {
	return mcp.NewTool("stop",
		mcp.WithDescription("Stop presenting and hide the audience display."),
	)
}

func stopHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, err := commands.NewStopCommand(p).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Stopped."), nil
	}
}

// --- toggle_blank ---

func toggleBlankTool() mcp.Tool {
	return mcp.NewTool("toggle_blank",
		mcp.WithDescription("Blank the audience display, or restore it if blanked. Only while live."),
	)
}

func toggleBlankHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state, err := commands.NewToggleBlankCommand(p).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if state.Mode == application.ModeBlanked {
			return mcp.NewToolResultText("Audience display blanked."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Audience display restored. %s", state.Status())), nil
	}
}

// --- load_document ---

func loadDocumentTool() mcp.Tool {
	return mcp.NewTool("load_document",
		mcp.WithDescription("Load a document. Notes next to it (same name, .txt) are attached automatically."),
		mcp.WithString("path",
			mcp.Description("Path to a .pdf, .dsh or .xml document"),
			mcp.Required(),
		),
		mcp.WithBoolean("restore",
			mcp.Description("Resume at the slide stored for the last session"),
		),
	)
}

func loadDocumentHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		restore := req.GetBool("restore", false)

		result, err := commands.NewLoadDocumentCommand(p, path, restore).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- load_notes ---

func loadNotesTool() mcp.Tool {
	return mcp.NewTool("load_notes",
		mcp.WithDescription("Replace the speaker notes with a notes file."),
		mcp.WithString("path",
			mcp.Description("Path to the notes text file"),
			mcp.Required(),
		),
	)
}

func loadNotesHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		result, err := commands.NewLoadNotesCommand(p, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- pointer ---

func pointerTool() mcp.Tool {
	return mcp.NewTool("pointer",
		mcp.WithDescription("Place the laser pointer on the audience display, or hide it. Coordinates are relative to the slide, 0..1 from the top left."),
		mcp.WithNumber("x",
			mcp.Description("Horizontal position, 0..1"),
		),
		mcp.WithNumber("y",
			mcp.Description("Vertical position, 0..1"),
		),
		mcp.WithBoolean("visible",
			mcp.Description("Show the pointer. Defaults to true."),
		),
	)
}

func pointerHandler(p *application.Presenter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		x := req.GetFloat("x", 0.5)
		y := req.GetFloat("y", 0.5)
		visible := req.GetBool("visible", true)

		if err := commands.NewPointerCommand(p, x, y, visible).Execute(ctx); err != nil {
			return toolError(err)
		}
		if !visible {
			return mcp.NewToolResultText("Pointer hidden."), nil
		}
		if p.State().Mode != application.ModeLive {
			return mcp.NewToolResultText("Pointer ignored: not live."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Pointer at %.2f, %.2f.", x, y)), nil
	}
}
