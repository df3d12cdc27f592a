package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/detail"
	"github.com/joescharf/issueboard/internal/dnd"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/refdata"
	"github.com/joescharf/issueboard/internal/sessions"
)

// Server exposes one board page as MCP tools.
type Server struct {
	page    *sessions.Page
	version string
}

// NewServer creates the MCP server wrapper around page.
func NewServer(page *sessions.Page, version string) *Server {
	if version == "" {
		version = "dev"
	}
	return &Server{page: page, version: version}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("issueboard", s.version, server.WithToolCapabilities(true))

	srv.AddTool(s.listIssuesTool())
	srv.AddTool(s.showIssueTool())
	srv.AddTool(s.moveIssueTool())
	srv.AddTool(s.dragIssueTool())
	srv.AddTool(s.assignIssueTool())
	srv.AddTool(s.reassignIssueTool())
	srv.AddTool(s.departmentsTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

type columnOut struct {
	ID    string       `json:"id"`
	Count int          `json:"count"`
	Cards []board.Card `json:"cards"`
}

// board_list_issues
func (s *Server) listIssuesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("board_list_issues",
		mcp.WithDescription("List the board's issues grouped into the Backlog, In Progress, Review and Done columns. Filters are optional and do not change the board."),
		mcp.WithString("search", mcp.Description("Case-insensitive text matched against id, subject and office")),
		mcp.WithString("department", mcp.Description("Exact office to show, or 'all'")),
		mcp.WithString("priority", mcp.Description("High, Normal, Low or 'all'")),
	)
	return tool, s.handleListIssues
}

func (s *Server) handleListIssues(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := board.Filter{
		Search:     request.GetString("search", ""),
		Department: request.GetString("department", board.AllDepartments),
		Priority:   request.GetString("priority", board.AllPriorities),
	}
	if f.Priority != board.AllPriorities {
		p, err := models.ParsePriority(f.Priority)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f.Priority = p.String()
	}

	cols := board.Cards(board.Group(s.page.Store().List(), f))
	out := make([]columnOut, len(cols))
	for i, c := range cols {
		out[i] = columnOut{ID: c.ID, Count: c.Count, Cards: c.Cards}
	}
	return jsonResult(out)
}

// board_show_issue
func (s *Server) showIssueTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("board_show_issue",
		mcp.WithDescription("Show every field of one issue, plus the staff it can be assigned to."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Issue id, e.g. ISS-1")),
	)
	return tool, s.handleShowIssue
}

type issueOut struct {
	*models.Issue
	Staff []string `json:"staff,omitempty"`
}

func (s *Server) handleShowIssue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	issue, ok := s.page.Store().Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("issue not found: %s", id)), nil
	}
	return jsonResult(issueOut{Issue: issue, Staff: refdata.StaffFor(issue.Office)})
}

// board_move_issue
func (s *Server) moveIssueTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("board_move_issue",
		mcp.WithDescription("Move an issue to another status, as the card's context menu does."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Issue id")),
		mcp.WithString("status", mcp.Required(), mcp.Description("Backlog, In Progress, Review or Done")),
	)
	return tool, s.handleMoveIssue
}

func (s *Server) handleMoveIssue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	raw, err := request.RequireString("status")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: status"), nil
	}
	status, err := models.ParseStatus(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, ok := s.page.Store().Get(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("issue not found: %s", id)), nil
	}

	if _, err := s.page.Move(id, status); err != nil {
		if errors.Is(err, dnd.ErrNotATransition) {
			return mcp.NewToolResultError(fmt.Sprintf("issue %s is already %s", id, status)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Moved %s to %s", id, status)), nil
}

// board_drag_issue
func (s *Server) dragIssueTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("board_drag_issue",
		mcp.WithDescription("Drag an issue and drop it on a column or another issue. An empty target drops it on nothing."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Issue id to drag")),
		mcp.WithString("target", mcp.Description("Column id (a status name) or issue id to drop on")),
	)
	return tool, s.handleDragIssue
}

func (s *Server) handleDragIssue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	target := request.GetString("target", "")

	s.page.DragStart(id)
	return jsonResult(s.page.DragEnd(id, target))
}

// board_assign_issue
func (s *Server) assignIssueTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("board_assign_issue",
		mcp.WithDescription("Assign an issue to a member of its department's staff."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Issue id")),
		mcp.WithString("assignee", mcp.Required(), mcp.Description("Staff member name")),
	)
	return tool, s.handleAssignIssue
}

func (s *Server) handleAssignIssue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	assignee, err := request.RequireString("assignee")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: assignee"), nil
	}

	err = s.page.Detail(func(v *detail.View) error {
		defer v.Close()
		if err := v.Open(id); err != nil {
			return err
		}
		if err := v.Edit(); err != nil {
			return err
		}
		if err := v.SelectAssignee(assignee); err != nil {
			return err
		}
		return v.Save()
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assign %s: %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Assigned %s to %s", id, assignee)), nil
}

// board_reassign_issue
func (s *Server) reassignIssueTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("board_reassign_issue",
		mcp.WithDescription("Move an issue to another department. A reason is required and is logged, not stored."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Issue id")),
		mcp.WithString("department", mcp.Required(), mcp.Description("Target department, see board_departments")),
		mcp.WithString("reason", mcp.Required(), mcp.Description("Why the issue is being reassigned")),
	)
	return tool, s.handleReassignIssue
}

func (s *Server) handleReassignIssue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	dept, err := request.RequireString("department")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: department"), nil
	}
	reason := request.GetString("reason", "")

	err = s.page.Detail(func(v *detail.View) error {
		defer v.Close()
		if err := v.Open(id); err != nil {
			return err
		}
		if err := v.Edit(); err != nil {
			return err
		}
		if err := v.OpenReassign(); err != nil {
			return err
		}
		if err := v.SetReassignDepartment(dept); err != nil {
			return err
		}
		if err := v.SetReassignReason(reason); err != nil {
			return err
		}
		return v.ConfirmReassign()
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reassign %s: %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reassigned %s to %s", id, dept)), nil
}

// board_departments
func (s *Server) departmentsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("board_departments",
		mcp.WithDescription("List the departments issues can be reassigned to, with the staff of each where known."),
	)
	return tool, s.handleDepartments
}

type departmentOut struct {
	Name  string   `json:"name"`
	Staff []string `json:"staff,omitempty"`
}

func (s *Server) handleDepartments(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	depts := refdata.Departments()
	out := make([]departmentOut, len(depts))
	for i, d := range depts {
		out[i] = departmentOut{Name: d, Staff: refdata.StaffFor(d)}
	}
	return jsonResult(out)
}
