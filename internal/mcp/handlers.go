package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db        *sql.DB
	assistant Commander
	log       *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps) *Handlers {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{db: deps.DB, assistant: deps.Assistant, log: log}
}

// Tool definitions

var commandToolDef = mcp.NewTool("darek_command",
	mcp.WithDescription("Send a natural-language command to the assistant and get its reply. "+
		"Reminders, to-dos, shopping items, notes and timers are saved for user_id."),
	mcp.WithString("message", mcp.Required(), mcp.Description("The command, e.g. \"remind me to call mom in 10 minutes\"")),
	mcp.WithString("user_id", mcp.Description("Owner of anything the command saves. Omit to run without saving.")),
)

var dashboardToolDef = mcp.NewTool("darek_dashboard",
	mcp.WithDescription("List everything saved for a user: reminders, open to-dos, shopping items, notes and recent timers."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User whose items to list")),
)

var historyToolDef = mcp.NewTool("darek_history",
	mcp.WithDescription("Page through a user's command history, newest first."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User whose history to list")),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Rows to skip (default 0)")),
)

// Request types for each tool

// CommandRequest represents the arguments for darek_command.
type CommandRequest struct {
	Message *string `json:"message"`
	UserID  string  `json:"user_id,omitempty"`
}

// DashboardRequest represents the arguments for darek_dashboard.
type DashboardRequest struct {
	UserID string `json:"user_id"`
}

// HistoryRequest represents the arguments for darek_history.
type HistoryRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// decode maps tool arguments onto a request struct by round-tripping them through JSON.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var out T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return out, fmt.Errorf("invalid arguments: %s must be a %s", typeErr.Field, typeErr.Type)
		}
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	return out, nil
}

// Handler implementations

// HandleCommand handles the darek_command tool call.
func (h *Handlers) HandleCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CommandRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Message == nil {
		return errorResult(errors.NewInvalidRequest("Please provide a message")), nil
	}
	if strings.TrimSpace(*input.Message) == "" {
		return errorResult(errors.NewInvalidRequest("Please provide a valid message")), nil
	}
	if h.assistant == nil {
		return errorResult(errors.NewInternal(stderrors.New("assistant not configured"))), nil
	}

	reply := h.assistant.Process(ctx, *input.Message, strings.TrimSpace(input.UserID))
	h.log.Debug("mcp command", zap.String("intent", string(reply.Intent)), zap.Bool("saved", reply.Saved))
	return successResult(reply)
}

// HandleDashboard handles the darek_dashboard tool call.
func (h *Handlers) HandleDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DashboardRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Dashboard(ctx, h.db, input.UserID)
	if err != nil {
		return h.failed("darek_dashboard", err), nil
	}

	return successResult(result)
}

// HandleHistory handles the darek_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.History(ctx, h.db, ops.HistoryListInput{
		UserID: input.UserID,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return h.failed("darek_history", err), nil
	}

	return successResult(result)
}

// failed logs internal errors before converting err to a tool result.
func (h *Handlers) failed(tool string, err error) *mcp.CallToolResult {
	if errors.CodeOf(unwrap(err)) == errors.ErrInternal {
		h.log.Error("tool failed", zap.String("tool", tool), zap.Error(err))
	}
	return errorResult(err)
}

// Result helpers

// unwrap returns the first *errors.DarekError in err's chain, or err itself.
func unwrap(err error) error {
	var dErr *errors.DarekError
	if stderrors.As(err, &dErr) {
		return dErr
	}
	return err
}

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var dErr *errors.DarekError
	if stderrors.As(err, &dErr) {
		message := dErr.Message
		// Keep context added by wrappers ("items[2]: ...")
		if err != error(dErr) {
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    dErr.Code,
			"message": message,
			"status":  dErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if dErr.Code != errors.ErrInternal && dErr.Details != nil {
			errorObj["details"] = dErr.Details
		}
		if dErr.Code == errors.ErrInternal {
			errorObj["message"] = "an internal error occurred"
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
