package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	learnToolName    = "memory_learn"
	learnDescription = "Learn a fact into a memory clone. The fact becomes the clone's most recent memory and clears any rolled-back redo history."

	rollbackToolName    = "memory_rollback"
	rollbackDescription = "Undo the most recently learned fact of a memory clone. The fact is kept and can be restored with memory_relearn."

	relearnToolName    = "memory_relearn"
	relearnDescription = "Redo the most recently rolled-back fact of a memory clone."

	cloneToolName    = "memory_clone"
	cloneDescription = "Duplicate a memory clone. The duplicate starts with the source's full learned and rollback history and evolves independently. Returns the new clone's number."

	checkToolName    = "memory_check"
	checkDescription = "Check a memory clone's most recently learned fact. Returns the literal string \"basic\" when the clone has learned nothing."
)

// CloneInput addresses a clone by its 1-based number.
type CloneInput struct {
	Clone int `json:"clone" jsonschema:"the 1-based clone number to operate on"`
}

// LearnInput carries a fact value to learn into a clone.
type LearnInput struct {
	Clone int `json:"clone" jsonschema:"the 1-based clone number to operate on"`
	Value int `json:"value" jsonschema:"the fact value to learn"`
}

// CloneOutput reports the number assigned to a newly created clone.
type CloneOutput struct {
	Clone int `json:"clone"`
}

// CheckOutput reports a clone's most recently learned fact.
type CheckOutput struct {
	Value string `json:"value"`
}

// StatusOutput reports a successful mutation with no other payload.
type StatusOutput struct {
	Status string `json:"status"`
}

// toolError wraps a registry failure into a tool result without failing the
// MCP call itself.
func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: err.Error()},
		},
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// handleLearn processes a memory_learn request.
func (s *Server) handleLearn(_ context.Context, _ *mcp.CallToolRequest, input LearnInput) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.config.Registry.Learn(input.Clone, input.Value); err != nil {
		return toolError(err), StatusOutput{}, nil
	}

	return textResult(fmt.Sprintf("learned %d into clone %d", input.Value, input.Clone)), StatusOutput{Status: "ok"}, nil
}

// handleRollback processes a memory_rollback request.
func (s *Server) handleRollback(_ context.Context, _ *mcp.CallToolRequest, input CloneInput) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.config.Registry.Rollback(input.Clone); err != nil {
		return toolError(err), StatusOutput{}, nil
	}

	return textResult(fmt.Sprintf("rolled back clone %d", input.Clone)), StatusOutput{Status: "ok"}, nil
}

// handleRelearn processes a memory_relearn request.
func (s *Server) handleRelearn(_ context.Context, _ *mcp.CallToolRequest, input CloneInput) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.config.Registry.Relearn(input.Clone); err != nil {
		return toolError(err), StatusOutput{}, nil
	}

	return textResult(fmt.Sprintf("relearned clone %d", input.Clone)), StatusOutput{Status: "ok"}, nil
}

// handleClone processes a memory_clone request.
func (s *Server) handleClone(_ context.Context, _ *mcp.CallToolRequest, input CloneInput) (*mcp.CallToolResult, CloneOutput, error) {
	number, err := s.config.Registry.Clone(input.Clone)
	if err != nil {
		return toolError(err), CloneOutput{}, nil
	}

	return textResult(fmt.Sprintf("created clone %d", number)), CloneOutput{Clone: number}, nil
}

// handleCheck processes a memory_check request.
func (s *Server) handleCheck(_ context.Context, _ *mcp.CallToolRequest, input CloneInput) (*mcp.CallToolResult, CheckOutput, error) {
	value, err := s.config.Registry.Check(input.Clone)
	if err != nil {
		return toolError(err), CheckOutput{}, nil
	}

	return textResult(value), CheckOutput{Value: value}, nil
}
