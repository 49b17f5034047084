// Package mcp exposes the turn engine as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/conversation"
	"github.com/sandevgo/mentoria/pkg/log"
)

type ConversationReader interface {
	Messages(ctx context.Context, conversationID string, page, size int) (core.MessagePage, error)
	Latest(ctx context.Context, userID string) (string, error)
}

type Server struct {
	mcp           *server.MCPServer
	turns         core.TurnHandler
	conversations ConversationReader
}

func NewServer(turns core.TurnHandler, conversations ConversationReader) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			strings.ToLower(core.MentorName),
			core.MentorVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		turns:         turns,
		conversations: conversations,
	}

	s.mcp.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Send one turn to the MentorIA teaching assistant. Pass either message, or field and value to answer a menu or profile question."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Stable id of the teacher")),
		mcp.WithString("conversation_id", mcp.Description("Conversation to continue; omit to start a new one")),
		mcp.WithString("message", mcp.Description("Free text from the teacher")),
		mcp.WithString("field", mcp.Description("Structured answer field, e.g. menu_option or grado")),
		mcp.WithString("value", mcp.Description("Structured answer value")),
	), s.chat)

	s.mcp.AddTool(mcp.NewTool("get_messages",
		mcp.WithDescription("List messages of a conversation, newest first."),
		mcp.WithString("conversation_id", mcp.Required()),
		mcp.WithNumber("page", mcp.Description("Page number, from 1")),
		mcp.WithNumber("size", mcp.Description("Page size, 1 to 50")),
	), s.getMessages)

	s.mcp.AddTool(mcp.NewTool("latest_conversation",
		mcp.WithDescription("Return the conversation a user wrote to last."),
		mcp.WithString("user_id", mcp.Required()),
	), s.latestConversation)

	return s
}

// Serve answers MCP requests read from in until ctx ends or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log.FromCtx(ctx).Info().Msg("serving MCP over stdio")
	err := server.NewStdioServer(s.mcp).Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) chat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil || strings.TrimSpace(userID) == "" {
		return mcp.NewToolResultError("user_id is required"), nil
	}

	turn := core.TurnRequest{
		UserID:         userID,
		ConversationID: req.GetString("conversation_id", ""),
		Message:        strings.TrimSpace(req.GetString("message", "")),
	}
	if field := strings.TrimSpace(req.GetString("field", "")); field != "" {
		turn.UserData = []core.FieldInput{{Field: field, Value: req.GetString("value", "")}}
	}
	if (turn.Message == "") == (len(turn.UserData) == 0) {
		return mcp.NewToolResultError("pass either message or field/value"), nil
	}

	resp, err := s.turns.HandleTurn(ctx, turn)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("turn failed")
		return mcp.NewToolResultError("internal error"), nil
	}
	return jsonResult(resp)
}

func (s *Server) getMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	convID, err := req.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := s.conversations.Messages(ctx, convID,
		req.GetInt("page", 1),
		req.GetInt("size", conversation.DefaultPageSize),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(page)
}

func (s *Server) latestConversation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := s.conversations.Latest(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{"conversation_id": id})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
