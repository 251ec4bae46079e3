package chat

import (
	"chat-agent-backend/request"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func textPart(text string) request.MessagePart {
	return request.MessagePart{Kind: request.PartText, Text: text}
}

func toolPart(name, callID string, state request.ToolState) request.MessagePart {
	return request.MessagePart{
		Kind:       request.PartTool,
		ToolName:   name,
		ToolCallID: callID,
		State:      state,
	}
}

func turnText(t *testing.T, turn llms.MessageContent) string {
	t.Helper()
	text, ok := turn.Parts[0].(llms.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNormalizeUserTextPartsJoined(t *testing.T) {
	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleUser, Parts: []request.MessagePart{
			textPart("first line"),
			textPart("second line"),
		}},
	})

	require.Len(t, turns, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, turns[0].Role)
	assert.Equal(t, "first line\nsecond line", turnText(t, turns[0]))
}

func TestNormalizeUserWithoutTextOmitsUserTurn(t *testing.T) {
	part := toolPart(ToolSearchWeb, "call-1", request.ToolStateOutputAvailable)
	part.Output = json.RawMessage(`{"summary":"found it"}`)

	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleUser, Parts: []request.MessagePart{part}},
	})

	require.Len(t, turns, 1)
	assert.Equal(t, llms.ChatMessageTypeTool, turns[0].Role)

	resp, ok := turns[0].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call-1", resp.ToolCallID)
	assert.Equal(t, ToolSearchWeb, resp.Name)
	assert.JSONEq(t, `{"summary":"found it"}`, resp.Content)
}

func TestNormalizeUserRejectedToolMarker(t *testing.T) {
	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleUser, Parts: []request.MessagePart{
			textPart("no thanks"),
			toolPart(ToolSetReminder, "call-9", request.ToolStateRejected),
		}},
	})

	require.Len(t, turns, 2)
	resp := turns[1].Parts[0].(llms.ToolCallResponse)
	assert.Equal(t, "rejected", resp.Content)
}

func TestNormalizePendingToolPartIgnored(t *testing.T) {
	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleUser, Parts: []request.MessagePart{
			textPart("hello"),
			toolPart(ToolGetUserInfo, "call-2", request.ToolStatePending),
		}},
	})

	require.Len(t, turns, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, turns[0].Role)
}

func TestNormalizeAssistantReconstructsToolCalls(t *testing.T) {
	part := toolPart(ToolSearchWeb, "call-3", request.ToolStateOutputAvailable)
	part.Input = json.RawMessage(`{"query":"latest news"}`)

	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleAssistant, Parts: []request.MessagePart{
			textPart("let me check"),
			part,
		}},
	})

	require.Len(t, turns, 2)
	assert.Equal(t, llms.ChatMessageTypeAI, turns[0].Role)
	assert.Equal(t, "let me check", turnText(t, turns[0]))

	assert.Equal(t, llms.ChatMessageTypeAI, turns[1].Role)
	call, ok := turns[1].Parts[0].(llms.ToolCall)
	require.True(t, ok)
	assert.Equal(t, "call-3", call.ID)
	assert.Equal(t, ToolSearchWeb, call.FunctionCall.Name)
	assert.JSONEq(t, `{"query":"latest news"}`, call.FunctionCall.Arguments)
}

func TestNormalizeAssistantEmptyTextStillEmitted(t *testing.T) {
	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleAssistant, Parts: nil},
	})

	require.Len(t, turns, 1)
	assert.Equal(t, llms.ChatMessageTypeAI, turns[0].Role)
	assert.Equal(t, "", turnText(t, turns[0]))
}

func TestNormalizeMissingToolNameGetsPlaceholder(t *testing.T) {
	part := toolPart("", "call-4", request.ToolStateApprovalNeeded)

	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleAssistant, Parts: []request.MessagePart{part}},
	})

	require.Len(t, turns, 2)
	call := turns[1].Parts[0].(llms.ToolCall)
	assert.Equal(t, placeholderToolName, call.FunctionCall.Name)
	assert.Equal(t, "{}", call.FunctionCall.Arguments)
}

func TestNormalizeOrderingPreserved(t *testing.T) {
	outputPart := toolPart(ToolSearchWeb, "call-5", request.ToolStateOutputAvailable)
	outputPart.Output = json.RawMessage(`"ok"`)

	turns := NormalizeHistory([]request.Message{
		{Role: request.RoleUser, Parts: []request.MessagePart{textPart("search the news")}},
		{Role: request.RoleAssistant, Parts: []request.MessagePart{outputPart}},
		{Role: request.RoleUser, Parts: []request.MessagePart{textPart("thanks")}},
	})

	roles := make([]llms.ChatMessageType, 0, len(turns))
	for _, turn := range turns {
		roles = append(roles, turn.Role)
	}
	assert.Equal(t, []llms.ChatMessageType{
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
	}, roles)
}

func TestLatestUserText(t *testing.T) {
	turns := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "first question"),
		llms.TextParts(llms.ChatMessageTypeAI, "first answer"),
		llms.TextParts(llms.ChatMessageTypeHuman, "second question"),
	}
	assert.Equal(t, "second question", LatestUserText(turns))
}

func TestLatestUserTextEmptyHistory(t *testing.T) {
	assert.Equal(t, "", LatestUserText(nil))
}
