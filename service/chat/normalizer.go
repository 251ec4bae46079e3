package chat

import (
	"chat-agent-backend/request"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

const (
	// 工具调用被用户拒绝时写入 tool 轮次的标记
	rejectedToolMarker = "rejected"

	// 工具名缺失时的占位名
	placeholderToolName = "unknown_tool"
)

// NormalizeHistory 将前端形态的消息列表转换为模型原生的轮次列表，
// 顺序保持不变，不做去重。系统轮次由调用方另行前置
func NormalizeHistory(messages []request.Message) []llms.MessageContent {
	var turns []llms.MessageContent

	for _, msg := range messages {
		switch msg.Role {
		case request.RoleUser:
			turns = append(turns, normalizeUserMessage(msg)...)
		case request.RoleAssistant:
			turns = append(turns, normalizeAssistantMessage(msg)...)
		}
	}

	return turns
}

// 用户消息：文本片段合并为一个 user 轮次（为空则省略），
// 已完成或被拒绝的工具片段各生成一个 tool 轮次
func normalizeUserMessage(msg request.Message) []llms.MessageContent {
	var turns []llms.MessageContent

	if text := joinTextParts(msg.Parts); text != "" {
		turns = append(turns, llms.TextParts(llms.ChatMessageTypeHuman, text))
	}

	for _, part := range msg.Parts {
		if part.Kind != request.PartTool {
			continue
		}

		var content string
		switch part.State {
		case request.ToolStateOutputAvailable:
			content = string(part.Output)
		case request.ToolStateRejected:
			content = rejectedToolMarker
		default:
			continue
		}

		turns = append(turns, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: part.ToolCallID,
					Name:       toolNameOrPlaceholder(part.ToolName),
					Content:    content,
				},
			},
		})
	}

	return turns
}

// 助手消息：一个携带合并文本的 assistant 轮次（可为空），
// 若存在已决的工具片段，再补一个携带 tool_calls 的空内容轮次
func normalizeAssistantMessage(msg request.Message) []llms.MessageContent {
	turns := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeAI, joinTextParts(msg.Parts)),
	}

	var calls []llms.ContentPart
	for _, part := range msg.Parts {
		if part.Kind != request.PartTool {
			continue
		}

		switch part.State {
		case request.ToolStateOutputAvailable, request.ToolStateApprovalNeeded, request.ToolStateRejected:
		default:
			continue
		}

		arguments := "{}"
		if len(part.Input) > 0 {
			arguments = string(part.Input)
		}

		calls = append(calls, llms.ToolCall{
			ID:   part.ToolCallID,
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      toolNameOrPlaceholder(part.ToolName),
				Arguments: arguments,
			},
		})
	}

	if len(calls) > 0 {
		turns = append(turns, llms.MessageContent{
			Role:  llms.ChatMessageTypeAI,
			Parts: calls,
		})
	}

	return turns
}

func joinTextParts(parts []request.MessagePart) string {
	var texts []string
	for _, part := range parts {
		if part.Kind == request.PartText {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n")
}

func toolNameOrPlaceholder(name string) string {
	if name == "" {
		return placeholderToolName
	}
	return name
}

// LatestUserText 返回归一化历史中最近一条用户文本，用于搜索触发词判定
func LatestUserText(turns []llms.MessageContent) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role != llms.ChatMessageTypeHuman {
			continue
		}

		var texts []string
		for _, part := range turns[i].Parts {
			if text, ok := part.(llms.TextContent); ok {
				texts = append(texts, text.Text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}
	return ""
}
