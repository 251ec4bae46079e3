package chat

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// 每轮对话最多调用模型的次数
const maxModelCalls = 2

//go:embed prompts/system_prompt.txt
var systemPrompt string

// TurnStatus 一轮对话的终态
type TurnStatus int

const (
	// TurnCompleted 模型给出了最终文本
	TurnCompleted TurnStatus = iota

	// TurnSuspended 等待客户端补全工具结果，本轮提前结束
	TurnSuspended

	// TurnExhausted 模型调用次数用尽时仍有未决的调用意图，
	// 本轮无最终文本，不做兜底回复
	TurnExhausted
)

type TurnOutcome struct {
	Status    TurnStatus
	FinalText string
}

// Run 执行一轮对话：最多两趟 {模型调用 → 意图判读 → 守卫执行 → 结果回灌}。
// history 为归一化后的轮次日志，reminders 为本轮待投递的提醒记录，
// 每条只会在系统提示中出现一次
func (a *Agent) Run(ctx context.Context, history []llms.MessageContent, reminders []string) (*TurnOutcome, error) {
	turns := make([]llms.MessageContent, 0, len(history)+4)
	turns = append(turns, llms.TextParts(llms.ChatMessageTypeSystem, buildSystemPrompt(reminders)))
	turns = append(turns, history...)

	tc := TurnContext{
		LatestUserText: LatestUserText(history),
	}

	for call := 0; call < maxModelCalls; call++ {
		resp, err := a.llm.GenerateContent(ctx, turns,
			llms.WithTools(ToolCatalog()),
			llms.WithMaxTokens(a.maxTokens),
		)
		if err != nil {
			return nil, fmt.Errorf("model call failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("model returned no choices")
		}

		choice := resp.Choices[0]
		if len(choice.ToolCalls) == 0 {
			EmitText(a.sink, choice.Content)
			return &TurnOutcome{Status: TurnCompleted, FinalText: choice.Content}, nil
		}

		// 先把模型原样发出的调用意图记入轮次日志
		turns = append(turns, assistantToolCallTurn(choice.ToolCalls))

	batch:
		for _, toolCall := range choice.ToolCalls {
			verdict := evaluateGuards(a.guards, tc, toolCall)
			switch verdict.Decision {
			case DecisionSkip:
				continue
			case DecisionAbort:
				turns = append(turns, llms.TextParts(llms.ChatMessageTypeHuman, verdict.Message))
				break batch
			}

			name := toolCall.FunctionCall.Name
			args := parseToolArgs(toolCall.FunctionCall.Arguments)

			// 客户端补全的工具没有服务端实现：
			// 发出占位输出后立即挂起本轮
			if name == ToolGetUserInfo {
				a.sink.ToolInput(toolCall.ID, name, args)
				a.sink.ToolOutput(toolCall.ID, map[string]any{"pending": true})
				return &TurnOutcome{Status: TurnSuspended}, nil
			}

			var result any
			switch name {
			case ToolSearchWeb:
				query, _ := args["query"].(string)
				a.sink.ToolInput(toolCall.ID, name, args)
				result = a.searcher.Search(ctx, query)
			case ToolSetReminder:
				message, delaySeconds, ok := parseReminderArgs(args)
				if !ok {
					continue
				}
				a.sink.ToolInput(toolCall.ID, name, args)
				result, err = a.scheduleReminder(ctx, message, delaySeconds)
				if err != nil {
					return nil, err
				}
			default:
				// 目录之外的工具名，丢弃
				continue
			}

			a.sink.ToolOutput(toolCall.ID, result)
			turns = append(turns, toolResultTurn(toolCall.ID, name, result))
			tc.ExecutedTools = append(tc.ExecutedTools, name)
		}
	}

	return &TurnOutcome{Status: TurnExhausted}, nil
}

func buildSystemPrompt(reminders []string) string {
	if len(reminders) == 0 {
		return systemPrompt
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nThe following reminders fired since the last conversation turn. Relay each of them to the user once:\n")
	for _, record := range reminders {
		b.WriteString("- ")
		b.WriteString(record)
		b.WriteString("\n")
	}
	return b.String()
}

// parseToolArgs 解析模型给出的参数JSON，损坏的参数按空对象处理
func parseToolArgs(arguments string) map[string]any {
	args := make(map[string]any)
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return map[string]any{}
	}
	return args
}

func assistantToolCallTurn(toolCalls []llms.ToolCall) llms.MessageContent {
	parts := make([]llms.ContentPart, 0, len(toolCalls))
	for _, call := range toolCalls {
		parts = append(parts, call)
	}
	return llms.MessageContent{
		Role:  llms.ChatMessageTypeAI,
		Parts: parts,
	}
}

func toolResultTurn(toolCallID, toolName string, result any) llms.MessageContent {
	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte("{}")
	}
	return llms.MessageContent{
		Role: llms.ChatMessageTypeTool,
		Parts: []llms.ContentPart{
			llms.ToolCallResponse{
				ToolCallID: toolCallID,
				Name:       toolName,
				Content:    string(payload),
			},
		},
	}
}
