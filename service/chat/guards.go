package chat

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// GuardDecision 守卫对单个工具调用意图的裁决
type GuardDecision int

const (
	// DecisionExecute 放行该调用
	DecisionExecute GuardDecision = iota

	// DecisionSkip 静默跳过该调用，不产生事件与结果轮次
	DecisionSkip

	// DecisionAbort 中止该调用并丢弃本批剩余意图，
	// 向轮次日志追加一条纠正性的 user 轮次
	DecisionAbort
)

type GuardVerdict struct {
	Decision GuardDecision
	Message  string
}

// TurnContext 守卫判定所需的本轮状态
type TurnContext struct {
	// ExecutedTools 本轮已成功执行的工具名，按执行顺序
	ExecutedTools []string

	// LatestUserText 归一化历史中最近的用户文本
	LatestUserText string
}

func (tc TurnContext) hasExecuted(name string) bool {
	for _, executed := range tc.ExecutedTools {
		if executed == name {
			return true
		}
	}
	return false
}

// GuardPolicy 决定一个工具调用意图能否执行，独立可测
type GuardPolicy interface {
	Evaluate(tc TurnContext, call llms.ToolCall) GuardVerdict
}

// SingleToolGuard 限制每轮最多执行一个不同的工具：
// 已有工具成功执行后，其余工具名的调用意图一律丢弃。
// 同名的重复调用交给 RepeatCallGuard 裁决
type SingleToolGuard struct{}

func (SingleToolGuard) Evaluate(tc TurnContext, call llms.ToolCall) GuardVerdict {
	if len(tc.ExecutedTools) == 0 || tc.hasExecuted(call.FunctionCall.Name) {
		return GuardVerdict{Decision: DecisionExecute}
	}
	return GuardVerdict{Decision: DecisionSkip}
}

// RepeatCallGuard 阻断模型重复请求本轮已执行过的工具，
// 用于打破模型反复请求已有答案工具的退化循环
type RepeatCallGuard struct{}

func (RepeatCallGuard) Evaluate(tc TurnContext, call llms.ToolCall) GuardVerdict {
	name := call.FunctionCall.Name
	if !tc.hasExecuted(name) {
		return GuardVerdict{Decision: DecisionExecute}
	}
	return GuardVerdict{
		Decision: DecisionAbort,
		Message: fmt.Sprintf(
			"You already called the %s tool in this turn and its result is above. Do not call it again; answer using the information you already have.",
			name),
	}
}

// searchTriggerWords 触发搜索所需的关键词
var searchTriggerWords = []string{
	"search", "latest", "current", "today", "news", "real-time",
}

// SearchTriggerGuard 只对搜索工具生效：最近的用户文本不含
// 任一关键词时静默跳过，不产生事件也不追加结果轮次
type SearchTriggerGuard struct{}

func (SearchTriggerGuard) Evaluate(tc TurnContext, call llms.ToolCall) GuardVerdict {
	if call.FunctionCall.Name != ToolSearchWeb {
		return GuardVerdict{Decision: DecisionExecute}
	}

	text := strings.ToLower(tc.LatestUserText)
	for _, word := range searchTriggerWords {
		if strings.Contains(text, word) {
			return GuardVerdict{Decision: DecisionExecute}
		}
	}
	return GuardVerdict{Decision: DecisionSkip}
}

// DefaultGuards 返回按固定顺序排列的守卫链
func DefaultGuards() []GuardPolicy {
	return []GuardPolicy{
		SingleToolGuard{},
		RepeatCallGuard{},
		SearchTriggerGuard{},
	}
}

// evaluateGuards 按顺序执行守卫链，返回第一个非放行裁决
func evaluateGuards(guards []GuardPolicy, tc TurnContext, call llms.ToolCall) GuardVerdict {
	for _, guard := range guards {
		verdict := guard.Evaluate(tc, call)
		if verdict.Decision != DecisionExecute {
			return verdict
		}
	}
	return GuardVerdict{Decision: DecisionExecute}
}
