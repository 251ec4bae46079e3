package chat

import "github.com/tmc/langchaingo/llms"

const (
	ToolSearchWeb   = "searchWeb"
	ToolGetUserInfo = "getUserInfo"
	ToolSetReminder = "setReminder"
)

// toolCatalog 每次模型调用都原样传入的静态工具目录
var toolCatalog = []llms.Tool{
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ToolSearchWeb,
			Description: "Search the web for up-to-date information. Use this when the user asks about current events, news, or anything that requires real-time data.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The search query",
					},
				},
				"required": []string{"query"},
			},
		},
	},
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ToolGetUserInfo,
			Description: "Get the user's local information such as timezone, locale and current local time. The result is computed on the user's device.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	},
	{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        ToolSetReminder,
			Description: "Schedule a reminder for the user. The reminder fires after the given delay and is shown to the user in a later conversation turn.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"message": map[string]any{
						"type":        "string",
						"description": "The reminder text to show the user",
					},
					"delaySeconds": map[string]any{
						"type":        "number",
						"description": "How many seconds from now the reminder should fire",
					},
				},
				"required": []string{"message", "delaySeconds"},
			},
		},
	},
}

// ToolCatalog 返回工具目录
func ToolCatalog() []llms.Tool {
	return toolCatalog
}
