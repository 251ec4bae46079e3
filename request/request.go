package request

import "encoding/json"

// PartKind 消息片段类型
type PartKind string

const (
	PartText PartKind = "text"
	PartTool PartKind = "tool-activity"
)

// ToolState 工具调用的生命周期状态
type ToolState string

const (
	ToolStatePending         ToolState = "pending"
	ToolStateApprovalNeeded  ToolState = "approval-required"
	ToolStateRejected        ToolState = "rejected"
	ToolStateOutputAvailable ToolState = "output-available"
)

// MessagePart 是消息片段的标签联合类型：
// Kind 为 PartText 时只有 Text 有效，为 PartTool 时其余字段有效
type MessagePart struct {
	Kind PartKind `json:"kind"`

	Text string `json:"text,omitempty"`

	ToolName   string          `json:"tool_name,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	State      ToolState       `json:"state,omitempty"`
	Input      json.RawMessage `json:"input,omitempty"`
	Output     json.RawMessage `json:"output,omitempty"`
}

// Message 是前端形态的会话消息，由持久化层负责存储，核心只读
type Message struct {
	Role  string        `json:"role" binding:"required"`
	Parts []MessagePart `json:"parts"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatRequest struct {
	SessionID string    `json:"session_id" binding:"required"`
	Messages  []Message `json:"messages" binding:"required"`
}

type UpdateSessionTitleRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
}
