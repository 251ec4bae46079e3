package chat

import (
	"chat-agent-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventSink 输出事件流，按产生顺序向调用方发送事件
type EventSink interface {
	TextStart(id string)
	TextDelta(id, delta string)
	TextEnd(id string)
	ToolInput(toolCallID, toolName string, input map[string]any)
	ToolOutput(toolCallID string, output any)
}

// GinEventSink 通过SSE推送事件
type GinEventSink struct {
	c *gin.Context
}

var _ EventSink = &GinEventSink{}

func NewGinEventSink(c *gin.Context) *GinEventSink {
	return &GinEventSink{c: c}
}

func (s *GinEventSink) TextStart(id string) {
	utils.SendSSEMessage(s.c, utils.EventTextStart, gin.H{"id": id})
}

func (s *GinEventSink) TextDelta(id, delta string) {
	utils.SendSSEMessage(s.c, utils.EventTextDelta, gin.H{"id": id, "delta": delta})
}

func (s *GinEventSink) TextEnd(id string) {
	utils.SendSSEMessage(s.c, utils.EventTextEnd, gin.H{"id": id})
}

func (s *GinEventSink) ToolInput(toolCallID, toolName string, input map[string]any) {
	utils.SendSSEMessage(s.c, utils.EventToolInputAvailable, gin.H{
		"toolCallId": toolCallID,
		"toolName":   toolName,
		"input":      input,
	})
}

func (s *GinEventSink) ToolOutput(toolCallID string, output any) {
	utils.SendSSEMessage(s.c, utils.EventToolOutputAvailable, gin.H{
		"toolCallId": toolCallID,
		"output":     output,
	})
}

// EmitText 以 start/delta/end 三连事件发送一段完整文本
func EmitText(sink EventSink, text string) {
	id := uuid.New().String()
	sink.TextStart(id)
	sink.TextDelta(id, text)
	sink.TextEnd(id)
}
