package controller

import (
	"chat-agent-backend/dao"
	"chat-agent-backend/model"
	"chat-agent-backend/request"
	"chat-agent-backend/service/chat"
	"chat-agent-backend/utils"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
)

const (
	// 会话忙与请求过频时的用户可见提示，不走 error 事件
	advisoryBusy        = "I'm still working on your previous message. Please wait for it to finish."
	advisoryTooFrequent = "You're sending messages too quickly. Please wait a moment and try again."
)

func AgentChat(c *gin.Context) {
	utils.SetSSEHeaders(c)

	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrParseRequest)
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	sink := chat.NewGinEventSink(c)

	state := chat.Sessions.Get(req.SessionID)
	if err := state.BeginTurn(); err != nil {
		chat.EmitText(sink, admissionAdvisory(err))
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}
	defer state.EndTurn()

	agent, err := chat.NewAgent(c, req.SessionID)
	if err != nil {
		slog.Error(ErrCreateAgent.Error(), "err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrCreateAgent)
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	// 取出本轮待投递的提醒，事务删除保证每条只投递一次
	reminders, err := dao.DrainReminders(req.SessionID)
	if err != nil {
		slog.Error("Failed to drain reminders", "session_id", req.SessionID, "err", err)
		reminders = nil
	}

	turns := chat.NormalizeHistory(req.Messages)

	// 本轮对话不随客户端断开取消，发出后执行到完成或出错
	outcome, err := agent.Run(context.Background(), turns, reminders)
	if err != nil {
		slog.Error(ErrCallAgent.Error(), "session_id", req.SessionID, "err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrCallAgent)
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	utils.SendSSEMessage(c, utils.EventDone, "")

	persistTurn(req, outcome)
}

func admissionAdvisory(err error) string {
	if errors.Is(err, chat.ErrSessionBusy) {
		return advisoryBusy
	}
	return advisoryTooFrequent
}

// persistTurn 向下游持久化本轮新增的消息：最后一条用户消息，
// 以及给出最终文本时的助手消息。核心不回写历史
func persistTurn(req request.ChatRequest, outcome *chat.TurnOutcome) {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role != request.RoleUser {
			continue
		}
		if err := saveMessage(req.SessionID, req.Messages[i]); err != nil {
			slog.Error(ErrSaveMessages.Error(), "session_id", req.SessionID, "err", err)
		}
		break
	}

	if outcome.Status != chat.TurnCompleted {
		return
	}

	assistant := request.Message{
		Role: request.RoleAssistant,
		Parts: []request.MessagePart{
			{Kind: request.PartText, Text: outcome.FinalText},
		},
	}
	if err := saveMessage(req.SessionID, assistant); err != nil {
		slog.Error(ErrSaveMessages.Error(), "session_id", req.SessionID, "err", err)
	}
}

func saveMessage(sessionID string, msg request.Message) error {
	parts, err := json.Marshal(msg.Parts)
	if err != nil {
		return err
	}
	return dao.AppendMessage(&model.Message{
		SessionID: sessionID,
		Role:      msg.Role,
		Parts:     parts,
	})
}
