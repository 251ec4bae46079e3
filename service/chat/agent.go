package chat

import (
	"chat-agent-backend/config"
	"chat-agent-backend/service/reminder"
	"chat-agent-backend/utils"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// 配置 300s 超时时间处理 LLM 输出
var agentHTTPClient *http.Client = utils.NewHTTPClient(
	utils.WithTimeout(300 * time.Second),
)

// Agent 单轮对话的编排器，持有模型客户端、守卫链与工具执行器
type Agent struct {
	llm       llms.Model
	sink      EventSink
	searcher  SearchProvider
	scheduler reminder.Scheduler
	guards    []GuardPolicy
	sessionID string
	maxTokens int
}

func NewAgent(c *gin.Context, sessionID string) (*Agent, error) {
	llm, err := openai.New(
		openai.WithModel(config.Cfg.Model.Name),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(agentHTTPClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %v", err)
	}

	return &Agent{
		llm:       llm,
		sink:      NewGinEventSink(c),
		searcher:  NewWebSearcher(config.Cfg.Search.Endpoint),
		scheduler: reminder.MQScheduler{},
		guards:    DefaultGuards(),
		sessionID: sessionID,
		maxTokens: config.Cfg.Model.MaxTokens,
	}, nil
}

// ReminderConfirmation setReminder 工具的确认载荷
type ReminderConfirmation struct {
	Scheduled bool   `json:"scheduled"`
	Message   string `json:"message"`
	InSeconds int    `json:"inSeconds"`
}

// parseReminderArgs 校验 setReminder 参数，
// 非法输入返回 ok=false，调用被静默丢弃
func parseReminderArgs(args map[string]any) (message string, delaySeconds int, ok bool) {
	message, isString := args["message"].(string)
	delay, isNumber := args["delaySeconds"].(float64)
	if !isString || message == "" || !isNumber || delay <= 0 {
		return "", 0, false
	}
	return message, int(delay), true
}

func (a *Agent) scheduleReminder(ctx context.Context, message string, delaySeconds int) (ReminderConfirmation, error) {
	task := reminder.Task{
		TaskID:       uuid.New().String(),
		SessionID:    a.sessionID,
		Message:      message,
		DelaySeconds: delaySeconds,
		FireAt:       time.Now().Add(time.Duration(delaySeconds) * time.Second),
	}

	if err := a.scheduler.Schedule(ctx, task); err != nil {
		return ReminderConfirmation{}, fmt.Errorf("failed to schedule reminder: %w", err)
	}

	return ReminderConfirmation{
		Scheduled: true,
		Message:   message,
		InSeconds: delaySeconds,
	}, nil
}
