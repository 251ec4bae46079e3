package reminder

import (
	"chat-agent-backend/dao"
	"chat-agent-backend/service/mq"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/apache/rocketmq-client-go/v2/primitive"
)

// Task 提醒任务，经MQ延迟投递后由消费端处理
type Task struct {
	TaskID       string    `json:"task_id"`
	SessionID    string    `json:"session_id"`
	Message      string    `json:"message"`
	DelaySeconds int       `json:"delay_seconds"`
	FireAt       time.Time `json:"fire_at"`
}

// Scheduler 延迟调度器，到期后触发提醒入队
type Scheduler interface {
	Schedule(ctx context.Context, task Task) error
}

// MQScheduler 基于RocketMQ延迟消息的调度器实现
type MQScheduler struct{}

var _ Scheduler = MQScheduler{}

func (MQScheduler) Schedule(ctx context.Context, task Task) error {
	return mq.SendMessage(ctx, &mq.Message{
		Topic:        mq.TopicReminder,
		Tag:          mq.TagFire,
		DelaySeconds: task.DelaySeconds,
		Payload:      task,
	})
}

// HandleFireMessage 处理到期的提醒消息，将其追加到会话的待投递队列。
// 队列中的记录由下一轮对话取出，每条只投递一次
func HandleFireMessage(ctx context.Context, msg *primitive.MessageExt) error {
	var task Task
	if err := json.Unmarshal(msg.Body, &task); err != nil {
		// 消息体损坏，重试也无法恢复，丢弃
		slog.Error("Dropping malformed reminder message", "msg_id", msg.MsgId, "err", err)
		return nil
	}

	firedAt := time.Now()
	record := FormatRecord(task.Message, firedAt)

	if err := dao.AppendReminder(task.SessionID, record, firedAt); err != nil {
		return fmt.Errorf("failed to enqueue reminder for session %s: %v", task.SessionID, err)
	}

	slog.Info("Reminder fired",
		"task_id", task.TaskID,
		"session_id", task.SessionID)
	return nil
}

// FormatRecord 生成提醒记录文本，包含提醒内容与触发时间
func FormatRecord(message string, firedAt time.Time) string {
	return fmt.Sprintf("[%s] Reminder: %s", firedAt.Format("2006-01-02 15:04:05"), message)
}
