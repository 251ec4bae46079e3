package model

import (
	"encoding/json"
	"time"
)

const DefaultSessionTitle = "新会话"

type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SessionID string    `gorm:"not null;uniqueIndex" json:"session_id"`
	Title     string    `json:"title"`
}

func (Session) TableName() string {
	return "chat_session"
}

// Message 持久化前端形态的消息，parts 为片段列表的JSON
// 建立联合索引 (session_id, created_at)
type Message struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time       `gorm:"index:idx_session_created" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	SessionID string          `gorm:"not null;index:idx_session_created" json:"session_id"`
	Role      string          `gorm:"not null" json:"role"`
	Parts     json.RawMessage `gorm:"type:json" json:"parts"`
}

func (Message) TableName() string {
	return "chat_message"
}

// Reminder 会话的待投递提醒队列，下一轮对话取出后删除
type Reminder struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	SessionID string    `gorm:"not null;index" json:"session_id"`
	Record    string    `gorm:"type:text;not null" json:"record"`
	FiredAt   time.Time `json:"fired_at"`
}

func (Reminder) TableName() string {
	return "chat_reminder"
}
