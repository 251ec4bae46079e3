package dao

import (
	"chat-agent-backend/model"
)

func GetSessions() ([]model.Session, error) {
	var sessions []model.Session
	if err := DB.Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func DeleteSession(sessionID string) error {
	// 删除会话
	err := DB.Where("session_id = ?", sessionID).
		Delete(&model.Session{}).Error
	if err != nil {
		return err
	}

	// 删除会话内的对话记录
	err = DB.Where("session_id = ?", sessionID).
		Delete(&[]model.Message{}).Error
	if err != nil {
		return err
	}

	return nil
}

func GetMessagesBySessionID(sessionID string) ([]model.Message, error) {
	var messages []model.Message
	if err := DB.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func AppendMessage(msg *model.Message) error {
	return DB.Create(msg).Error
}

func UpdateSessionTitle(sessionID, title string) error {
	err := DB.Model(&model.Session{}).
		Where("session_id = ?", sessionID).
		Update("title", title).Error
	if err != nil {
		return err
	}
	return nil
}
