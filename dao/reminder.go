package dao

import (
	"chat-agent-backend/model"
	"time"

	"gorm.io/gorm"
)

func AppendReminder(sessionID, record string, firedAt time.Time) error {
	reminder := model.Reminder{
		SessionID: sessionID,
		Record:    record,
		FiredAt:   firedAt,
	}
	return DB.Create(&reminder).Error
}

// DrainReminders 取出并删除会话的全部待投递提醒，
// 事务保证每条提醒只投递一次
func DrainReminders(sessionID string) ([]string, error) {
	var records []string

	err := DB.Transaction(func(tx *gorm.DB) error {
		var reminders []model.Reminder
		if err := tx.Where("session_id = ?", sessionID).
			Order("created_at ASC").
			Find(&reminders).Error; err != nil {
			return err
		}

		if len(reminders) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(reminders))
		for _, r := range reminders {
			records = append(records, r.Record)
			ids = append(ids, r.ID)
		}

		return tx.Where("id IN ?", ids).
			Delete(&model.Reminder{}).Error
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
