package dao

import (
	"chat-agent-backend/model"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to mysql: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Session{},
		&model.Message{},
		&model.Reminder{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %v", err)
	}

	DB = db
	return nil
}
