package main

import (
	"chat-agent-backend/config"
	"chat-agent-backend/dao"
	"chat-agent-backend/router"
	"chat-agent-backend/service/mq"
	"chat-agent-backend/service/reminder"
	"flag"
	"log/slog"
	"os"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if err := dao.Init(config.Cfg.MySQL.DSN); err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}

	if err := mq.Init(); err != nil {
		slog.Error("Failed to init mq", "err", err)
		os.Exit(1)
	}
	defer mq.Shutdown()

	if err := mq.Subscribe(mq.TopicReminder, mq.TagFire, reminder.HandleFireMessage); err != nil {
		slog.Error("Failed to subscribe reminder topic", "err", err)
		os.Exit(1)
	}

	if err := mq.Run(); err != nil {
		slog.Error("Failed to start mq", "err", err)
		os.Exit(1)
	}

	r := router.Register()
	if err := r.Run(":" + config.Cfg.Server.Port); err != nil {
		slog.Error("Server exited", "err", err)
		os.Exit(1)
	}
}
