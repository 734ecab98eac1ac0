package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/qabot/backend/config"
	"github.com/qabot/backend/internal/eventbus"
	"github.com/qabot/backend/internal/handler"
	"github.com/qabot/backend/internal/pkg/database"
	"github.com/qabot/backend/internal/repository"
	"github.com/qabot/backend/internal/router"
	"github.com/qabot/backend/internal/service"
	"github.com/qabot/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 事件总线与订阅者
	qaBus := eventbus.NewQAEventBus()
	qaSubscriber := subscriber.NewQAEventSubscriber(100)
	qaSubscriber.Register(qaBus)

	// 初始化 Repository
	qaRepo := repository.NewQARepository(db)
	eventRepo := repository.NewEventRepository(db)
	commRepo := repository.NewCommunicationRepository(db)

	// 初始化 Service
	chatBot := service.NewChatBotService(cfg, qaRepo, nil, qaBus)
	qaService := service.NewQAService(qaRepo, qaBus)
	eventService := service.NewEventService(eventRepo)
	commService := service.NewCommunicationService(commRepo)

	// 初始化 Handler
	chatHandler := handler.NewChatHandler(chatBot)
	qaHandler := handler.NewQAHandler(qaService, qaSubscriber)
	eventHandler := handler.NewEventHandler(eventService)
	commHandler := handler.NewCommunicationHandler(commService)

	// 设置路由
	r := router.Setup(cfg, chatHandler, qaHandler, eventHandler, commHandler)

	log.Printf("Server starting on port %s (matcher=%s, threshold=%d)...", cfg.Server.Port, cfg.Matcher.Algorithm, cfg.Matcher.Threshold)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
