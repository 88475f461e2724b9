package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/api"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/api/handler"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/database"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/cron"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/email"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/oauth"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/oss"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/pubsub"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/session"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/ws"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/repository"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 可选 OSS 后端
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
		log.Println("OSS client initialized")
	}

	// 初始化会话与 OAuth state 存储
	sessions := session.NewStore(rdb, time.Duration(cfg.Session.TTLHours)*time.Hour)
	stateStore := oauth.NewStateStore(rdb)

	// 初始化 WebSocket Hub 并订阅统计事件
	wsHub := ws.NewHub()
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.StatsMessage) {
			wsHub.SendToUser(msg.UserID, &ws.Message{Type: msg.Type, Data: msg})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Stats subscriber stopped: %v", err)
		}
	}()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	linkRepo := repository.NewLinkRepository(db)

	// 初始化 Service
	emailService := email.NewService(&cfg.Email)
	authService := service.NewAuthService(userRepo, emailService, cfg)
	profileService := service.NewProfileService(userRepo, linkRepo, pubsub.NewPublisher(rdb))
	linkService := service.NewLinkService(linkRepo)
	uploadService := service.NewUploadService(cfg, ossClient)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, sessions, stateStore, cfg)
	userHandler := handler.NewUserHandler(authService, profileService)
	profileHandler := handler.NewProfileHandler(profileService)
	linkHandler := handler.NewLinkHandler(linkService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret, cfg.JWT.ExpireMinutes)

	// 启动定时清理
	cronService := cron.NewService(userRepo, time.Hour)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		profileHandler,
		linkHandler,
		uploadHandler,
		websocketHandler,
		sessions,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
