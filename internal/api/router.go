package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/api/handler"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/api/middleware"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/session"
)

type Router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	profileHandler   *handler.ProfileHandler
	linkHandler      *handler.LinkHandler
	uploadHandler    *handler.UploadHandler
	websocketHandler *handler.WebSocketHandler
	sessions         *session.Store
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
	linkHandler *handler.LinkHandler,
	uploadHandler *handler.UploadHandler,
	websocketHandler *handler.WebSocketHandler,
	sessions *session.Store,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		userHandler:      userHandler,
		profileHandler:   profileHandler,
		linkHandler:      linkHandler,
		uploadHandler:    uploadHandler,
		websocketHandler: websocketHandler,
		sessions:         sessions,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))
	engine.MaxMultipartMemory = r.cfg.Upload.MaxSize

	// 上传文件直接静态托管
	engine.Static("/uploads", r.cfg.Upload.Dir)

	api := engine.Group("/api")
	{
		// 公开接口 - 认证
		api.POST("/register", r.authHandler.Register)
		api.POST("/login", r.authHandler.Login)
		// 登出幂等，不挂认证中间件：重复调用不算错误
		api.POST("/logout", r.authHandler.Logout)
		api.POST("/verify-email", r.authHandler.VerifyEmail)
		api.GET("/auth/discord", r.authHandler.DiscordAuth)
		api.GET("/auth/discord/callback", r.authHandler.DiscordCallback)

		// 公开接口 - 个人页
		api.GET("/u/:username", r.profileHandler.Get)
		api.POST("/u/:username/view", r.profileHandler.View)
		api.POST("/u/:username/like", r.profileHandler.Like)

		// 上传不挂认证，注册引导页在登录前也要传头像
		api.POST("/upload", r.uploadHandler.Upload)

		// WebSocket（票据认证）
		api.GET("/ws", r.websocketHandler.Handle)

		// 需要会话的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.sessions, r.cfg.Session.CookieName))
		{
			authenticated.GET("/user", r.userHandler.Me)
			authenticated.PATCH("/user", r.userHandler.UpdateProfile)
			authenticated.POST("/links", r.linkHandler.Create)
			authenticated.DELETE("/links/:id", r.linkHandler.Delete)
			authenticated.GET("/ws-ticket", r.websocketHandler.Ticket)
		}
	}

	return engine
}
