package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/oauth"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/session"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Store
	stateStore  *oauth.StateStore
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Store, stateStore *oauth.StateStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		stateStore:  stateStore,
		cfg:         cfg,
	}
}

// Register 用户注册，成功即建立会话
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, err.Error())
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, err.Error())
		default:
			response.ServerError(c)
		}
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		response.ServerError(c)
		return
	}

	response.Created(c, user)
}

// Login 用户登录
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.ServerError(c)
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		response.ServerError(c)
		return
	}

	response.OK(c, user)
}

// Logout 登出。幂等：无会话或重复调用都返回 200。
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cfg.Session.CookieName)
	if err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			log.Printf("Failed to destroy session: %v", err)
		}
	}

	h.clearSessionCookie(c)
	response.OK(c, gin.H{"message": "Logged out"})
}

// VerifyEmail 验证邮箱，验证成功后以该用户身份重建会话
// POST /api/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.authService.VerifyEmail(req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerifyToken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c)
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		response.ServerError(c)
		return
	}

	response.OK(c, dto.VerifyEmailResponse{Message: "Email verified"})
}

// DiscordAuth 跳转到 Discord 授权页
// GET /api/auth/discord
func (h *AuthHandler) DiscordAuth(c *gin.Context) {
	state, err := h.stateStore.GenerateState(c.Request.Context(), c.Query("redirect_uri"))
	if err != nil {
		response.ServerError(c)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.authService.GetDiscordAuthURL(state))
}

// DiscordCallback 处理 Discord 回调，成功跳转 /lab，失败跳转 /auth
// GET /api/auth/discord/callback
func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	if _, err := h.stateStore.ValidateState(c.Request.Context(), c.Query("state")); err != nil {
		log.Printf("Discord OAuth state validation failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, "/auth")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, "/auth")
		return
	}

	user, err := h.authService.DiscordCallback(c.Request.Context(), code)
	if err != nil {
		log.Printf("Discord OAuth callback failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, "/auth")
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		c.Redirect(http.StatusTemporaryRedirect, "/auth")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, "/lab")
}

func (h *AuthHandler) establishSession(c *gin.Context, userID int64) error {
	token, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}

	c.SetCookie(
		h.cfg.Session.CookieName,
		token,
		int(h.sessions.TTL().Seconds()),
		"/",
		h.cfg.Session.CookieDomain,
		h.cfg.Session.Secure,
		true, // HttpOnly
	)
	return nil
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(
		h.cfg.Session.CookieName,
		"",
		-1,
		"/",
		h.cfg.Session.CookieDomain,
		h.cfg.Session.Secure,
		true,
	)
}
