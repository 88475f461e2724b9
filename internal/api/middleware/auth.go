package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/session"
)

const (
	UserIDKey = "userID"
)

// Auth 会话认证中间件。Cookie 里的令牌解析不出用户时，
// 在进入业务逻辑前直接 401。
func Auth(store *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := store.Get(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}
