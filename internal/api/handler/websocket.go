package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/api/middleware"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/jwt"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要验证 Origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	hub           *ws.Hub
	jwtSecret     string
	expireMinutes int
}

func NewWebSocketHandler(hub *ws.Hub, jwtSecret string, expireMinutes int) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		jwtSecret:     jwtSecret,
		expireMinutes: expireMinutes,
	}
}

// Ticket 为当前会话用户签发短时效连接票据
// GET /api/ws-ticket
func (h *WebSocketHandler) Ticket(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	token, err := jwt.GenerateTicket(userID, h.jwtSecret, h.expireMinutes)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.OK(c, dto.WSTicketResponse{Token: token})
}

// Handle WebSocket 连接处理，Lab 实时统计推送
// GET /api/ws?token=xxx
func (h *WebSocketHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return
	}

	claims, err := jwt.ParseTicket(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &ws.Client{
		UserID: claims.UserID,
		Conn:   conn,
	}
	h.hub.Register(client)

	// 读循环只用于感知断开，客户端不主动发消息
	go func() {
		defer func() {
			h.hub.Unregister(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
