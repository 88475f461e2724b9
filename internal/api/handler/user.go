package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/api/middleware"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
)

type UserHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
}

func NewUserHandler(authService *service.AuthService, profileService *service.ProfileService) *UserHandler {
	return &UserHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// Me 获取当前会话用户
// GET /api/user
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "")
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, user)
}

// UpdateProfile 部分更新展示配置，返回更新后的完整用户行
// PATCH /api/user
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "")
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, user)
}
