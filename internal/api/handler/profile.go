package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get 公开个人页
// GET /api/u/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetPublicProfile(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "Profile not found")
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, profile)
}

// View 记录一次浏览。公开接口，只回传浏览数。
// POST /api/u/:username/view
func (h *ProfileHandler) View(c *gin.Context) {
	views, err := h.profileService.RecordView(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "Profile not found")
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, dto.ViewResponse{Views: views})
}

// Like 记录一次点赞
// POST /api/u/:username/like
func (h *ProfileHandler) Like(c *gin.Context) {
	likes, err := h.profileService.RecordLike(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "Profile not found")
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, dto.LikeResponse{Likes: likes})
}
