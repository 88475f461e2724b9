package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/api/middleware"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
)

type LinkHandler struct {
	linkService *service.LinkService
}

func NewLinkHandler(linkService *service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// Create 创建链接块
// POST /api/links
func (h *LinkHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	var req dto.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	link, err := h.linkService.Create(userID, &req)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Created(c, link)
}

// Delete 删除链接块，仅限本人
// DELETE /api/links/:id
func (h *LinkHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	linkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid link id")
		return
	}

	if err := h.linkService.Delete(userID, linkID); err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotLinkOwner):
			response.Forbidden(c, err.Error())
		default:
			response.ServerError(c)
		}
		return
	}

	response.NoContent(c)
}
