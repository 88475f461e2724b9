package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload 接收单个 multipart 文件，返回可解引用的 URL。
// 文件类型不做白名单限制，上限以服务端配置为准。
// POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}
	defer file.Close()

	result, err := h.uploadService.Store(file, header.Filename, header.Size)
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) {
			response.BadRequest(c, "File exceeds the 100MB limit")
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, result)
}
