package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorBody 错误响应体。所有错误至少带 message，
// 校验错误额外带首个失败字段，绝不回传内部细节。
type ErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest 400 参数错误
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Message: message})
}

// ValidationError 400，附带首个校验失败的字段
func ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		field := strings.ToLower(first.Field())
		c.JSON(http.StatusBadRequest, ErrorBody{
			Message: "Invalid value for field '" + field + "'",
			Field:   field,
		})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorBody{Message: "Invalid request body"})
}

// Unauthorized 401 未认证
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	c.JSON(http.StatusUnauthorized, ErrorBody{Message: message})
}

// Forbidden 403 无权限
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Forbidden"
	}
	c.JSON(http.StatusForbidden, ErrorBody{Message: message})
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	c.JSON(http.StatusNotFound, ErrorBody{Message: message})
}

// Conflict 409 唯一性冲突
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorBody{Message: message})
}

// ServerError 500，响应体不暴露内部信息
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Message: "Internal server error"})
}
