package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
)

func setupUploadHandler(t *testing.T, maxSize int64) *UploadHandler {
	t.Helper()

	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxSize: maxSize,
			Dir:     t.TempDir(),
		},
	}

	return NewUploadHandler(service.NewUploadService(cfg, nil))
}

func performUpload(t *testing.T, r http.Handler, fieldName, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	handler := setupUploadHandler(t, 1024*1024)

	router := gin.New()
	router.POST("/api/upload", handler.Upload)

	w := performUpload(t, router, "file", "avatar.png", "fake image bytes")

	assert.Equal(t, http.StatusOK, w.Code)

	var result dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, strings.HasPrefix(result.URL, "/uploads/"))
	assert.Equal(t, "avatar.png", result.OriginalName)
	assert.Equal(t, int64(len("fake image bytes")), result.Size)
	assert.True(t, strings.HasSuffix(result.Filename, ".png"))
}

func TestUploadHandler_Upload_NoFile(t *testing.T) {
	handler := setupUploadHandler(t, 1024*1024)

	router := gin.New()
	router.POST("/api/upload", handler.Upload)

	// 表单字段名不对等同于没传文件
	w := performUpload(t, router, "wrong_field", "avatar.png", "data")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, "No file provided", body.Message)
}

func TestUploadHandler_Upload_TooLarge(t *testing.T) {
	handler := setupUploadHandler(t, 8)

	router := gin.New()
	router.POST("/api/upload", handler.Upload)

	w := performUpload(t, router, "file", "big.bin", "more than eight bytes of content")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Contains(t, body.Message, "limit")
}
