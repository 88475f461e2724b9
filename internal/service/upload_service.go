package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/oss"
)

var ErrFileTooLarge = fmt.Errorf("File is too large")

type UploadService struct {
	cfg       *config.Config
	ossClient *oss.Client // 可为 nil，此时落本地磁盘
}

func NewUploadService(cfg *config.Config, ossClient *oss.Client) *UploadService {
	return &UploadService{cfg: cfg, ossClient: ossClient}
}

// Store 保存上传文件并返回可解引用的 URL。
// 存储名 = 原始文件名 + 时间戳 + 随机后缀 + 原扩展名，实际上不会碰撞。
func (s *UploadService) Store(file io.Reader, originalName string, size int64) (*dto.UploadResponse, error) {
	if size > s.cfg.Upload.MaxSize {
		return nil, ErrFileTooLarge
	}

	storedName, err := buildStoredName(originalName)
	if err != nil {
		return nil, err
	}

	var url string
	if s.ossClient != nil {
		url, err = s.storeOSS(file, storedName)
	} else {
		url, err = s.storeLocal(file, storedName)
	}
	if err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		URL:          url,
		Filename:     storedName,
		OriginalName: originalName,
		Size:         size,
	}, nil
}

func (s *UploadService) storeLocal(file io.Reader, storedName string) (string, error) {
	if err := os.MkdirAll(s.cfg.Upload.Dir, 0755); err != nil {
		return "", err
	}

	destPath := filepath.Join(s.cfg.Upload.Dir, storedName)
	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		os.Remove(destPath)
		return "", err
	}

	return "/uploads/" + storedName, nil
}

func (s *UploadService) storeOSS(file io.Reader, storedName string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(storedName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return s.ossClient.UploadFile("uploads/"+storedName, data, contentType)
}

func buildStoredName(originalName string) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	base = sanitizeBase(base)

	return fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixNano(), hex.EncodeToString(suffix), ext), nil
}

// sanitizeBase 去掉文件名里不适合出现在 URL 和路径里的字符
func sanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
