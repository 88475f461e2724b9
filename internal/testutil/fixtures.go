package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model"
)

var userSeq int64

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := atomic.AddInt64(&userSeq, 1)
	email := fmt.Sprintf("test_%d@example.com", seq)
	user := &model.User{
		Username:     fmt.Sprintf("testuser%d", seq),
		Email:        &email,
		PasswordHash: "deadbeef.cafebabe", // scrypt hash placeholder
		ThemeConfig:  model.DefaultThemeConfig(),
		Geometry:     model.DefaultGeometry(),
		Level:        1,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithDiscordID 设置 Discord 绑定
func WithDiscordID(discordID string) func(*model.User) {
	return func(u *model.User) {
		u.DiscordID = &discordID
	}
}

// WithStats 设置浏览/经验/等级
func WithStats(views, xp, level int) func(*model.User) {
	return func(u *model.User) {
		u.Views = views
		u.XP = xp
		u.Level = level
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = hash
	}
}

// TestLink 创建测试链接块
func TestLink(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Link)) *model.Link {
	t.Helper()

	link := &model.Link{
		UserID: userID,
		Title:  "My Link",
		URL:    "https://example.com",
		Icon:   "globe",
	}

	for _, opt := range opts {
		opt(link)
	}

	if err := db.Create(link).Error; err != nil {
		t.Fatalf("Failed to create test link: %v", err)
	}

	return link
}

// WithTitle 设置链接标题
func WithTitle(title string) func(*model.Link) {
	return func(l *model.Link) {
		l.Title = title
	}
}

// WithOrder 设置展示顺序
func WithOrder(order int) func(*model.Link) {
	return func(l *model.Link) {
		l.SortOrder = order
	}
}
