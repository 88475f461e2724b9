package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/email"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/oauth"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/password"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/repository"
)

var (
	ErrUsernameExists = errors.New("Username is already taken")
	ErrEmailExists    = errors.New("Email is already registered")
	// 登录失败统一口径，不区分"用户不存在"和"密码错误"
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidVerifyToken = errors.New("Invalid or expired verification token")
	ErrUserNotFound       = errors.New("User not found")
)

const verificationTokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.Service
	cfg          *config.Config
	discordOAuth *oauth.DiscordOAuth
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.Service, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		cfg:          cfg,
		discordOAuth: oauth.NewDiscordOAuth(
			cfg.OAuth.Discord.ClientID,
			cfg.OAuth.Discord.ClientSecret,
			cfg.OAuth.Discord.RedirectURI,
		),
	}
}

// Register 用户注册。用户名先查，邮箱后查，冲突提示分开。
// 注册成功即视为登录，不阻塞在邮箱验证上。
func (s *AuthService) Register(req *dto.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	verifyToken, err := generateRandomToken(32)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(verificationTokenTTL)

	user := &model.User{
		Username:              req.Username,
		Email:                 &req.Email,
		PasswordHash:          hashed,
		ThemeConfig:           model.DefaultThemeConfig(),
		Geometry:              model.DefaultGeometry(),
		Level:                 1,
		VerificationToken:     &verifyToken,
		VerificationExpiresAt: &expiresAt,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// 验证邮件尽力而为：发送失败不影响注册结果
	s.sendVerificationEmail(req.Email, verifyToken)

	return user, nil
}

// Login 用户登录。identifier 先按邮箱查，查不到再按用户名查。
func (s *AuthService) Login(req *dto.LoginRequest) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(req.Identifier)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user, err = s.userRepo.GetByUsername(req.Identifier)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// VerifyEmail 验证邮箱。令牌单次有效，验证后立即清除。
func (s *AuthService) VerifyEmail(token string) (*model.User, error) {
	user, err := s.userRepo.GetByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerifyToken
		}
		return nil, err
	}

	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return nil, ErrInvalidVerifyToken
	}

	user.IsEmailVerified = true
	user.VerificationToken = nil
	user.VerificationExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetDiscordAuthURL 获取 Discord 授权 URL
func (s *AuthService) GetDiscordAuthURL(state string) string {
	return s.discordOAuth.GetAuthURL(state)
}

// DiscordCallback 处理 Discord OAuth 回调
func (s *AuthService) DiscordCallback(ctx context.Context, code string) (*model.User, error) {
	token, err := s.discordOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	discordUser, err := s.discordOAuth.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get discord user: %w", err)
	}

	return s.upsertDiscordUser(discordUser)
}

// upsertDiscordUser 三级解析，顺序不可调换，避免老用户产生重复账号：
//  1. discord_id 命中 -> 直接登录
//  2. 邮箱命中已有本地账号 -> 绑定 discord_id
//  3. 都未命中 -> 创建新账号（随机密码占位 + 默认主题）
func (s *AuthService) upsertDiscordUser(discordUser *oauth.DiscordUser) (*model.User, error) {
	user, err := s.userRepo.GetByDiscordID(discordUser.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if discordUser.Email != "" {
		user, err = s.userRepo.GetByEmail(discordUser.Email)
		if err == nil {
			user.DiscordID = &discordUser.ID
			if err := s.userRepo.Update(user); err != nil {
				return nil, err
			}
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	placeholder, err := password.Random()
	if err != nil {
		return nil, err
	}
	hashed, err := password.Hash(placeholder)
	if err != nil {
		return nil, err
	}

	username := discordUser.Username
	exists, _ := s.userRepo.ExistsByUsername(username)
	if exists {
		username = fmt.Sprintf("%s_%s", discordUser.Username, discordUser.ID)
	}

	displayName := discordUser.GlobalName
	if displayName == "" {
		displayName = discordUser.Username
	}

	user = &model.User{
		Username:        username,
		DiscordID:       &discordUser.ID,
		PasswordHash:    hashed,
		DisplayName:     displayName,
		AvatarURL:       discordUser.AvatarURL(),
		ThemeConfig:     model.DefaultThemeConfig(),
		Geometry:        model.DefaultGeometry(),
		Level:           1,
		IsEmailVerified: discordUser.Email != "", // OAuth 邮箱默认已验证
	}
	if discordUser.Email != "" {
		user.Email = &discordUser.Email
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) sendVerificationEmail(to, token string) {
	if s.emailService == nil || !s.emailService.Configured() {
		return
	}

	verifyLink := fmt.Sprintf("%s/verify?token=%s", s.cfg.Server.BaseURL, token)
	go func() {
		if err := s.emailService.SendVerification(to, verifyLink); err != nil {
			log.Printf("Failed to send verification email to %s: %v", to, err)
		}
	}()
}

func generateRandomToken(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
