package service

import (
	"context"
	"errors"
	"log"
	"math"

	"gorm.io/gorm"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/pubsub"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/repository"
)

// 每次浏览获得的经验值与等级曲线系数
const (
	XPPerView  = 5
	levelCurve = 0.1
)

// LevelForXP 等级公式：floor(0.1 * sqrt(xp)) + 1
func LevelForXP(xp int) int {
	return int(math.Floor(levelCurve*math.Sqrt(float64(xp)))) + 1
}

type ProfileService struct {
	userRepo  *repository.UserRepository
	linkRepo  *repository.LinkRepository
	publisher *pubsub.Publisher
}

func NewProfileService(userRepo *repository.UserRepository, linkRepo *repository.LinkRepository, publisher *pubsub.Publisher) *ProfileService {
	return &ProfileService{
		userRepo:  userRepo,
		linkRepo:  linkRepo,
		publisher: publisher,
	}
}

// GetPublicProfile 获取公开个人页（含链接块，按顺序）
func (s *ProfileService) GetPublicProfile(username string) (*dto.PublicProfile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	links, err := s.linkRepo.ListByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	return buildPublicProfile(user, links), nil
}

// UpdateProfile 部分更新展示配置。只合并请求里出现的字段；
// 嵌套对象整体替换，服务端不做深合并。
func (s *ProfileService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.BackgroundURL != nil {
		user.BackgroundURL = *req.BackgroundURL
	}
	if req.AudioURL != nil {
		user.AudioURL = *req.AudioURL
	}
	if req.AccentColor != nil {
		user.AccentColor = *req.AccentColor
	}
	if req.Frame != nil {
		user.Frame = *req.Frame
	}
	if req.GlowEnabled != nil {
		user.GlowEnabled = *req.GlowEnabled
	}
	if req.ThemeConfig != nil {
		user.ThemeConfig = *req.ThemeConfig
	}
	if req.Geometry != nil {
		user.Geometry = *req.Geometry
	}
	if req.EntranceAnimation != nil {
		user.EntranceAnimation = *req.EntranceAnimation
	}
	if req.EffectIntensity != nil {
		user.EffectIntensity = *req.EffectIntensity
	}
	if req.EffectSpeed != nil {
		user.EffectSpeed = *req.EffectSpeed
	}
	if req.Decorations != nil {
		user.Decorations = *req.Decorations
	}
	if req.SocialLinks != nil {
		user.SocialLinks = *req.SocialLinks
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// RecordView 记录一次浏览并结算经验/等级。
// 等级只升不降：存储值取 max(旧等级, 公式值)。
func (s *ProfileService) RecordView(ctx context.Context, username string) (int, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	newViews := user.Views + 1
	newXP := user.XP + XPPerView
	newLevel := LevelForXP(newXP)
	if user.Level > newLevel {
		newLevel = user.Level
	}

	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"views": newViews,
		"xp":    newXP,
		"level": newLevel,
	})
	if err != nil {
		return 0, err
	}

	s.publishStats(ctx, user.ID, newViews, user.Likes, newXP, newLevel)

	return newViews, nil
}

// RecordLike 记录一次点赞
func (s *ProfileService) RecordLike(ctx context.Context, username string) (int, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	newLikes := user.Likes + 1
	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"likes": newLikes,
	})
	if err != nil {
		return 0, err
	}

	s.publishStats(ctx, user.ID, user.Views, newLikes, user.XP, user.Level)

	return newLikes, nil
}

func (s *ProfileService) publishStats(ctx context.Context, userID int64, views, likes, xp, level int) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishStats(ctx, &pubsub.StatsMessage{
		UserID: userID,
		Views:  views,
		Likes:  likes,
		XP:     xp,
		Level:  level,
	})
	if err != nil {
		log.Printf("Failed to publish stats for user %d: %v", userID, err)
	}
}

func buildPublicProfile(user *model.User, links []model.Link) *dto.PublicProfile {
	linkInfos := make([]dto.LinkInfo, 0, len(links))
	for _, l := range links {
		linkInfos = append(linkInfos, dto.LinkInfo{
			ID:    l.ID,
			Title: l.Title,
			URL:   l.URL,
			Icon:  l.Icon,
			Order: l.SortOrder,
		})
	}

	return &dto.PublicProfile{
		Username:          user.Username,
		DisplayName:       user.DisplayName,
		Bio:               user.Bio,
		AvatarURL:         user.AvatarURL,
		BackgroundURL:     user.BackgroundURL,
		AudioURL:          user.AudioURL,
		AccentColor:       user.AccentColor,
		Frame:             user.Frame,
		GlowEnabled:       user.GlowEnabled,
		ThemeConfig:       user.ThemeConfig,
		Geometry:          user.Geometry,
		EntranceAnimation: user.EntranceAnimation,
		EffectIntensity:   user.EffectIntensity,
		EffectSpeed:       user.EffectSpeed,
		Decorations:       user.Decorations,
		SocialLinks:       user.SocialLinks,
		Level:             user.Level,
		XP:                user.XP,
		Views:             user.Views,
		Likes:             user.Likes,
		IsPro:             user.IsPro,
		Links:             linkInfos,
	}
}
