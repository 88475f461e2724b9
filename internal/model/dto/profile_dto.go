package dto

import (
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model"
)

// UpdateProfileRequest PATCH /api/user 的部分更新对象。
// 所有字段可选，任意子集合法；嵌套对象（geometry/theme_config 等）
// 整体替换存量值，由客户端负责自行展开旧配置。
type UpdateProfileRequest struct {
	DisplayName       *string             `json:"display_name,omitempty" binding:"omitempty,max=100"`
	Bio               *string             `json:"bio,omitempty" binding:"omitempty,max=500"`
	AvatarURL         *string             `json:"avatar_url,omitempty" binding:"omitempty,max=500"`
	BackgroundURL     *string             `json:"background_url,omitempty" binding:"omitempty,max=500"`
	AudioURL          *string             `json:"audio_url,omitempty" binding:"omitempty,max=500"`
	AccentColor       *string             `json:"accent_color,omitempty" binding:"omitempty,max=20"`
	Frame             *string             `json:"frame,omitempty" binding:"omitempty,oneof=none glass neon minimal transparent glowing-border"`
	GlowEnabled       *bool               `json:"glow_enabled,omitempty"`
	ThemeConfig       *model.ThemeConfig  `json:"theme_config,omitempty"`
	Geometry          *model.Geometry     `json:"geometry,omitempty"`
	EntranceAnimation *string             `json:"entrance_animation,omitempty" binding:"omitempty,max=50"`
	EffectIntensity   *float64            `json:"effect_intensity,omitempty" binding:"omitempty,gte=0,lte=10"`
	EffectSpeed       *float64            `json:"effect_speed,omitempty" binding:"omitempty,gte=0,lte=10"`
	Decorations       *[]string           `json:"decorations,omitempty"`
	SocialLinks       *[]model.SocialLink `json:"social_links,omitempty" binding:"omitempty,dive"`
}

// PublicProfile 公开个人页（不含邮箱等私有字段）
type PublicProfile struct {
	Username          string             `json:"username"`
	DisplayName       string             `json:"display_name"`
	Bio               string             `json:"bio"`
	AvatarURL         string             `json:"avatar_url"`
	BackgroundURL     string             `json:"background_url"`
	AudioURL          string             `json:"audio_url"`
	AccentColor       string             `json:"accent_color"`
	Frame             string             `json:"frame"`
	GlowEnabled       bool               `json:"glow_enabled"`
	ThemeConfig       model.ThemeConfig  `json:"theme_config"`
	Geometry          model.Geometry     `json:"geometry"`
	EntranceAnimation string             `json:"entrance_animation"`
	EffectIntensity   float64            `json:"effect_intensity"`
	EffectSpeed       float64            `json:"effect_speed"`
	Decorations       []string           `json:"decorations"`
	SocialLinks       []model.SocialLink `json:"social_links"`
	Level             int                `json:"level"`
	XP                int                `json:"xp"`
	Views             int                `json:"views"`
	Likes             int                `json:"likes"`
	IsPro             bool               `json:"is_pro"`
	Links             []LinkInfo         `json:"links"`
}

// ViewResponse 浏览计数响应。xp/level 落库但不回传。
type ViewResponse struct {
	Views int `json:"views"`
}

// LikeResponse 点赞计数响应
type LikeResponse struct {
	Likes int `json:"likes"`
}
