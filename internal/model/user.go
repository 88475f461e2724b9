package model

import (
	"time"
)

type User struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        *string `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	DiscordID    *string `gorm:"column:discord_id;size:50;uniqueIndex" json:"-"`

	DisplayName   string `gorm:"size:100" json:"display_name"`
	Bio           string `gorm:"type:text" json:"bio"`
	AvatarURL     string `gorm:"size:500" json:"avatar_url"`
	BackgroundURL string `gorm:"size:500" json:"background_url"`
	AudioURL      string `gorm:"size:500" json:"audio_url"`
	AccentColor   string `gorm:"size:20" json:"accent_color"`
	Frame         string `gorm:"size:30;default:none" json:"frame"`
	GlowEnabled   bool   `gorm:"default:false" json:"glow_enabled"`

	// 嵌套配置整体以 JSON 列存储，更新时整体替换
	ThemeConfig       ThemeConfig  `gorm:"serializer:json" json:"theme_config"`
	Geometry          Geometry     `gorm:"serializer:json" json:"geometry"`
	EntranceAnimation string       `gorm:"size:50" json:"entrance_animation"`
	EffectIntensity   float64      `gorm:"default:1" json:"effect_intensity"`
	EffectSpeed       float64      `gorm:"default:1" json:"effect_speed"`
	Decorations       []string     `gorm:"serializer:json" json:"decorations"`
	SocialLinks       []SocialLink `gorm:"serializer:json" json:"social_links"`

	Level int `gorm:"default:1" json:"level"`
	XP    int `gorm:"column:xp;default:0" json:"xp"`
	Views int `gorm:"default:0" json:"views"`
	Likes int `gorm:"default:0" json:"likes"`

	IsPro                 bool       `gorm:"default:false" json:"is_pro"`
	IsEmailVerified       bool       `gorm:"default:false" json:"is_email_verified"`
	VerificationToken     *string    `gorm:"size:100" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// 合法的卡片边框样式
var ValidFrames = []string{"none", "glass", "neon", "minimal", "transparent", "glowing-border"}
